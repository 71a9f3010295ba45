package sim

import (
	"bytes"
	"log"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

// resetFacade drops the active engine and configuration so each spec sees
// the package as freshly loaded. It bypasses Destroy to avoid touching
// injected mock engines.
func resetFacade() {
	facadeLock.Lock()
	removeLogTimePrefix()
	activeEngine = nil
	facadeLock.Unlock()

	configLock.Lock()
	engineType = ""
	schedulerType = ""
	configLock.Unlock()
}

var _ = Describe("Simulator facade", func() {
	var mockCtrl *gomock.Controller

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		resetFacade()
	})

	AfterEach(func() {
		resetFacade()
		os.Unsetenv(EngineTypeEnv)
		os.Unsetenv(SchedulerTypeEnv)
		mockCtrl.Finish()
	})

	It("should build the engine on the first scheduling call", func() {
		Expect(peekEngine()).To(BeNil())

		id := Schedule(1, func() {})

		Expect(peekEngine()).To(BeAssignableToTypeOf(&SerialEngine{}))
		Expect(id.Sequence()).To(Equal(seqFirst))
	})

	It("should answer queries without building an engine", func() {
		Expect(Now()).To(Equal(VTime(0)))
		Expect(CurrentContext()).To(Equal(NoContext))
		Expect(EventCount()).To(Equal(uint64(0)))
		Expect(QueueSize()).To(Equal(0))
		Expect(SystemID()).To(Equal(uint32(0)))
		Expect(IsFinished()).To(BeTrue())
		Expect(IsExpired(EventID{})).To(BeTrue())
		Expect(DelayLeft(EventID{})).To(Equal(VTime(0)))

		Cancel(EventID{})
		Remove(EventID{})

		Expect(peekEngine()).To(BeNil())
	})

	It("should run a simulation end to end", func() {
		var order []string

		Schedule(2, func() { order = append(order, "b") })
		Schedule(1, func() {
			order = append(order, "a")

			ScheduleNow(func() { order = append(order, "a2") })
		})
		ScheduleDestroy(func() { order = append(order, "destroy") })

		Run()

		Expect(order).To(Equal([]string{"a", "a2", "b"}))
		Expect(Now()).To(Equal(VTime(2)))
		Expect(EventCount()).To(Equal(uint64(3)))
		Expect(SystemID()).To(Equal(uint32(0)))

		Destroy()

		Expect(order).To(Equal([]string{"a", "a2", "b", "destroy"}))
		Expect(Now()).To(Equal(VTime(0)))
	})

	It("should start a fresh engine after destroy", func() {
		Schedule(5, func() {})
		Run()
		Expect(Now()).To(Equal(VTime(5)))

		Destroy()

		ran := false
		Schedule(1, func() { ran = true })

		Expect(Now()).To(Equal(VTime(0)))

		Run()

		Expect(ran).To(BeTrue())
		Expect(Now()).To(Equal(VTime(1)))
		Expect(EventCount()).To(Equal(uint64(1)))
	})

	It("should tolerate destroy without an engine", func() {
		Destroy()

		Expect(peekEngine()).To(BeNil())
	})

	It("should stop a run between events", func() {
		var ran []VTime

		Schedule(1, func() { ran = append(ran, Now()) })
		StopAfter(2)
		Schedule(3, func() { ran = append(ran, Now()) })

		Run()

		Expect(ran).To(Equal([]VTime{1}))
		Expect(Now()).To(Equal(VTime(2)))
		Expect(QueueSize()).To(Equal(1))
	})

	It("should swap the scheduler of a live engine", func() {
		var order []string

		Schedule(2, func() { order = append(order, "b") })
		Schedule(1, func() { order = append(order, "a") })

		factory, err := SchedulerFactoryByName("heap")
		Expect(err).ToNot(HaveOccurred())

		SetScheduler(factory)
		Run()

		Expect(order).To(Equal([]string{"a", "b"}))
	})

	It("should forward calls to an injected engine", func() {
		mockEngine := NewMockEngine(mockCtrl)
		SetImplementation(mockEngine)

		mockEngine.EXPECT().CurrentTime().Return(VTime(42)).AnyTimes()
		mockEngine.EXPECT().Schedule(VTime(3), gomock.Any()).Return(EventID{})
		mockEngine.EXPECT().ScheduleWithContext(
			uint32(9), VTime(2), gomock.Any())
		mockEngine.EXPECT().Run().Return(nil)

		Schedule(3, func() {})
		ScheduleWithContext(9, 2, func() {})
		Run()

		Expect(Now()).To(Equal(VTime(42)))
	})

	It("should refuse a second engine implementation", func() {
		Schedule(1, func() {})

		Expect(func() {
			SetImplementation(NewMockEngine(mockCtrl))
		}).To(Panic())
	})

	It("should honor the configured scheduler type", func() {
		SetSchedulerType("heap")

		Schedule(1, func() {})

		serial := peekEngine().(*SerialEngine)
		Expect(serial.scheduler).To(BeAssignableToTypeOf(&HeapScheduler{}))
	})

	It("should honor the scheduler type from the environment", func() {
		os.Setenv(SchedulerTypeEnv, "list")

		Schedule(1, func() {})

		serial := peekEngine().(*SerialEngine)
		Expect(serial.scheduler).To(BeAssignableToTypeOf(&ListScheduler{}))
	})

	It("should prefer the programmatic type over the environment", func() {
		os.Setenv(SchedulerTypeEnv, "list")
		SetSchedulerType("tree")

		Schedule(1, func() {})

		serial := peekEngine().(*SerialEngine)
		Expect(serial.scheduler).To(BeAssignableToTypeOf(&TreeScheduler{}))
	})

	It("should panic on an unknown engine type", func() {
		SetEngineType("bogus")

		Expect(func() { Schedule(1, func() {}) }).To(Panic())
	})

	It("should stamp log lines with the virtual time", func() {
		var buf bytes.Buffer
		prev := log.Writer()
		log.SetOutput(&buf)
		defer log.SetOutput(prev)

		Schedule(4, func() { log.Print("inside") })
		Run()

		Expect(buf.String()).To(ContainSubstring("[t=4ns] "))
		Expect(buf.String()).To(ContainSubstring("inside"))

		Destroy()

		Expect(log.Writer()).To(BeIdenticalTo(&buf))
	})
})
