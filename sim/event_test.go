package sim

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Event", func() {
	It("should order by time, then by sequence", func() {
		a := NewEvent(1, NoContext, seqFirst, func() {})
		b := NewEvent(2, NoContext, seqFirst+1, func() {})
		c := NewEvent(2, NoContext, seqFirst+2, func() {})

		Expect(a.before(b)).To(BeTrue())
		Expect(b.before(a)).To(BeFalse())
		Expect(b.before(c)).To(BeTrue())
		Expect(c.before(b)).To(BeFalse())
	})

	It("should run its callback on invoke", func() {
		ran := 0
		evt := NewEvent(3, 7, seqFirst, func() { ran++ })

		evt.Invoke()

		Expect(ran).To(Equal(1))
		Expect(evt.Time()).To(Equal(VTime(3)))
		Expect(evt.Context()).To(Equal(uint32(7)))
		Expect(evt.Sequence()).To(Equal(seqFirst))
	})

	It("should keep the cancelled flag", func() {
		evt := NewEvent(1, NoContext, seqFirst, func() {})

		Expect(evt.Cancelled()).To(BeFalse())
		evt.Cancel()
		Expect(evt.Cancelled()).To(BeTrue())
	})
})

var _ = Describe("EventID", func() {
	It("should record the key of its event", func() {
		evt := NewEvent(9, 4, seqFirst+5, func() {})
		id := NewEventID(evt)

		Expect(id.Time()).To(Equal(VTime(9)))
		Expect(id.Context()).To(Equal(uint32(4)))
		Expect(id.Sequence()).To(Equal(seqFirst + 5))
		Expect(id.Event()).To(BeIdenticalTo(evt))
	})

	It("should have a stale zero value", func() {
		var id EventID

		Expect(id.Event()).To(BeNil())
		Expect(id.Sequence()).To(Equal(seqInvalid))
	})
})

var _ = Describe("EventLogger", func() {
	It("should log executed events", func() {
		var buf bytes.Buffer
		engine := NewSerialEngine()
		engine.AcceptHook(NewEventLogger(log.New(&buf, "", 0)))

		engine.Schedule(2, func() {})
		engine.ScheduleWithContext(4, 3, func() {})

		Expect(engine.Run()).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("2ns, evt 2\n"))
		Expect(buf.String()).To(ContainSubstring("3ns, evt 3, node 4\n"))
	})

	It("should not log cancelled events", func() {
		var buf bytes.Buffer
		engine := NewSerialEngine()
		engine.AcceptHook(NewEventLogger(log.New(&buf, "", 0)))

		id := engine.Schedule(1, func() {})
		engine.Cancel(id)

		Expect(engine.Run()).To(Succeed())

		Expect(buf.String()).To(BeEmpty())
	})
})
