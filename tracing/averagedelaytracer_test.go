package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/netsim/sim"
)

var _ = Describe("AverageDelayTracer", func() {
	var tracer *AverageDelayTracer

	BeforeEach(func() {
		tracer = NewAverageDelayTracer(AnyRecord)
	})

	It("should start with no executed events", func() {
		Expect(tracer.ExecutedCount()).To(Equal(uint64(0)))
		Expect(tracer.AverageDelay()).To(Equal(sim.VTime(0)))
	})

	It("should average the delay of executed events", func() {
		tracer.EventScheduled(EventRecord{Sequence: 1, Delay: 10})
		tracer.EventScheduled(EventRecord{Sequence: 2, Delay: 20})
		tracer.EventExecuted(EventRecord{Sequence: 1})
		tracer.EventExecuted(EventRecord{Sequence: 2})

		Expect(tracer.ExecutedCount()).To(Equal(uint64(2)))
		Expect(tracer.AverageDelay()).To(Equal(sim.VTime(15)))
	})

	It("should not count events that never execute", func() {
		tracer.EventScheduled(EventRecord{Sequence: 1, Delay: 10})

		Expect(tracer.ExecutedCount()).To(Equal(uint64(0)))
	})

	It("should ignore executions that were never scheduled", func() {
		tracer.EventExecuted(EventRecord{Sequence: 9})

		Expect(tracer.ExecutedCount()).To(Equal(uint64(0)))
	})

	It("should respect the filter", func() {
		tracer = NewAverageDelayTracer(RecordsWithContext(3))

		tracer.EventScheduled(EventRecord{Sequence: 1, Context: 3, Delay: 10})
		tracer.EventScheduled(EventRecord{Sequence: 2, Context: 4, Delay: 90})
		tracer.EventExecuted(EventRecord{Sequence: 1, Context: 3})
		tracer.EventExecuted(EventRecord{Sequence: 2, Context: 4})

		Expect(tracer.ExecutedCount()).To(Equal(uint64(1)))
		Expect(tracer.AverageDelay()).To(Equal(sim.VTime(10)))
	})
})
