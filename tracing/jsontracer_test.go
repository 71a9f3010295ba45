package tracing

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("JSONTracer", func() {
	var (
		buf    *bytes.Buffer
		tracer *JSONTracer
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		tracer = NewJSONTracerWithWriter(buf)
	})

	It("should write executed events as a JSON array", func() {
		tracer.EventScheduled(EventRecord{
			Sequence:    5,
			Context:     3,
			ScheduledAt: 2,
			Time:        12,
			Delay:       10,
		})
		tracer.EventExecuted(EventRecord{Sequence: 5, Context: 3, Time: 12})
		tracer.Finish()

		Expect(buf.String()).To(Equal("[\n" +
			`{"sequence":5,"context":3,"scheduled_at":2,"time":12,"delay":10}` +
			"\n]"))
	})

	It("should separate records with commas", func() {
		tracer.EventScheduled(EventRecord{Sequence: 1, Time: 4, Delay: 4})
		tracer.EventScheduled(EventRecord{Sequence: 2, Time: 8, Delay: 8})
		tracer.EventExecuted(EventRecord{Sequence: 1, Time: 4})
		tracer.EventExecuted(EventRecord{Sequence: 2, Time: 8})
		tracer.Finish()

		var records []EventRecord
		Expect(json.Unmarshal(buf.Bytes(), &records)).To(Succeed())
		Expect(records).To(HaveLen(2))
		Expect(records[0].Sequence).To(Equal(uint64(1)))
		Expect(records[1].Sequence).To(Equal(uint64(2)))
	})

	It("should skip events that never executed", func() {
		tracer.EventScheduled(EventRecord{Sequence: 1, Time: 4, Delay: 4})
		tracer.EventExecuted(EventRecord{Sequence: 99, Time: 4})
		tracer.Finish()

		Expect(buf.String()).To(Equal("[\n\n]"))
	})
})
