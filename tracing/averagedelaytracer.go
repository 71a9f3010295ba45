package tracing

import (
	"sync"

	"github.com/sarchlab/netsim/sim"
)

// AverageDelayTracer can collect the average virtual delay between the
// scheduling and the execution of events. Events that never execute do not
// count.
type AverageDelayTracer struct {
	filter          RecordFilter
	lock            sync.Mutex
	totalDelay      sim.VTime
	executedCount   uint64
	inflightRecords map[uint64]EventRecord
}

// NewAverageDelayTracer creates a new AverageDelayTracer
func NewAverageDelayTracer(filter RecordFilter) *AverageDelayTracer {
	t := &AverageDelayTracer{
		filter:          filter,
		inflightRecords: make(map[uint64]EventRecord),
	}
	return t
}

// AverageDelay returns the average delay of the executed events.
func (t *AverageDelayTracer) AverageDelay() sim.VTime {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.executedCount == 0 {
		return 0
	}

	return t.totalDelay / sim.VTime(t.executedCount)
}

// ExecutedCount returns the number of executed events.
func (t *AverageDelayTracer) ExecutedCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.executedCount
}

// EventScheduled records the delay the event was scheduled with.
func (t *AverageDelayTracer) EventScheduled(record EventRecord) {
	if !t.filter(record) {
		return
	}

	t.lock.Lock()
	t.inflightRecords[record.Sequence] = record
	t.lock.Unlock()
}

// EventExecuted adds the delay of the completed event to the average.
func (t *AverageDelayTracer) EventExecuted(record EventRecord) {
	t.lock.Lock()
	originalRecord, ok := t.inflightRecords[record.Sequence]
	if !ok {
		t.lock.Unlock()
		return
	}

	t.totalDelay += originalRecord.Delay
	delete(t.inflightRecords, record.Sequence)
	t.executedCount++
	t.lock.Unlock()
}
