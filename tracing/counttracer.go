package tracing

import (
	"sync"
)

// CountTracer counts scheduled and executed events. The difference between
// the two counts is the number of events that were cancelled or still
// pending when the run stopped.
type CountTracer struct {
	filter         RecordFilter
	lock           sync.Mutex
	scheduledCount uint64
	executedCount  uint64
}

// NewCountTracer creates a new CountTracer
func NewCountTracer(filter RecordFilter) *CountTracer {
	t := &CountTracer{
		filter: filter,
	}
	return t
}

// ScheduledCount returns the number of scheduled events.
func (t *CountTracer) ScheduledCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.scheduledCount
}

// ExecutedCount returns the number of executed events.
func (t *CountTracer) ExecutedCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.executedCount
}

// EventScheduled counts the scheduling of an event.
func (t *CountTracer) EventScheduled(record EventRecord) {
	if !t.filter(record) {
		return
	}

	t.lock.Lock()
	t.scheduledCount++
	t.lock.Unlock()
}

// EventExecuted counts the execution of an event.
func (t *CountTracer) EventExecuted(record EventRecord) {
	if !t.filter(record) {
		return
	}

	t.lock.Lock()
	t.executedCount++
	t.lock.Unlock()
}
