// Package tracing observes events as engines schedule and execute them.
package tracing

// A Tracer can collect event traces. EventScheduled fires when an event
// enters an engine. EventExecuted fires just before the event callback
// runs. Cancelled events are scheduled but never executed.
type Tracer interface {
	EventScheduled(record EventRecord)
	EventExecuted(record EventRecord)
}

// RecordFilter is a function that can filter interesting records. If this
// function returns true, the record is considered useful.
type RecordFilter func(record EventRecord) bool

// AnyRecord is a RecordFilter that keeps every record.
func AnyRecord(_ EventRecord) bool {
	return true
}

// RecordsWithContext returns a RecordFilter that keeps only the records
// attributed to the given context.
func RecordsWithContext(contextID uint32) RecordFilter {
	return func(record EventRecord) bool {
		return record.Context == contextID
	}
}
