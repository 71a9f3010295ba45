package sim

import "math"

// NoContext marks an event that is not attributed to any simulated entity.
const NoContext uint32 = math.MaxUint32

// Reserved sequence numbers. Sequence numbers are assigned by the engine,
// strictly increasing over its lifetime, and break ties between events
// scheduled for the same time.
const (
	seqInvalid uint64 = iota // zero-value EventID
	seqDestroy               // events on the destroy-phase list
	seqFirst                 // first sequence assigned to a regular event
)

// An Event is a one-shot unit of work bound to a virtual time and an
// execution context. The engine invokes the callback at most once; a
// cancelled event stays in its Scheduler and is discarded when popped.
type Event struct {
	fn        func()
	time      VTime
	contextID uint32
	sequence  uint64
	cancelled bool
}

// NewEvent creates an event that runs fn at absolute time t, attributed to
// the given context. Regular events are created by engines; custom Engine
// implementations can use this constructor directly.
func NewEvent(t VTime, contextID uint32, sequence uint64, fn func()) *Event {
	return &Event{
		fn:        fn,
		time:      t,
		contextID: contextID,
		sequence:  sequence,
	}
}

// Time returns the absolute virtual time the event is scheduled for.
func (e *Event) Time() VTime {
	return e.time
}

// Context returns the execution context the event is attributed to.
func (e *Event) Context() uint32 {
	return e.contextID
}

// Sequence returns the insertion-order sequence number of the event.
func (e *Event) Sequence() uint64 {
	return e.sequence
}

// Cancel flags the event so that the engine discards it instead of
// invoking the callback. The event keeps its slot in the Scheduler.
func (e *Event) Cancel() {
	e.cancelled = true
}

// Cancelled reports whether the event has been cancelled.
func (e *Event) Cancelled() bool {
	return e.cancelled
}

// Invoke runs the event callback. The engine guarantees at most one
// invocation per event.
func (e *Event) Invoke() {
	e.fn()
}

// before reports whether e orders ahead of other: time ascending, sequence
// breaking ties so that same-time events keep insertion order.
func (e *Event) before(other *Event) bool {
	if e.time != other.time {
		return e.time < other.time
	}

	return e.sequence < other.sequence
}

// An EventID is a lightweight, copyable handle to a scheduled event. The
// zero value is a stale handle; Cancel, Remove, IsExpired, and DelayLeft
// treat stale handles as safe no-ops. Validity is decided from the
// recorded (time, sequence) pair and the cancelled flag, never by assuming
// the event is still pending.
type EventID struct {
	evt       *Event
	time      VTime
	contextID uint32
	sequence  uint64
}

// NewEventID creates the handle for an event.
func NewEventID(evt *Event) EventID {
	return EventID{
		evt:       evt,
		time:      evt.time,
		contextID: evt.contextID,
		sequence:  evt.sequence,
	}
}

// Time returns the absolute virtual time recorded in the handle.
func (id EventID) Time() VTime {
	return id.time
}

// Context returns the execution context recorded in the handle.
func (id EventID) Context() uint32 {
	return id.contextID
}

// Sequence returns the sequence number recorded in the handle.
func (id EventID) Sequence() uint64 {
	return id.sequence
}

// Event returns the referenced event, or nil for a stale handle.
func (id EventID) Event() *Event {
	return id.evt
}
