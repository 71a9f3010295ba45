package sim

import (
	"log"
	"sync"
	"sync/atomic"
)

func init() {
	RegisterEngine("serial", func() Engine { return NewSerialEngine() })
}

// A SerialEngine runs events one after another in (time, sequence) order.
type SerialEngine struct {
	HookableBase

	timeLock sync.RWMutex
	now      VTime

	scheduler       Scheduler
	currentContext  uint32
	currentSequence uint64
	nextSequence    uint64
	eventCount      uint64

	stopLock sync.RWMutex
	stopped  bool

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex

	destroyEvents []EventID
}

// NewSerialEngine creates a SerialEngine with the default tree scheduler.
func NewSerialEngine() *SerialEngine {
	e := new(SerialEngine)

	e.scheduler = NewTreeScheduler()
	e.currentContext = NoContext
	e.nextSequence = seqFirst

	return e
}

// Schedule registers fn to run at now+delay, attributed to the current
// context.
func (e *SerialEngine) Schedule(delay VTime, fn func()) EventID {
	return e.insert(e.currentContext, delay, fn)
}

// ScheduleNow registers fn to run at the current time, after all events
// already scheduled for this time.
func (e *SerialEngine) ScheduleNow(fn func()) EventID {
	return e.insert(e.currentContext, 0, fn)
}

// ScheduleWithContext registers fn to run at now+delay, attributed to the
// given context instead of the caller's.
func (e *SerialEngine) ScheduleWithContext(
	contextID uint32,
	delay VTime,
	fn func(),
) {
	e.insert(contextID, delay, fn)
}

func (e *SerialEngine) insert(
	contextID uint32,
	delay VTime,
	fn func(),
) EventID {
	if delay < 0 {
		log.Panicf("scheduling an event earlier than current time, delay %s",
			delay)
	}

	evt := NewEvent(e.readNow()+delay, contextID, e.nextSequence, fn)
	e.nextSequence++

	e.scheduler.Insert(evt)

	e.InvokeHook(HookCtx{
		Domain: e,
		Pos:    HookPosSchedule,
		Item:   evt,
		Detail: delay,
	})

	return NewEventID(evt)
}

// ScheduleDestroy appends fn to the destroy-phase list. The event never
// enters the scheduler and only runs during Destroy.
func (e *SerialEngine) ScheduleDestroy(fn func()) EventID {
	evt := NewEvent(e.readNow(), NoContext, seqDestroy, fn)
	id := NewEventID(evt)

	e.destroyEvents = append(e.destroyEvents, id)

	return id
}

// Cancel flags a pending event so that the run loop discards it. The event
// keeps its scheduler slot until popped.
func (e *SerialEngine) Cancel(id EventID) {
	if !e.IsExpired(id) {
		id.evt.Cancel()
	}
}

// Remove deletes a pending event from the scheduler immediately.
func (e *SerialEngine) Remove(id EventID) {
	if id.sequence == seqDestroy {
		for i, d := range e.destroyEvents {
			if d.evt == id.evt {
				e.destroyEvents = append(
					e.destroyEvents[:i], e.destroyEvents[i+1:]...)
				return
			}
		}

		return
	}

	if e.IsExpired(id) {
		return
	}

	if e.scheduler.Remove(id.evt) {
		id.evt.Cancel()
	}
}

// IsExpired reports whether the handle no longer refers to a pending
// event. The check compares the recorded (time, sequence) against the
// engine clock, so it is safe on handles of long-executed events.
func (e *SerialEngine) IsExpired(id EventID) bool {
	if id.evt == nil || id.sequence == seqInvalid {
		return true
	}

	if id.sequence == seqDestroy {
		if id.evt.Cancelled() {
			return true
		}

		for _, d := range e.destroyEvents {
			if d.evt == id.evt {
				return false
			}
		}

		return true
	}

	now := e.readNow()
	if id.time < now {
		return true
	}

	if id.time == now && id.sequence <= e.currentSequence {
		return true
	}

	return id.evt.Cancelled()
}

// DelayLeft returns the virtual time between now and the event, or 0 for
// an expired handle.
func (e *SerialEngine) DelayLeft(id EventID) VTime {
	if e.IsExpired(id) {
		return 0
	}

	return id.time - e.readNow()
}

// Run processes events until the scheduler drains or a stop request takes
// effect. Event callbacks may schedule, cancel, and remove events; those
// effects are visible to later iterations.
func (e *SerialEngine) Run() error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		if e.IsFinished() {
			return nil
		}

		e.pauseLock.Lock()
		e.runNextEvent()
		e.pauseLock.Unlock()
	}
}

func (e *SerialEngine) runNextEvent() {
	evt := e.scheduler.RemoveEarliest()

	now := e.readNow()
	if evt.time < now {
		log.Panicf("cannot run event in the past, evt %d @ %s, now %s",
			evt.sequence, evt.time, now)
	}

	e.writeNow(evt.time)
	e.currentContext = evt.contextID
	e.currentSequence = evt.sequence

	if evt.Cancelled() {
		return
	}

	hookCtx := HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(hookCtx)

	evt.Invoke()
	atomic.AddUint64(&e.eventCount, 1)

	hookCtx.Pos = HookPosAfterEvent
	e.InvokeHook(hookCtx)
}

// Stop requests termination. The run loop honors the request between two
// events; the request stays in effect until the engine is destroyed.
func (e *SerialEngine) Stop() {
	e.stopLock.Lock()
	e.stopped = true
	e.stopLock.Unlock()
}

// StopAfter schedules an event at now+delay whose callback stops the
// engine. The returned handle can be cancelled like any other event.
func (e *SerialEngine) StopAfter(delay VTime) EventID {
	return e.Schedule(delay, e.Stop)
}

// IsFinished reports whether the scheduler is drained or a stop request
// has been made.
func (e *SerialEngine) IsFinished() bool {
	return e.readStopped() || e.scheduler.IsEmpty()
}

// Pause prevents the SerialEngine from triggering more events until
// Continue is called. The event being executed still completes.
func (e *SerialEngine) Pause() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if e.isPaused {
		return
	}

	e.pauseLock.Lock()
	e.isPaused = true
}

// Continue allows a paused SerialEngine to trigger more events.
func (e *SerialEngine) Continue() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if !e.isPaused {
		return
	}

	e.pauseLock.Unlock()
	e.isPaused = false
}

// CurrentTime returns the time of the event being executed, or the time of
// the last executed event between events.
func (e *SerialEngine) CurrentTime() VTime {
	return e.readNow()
}

// CurrentContext returns the context of the event being executed, or
// NoContext before the first event runs.
func (e *SerialEngine) CurrentContext() uint32 {
	return e.currentContext
}

// EventCount returns the number of executed events. Cancelled events that
// were popped and discarded do not count.
func (e *SerialEngine) EventCount() uint64 {
	return atomic.LoadUint64(&e.eventCount)
}

// QueueSize returns the number of events in the scheduler, including
// cancelled events that have not been popped yet.
func (e *SerialEngine) QueueSize() int {
	return e.scheduler.Len()
}

// SystemID returns 0. Partition ids are reserved for distributed engine
// implementations.
func (e *SerialEngine) SystemID() uint32 {
	return 0
}

// SetScheduler moves all pending events into a scheduler built by the
// factory. Events migrate in (time, sequence) order and none is invoked.
func (e *SerialEngine) SetScheduler(factory SchedulerFactory) {
	next := factory()

	for !e.scheduler.IsEmpty() {
		next.Insert(e.scheduler.RemoveEarliest())
	}

	e.scheduler = next
}

// Destroy drains the destroy-phase list front to back, invoking every
// entry that is not cancelled. Destroy callbacks may register further
// destroy events; the drain continues until the list is empty. Events
// still pending in the scheduler are discarded without being invoked.
func (e *SerialEngine) Destroy() {
	for len(e.destroyEvents) > 0 {
		id := e.destroyEvents[0]
		e.destroyEvents = e.destroyEvents[1:]

		if !id.evt.Cancelled() {
			id.evt.Invoke()
		}
	}

	for !e.scheduler.IsEmpty() {
		e.scheduler.RemoveEarliest()
	}
}

func (e *SerialEngine) readNow() VTime {
	e.timeLock.RLock()
	t := e.now
	e.timeLock.RUnlock()

	return t
}

func (e *SerialEngine) writeNow(t VTime) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

func (e *SerialEngine) readStopped() bool {
	e.stopLock.RLock()
	s := e.stopped
	e.stopLock.RUnlock()

	return s
}
