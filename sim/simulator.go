package sim

import (
	"log"
	"sync"
)

// The facade forwards package-level calls to a single lazily constructed
// Engine. Construction happens on the first call that needs an engine;
// read-only queries never force it. Destroy resets the facade so a later
// call legally starts a fresh engine with the clock back at the epoch.
var (
	facadeLock   sync.Mutex
	activeEngine Engine
)

// engine returns the active Engine, constructing it on first use.
func engine() Engine {
	facadeLock.Lock()
	defer facadeLock.Unlock()

	if activeEngine == nil {
		buildActiveEngine()
	}

	return activeEngine
}

// peekEngine returns the active Engine without constructing one.
func peekEngine() Engine {
	facadeLock.Lock()
	defer facadeLock.Unlock()

	return activeEngine
}

// buildActiveEngine creates the engine and scheduler selected through
// configuration. The caller must hold facadeLock.
func buildActiveEngine() {
	engineName, schedulerName := resolveTypes()

	engineFactory, err := EngineFactoryByName(engineName)
	if err != nil {
		log.Panic(err)
	}

	schedulerFactory, err := SchedulerFactoryByName(schedulerName)
	if err != nil {
		log.Panic(err)
	}

	e := engineFactory()
	e.SetScheduler(schedulerFactory)

	activeEngine = e

	// The prefix writer queries the engine for the current time, so it
	// must only be installed once the engine is fully built and published.
	// Installing it earlier would re-enter this constructor.
	installLogTimePrefix(activeEngine)
}

// SetImplementation installs a caller-built Engine as the facade's engine.
// It is fatal once any facade call has constructed one; the point is to
// offer exactly one chance to inject a custom engine before first use.
func SetImplementation(e Engine) {
	facadeLock.Lock()
	defer facadeLock.Unlock()

	if activeEngine != nil {
		log.Panic("cannot set the engine implementation after one is in use")
	}

	activeEngine = e

	installLogTimePrefix(activeEngine)
}

// SetScheduler swaps the engine's scheduler for one built by the factory.
// Pending events migrate in (time, sequence) order; none is invoked.
func SetScheduler(factory SchedulerFactory) {
	engine().SetScheduler(factory)
}

// Schedule registers fn to run at now+delay, attributed to the current
// context. Scheduling into the past is fatal.
func Schedule(delay VTime, fn func()) EventID {
	return engine().Schedule(delay, fn)
}

// ScheduleNow registers fn to run at the current time, after the events
// already scheduled for this time.
func ScheduleNow(fn func()) EventID {
	return engine().ScheduleNow(fn)
}

// ScheduleWithContext registers fn to run at now+delay, attributed to the
// given context. Use it when one entity schedules work on behalf of
// another.
func ScheduleWithContext(contextID uint32, delay VTime, fn func()) {
	engine().ScheduleWithContext(contextID, delay, fn)
}

// ScheduleDestroy registers fn to run during Destroy, never during Run.
// Destroy events run in registration order.
func ScheduleDestroy(fn func()) EventID {
	return engine().ScheduleDestroy(fn)
}

// Cancel flags the referenced event so the run loop discards it when
// popped. Stale handles, and calls before any engine exists, are no-ops.
func Cancel(id EventID) {
	if e := peekEngine(); e != nil {
		e.Cancel(id)
	}
}

// Remove deletes the referenced event from the scheduler immediately.
// Stale handles, and calls before any engine exists, are no-ops.
func Remove(id EventID) {
	if e := peekEngine(); e != nil {
		e.Remove(id)
	}
}

// IsExpired reports whether the handle no longer refers to a pending
// event. It is true for every handle before any engine exists.
func IsExpired(id EventID) bool {
	e := peekEngine()
	if e == nil {
		return true
	}

	return e.IsExpired(id)
}

// DelayLeft returns the virtual time between now and the referenced
// event, or 0 for an expired handle.
func DelayLeft(id EventID) VTime {
	e := peekEngine()
	if e == nil {
		return 0
	}

	return e.DelayLeft(id)
}

// Now returns the current virtual time, or 0 before any engine exists.
// It never constructs the engine.
func Now() VTime {
	e := peekEngine()
	if e == nil {
		return 0
	}

	return e.CurrentTime()
}

// CurrentContext returns the context of the event being executed, or
// NoContext outside event execution or before any engine exists.
func CurrentContext() uint32 {
	e := peekEngine()
	if e == nil {
		return NoContext
	}

	return e.CurrentContext()
}

// EventCount returns the number of executed events, or 0 before any
// engine exists.
func EventCount() uint64 {
	e := peekEngine()
	if e == nil {
		return 0
	}

	return e.EventCount()
}

// QueueSize returns the number of events in the scheduler, or 0 before
// any engine exists.
func QueueSize() int {
	e := peekEngine()
	if e == nil {
		return 0
	}

	return e.QueueSize()
}

// SystemID returns the engine's partition id, or 0 before any engine
// exists.
func SystemID() uint32 {
	e := peekEngine()
	if e == nil {
		return 0
	}

	return e.SystemID()
}

// IsFinished reports whether the engine has nothing left to run. It is
// true before any engine exists.
func IsFinished() bool {
	e := peekEngine()
	if e == nil {
		return true
	}

	return e.IsFinished()
}

// Run drives the engine until its scheduler drains or a stop request
// takes effect.
func Run() {
	err := engine().Run()
	if err != nil {
		log.Panic(err)
	}
}

// Stop requests termination of the run loop. The event being executed
// still completes.
func Stop() {
	engine().Stop()
}

// StopAfter schedules an event at now+delay whose callback stops the
// engine. Events due strictly before that time still execute.
func StopAfter(delay VTime) EventID {
	return engine().StopAfter(delay)
}

// Destroy drains the destroy-phase list, discards pending events without
// invoking them, releases the engine, and resets the facade. Calling any
// scheduling operation afterwards builds a brand-new engine with the
// clock back at the epoch.
func Destroy() {
	facadeLock.Lock()
	defer facadeLock.Unlock()

	if activeEngine == nil {
		return
	}

	// Symmetric to construction: the prefix writer must stop querying the
	// engine before the engine goes away, or a restart would log through a
	// destroyed engine.
	removeLogTimePrefix()

	activeEngine.Destroy()
	activeEngine = nil
}
