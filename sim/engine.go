package sim

import (
	"errors"
	"fmt"
	"log"
	"sort"
)

// TimeTeller can be used to get the current virtual time.
type TimeTeller interface {
	CurrentTime() VTime
}

// An EventScheduler can insert future work into a simulation.
type EventScheduler interface {
	// Schedule runs fn at now+delay in the caller's current context. A
	// negative delay is fatal.
	Schedule(delay VTime, fn func()) EventID

	// ScheduleNow is Schedule with a zero delay.
	ScheduleNow(fn func()) EventID

	// ScheduleWithContext is Schedule, but the event is attributed to the
	// given context instead of the caller's.
	ScheduleWithContext(contextID uint32, delay VTime, fn func())

	// ScheduleDestroy registers fn on the destroy-phase list. It runs
	// during Destroy, in registration order, and never during Run.
	ScheduleDestroy(fn func()) EventID
}

// An Engine owns the virtual clock, a Scheduler of pending events, and the
// run loop that drives a simulation.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Cancel flags a pending event so the run loop discards it when
	// popped. Stale handles are no-ops.
	Cancel(id EventID)

	// Remove deletes a pending event from the scheduler immediately.
	// Stale handles are no-ops.
	Remove(id EventID)

	// IsExpired reports whether the handle no longer refers to a pending
	// event: already executed, cancelled, or never valid.
	IsExpired(id EventID) bool

	// DelayLeft returns the virtual time between now and the event, or 0
	// for an expired handle.
	DelayLeft(id EventID) VTime

	// CurrentContext returns the context of the event being executed, or
	// NoContext outside of event execution.
	CurrentContext() uint32

	// EventCount returns the number of events executed so far. Cancelled
	// events do not count.
	EventCount() uint64

	// QueueSize returns the number of events in the scheduler, including
	// cancelled events that have not been popped yet.
	QueueSize() int

	// SystemID identifies the partition this engine simulates in a
	// distributed setup. Single-process engines return 0.
	SystemID() uint32

	// Run processes events until the scheduler drains or a stop request
	// takes effect.
	Run() error

	// Stop requests termination. The request is honored between loop
	// iterations; an in-flight callback always completes.
	Stop()

	// StopAfter schedules an event at now+delay whose callback stops the
	// engine. Events due strictly before that time still execute.
	StopAfter(delay VTime) EventID

	// IsFinished reports whether the scheduler is drained or a stop
	// request has been made.
	IsFinished() bool

	// Pause blocks the run loop between two events until Continue is
	// called.
	Pause()

	// Continue resumes a paused run loop.
	Continue()

	// SetScheduler moves all pending events into a scheduler built by the
	// factory, preserving their order and invoking none of them.
	SetScheduler(factory SchedulerFactory)

	// Destroy drains the destroy-phase list, discards the remaining
	// pending events without invoking them, and renders the engine
	// unusable.
	Destroy()
}

// An EngineFactory creates an Engine of one specific implementation.
type EngineFactory func() Engine

// ErrUnknownEngine is returned when looking up an engine type name that
// has not been registered.
var ErrUnknownEngine = errors.New("sim: unknown engine type")

var engineFactories = make(map[string]EngineFactory)

// RegisterEngine makes an engine implementation available under a name, so
// that it can be selected through configuration.
func RegisterEngine(name string, factory EngineFactory) {
	if _, ok := engineFactories[name]; ok {
		log.Panicf("engine type %s is already registered", name)
	}

	engineFactories[name] = factory
}

// EngineFactoryByName looks up a registered engine implementation.
func EngineFactoryByName(name string) (EngineFactory, error) {
	factory, ok := engineFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}

	return factory, nil
}

// RegisteredEngines returns the names of all registered engine
// implementations, sorted.
func RegisteredEngines() []string {
	names := make([]string, 0, len(engineFactories))
	for name := range engineFactories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
