package sim

import (
	"errors"
	"fmt"
	"log"
	"sort"
)

// A Scheduler is an ordered container of pending events, keyed by
// (time, sequence) with time primary and sequence as the tie-break. All
// implementations produce the same observable ordering; they differ only
// in cost profile.
type Scheduler interface {
	// Insert adds an event to the container.
	Insert(evt *Event)

	// PeekEarliest returns the event with the smallest key without
	// removing it, or nil if the container is empty.
	PeekEarliest() *Event

	// RemoveEarliest removes and returns the event with the smallest key,
	// or nil if the container is empty.
	RemoveEarliest() *Event

	// Remove deletes a previously inserted event. Live events carry unique
	// (time, sequence) keys, so the key addresses exactly one entry. It
	// returns false if the event is not in the container.
	Remove(evt *Event) bool

	// IsEmpty reports whether no event is pending.
	IsEmpty() bool

	// Len returns the number of events in the container. Cancelled events
	// that have not been popped yet still count.
	Len() int
}

// A SchedulerFactory creates a Scheduler of one specific strategy.
type SchedulerFactory func() Scheduler

// ErrUnknownScheduler is returned when looking up a scheduler type name
// that has not been registered.
var ErrUnknownScheduler = errors.New("sim: unknown scheduler type")

var schedulerFactories = make(map[string]SchedulerFactory)

// RegisterScheduler makes a scheduler strategy available under a name, so
// that it can be selected through configuration.
func RegisterScheduler(name string, factory SchedulerFactory) {
	if _, ok := schedulerFactories[name]; ok {
		log.Panicf("scheduler type %s is already registered", name)
	}

	schedulerFactories[name] = factory
}

// SchedulerFactoryByName looks up a registered scheduler strategy.
func SchedulerFactoryByName(name string) (SchedulerFactory, error) {
	factory, ok := schedulerFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScheduler, name)
	}

	return factory, nil
}

// RegisteredSchedulers returns the names of all registered scheduler
// strategies, sorted.
func RegisteredSchedulers() []string {
	names := make([]string, 0, len(schedulerFactories))
	for name := range schedulerFactories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
