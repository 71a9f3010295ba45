package tracing

import "github.com/sarchlab/netsim/sim"

// An EventRecord describes one event observed at an engine.
type EventRecord struct {
	// Sequence is the engine-issued id of the event.
	Sequence uint64 `json:"sequence"`

	// Context is the simulated entity the event is attributed to.
	Context uint32 `json:"context"`

	// ScheduledAt is the virtual time the event was scheduled at.
	ScheduledAt sim.VTime `json:"scheduled_at"`

	// Time is the virtual time the event fires at.
	Time sim.VTime `json:"time"`

	// Delay is the requested delay, Time minus ScheduledAt.
	Delay sim.VTime `json:"delay"`
}
