package tracing

import (
	"sync"

	"github.com/sarchlab/netsim/datarecording"
	"github.com/sarchlab/netsim/sim"
	"github.com/tebeka/atexit"
)

const (
	scheduleTableName  = "event_schedule"
	executionTableName = "event_execution"
)

type scheduleTableEntry struct {
	Sequence    uint64
	Context     uint32
	ScheduledAt sim.VTime
	Time        sim.VTime
	Delay       sim.VTime
}

type executionTableEntry struct {
	Sequence uint64
	Context  uint32
	Time     sim.VTime
}

// DBTracer is a tracer that stores event records in a database. DBTracers
// can connect with different backends so that the records can be stored in
// different types of databases.
type DBTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder

	startTime, endTime sim.VTime
}

// SetTimeRange sets the time range of the tracer. Records whose event time
// falls outside the range are dropped. A zero endTime means no upper bound.
func (t *DBTracer) SetTimeRange(startTime, endTime sim.VTime) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startTime = startTime
	t.endTime = endTime
}

func (t *DBTracer) keeps(time sim.VTime) bool {
	if time < t.startTime {
		return false
	}

	if t.endTime > 0 && time > t.endTime {
		return false
	}

	return true
}

// EventScheduled stores the scheduling of an event.
func (t *DBTracer) EventScheduled(record EventRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record.ScheduledAt = t.timeTeller.CurrentTime()

	if !t.keeps(record.Time) {
		return
	}

	t.backend.InsertData(scheduleTableName, scheduleTableEntry{
		Sequence:    record.Sequence,
		Context:     record.Context,
		ScheduledAt: record.ScheduledAt,
		Time:        record.Time,
		Delay:       record.Delay,
	})
}

// EventExecuted stores the execution of an event.
func (t *DBTracer) EventExecuted(record EventRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.keeps(record.Time) {
		return
	}

	t.backend.InsertData(executionTableName, executionTableEntry{
		Sequence: record.Sequence,
		Context:  record.Context,
		Time:     record.Time,
	})
}

// Terminate terminates the tracer.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Flush()
}

// NewDBTracer creates a new DBTracer.
func NewDBTracer(
	timeTeller sim.TimeTeller,
	dataRecorder datarecording.DataRecorder,
) *DBTracer {
	dataRecorder.CreateTable(scheduleTableName, scheduleTableEntry{})
	dataRecorder.CreateTable(executionTableName, executionTableEntry{})

	t := &DBTracer{
		timeTeller: timeTeller,
		backend:    dataRecorder,
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}
