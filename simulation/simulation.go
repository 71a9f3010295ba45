// Package simulation assembles engines, recorders, and monitors into runnable
// simulations.
package simulation

import (
	"os"

	"github.com/sarchlab/netsim/datarecording"
	"github.com/sarchlab/netsim/monitoring"
	"github.com/sarchlab/netsim/sim"
	"github.com/sarchlab/netsim/tracing"
)

// A Simulation provides the service requires to define a simulation.
type Simulation struct {
	id string

	engine        sim.Engine
	dataRecorder  datarecording.DataRecorder
	execRecorder  *datarecording.ExecRecorder
	monitor       *monitoring.Monitor
	visTracer     *tracing.DBTracer
	jsonTracer    *tracing.JSONTracer
	jsonTraceFile *os.File

	nodes         []string
	nodeNameIndex map[string]uint32
}

// ID returns the ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the event-driven simulation engine used by the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder used by the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used by the simulation. It returns nil if
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetVisTracer returns the tracer that records events for later
// visualization.
func (s *Simulation) GetVisTracer() *tracing.DBTracer {
	return s.visTracer
}

// GetJSONTracer returns the tracer that records executed events into a
// JSON file. It returns nil if JSON tracing is disabled.
func (s *Simulation) GetJSONTracer() *tracing.JSONTracer {
	return s.jsonTracer
}

// RegisterNode assigns a context ID to a named entity in the simulated
// system. Events scheduled with the returned ID are attributed to that
// entity.
func (s *Simulation) RegisterNode(name string) uint32 {
	if _, ok := s.nodeNameIndex[name]; ok {
		panic("node " + name + " is already registered")
	}

	contextID := uint32(len(s.nodes))
	s.nodes = append(s.nodes, name)
	s.nodeNameIndex[name] = contextID

	return contextID
}

// NodeName returns the name registered for a context ID. It panics if the ID
// was not returned by RegisterNode.
func (s *Simulation) NodeName(contextID uint32) string {
	if int(contextID) >= len(s.nodes) {
		panic("no node is registered with the given context ID")
	}

	return s.nodes[contextID]
}

// NodeCount returns the number of registered nodes.
func (s *Simulation) NodeCount() int {
	return len(s.nodes)
}

// Terminate stops the simulation. The simulation should not be used after
// Terminate is called.
func (s *Simulation) Terminate() {
	s.execRecorder.End()

	if s.jsonTracer != nil {
		s.jsonTracer.Finish()

		err := s.jsonTraceFile.Close()
		if err != nil {
			panic(err)
		}
	}

	err := s.dataRecorder.Close()
	if err != nil {
		panic(err)
	}
}
