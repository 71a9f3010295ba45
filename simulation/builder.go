package simulation

import (
	"log"
	"os"

	"github.com/sarchlab/netsim/datarecording"
	"github.com/sarchlab/netsim/monitoring"
	"github.com/sarchlab/netsim/sim"
	"github.com/sarchlab/netsim/tracing"
)

// A Builder can be used to create a simulation.
type Builder struct {
	engineType     string
	schedulerType  string
	monitorOn      bool
	monitorPort    int
	jsonTraceOn    bool
	eventLogOn     bool
	outputFileName string
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		engineType:    sim.DefaultEngineType,
		schedulerType: sim.DefaultSchedulerType,
		monitorOn:     true,
	}
}

// WithEngineType sets the engine implementation to use. The name must be
// registered with sim.RegisterEngine.
func (b Builder) WithEngineType(engineType string) Builder {
	b.engineType = engineType
	return b
}

// WithSchedulerType sets the event scheduling strategy of the engine. The
// name must be registered with sim.RegisterScheduler.
func (b Builder) WithSchedulerType(schedulerType string) Builder {
	b.schedulerType = schedulerType
	return b
}

// WithoutMonitoring disables the monitoring server.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port used by the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithJSONTracing additionally records executed events into a JSON file
// next to the database.
func (b Builder) WithJSONTracing() Builder {
	b.jsonTraceOn = true
	return b
}

// WithEventLogging prints a line for each executed event.
func (b Builder) WithEventLogging() Builder {
	b.eventLogOn = true
	return b
}

// WithOutputFileName sets the name of the file that stores the recorded
// data. The ".sqlite3" extension is appended to the name.
func (b Builder) WithOutputFileName(fileName string) Builder {
	b.outputFileName = fileName
	return b
}

// Build creates a simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:            sim.GetIDGenerator().Generate(),
		nodeNameIndex: make(map[string]uint32),
	}

	outputFileName := b.outputFileName
	if outputFileName == "" {
		outputFileName = "netsim_" + s.id
	}

	b.buildEngine(s)
	b.buildDataRecorder(s, outputFileName)
	b.buildExecRecorder(s)
	b.buildVisTracer(s)

	if b.jsonTraceOn {
		b.buildJSONTracer(s, outputFileName)
	}

	if b.eventLogOn {
		s.engine.AcceptHook(sim.NewEventLogger(log.New(os.Stdout, "", 0)))
	}

	if b.monitorOn {
		b.buildMonitor(s)
	}

	return s
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}
}

func (b Builder) buildEngine(s *Simulation) {
	engineFactory, err := sim.EngineFactoryByName(b.engineType)
	if err != nil {
		panic(err)
	}

	schedulerFactory, err := sim.SchedulerFactoryByName(b.schedulerType)
	if err != nil {
		panic(err)
	}

	s.engine = engineFactory()
	s.engine.SetScheduler(schedulerFactory)
}

func (b Builder) buildDataRecorder(s *Simulation, outputFileName string) {
	s.dataRecorder = datarecording.New(outputFileName)
}

func (b Builder) buildExecRecorder(s *Simulation) {
	s.execRecorder = datarecording.NewExecRecorder(s.dataRecorder)
	s.execRecorder.Start()
}

func (b Builder) buildVisTracer(s *Simulation) {
	s.visTracer = tracing.NewDBTracer(s.engine, s.dataRecorder)
	tracing.CollectTrace(s.engine, s.visTracer)
}

func (b Builder) buildJSONTracer(s *Simulation, outputFileName string) {
	f, err := os.Create(outputFileName + "_events.json")
	if err != nil {
		panic(err)
	}

	s.jsonTraceFile = f
	s.jsonTracer = tracing.NewJSONTracerWithWriter(f)
	tracing.CollectTrace(s.engine, s.jsonTracer)
}

func (b Builder) buildMonitor(s *Simulation) {
	monitor := monitoring.NewMonitor()

	if b.monitorPort > 0 {
		monitor = monitor.WithPortNumber(b.monitorPort)
	}

	monitor.RegisterEngine(s.engine)
	monitor.StartServer()

	s.monitor = monitor
}
