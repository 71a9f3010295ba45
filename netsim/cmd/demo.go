package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/sarchlab/netsim/sim"
	"github.com/sarchlab/netsim/simulation"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a built-in ping demo simulation.",
	Long: `demo simulates pairs of nodes exchanging ping and pong messages ` +
		`over links with a fixed latency. The run is recorded in a database ` +
		`that the report command can summarize.`,
	Run: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().Int("pairs", 2,
		"number of node pairs exchanging pings")
	demoCmd.Flags().Int("pings", 5,
		"number of pings each pair exchanges")
	demoCmd.Flags().Duration("latency", 500*time.Microsecond,
		"one-way link latency")
	demoCmd.Flags().Duration("interval", time.Millisecond,
		"virtual time between pings of the same pair")
	demoCmd.Flags().Duration("stop-after", 0,
		"stop the simulation at this virtual time, 0 to run to completion")
	demoCmd.Flags().String("engine", sim.DefaultEngineType,
		"engine implementation to use")
	demoCmd.Flags().String("scheduler", sim.DefaultSchedulerType,
		"scheduler implementation to use")
	demoCmd.Flags().String("output", "",
		"name of the database file to record into")
	demoCmd.Flags().Bool("monitor", false,
		"start the monitoring server")
	demoCmd.Flags().Int("monitor-port", 0,
		"port for the monitoring server, implies --monitor")
	demoCmd.Flags().Bool("json-trace", false,
		"also record executed events into a JSON file")
	demoCmd.Flags().Bool("log-events", false,
		"print each executed event")
}

func runDemo(cmd *cobra.Command, _ []string) {
	pairs, _ := cmd.Flags().GetInt("pairs")
	pings, _ := cmd.Flags().GetInt("pings")
	latency, _ := cmd.Flags().GetDuration("latency")
	interval, _ := cmd.Flags().GetDuration("interval")
	stopAfter, _ := cmd.Flags().GetDuration("stop-after")
	engineType, _ := cmd.Flags().GetString("engine")
	schedulerType, _ := cmd.Flags().GetString("scheduler")
	output, _ := cmd.Flags().GetString("output")
	monitorOn, _ := cmd.Flags().GetBool("monitor")
	monitorPort, _ := cmd.Flags().GetInt("monitor-port")
	jsonTrace, _ := cmd.Flags().GetBool("json-trace")
	logEvents, _ := cmd.Flags().GetBool("log-events")

	if monitorPort > 0 {
		monitorOn = true
	}

	// Demo runs pick xid-based ids so that repeated runs without --output
	// do not collide on the same database file.
	sim.UseParallelIDGenerator()

	builder := simulation.MakeBuilder().
		WithEngineType(engineType).
		WithSchedulerType(schedulerType)

	if output != "" {
		builder = builder.WithOutputFileName(output)
	}

	if jsonTrace {
		builder = builder.WithJSONTracing()
	}

	if logEvents {
		builder = builder.WithEventLogging()
	}

	if monitorOn {
		if monitorPort > 0 {
			builder = builder.WithMonitorPort(monitorPort)
		}
	} else {
		builder = builder.WithoutMonitoring()
	}

	s := builder.Build()
	defer s.Terminate()

	engine := s.GetEngine()

	demo := &pingDemo{
		engine:   engine,
		latency:  sim.VTime(latency.Nanoseconds()),
		interval: sim.VTime(interval.Nanoseconds()),
		pings:    pings,
	}
	for i := 0; i < pairs; i++ {
		demo.startPair(s, i)
	}

	if stopAfter > 0 {
		engine.StopAfter(sim.VTime(stopAfter.Nanoseconds()))
	}

	err := engine.Run()
	if err != nil {
		log.Fatalf("Error running simulation: %v", err)
	}

	outputFileName := output
	if outputFileName == "" {
		outputFileName = "netsim_" + s.ID()
	}

	fmt.Printf("Received %d pongs across %d node pairs\n",
		demo.pongsReceived, pairs)
	fmt.Printf("Virtual time %s, %d events executed\n",
		engine.CurrentTime(), engine.EventCount())
	fmt.Printf("Run recorded in %s.sqlite3\n", outputFileName)
}

// pingDemo schedules ping and pong events between pairs of nodes. Each ping
// travels for one link latency, is answered immediately, and the answer
// travels back for another link latency.
type pingDemo struct {
	engine   sim.Engine
	latency  sim.VTime
	interval sim.VTime
	pings    int

	pongsReceived int
}

func (d *pingDemo) startPair(s *simulation.Simulation, pairIndex int) {
	clientID := s.RegisterNode(fmt.Sprintf("client_%d", pairIndex))
	serverID := s.RegisterNode(fmt.Sprintf("server_%d", pairIndex))

	for i := 0; i < d.pings; i++ {
		delay := sim.VTime(i) * d.interval
		d.engine.ScheduleWithContext(clientID, delay, func() {
			d.sendPing(clientID, serverID)
		})
	}
}

func (d *pingDemo) sendPing(clientID, serverID uint32) {
	d.engine.ScheduleWithContext(serverID, d.latency, func() {
		d.returnPong(serverID, clientID)
	})
}

func (d *pingDemo) returnPong(_, clientID uint32) {
	d.engine.ScheduleWithContext(clientID, d.latency, func() {
		d.pongsReceived++
	})
}
