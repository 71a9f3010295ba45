package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sarchlab/netsim/datarecording"
	"github.com/sarchlab/netsim/sim"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [database file]",
	Short: "Summarize a database recorded by a simulation.",
	Long: `report reads a database recorded by a simulation and prints the ` +
		`execution metadata together with event statistics.`,
	Args: cobra.ExactArgs(1),
	Run:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

type execInfoRow struct {
	Property string
	Value    string
}

type scheduleRow struct {
	Sequence    uint64
	Context     uint32
	ScheduledAt sim.VTime
	Time        sim.VTime
	Delay       sim.VTime
}

type executionRow struct {
	Sequence uint64
	Context  uint32
	Time     sim.VTime
}

func runReport(_ *cobra.Command, args []string) {
	path := strings.TrimSuffix(args[0], ".sqlite3")

	reader := datarecording.NewReader(path)
	defer reader.Close()

	reader.MapTable("exec_info", execInfoRow{})
	reader.MapTable("event_schedule", scheduleRow{})
	reader.MapTable("event_execution", executionRow{})

	printExecInfo(reader)
	printEventStats(reader)
}

func printExecInfo(reader datarecording.DataReader) {
	rows, _, err := reader.Query(
		context.Background(), "exec_info", datarecording.QueryParams{})
	if err != nil {
		log.Fatalf("Error reading execution metadata: %v", err)
	}

	fmt.Println("Execution:")
	for _, row := range rows {
		info := row.(*execInfoRow)
		fmt.Printf("  %s: %s\n", info.Property, info.Value)
	}
}

func printEventStats(reader datarecording.DataReader) {
	scheduled, totalDelay := scheduleStats(reader)
	executed, lastTime := executionStats(reader)

	fmt.Println("Events:")
	fmt.Printf("  Scheduled: %d\n", scheduled)
	fmt.Printf("  Executed:  %d\n", executed)

	if scheduled > 0 {
		fmt.Printf("  Average scheduled delay: %s\n",
			totalDelay/sim.VTime(scheduled))
	}

	if executed > 0 {
		fmt.Printf("  Last execution time: %s\n", lastTime)
	}
}

func scheduleStats(reader datarecording.DataReader) (int, sim.VTime) {
	rows, totalCount, err := reader.Query(
		context.Background(), "event_schedule", datarecording.QueryParams{})
	if err != nil {
		log.Fatalf("Error reading scheduled events: %v", err)
	}

	var totalDelay sim.VTime
	for _, row := range rows {
		totalDelay += row.(*scheduleRow).Delay
	}

	return totalCount, totalDelay
}

func executionStats(reader datarecording.DataReader) (int, sim.VTime) {
	rows, totalCount, err := reader.Query(
		context.Background(), "event_execution", datarecording.QueryParams{
			OrderBy: "Time DESC",
			Limit:   1,
		})
	if err != nil {
		log.Fatalf("Error reading executed events: %v", err)
	}

	var lastTime sim.VTime
	if len(rows) > 0 {
		lastTime = rows[0].(*executionRow).Time
	}

	return totalCount, lastTime
}
