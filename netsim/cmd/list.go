package cmd

import (
	"fmt"

	"github.com/sarchlab/netsim/sim"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered engine and scheduler implementations.",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("Engines:")
		for _, name := range sim.RegisteredEngines() {
			fmt.Printf("  %s\n", name)
		}

		fmt.Println("Schedulers:")
		for _, name := range sim.RegisteredSchedulers() {
			fmt.Printf("  %s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
