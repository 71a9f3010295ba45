// Package cmd provides the command-line interface for NetSim.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "netsim",
	Short: "NetSim CLI tool can run demo simulations and inspect the " +
		"databases they record.",
	Long: `NetSim CLI tool can run demo simulations and inspect the ` +
		`databases they record. Currently, it supports running a ping ` +
		`demo, summarizing recorded databases, and listing the available ` +
		`engine and scheduler implementations.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
