package main

import "github.com/spf13/cobra"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ttlcache",
	Short: "In-process TTL cache demo harness",
	Long: `ttlcache is a demo harness for the ttlcache library: an in-process
key-value cache whose entries expire on per-entry TTLs via a
self-clocking reconciliation loop.

The demo subcommand runs a workload against a live cache and prints
its table, metrics, and a rule-based health report.`,
	Version: version,
}

// Execute runs the root command. Called once from main.main().
func Execute() error {
	return rootCmd.Execute()
}
