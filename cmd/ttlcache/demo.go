package main

import (
	"sort"
	"time"

	"ttlcache"
	"ttlcache/internal/logs"
	"ttlcache/internal/metrics"

	"github.com/spf13/cobra"
)

var demoConfigPath string

// demoCmd runs a workload against a live cache and reports on it.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a demo workload against a live cache",
	Long: `Run a workload of writes against a cache, wait for short TTLs to
elapse, and print the surviving entries, the metrics snapshot, and a
health report. Supply --config to replace the built-in workload.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workload, err := LoadWorkload(demoConfigPath)
		if err != nil {
			return err
		}
		return runDemo(cmd, workload)
	},
}

func init() {
	demoCmd.Flags().StringVarP(&demoConfigPath, "config", "c", "", "workload YAML file")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, workload *Workload) error {
	logger := logs.NewLogger(workload.LogSize, logs.DEBUG)
	registry := metrics.NewRegistry()

	cache := ttlcache.New(
		ttlcache.WithLogger(logger),
		ttlcache.WithMetrics(registry),
	)
	defer cache.Close()

	for _, e := range workload.Entries {
		if e.TTLSeconds > 0 {
			cache.SetWithTTL(e.Key, e.Value, e.TTLSeconds)
		} else {
			cache.Set(e.Key, e.Value)
		}
	}

	cmd.Printf("wrote %d entries\n", len(workload.Entries))
	printEntries(cmd, cache)

	if workload.WaitSeconds > 0 {
		cmd.Printf("\nwaiting %ds for TTLs to elapse...\n\n", workload.WaitSeconds)
		time.Sleep(time.Duration(workload.WaitSeconds) * time.Second)
	}

	printEntries(cmd, cache)

	cmd.Println("\nmetrics:")
	snap := registry.Snapshot()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.Printf("  %-24s %d\n", name, snap[name])
	}

	report := cache.Health()
	cmd.Printf("\nhealth: %s — %s\n", report.OverallStatus, report.Summary)
	for i, signal := range report.Signals {
		cmd.Printf("  signal: %s\n", signal)
		cmd.Printf("  advice: %s\n", report.Recommendations[i])
	}

	for _, entry := range logger.GetLast(10) {
		cmd.Printf("log [%s] %s\n", entry.Level, entry.Message)
	}
	return nil
}

func printEntries(cmd *cobra.Command, cache *ttlcache.Cache) {
	entries := cache.Entries()

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	cmd.Printf("live entries (%d):\n", len(keys))
	for _, key := range keys {
		entry := entries[key]
		if entry.ExpiresAt == 0 {
			cmd.Printf("  %-16s = %-12v (never expires)\n", key, entry.Value)
			continue
		}
		cmd.Printf("  %-16s = %-12v (expires %s)\n",
			key, entry.Value, time.Unix(entry.ExpiresAt, 0).Format(time.TimeOnly))
	}
}
