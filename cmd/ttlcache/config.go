package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Workload describes the demo run: which entries to write and how long
// to wait before re-inspecting the cache.
type Workload struct {
	// WaitSeconds is how long the demo sleeps so TTLs can elapse.
	WaitSeconds int `yaml:"wait_seconds"`

	// LogSize caps the cache's in-memory log ring.
	LogSize int `yaml:"log_size"`

	Entries []WorkloadEntry `yaml:"entries"`
}

// WorkloadEntry is one write in the demo workload.
// TTLSeconds == 0 means the entry never expires.
type WorkloadEntry struct {
	Key        string `yaml:"key"`
	Value      string `yaml:"value"`
	TTLSeconds int64  `yaml:"ttl_seconds"`
}

// DefaultWorkload is used when no config file is given: a few permanent
// keys plus short-lived ones that expire during the wait.
func DefaultWorkload() *Workload {
	return &Workload{
		WaitSeconds: 3,
		LogSize:     256,
		Entries: []WorkloadEntry{
			{Key: "config/site", Value: "example.org"},
			{Key: "config/theme", Value: "dark"},
			{Key: "session/alpha", Value: "token-1", TTLSeconds: 1},
			{Key: "session/beta", Value: "token-2", TTLSeconds: 2},
			{Key: "session/gamma", Value: "token-3", TTLSeconds: 600},
		},
	}
}

// LoadWorkload reads a workload from a YAML file, falling back to the
// default workload when path is empty.
func LoadWorkload(path string) (*Workload, error) {
	if path == "" {
		return DefaultWorkload(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}

	w := DefaultWorkload()
	if err := yaml.Unmarshal(data, w); err != nil {
		return nil, fmt.Errorf("parse workload: %w", err)
	}

	if w.WaitSeconds < 0 {
		return nil, fmt.Errorf("wait_seconds must not be negative")
	}
	if w.LogSize <= 0 {
		w.LogSize = 256
	}
	return w, nil
}
