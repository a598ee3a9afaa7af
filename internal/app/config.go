package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DocsPath string // hcl parameter documents

	LogFormat    string
	LogLevel     string
	WorkerCount  int
	SnapshotPath string // optional snapshot output file
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DocsPath == "" {
		return nil, errors.New("DocsPath is a required configuration field and cannot be empty")
	}

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	return &cfg, nil
}
