package app

import (
	"errors"

	"github.com/vk/sweepgridgo/internal/model"
	"github.com/vk/sweepgridgo/internal/sweep"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GridPath    string // optional HCL sweep definition, file or directory
	ResultsPath string // truncated at the start of every invocation

	Serial  bool // sequential dispatch instead of the worker pool
	Workers int  // extra cap on pool size, 0 = automatic

	LogFormat string
	LogLevel  string

	Axes      sweep.AxisSet   // axis candidate lists from the command line
	Overrides model.Overrides // scalar base overrides from the command line
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ResultsPath == "" {
		return nil, errors.New("results path is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("workers cannot be negative")
	}
	return &cfg, nil
}
