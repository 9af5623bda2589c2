package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/me/taskindex/pkg/model"
)

// ServerConfig holds configuration for the task-index server.
type ServerConfig struct {
	Addr         string `yaml:"addr"`          // Listen address (default ":8080")
	LogLevel     string `yaml:"log_level"`     // Log level: debug, info, warn, error
	LogFormat    string `yaml:"log_format"`    // Log format: text, json
	SnapshotPath string `yaml:"snapshot_path"` // SQLite snapshot database path (":memory:" for testing)

	// CycleTimeout bounds the scheduler loop's sleep between cycles.
	CycleTimeout time.Duration `yaml:"cycle_timeout"`

	Policy model.SchedulingPolicy `yaml:"policy"`
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         ":8080",
		LogLevel:     "info",
		LogFormat:    "text",
		CycleTimeout: time.Second,
		Policy:       model.DefaultPolicy(),
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.CycleTimeout <= 0 {
		cfg.CycleTimeout = time.Second
	}
	if cfg.Policy.MaxConcurrentTasks <= 0 {
		cfg.Policy.MaxConcurrentTasks = model.DefaultPolicy().MaxConcurrentTasks
	}
	if cfg.Policy.Strategy == "" {
		cfg.Policy.Strategy = model.StrategyBestFit
	}

	return cfg, nil
}
