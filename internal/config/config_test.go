package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/me/taskindex/pkg/model"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.CycleTimeout != time.Second {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Policy.Strategy != model.StrategyBestFit {
		t.Errorf("default strategy = %q", cfg.Policy.Strategy)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
addr: ":9090"
log_level: debug
cycle_timeout: 250ms
policy:
  strategy: worst_fit
  max_concurrent_tasks: 4
  priority_weight: 2.0
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.CycleTimeout != 250*time.Millisecond {
		t.Errorf("CycleTimeout = %v", cfg.CycleTimeout)
	}
	if cfg.Policy.Strategy != model.StrategyWorstFit || cfg.Policy.MaxConcurrentTasks != 4 {
		t.Errorf("policy = %+v", cfg.Policy)
	}
	if cfg.Policy.PriorityWeight != 2.0 {
		t.Errorf("PriorityWeight = %v", cfg.Policy.PriorityWeight)
	}
}

func TestLoadClampsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
cycle_timeout: -5s
policy:
  max_concurrent_tasks: 0
  strategy: ""
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CycleTimeout != time.Second {
		t.Errorf("CycleTimeout = %v, want clamp to 1s", cfg.CycleTimeout)
	}
	if cfg.Policy.MaxConcurrentTasks != 10 {
		t.Errorf("MaxConcurrentTasks = %d, want default 10", cfg.Policy.MaxConcurrentTasks)
	}
	if cfg.Policy.Strategy != model.StrategyBestFit {
		t.Errorf("Strategy = %q, want best_fit", cfg.Policy.Strategy)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}
