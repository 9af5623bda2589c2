package scheduler

import (
	"context"
	"time"
)

// Scheduler runs the background dispatch loop that moves tasks from the
// queue onto execution goroutines.
type Scheduler interface {
	// Start begins the dispatch loop. Blocks until ctx is cancelled or
	// Stop is called.
	Start(ctx context.Context) error

	// Stop shuts down the loop and waits for in-flight executions.
	Stop() error

	// Tick runs a single dispatch cycle. Used for testing.
	Tick(ctx context.Context) error

	// Wake nudges the loop to run a cycle before the next timeout.
	Wake()
}

// Config holds scheduler loop configuration.
type Config struct {
	// CycleTimeout bounds how long the loop sleeps without a wake signal,
	// so starvation never exceeds roughly one timeout.
	CycleTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{CycleTimeout: time.Second}
}
