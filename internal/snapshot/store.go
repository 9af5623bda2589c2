// Package snapshot persists exported scheduler state. The scheduler never
// touches this package directly; the host saves and loads snapshots through
// the facade's export/import structure.
package snapshot

import "context"

// Store reads and writes exported state structures.
type Store interface {
	// Save persists one snapshot.
	Save(ctx context.Context, state map[string]any) error

	// LoadLatest returns the most recent snapshot, or nil if none exists.
	LoadLatest(ctx context.Context) (map[string]any, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
