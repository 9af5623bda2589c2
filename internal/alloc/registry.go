package alloc

import (
	"fmt"
	"log/slog"
)

// Registry maps strategy names to their implementations.
// Registration happens at startup before concurrent access, so no mutex is
// needed.
type Registry struct {
	strategies map[string]Strategy
	logger     *slog.Logger
}

// NewRegistry creates a Registry preloaded with the three built-in
// strategies.
func NewRegistry(logger *slog.Logger) *Registry {
	r := &Registry{
		strategies: make(map[string]Strategy),
		logger:     logger.With("component", "alloc-registry"),
	}
	r.Register(BestFit{})
	r.Register(FirstFit{})
	r.Register(WorstFit{})
	return r
}

// Register adds a Strategy, keyed by its Name().
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
	r.logger.Debug("allocation strategy registered", "name", s.Name())
}

// Get returns the Strategy for the given name or an error if none is
// registered.
func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("no allocation strategy registered for name %q", name)
	}
	return s, nil
}
