// Package alloc implements the resource allocation strategies. A strategy
// attempts to satisfy all resource requirements of one task atomically
// against the live registry; on any failure every reservation already made
// for that task is rolled back, leaving the registry unchanged.
//
// Strategies run under the scheduler lock and must not block.
package alloc

import (
	"sort"

	"github.com/me/taskindex/internal/registry"
	"github.com/me/taskindex/pkg/model"
)

// Strategy reserves resources for a task. Allocate returns true when every
// requirement was satisfied; on false the registry is unchanged.
type Strategy interface {
	Name() string
	Allocate(t *model.Task, reg *registry.Registry) bool
}

// qualifies reports whether a resource can serve a requirement: matching
// type, enough available units, version inside the requested bounds, and
// every constraint matched against the resource capabilities.
func qualifies(res *model.Resource, req model.ResourceRequirement) bool {
	if res.Type != req.Type || !res.CanReserve(req.Amount) {
		return false
	}
	if req.MinVersion != "" && res.Version < req.MinVersion {
		return false
	}
	if req.MaxVersion != "" && res.Version > req.MaxVersion {
		return false
	}
	for k, want := range req.Constraints {
		got, ok := res.Capabilities[k]
		if !ok {
			return false
		}
		if s, ok := got.(string); !ok || s != want {
			return false
		}
	}
	return true
}

// candidates returns the qualifying resources for a requirement in
// ascending resource-ID order, so iteration order is deterministic.
func candidates(reg *registry.Registry, req model.ResourceRequirement) []*model.Resource {
	var out []*model.Resource
	for _, res := range reg.OfType(req.Type) {
		if qualifies(res, req) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// reservation records one reserve so it can be undone.
type reservation struct {
	resourceID string
	amount     int
}

// rollback releases every reservation made for a failed allocation and
// removes the amounts from the task's assignment map.
func rollback(t *model.Task, reg *registry.Registry, made []reservation) {
	for _, r := range made {
		_ = reg.Release(r.resourceID, r.amount)
		if t.AssignedResources != nil {
			t.AssignedResources[r.resourceID] -= r.amount
			if t.AssignedResources[r.resourceID] <= 0 {
				delete(t.AssignedResources, r.resourceID)
			}
		}
	}
}

// reserve commits one pick: registry counters move and the task's
// assignment map is updated.
func reserve(t *model.Task, reg *registry.Registry, res *model.Resource, amount int, made *[]reservation) bool {
	if err := reg.Reserve(res.ID, amount); err != nil {
		return false
	}
	if t.AssignedResources == nil {
		t.AssignedResources = make(map[string]int)
	}
	t.AssignedResources[res.ID] += amount
	*made = append(*made, reservation{resourceID: res.ID, amount: amount})
	return true
}

// allocate walks the task's requirements, using pick to choose among the
// qualifying resources for each. Shared by all three strategies; they
// differ only in the pick function.
func allocate(t *model.Task, reg *registry.Registry, pick func([]*model.Resource, int) *model.Resource) bool {
	var made []reservation
	for _, req := range t.Requirements {
		cands := candidates(reg, req)
		if len(cands) == 0 {
			rollback(t, reg, made)
			return false
		}
		chosen := pick(cands, req.Amount)
		if chosen == nil || !reserve(t, reg, chosen, req.Amount, &made) {
			rollback(t, reg, made)
			return false
		}
	}
	return true
}

// BestFit picks, per requirement, the qualifying resource with minimal
// leftover units after the reservation.
type BestFit struct{}

func (BestFit) Name() string { return model.StrategyBestFit }

func (BestFit) Allocate(t *model.Task, reg *registry.Registry) bool {
	return allocate(t, reg, func(cands []*model.Resource, amount int) *model.Resource {
		best := cands[0]
		for _, c := range cands[1:] {
			if c.Leftover(amount) < best.Leftover(amount) {
				best = c
			}
		}
		return best
	})
}

// FirstFit picks the first qualifying resource in iteration order.
type FirstFit struct{}

func (FirstFit) Name() string { return model.StrategyFirstFit }

func (FirstFit) Allocate(t *model.Task, reg *registry.Registry) bool {
	return allocate(t, reg, func(cands []*model.Resource, _ int) *model.Resource {
		return cands[0]
	})
}

// WorstFit picks, per requirement, the qualifying resource with maximal
// leftover units after the reservation.
type WorstFit struct{}

func (WorstFit) Name() string { return model.StrategyWorstFit }

func (WorstFit) Allocate(t *model.Task, reg *registry.Registry) bool {
	return allocate(t, reg, func(cands []*model.Resource, amount int) *model.Resource {
		best := cands[0]
		for _, c := range cands[1:] {
			if c.Leftover(amount) > best.Leftover(amount) {
				best = c
			}
		}
		return best
	})
}

// ReleaseAll returns every unit assigned to the task back to the registry
// and clears the assignment map.
func ReleaseAll(t *model.Task, reg *registry.Registry) {
	for id, amount := range t.AssignedResources {
		_ = reg.Release(id, amount)
	}
	t.AssignedResources = nil
}
