// Package registry tracks hardware resource pools by type and enforces the
// unit-conservation invariant (available + allocated == total).
//
// A Registry is not safe for concurrent use on its own: the scheduler owns
// the single lock that serializes every mutation, and all callers go through
// it. This mirrors how resource accounting stays linearizable.
package registry

import (
	"fmt"

	"github.com/me/taskindex/pkg/model"
)

// Registry holds every declared resource, keyed by ID.
type Registry struct {
	resources map[string]*model.Resource
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{resources: make(map[string]*model.Resource)}
}

// Add registers a resource. The resource starts fully available.
func (r *Registry) Add(res *model.Resource) error {
	if res.ID == "" {
		return fmt.Errorf("resource has no ID")
	}
	if res.TotalUnits < 0 {
		return fmt.Errorf("resource %s: negative total units", res.ID)
	}
	if _, ok := r.resources[res.ID]; ok {
		return fmt.Errorf("resource %s already registered", res.ID)
	}
	res.AvailableUnits = res.TotalUnits
	res.AllocatedUnits = 0
	r.resources[res.ID] = res
	return nil
}

// Remove deletes a resource. It fails while any units remain allocated.
func (r *Registry) Remove(id string) error {
	res, ok := r.resources[id]
	if !ok {
		return fmt.Errorf("resource %s not registered", id)
	}
	if res.AllocatedUnits > 0 {
		return fmt.Errorf("resource %s has %d units allocated", id, res.AllocatedUnits)
	}
	delete(r.resources, id)
	return nil
}

// Get returns the resource with the given ID, or nil.
func (r *Registry) Get(id string) *model.Resource {
	return r.resources[id]
}

// List returns all registered resources in unspecified order.
func (r *Registry) List() []*model.Resource {
	out := make([]*model.Resource, 0, len(r.resources))
	for _, res := range r.resources {
		out = append(out, res)
	}
	return out
}

// OfType returns all resources of the given type in unspecified order.
func (r *Registry) OfType(t model.ResourceType) []*model.Resource {
	var out []*model.Resource
	for _, res := range r.resources {
		if res.Type == t {
			out = append(out, res)
		}
	}
	return out
}

// CountOfType returns the number of resource objects of the given type.
func (r *Registry) CountOfType(t model.ResourceType) int {
	n := 0
	for _, res := range r.resources {
		if res.Type == t {
			n++
		}
	}
	return n
}

// AvailableOfType returns the number of resource objects of the given type
// that currently report nonzero available units. Readiness uses this count,
// not a sum of free units.
func (r *Registry) AvailableOfType(t model.ResourceType) int {
	n := 0
	for _, res := range r.resources {
		if res.Type == t && res.AvailableUnits > 0 {
			n++
		}
	}
	return n
}

// Reserve moves amount units from available to allocated on one resource.
func (r *Registry) Reserve(id string, amount int) error {
	res, ok := r.resources[id]
	if !ok {
		return fmt.Errorf("resource %s not registered", id)
	}
	if !res.CanReserve(amount) {
		return fmt.Errorf("resource %s: cannot reserve %d units (%d available)", id, amount, res.AvailableUnits)
	}
	res.AvailableUnits -= amount
	res.AllocatedUnits += amount
	return nil
}

// Release returns amount units from allocated to available on one resource.
// Releasing more than is allocated is clamped and reported as an error.
func (r *Registry) Release(id string, amount int) error {
	res, ok := r.resources[id]
	if !ok {
		return fmt.Errorf("resource %s not registered", id)
	}
	if amount > res.AllocatedUnits {
		was := res.AllocatedUnits
		res.AvailableUnits += was
		res.AllocatedUnits = 0
		return fmt.Errorf("resource %s: released %d units but only %d were allocated", id, amount, was)
	}
	res.AllocatedUnits -= amount
	res.AvailableUnits += amount
	return nil
}

// Replace swaps the full resource table. Used by snapshot import.
func (r *Registry) Replace(resources map[string]*model.Resource) {
	r.resources = resources
}

// Len returns the number of registered resources.
func (r *Registry) Len() int {
	return len(r.resources)
}
