package registry

import (
	"testing"

	"github.com/me/taskindex/pkg/model"
)

func res(id string, typ model.ResourceType, units int) *model.Resource {
	return &model.Resource{ID: id, Type: typ, Name: id, TotalUnits: units}
}

func TestAddStartsFullyAvailable(t *testing.T) {
	r := New()
	if err := r.Add(res("gpu-0", model.ResourceGPU, 4)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got := r.Get("gpu-0")
	if got.AvailableUnits != 4 || got.AllocatedUnits != 0 {
		t.Errorf("after Add: available=%d allocated=%d, want 4/0", got.AvailableUnits, got.AllocatedUnits)
	}

	if err := r.Add(res("gpu-0", model.ResourceGPU, 2)); err == nil {
		t.Error("duplicate Add succeeded, want error")
	}
}

func TestReserveReleaseConservation(t *testing.T) {
	r := New()
	if err := r.Add(res("cpu-0", model.ResourceCPUCore, 8)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := r.Reserve("cpu-0", 3); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	got := r.Get("cpu-0")
	if got.AvailableUnits != 5 || got.AllocatedUnits != 3 {
		t.Errorf("after Reserve(3): available=%d allocated=%d, want 5/3", got.AvailableUnits, got.AllocatedUnits)
	}
	if got.AvailableUnits+got.AllocatedUnits != got.TotalUnits {
		t.Error("unit conservation violated after Reserve")
	}

	// Over-reserving must not change anything.
	if err := r.Reserve("cpu-0", 6); err == nil {
		t.Error("Reserve(6) with 5 available succeeded, want error")
	}
	got = r.Get("cpu-0")
	if got.AvailableUnits != 5 || got.AllocatedUnits != 3 {
		t.Errorf("failed Reserve mutated counters: available=%d allocated=%d", got.AvailableUnits, got.AllocatedUnits)
	}

	if err := r.Release("cpu-0", 3); err != nil {
		t.Fatalf("Release: %v", err)
	}
	got = r.Get("cpu-0")
	if got.AvailableUnits != 8 || got.AllocatedUnits != 0 {
		t.Errorf("after Release: available=%d allocated=%d, want 8/0", got.AvailableUnits, got.AllocatedUnits)
	}
}

func TestReleaseClampsOverRelease(t *testing.T) {
	r := New()
	if err := r.Add(res("cpu-0", model.ResourceCPUCore, 8)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Reserve("cpu-0", 2); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if err := r.Release("cpu-0", 5); err == nil {
		t.Error("over-release succeeded, want error")
	}
	got := r.Get("cpu-0")
	if got.AvailableUnits != 8 || got.AllocatedUnits != 0 {
		t.Errorf("after clamped release: available=%d allocated=%d, want 8/0", got.AvailableUnits, got.AllocatedUnits)
	}
}

func TestRemoveFailsWhileAllocated(t *testing.T) {
	r := New()
	if err := r.Add(res("gpu-0", model.ResourceGPU, 2)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Reserve("gpu-0", 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if err := r.Remove("gpu-0"); err == nil {
		t.Error("Remove with allocated units succeeded, want error")
	}

	if err := r.Release("gpu-0", 1); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := r.Remove("gpu-0"); err != nil {
		t.Errorf("Remove after release: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len after Remove = %d, want 0", r.Len())
	}
}

// AvailableOfType counts resource objects reporting nonzero availability,
// not the sum of their free units.
func TestAvailableOfTypeCountsObjects(t *testing.T) {
	r := New()
	for _, rs := range []*model.Resource{
		res("gpu-0", model.ResourceGPU, 4),
		res("gpu-1", model.ResourceGPU, 4),
		res("cpu-0", model.ResourceCPUCore, 8),
	} {
		if err := r.Add(rs); err != nil {
			t.Fatalf("Add(%s): %v", rs.ID, err)
		}
	}

	if got := r.AvailableOfType(model.ResourceGPU); got != 2 {
		t.Errorf("AvailableOfType(gpu) = %d, want 2", got)
	}
	if got := r.CountOfType(model.ResourceGPU); got != 2 {
		t.Errorf("CountOfType(gpu) = %d, want 2", got)
	}

	// Draining one pool removes it from the count even though seven GPU
	// units remain elsewhere... and three free units on gpu-1 still count
	// as exactly one object.
	if err := r.Reserve("gpu-0", 4); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := r.Reserve("gpu-1", 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if got := r.AvailableOfType(model.ResourceGPU); got != 1 {
		t.Errorf("AvailableOfType(gpu) after drain = %d, want 1", got)
	}
}
