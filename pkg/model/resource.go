package model

// ResourceType identifies a pool of fungible hardware units.
type ResourceType string

const (
	ResourceCPUCore ResourceType = "cpu_core"
	ResourceGPU     ResourceType = "gpu"
	ResourceNPU     ResourceType = "npu"
	ResourceTPU     ResourceType = "tpu"
	ResourceMemory  ResourceType = "memory"
	ResourceNetwork ResourceType = "network"
	ResourceDisk    ResourceType = "disk"
)

// Resource is a named pool of fungible units of one resource type.
//
// Invariant: AvailableUnits + AllocatedUnits == TotalUnits, both >= 0.
// All mutation happens under the scheduler lock.
type Resource struct {
	ID       string       `json:"id"`
	Type     ResourceType `json:"type"`
	Name     string       `json:"name"`
	Version  string       `json:"version,omitempty"`
	Location string       `json:"location,omitempty"`
	Status   string       `json:"status,omitempty"`

	TotalUnits     int `json:"total_units"`
	AvailableUnits int `json:"available_units"`
	AllocatedUnits int `json:"allocated_units"`

	Capabilities map[string]any `json:"capabilities,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Leftover returns the units that would remain available after reserving
// amount. Negative means the resource cannot satisfy the request.
func (r *Resource) Leftover(amount int) int {
	return r.AvailableUnits - amount
}

// CanReserve returns true if amount units can be reserved.
func (r *Resource) CanReserve(amount int) bool {
	return amount > 0 && r.AvailableUnits >= amount
}
