package model

import (
	"time"
)

// Task is a unit of schedulable work with priority, dependencies, and
// resource needs.
type Task struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Type TaskType `json:"type"`

	Priority  Priority   `json:"priority"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	EstimatedDuration time.Duration `json:"estimated_duration,omitempty"`
	ActualDuration    time.Duration `json:"actual_duration,omitempty"`

	// AffinityScore is a scheduling bonus added to the queue score.
	AffinityScore float64 `json:"affinity_score,omitempty"`

	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`

	Dependencies []TaskDependency      `json:"dependencies,omitempty"`
	Requirements []ResourceRequirement `json:"requirements,omitempty"`

	// AssignedResources maps resource ID to reserved units. Non-empty only
	// while Status is READY or RUNNING; always empty after release.
	AssignedResources map[string]int `json:"assigned_resources,omitempty"`

	// ExecutionNode is the node this task was attributed to, if any.
	ExecutionNode string `json:"execution_node,omitempty"`

	// Payload is the opaque code object executed by the payload runner.
	Payload    any            `json:"payload,omitempty"`
	InputData  map[string]any `json:"input_data,omitempty"`
	OutputData map[string]any `json:"output_data,omitempty"`

	Result     *TaskResult `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
	RetryCount int         `json:"retry_count"`
	MaxRetries int         `json:"max_retries"`

	// Timeout is stored and exported but not enforced by the scheduler.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// DefaultMaxRetries is applied when a task is created without an explicit
// retry bound.
const DefaultMaxRetries = 3

// TaskDependency is a prerequisite edge: this task may not become ready
// until the referenced task has completed.
type TaskDependency struct {
	TaskID            string                `json:"task_id"`
	Kind              DependencyKind        `json:"kind"`
	Requirements      []ResourceRequirement `json:"requirements,omitempty"`
	EstimatedDuration time.Duration         `json:"estimated_duration,omitempty"`
}

// ResourceRequirement asks for an amount of units of one resource type.
type ResourceRequirement struct {
	Type        ResourceType      `json:"type"`
	Amount      int               `json:"amount"`
	MinVersion  string            `json:"min_version,omitempty"`
	MaxVersion  string            `json:"max_version,omitempty"`
	Constraints map[string]string `json:"constraints,omitempty"`
}

// TaskResult records the outcome of one execution attempt.
type TaskResult struct {
	Success       bool           `json:"success"`
	Value         any            `json:"value,omitempty"`
	Error         string         `json:"error,omitempty"`
	ExecutionTime time.Duration  `json:"execution_time"`
	CPUTime       time.Duration  `json:"cpu_time,omitempty"`
	GPUTime       time.Duration  `json:"gpu_time,omitempty"`
	MemoryUsed    int64          `json:"memory_used,omitempty"`
	OutputData    map[string]any `json:"output_data,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// HasAssignedResources returns true if any units are currently reserved
// for this task.
func (t *Task) HasAssignedResources() bool {
	return len(t.AssignedResources) > 0
}

// Touch updates the task's UpdatedAt timestamp.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now().UTC()
}
