package model

// TaskStatus represents the lifecycle state of a Task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusReady     TaskStatus = "READY"
	TaskStatusRunning   TaskStatus = "RUNNING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusFailed    TaskStatus = "FAILED"
	TaskStatusCancelled TaskStatus = "CANCELLED"

	// TaskStatusPaused is declared but never produced by the scheduler.
	// It is reserved for external pause requests.
	TaskStatusPaused TaskStatus = "PAUSED"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status ends the current execution attempt.
// A FAILED attempt with retries remaining is reset to PENDING by the
// scheduler, so terminal here means terminal-for-this-attempt.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	}
	return false
}

// ValidTaskTransitions defines the allowed status transitions for Tasks.
// PENDING is the initial status; the FAILED → PENDING edge is the retry path.
var ValidTaskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending: {TaskStatusReady, TaskStatusCancelled, TaskStatusPaused},
	TaskStatusReady:   {TaskStatusRunning, TaskStatusCancelled},
	TaskStatusRunning: {TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled},
	TaskStatusFailed:  {TaskStatusPending},
	TaskStatusPaused:  {TaskStatusPending, TaskStatusCancelled},
}

// CanTransitionTo returns true if moving from the current status to next is valid.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range ValidTaskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Priority orders tasks for scheduling. Higher values dispatch first.
type Priority int

const (
	PriorityLow      Priority = 1
	PriorityNormal   Priority = 2
	PriorityHigh     Priority = 3
	PriorityCritical Priority = 4
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityNormal:
		return "NORMAL"
	case PriorityHigh:
		return "HIGH"
	case PriorityCritical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// ParsePriority converts a priority name to a Priority.
// Unrecognized names map to PriorityNormal.
func ParsePriority(s string) Priority {
	switch s {
	case "LOW":
		return PriorityLow
	case "NORMAL":
		return PriorityNormal
	case "HIGH":
		return PriorityHigh
	case "CRITICAL":
		return PriorityCritical
	}
	return PriorityNormal
}

// TaskType tags the compute kind of a task. Execution statistics are grouped
// by it and placement advice may consult it; the scheduler itself treats it
// as opaque.
type TaskType string

const (
	TaskTypeCPU     TaskType = "cpu"
	TaskTypeGPU     TaskType = "gpu"
	TaskTypeNPU     TaskType = "npu"
	TaskTypeTPU     TaskType = "tpu"
	TaskTypeIO      TaskType = "io"
	TaskTypeNetwork TaskType = "network"
	TaskTypeMemory  TaskType = "memory"
	TaskTypeSync    TaskType = "sync"
	TaskTypeCompile TaskType = "compile"
	TaskTypeMeta    TaskType = "meta"
)

// DependencyKind classifies a task dependency edge.
type DependencyKind string

const (
	DependencyData     DependencyKind = "data"
	DependencyControl  DependencyKind = "control"
	DependencyResource DependencyKind = "resource"
)
