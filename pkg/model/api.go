package model

import "time"

// Response is the standard API envelope.
type Response struct {
	Status    string    `json:"status"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
}

// CreateTaskRequest is the payload accepted by POST /api/v1/tasks.
type CreateTaskRequest struct {
	Name              string                `json:"name"`
	Type              TaskType              `json:"type"`
	Priority          string                `json:"priority,omitempty"`
	Dependencies      []TaskDependency      `json:"dependencies,omitempty"`
	Requirements      []ResourceRequirement `json:"requirements,omitempty"`
	EstimatedDuration time.Duration         `json:"estimated_duration,omitempty"`
	MaxRetries        *int                  `json:"max_retries,omitempty"`
	Timeout           time.Duration         `json:"timeout,omitempty"`
	Metadata          map[string]any        `json:"metadata,omitempty"`
	Tags              []string              `json:"tags,omitempty"`

	// Payload is an opaque code object. When it is a string the server's
	// JavaScript payload runner executes it.
	Payload   any            `json:"payload,omitempty"`
	InputData map[string]any `json:"input_data,omitempty"`
}

// AddResourceRequest is the payload accepted by POST /api/v1/resources.
type AddResourceRequest struct {
	Type         ResourceType   `json:"type"`
	Name         string         `json:"name"`
	TotalUnits   int            `json:"total_units"`
	Version      string         `json:"version,omitempty"`
	Location     string         `json:"location,omitempty"`
	Capabilities map[string]any `json:"capabilities,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// AddNodeRequest is the payload accepted by POST /api/v1/nodes.
type AddNodeRequest struct {
	ID           string         `json:"id"`
	Type         string         `json:"type,omitempty"`
	Location     string         `json:"location,omitempty"`
	Capabilities map[string]any `json:"capabilities,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// PlacementAdvice is the result of placement optimization for one task.
type PlacementAdvice struct {
	TaskID string  `json:"task_id"`
	NodeID string  `json:"node_id,omitempty"`
	Score  float64 `json:"score"`
	Found  bool    `json:"found"`
}
