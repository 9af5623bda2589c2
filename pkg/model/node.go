package model

import "time"

// perfAlpha is the smoothing factor for the rolling node performance
// metrics.
const perfAlpha = 0.1

// Node is a declared execution host. Nodes are registered externally and
// used only for placement advice; the scheduler never binds tasks to them.
type Node struct {
	ID       string `json:"id"`
	Type     string `json:"type,omitempty"`
	Location string `json:"location,omitempty"`

	// Capabilities may carry per-resource-type capacity hints (keyed by
	// ResourceType name) and a "max_concurrent_tasks" hint.
	Capabilities map[string]any `json:"capabilities,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`

	RunningTasks int `json:"running_tasks"`
	TotalTasks   int `json:"total_tasks"`

	SuccessRate      float64       `json:"success_rate"`
	AvgExecutionTime time.Duration `json:"avg_execution_time"`
}

// MaxConcurrentHint returns the node's advertised max_concurrent_tasks
// capability, defaulting to 1.
func (n *Node) MaxConcurrentHint() int {
	if v, ok := n.Capabilities["max_concurrent_tasks"]; ok {
		switch x := v.(type) {
		case int:
			if x > 0 {
				return x
			}
		case float64:
			if x > 0 {
				return int(x)
			}
		}
	}
	return 1
}

// LoadFactor is running tasks over the advertised concurrency hint.
func (n *Node) LoadFactor() float64 {
	return float64(n.RunningTasks) / float64(n.MaxConcurrentHint())
}

// RecordExecution folds one finished execution into the rolling success
// rate and average execution time (exponential moving average).
func (n *Node) RecordExecution(d time.Duration, success bool) {
	outcome := 0.0
	if success {
		outcome = 1.0
	}
	if n.TotalTasks == 0 {
		n.SuccessRate = outcome
		n.AvgExecutionTime = d
	} else {
		n.SuccessRate = perfAlpha*outcome + (1-perfAlpha)*n.SuccessRate
		n.AvgExecutionTime = time.Duration(perfAlpha*float64(d) + (1-perfAlpha)*float64(n.AvgExecutionTime))
	}
	n.TotalTasks++
}
