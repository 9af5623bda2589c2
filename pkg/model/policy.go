package model

// Allocation strategy names accepted by SchedulingPolicy.Strategy.
const (
	StrategyBestFit  = "best_fit"
	StrategyFirstFit = "first_fit"
	StrategyWorstFit = "worst_fit"
)

// SchedulingPolicy configures the queue scoring function and admission
// limits of the scheduler.
type SchedulingPolicy struct {
	PriorityWeight   float64 `json:"priority_weight" yaml:"priority_weight"`
	DependencyWeight float64 `json:"dependency_weight" yaml:"dependency_weight"`
	ResourceWeight   float64 `json:"resource_weight" yaml:"resource_weight"`
	AffinityWeight   float64 `json:"affinity_weight" yaml:"affinity_weight"`
	FairnessWeight   float64 `json:"fairness_weight" yaml:"fairness_weight"`

	MaxConcurrentTasks int    `json:"max_concurrent_tasks" yaml:"max_concurrent_tasks"`
	Strategy           string `json:"strategy" yaml:"strategy"`

	// Declared toggles. LoadBalancing and PriorityInheritance are carried
	// in configuration and snapshots but not enforced by this scheduler;
	// Preemption is likewise declared only.
	LoadBalancing       bool `json:"load_balancing" yaml:"load_balancing"`
	Preemption          bool `json:"preemption" yaml:"preemption"`
	PriorityInheritance bool `json:"priority_inheritance" yaml:"priority_inheritance"`
}

// DefaultPolicy returns the stock scheduling policy.
func DefaultPolicy() SchedulingPolicy {
	return SchedulingPolicy{
		PriorityWeight:     1.0,
		DependencyWeight:   1.0,
		ResourceWeight:     1.0,
		AffinityWeight:     1.0,
		FairnessWeight:     1.0,
		MaxConcurrentTasks: 10,
		Strategy:           StrategyBestFit,
		LoadBalancing:      true,
	}
}
