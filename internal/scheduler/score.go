package scheduler

import "github.com/me/taskindex/pkg/model"

// scoreLocked computes the queue score for a task under the active policy.
// Higher scores dispatch first. Recomputed every time a task is
// (re-)inserted into the queue, so scarcity reflects the live registry.
// Caller holds the lock.
func (c *Core) scoreLocked(t *model.Task) float64 {
	p := c.policy

	score := float64(t.Priority) * 1000
	score += 0.1 * p.DependencyWeight * 100 * float64(len(t.Dependencies))
	score += p.AffinityWeight * 100 * t.AffinityScore

	scarcity := 0.0
	for _, req := range t.Requirements {
		total := c.registry.CountOfType(req.Type)
		if total == 0 {
			continue
		}
		avail := c.registry.AvailableOfType(req.Type)
		scarcity += 1 - float64(avail)/float64(total)
	}
	score += 0.1 * p.ResourceWeight * 100 * scarcity

	return score
}

// isReadyLocked is the readiness predicate: every dependency has completed
// and, for every requirement, the number of resources of that type
// currently reporting nonzero available units covers the requested amount.
// This is deliberately a count of qualifying resource objects, not a sum of
// free capacity. Caller holds the lock.
func (c *Core) isReadyLocked(t *model.Task) bool {
	for _, dep := range t.Dependencies {
		done, ok := c.completed[dep.TaskID]
		if !ok || done.Status != model.TaskStatusCompleted {
			return false
		}
	}
	for _, req := range t.Requirements {
		if c.registry.AvailableOfType(req.Type) < req.Amount {
			return false
		}
	}
	return true
}
