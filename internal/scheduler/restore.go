package scheduler

import (
	"fmt"

	"github.com/me/taskindex/pkg/model"
)

// SnapshotTasks returns copies of every known task, whatever its status.
func (c *Core) SnapshotTasks() []*model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*model.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Restore atomically replaces every scheduler table from a snapshot. The
// caller passes fully decoded records; nothing here can partially apply.
//
// Non-terminal tasks are re-enqueued. READY tasks keep their restored
// reservation (allocation is skipped at dispatch); tasks captured as
// RUNNING are demoted to READY and re-dispatched, since their execution
// goroutine did not survive the snapshot.
func (c *Core) Restore(tasks []*model.Task, resources []*model.Resource) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.running) > 0 {
		return fmt.Errorf("cannot restore state with %d tasks running", len(c.running))
	}

	resTable := make(map[string]*model.Resource, len(resources))
	for _, res := range resources {
		if res.ID == "" {
			return fmt.Errorf("snapshot resource has no ID")
		}
		if res.AvailableUnits+res.AllocatedUnits != res.TotalUnits {
			return fmt.Errorf("snapshot resource %s: units do not balance (%d + %d != %d)",
				res.ID, res.AvailableUnits, res.AllocatedUnits, res.TotalUnits)
		}
		resTable[res.ID] = res
	}

	taskTable := make(map[string]*model.Task, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			return fmt.Errorf("snapshot task has no ID")
		}
		taskTable[t.ID] = t
	}

	// Swap everything in one shot.
	c.registry.Replace(resTable)
	c.tasks = taskTable
	c.running = make(map[string]*model.Task)
	c.completed = make(map[string]*model.Task)
	c.failed = make(map[string]*model.Task)
	c.graph.Reset()
	c.queue.Reset()

	for _, t := range c.tasks {
		prereqs := make([]string, 0, len(t.Dependencies))
		for _, d := range t.Dependencies {
			prereqs = append(prereqs, d.TaskID)
		}
		c.graph.Add(t.ID, prereqs)

		switch t.Status {
		case model.TaskStatusRunning:
			t.Status = model.TaskStatusReady
			c.queue.Push(t.ID, c.scoreLocked(t))
		case model.TaskStatusPending, model.TaskStatusReady:
			c.queue.Push(t.ID, c.scoreLocked(t))
		case model.TaskStatusCompleted, model.TaskStatusCancelled:
			c.completed[t.ID] = t
		case model.TaskStatusFailed:
			c.failed[t.ID] = t
		case model.TaskStatusPaused:
			// Stays parked until an external resume.
		}
	}

	c.logger.Info("state restored",
		"tasks", len(c.tasks), "resources", len(resTable), "queued", c.queue.Len())
	c.wakeLocked()
	return nil
}

// ValidateAccounting cross-checks the resource tables and task assignments
// and returns human-readable violation descriptions. It never fails; an
// empty slice means the invariants hold.
func (c *Core) ValidateAccounting() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var violations []string

	for _, res := range c.registry.List() {
		if res.AvailableUnits < 0 || res.AllocatedUnits < 0 {
			violations = append(violations,
				fmt.Sprintf("resource %s: negative unit count (available=%d allocated=%d)",
					res.ID, res.AvailableUnits, res.AllocatedUnits))
		}
		if res.AvailableUnits+res.AllocatedUnits != res.TotalUnits {
			violations = append(violations,
				fmt.Sprintf("resource %s: available+allocated != total (%d + %d != %d)",
					res.ID, res.AvailableUnits, res.AllocatedUnits, res.TotalUnits))
		}
	}

	for _, t := range c.tasks {
		if t.HasAssignedResources() &&
			t.Status != model.TaskStatusReady && t.Status != model.TaskStatusRunning {
			violations = append(violations,
				fmt.Sprintf("task %s: holds resources in status %s", t.ID, t.Status))
		}
		for resID, amount := range t.AssignedResources {
			res := c.registry.Get(resID)
			if res == nil {
				violations = append(violations,
					fmt.Sprintf("task %s: assigned to unknown resource %s", t.ID, resID))
				continue
			}
			if amount > res.AllocatedUnits {
				violations = append(violations,
					fmt.Sprintf("task %s: holds %d units of resource %s but only %d are allocated",
						t.ID, amount, resID, res.AllocatedUnits))
			}
		}
	}

	return violations
}
