package index

import (
	"fmt"

	"github.com/me/taskindex/pkg/model"
)

// ValidateSystemState cross-checks the facade, scheduler, registry, and
// node tables and returns a description of every violation found. It never
// fails; an empty slice means the system is consistent.
func (x *Index) ValidateSystemState() []string {
	var violations []string

	// Every task created through the facade must still be known to the
	// scheduler.
	x.mu.Lock()
	knownIDs := make([]string, 0, len(x.known))
	for id := range x.known {
		knownIDs = append(knownIDs, id)
	}
	x.mu.Unlock()

	for _, id := range knownIDs {
		if !x.sched.HasTask(id) {
			violations = append(violations,
				fmt.Sprintf("task %s: present in index but unknown to scheduler", id))
		}
	}

	// Resource conservation and assignment checks live with the owner of
	// that state.
	violations = append(violations, x.sched.ValidateAccounting()...)

	// Node running-task counters must match the tasks actually running on
	// that node.
	runningByNode := make(map[string]int)
	for _, t := range x.sched.GetByStatus(model.TaskStatusRunning) {
		if t.ExecutionNode != "" {
			runningByNode[t.ExecutionNode]++
		}
	}

	x.mu.Lock()
	for id, n := range x.nodes {
		if actual := runningByNode[id]; n.RunningTasks != actual {
			violations = append(violations,
				fmt.Sprintf("node %s: running counter is %d but %d tasks are running there",
					id, n.RunningTasks, actual))
		}
	}
	x.mu.Unlock()

	return violations
}
