// Package depgraph maintains the task dependency graph: the forward edge
// (task -> prerequisites) for readiness checks and the reverse edge
// (prerequisite -> dependents) for completion signaling.
//
// The graph is owned by the scheduler and accessed only under its lock.
package depgraph

// Graph maps task IDs to their prerequisite and dependent task IDs.
type Graph struct {
	prereqs    map[string][]string
	dependents map[string][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		prereqs:    make(map[string][]string),
		dependents: make(map[string][]string),
	}
}

// Add records a task and its prerequisites, wiring the reverse edges.
func (g *Graph) Add(taskID string, prereqIDs []string) {
	g.prereqs[taskID] = append([]string(nil), prereqIDs...)
	for _, p := range prereqIDs {
		g.dependents[p] = append(g.dependents[p], taskID)
	}
}

// Remove drops a task and its edges in both directions.
func (g *Graph) Remove(taskID string) {
	for _, p := range g.prereqs[taskID] {
		deps := g.dependents[p]
		for i, d := range deps {
			if d == taskID {
				g.dependents[p] = append(deps[:i], deps[i+1:]...)
				break
			}
		}
	}
	delete(g.prereqs, taskID)
	delete(g.dependents, taskID)
}

// Prerequisites returns the prerequisite IDs of a task.
func (g *Graph) Prerequisites(taskID string) []string {
	return g.prereqs[taskID]
}

// Dependents returns the IDs of tasks that depend on the given task.
func (g *Graph) Dependents(taskID string) []string {
	return g.dependents[taskID]
}

// Reset clears the whole graph. Used by snapshot import.
func (g *Graph) Reset() {
	g.prereqs = make(map[string][]string)
	g.dependents = make(map[string][]string)
}
