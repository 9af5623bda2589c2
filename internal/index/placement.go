package index

import (
	"fmt"
	"sort"

	"github.com/me/taskindex/pkg/model"
)

// OptimizePlacement scores each declared node against the task's resource
// requirements and returns the best candidate. This is advisory only:
// nothing is reserved, and actual attribution happens at dispatch time
// against the node table as it stands then.
func (x *Index) OptimizePlacement(taskID string) (model.PlacementAdvice, error) {
	t := x.sched.Get(taskID)
	if t == nil {
		return model.PlacementAdvice{}, fmt.Errorf("task %s not found", taskID)
	}

	x.mu.Lock()
	nodes := make([]*model.Node, 0, len(x.nodes))
	for _, n := range x.nodes {
		nodes = append(nodes, n.Clone())
	}
	x.mu.Unlock()

	// Stable iteration so equal scores resolve the same way every call.
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	advice := model.PlacementAdvice{TaskID: taskID}
	for _, n := range nodes {
		score := placementScore(t, n)
		if !advice.Found || score > advice.Score {
			advice.Found = true
			advice.NodeID = n.ID
			advice.Score = score
		}
	}

	return advice, nil
}

// bindNode implements scheduler.NodeBinder: the task is attributed to the
// best-scoring declared node at dispatch time, or left unattributed when
// none is declared. Called under the scheduler lock, so it only touches
// the node table.
func (x *Index) bindNode(t *model.Task) string {
	x.mu.Lock()
	defer x.mu.Unlock()

	best, bestScore := "", 0.0
	for _, n := range x.nodes {
		score := placementScore(t, n)
		if best == "" || score > bestScore || (score == bestScore && n.ID < best) {
			best = n.ID
			bestScore = score
		}
	}
	return best
}

// placementScore rates one node for one task: +1 for every requirement
// type the node's capabilities can cover, -1 for every one it cannot,
// minus 0.5 x load factor, plus 0.5 when the task's preferred_location
// metadata matches the node location.
func placementScore(t *model.Task, n *model.Node) float64 {
	score := 0.0
	for _, req := range t.Requirements {
		if nodeCovers(n, req) {
			score += 1
		} else {
			score -= 1
		}
	}
	score -= 0.5 * n.LoadFactor()
	if preferred, _ := t.Metadata["preferred_location"].(string); preferred != "" && preferred == n.Location {
		score += 0.5
	}
	return score
}

// nodeCovers reports whether the node advertises enough capacity of the
// requirement's type in its capability hints.
func nodeCovers(n *model.Node, req model.ResourceRequirement) bool {
	v, ok := n.Capabilities[string(req.Type)]
	if !ok {
		return false
	}
	switch x := v.(type) {
	case int:
		return x >= req.Amount
	case int64:
		return int(x) >= req.Amount
	case float64:
		return int(x) >= req.Amount
	}
	return false
}
