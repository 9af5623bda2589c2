// Package index implements the task-index facade: the public surface for
// task, resource, and node management, placement advice, consistency
// validation, and state export/import. All scheduling is delegated to the
// scheduler core.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/me/taskindex/internal/payload"
	"github.com/me/taskindex/internal/scheduler"
	"github.com/me/taskindex/pkg/model"
)

// Index is the task-index facade.
type Index struct {
	sched  *scheduler.Core
	logger *slog.Logger

	mu    sync.Mutex
	known map[string]struct{}    // task IDs created through this facade
	nodes map[string]*model.Node // declared execution hosts
}

// New creates an Index around a fresh scheduler core.
func New(policy model.SchedulingPolicy, runner payload.Runner, cfg scheduler.Config, logger *slog.Logger) *Index {
	idx := &Index{
		sched:  scheduler.New(policy, runner, cfg, logger),
		logger: logger.With("component", "index"),
		known:  make(map[string]struct{}),
		nodes:  make(map[string]*model.Node),
	}
	idx.sched.SetObserver(idx)
	idx.sched.SetBinder(idx.bindNode)
	return idx
}

// Scheduler exposes the underlying core, mainly for Start/Stop wiring.
func (x *Index) Scheduler() *scheduler.Core {
	return x.sched
}

// Start runs the scheduler loop. Blocks until ctx is cancelled or Stop is
// called.
func (x *Index) Start(ctx context.Context) error {
	return x.sched.Start(ctx)
}

// Stop shuts the scheduler down.
func (x *Index) Stop() error {
	return x.sched.Stop()
}

// CreateTask builds a PENDING task from the request and submits it for
// scheduling.
func (x *Index) CreateTask(req model.CreateTaskRequest) (*model.Task, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("task name is required")
	}

	now := time.Now().UTC()
	maxRetries := model.DefaultMaxRetries
	if req.MaxRetries != nil {
		if *req.MaxRetries < 0 {
			return nil, fmt.Errorf("max_retries must be >= 0")
		}
		maxRetries = *req.MaxRetries
	}
	for _, r := range req.Requirements {
		if r.Amount <= 0 {
			return nil, fmt.Errorf("resource requirement for %s: amount must be > 0", r.Type)
		}
	}

	t := &model.Task{
		ID:                "task_" + uuid.New().String(),
		Name:              req.Name,
		Type:              req.Type,
		Priority:          model.ParsePriority(req.Priority),
		Status:            model.TaskStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
		EstimatedDuration: req.EstimatedDuration,
		Dependencies:      req.Dependencies,
		Requirements:      req.Requirements,
		MaxRetries:        maxRetries,
		Timeout:           req.Timeout,
		Metadata:          req.Metadata,
		Tags:              req.Tags,
		Payload:           req.Payload,
		InputData:         req.InputData,
	}

	if err := x.sched.Submit(t); err != nil {
		return nil, err
	}

	x.mu.Lock()
	x.known[t.ID] = struct{}{}
	x.mu.Unlock()

	return t.Clone(), nil
}

// GetTask returns a copy of the task, or nil if unknown.
func (x *Index) GetTask(id string) *model.Task {
	return x.sched.Get(id)
}

// GetTasksByStatus returns copies of all tasks in the given status.
func (x *Index) GetTasksByStatus(status model.TaskStatus) []*model.Task {
	return x.sched.GetByStatus(status)
}

// CancelTask cancels a queued or running task.
func (x *Index) CancelTask(id string) bool {
	return x.sched.Cancel(id)
}

// AddResource registers a resource pool and returns it.
func (x *Index) AddResource(req model.AddResourceRequest) (*model.Resource, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("resource name is required")
	}
	if req.TotalUnits <= 0 {
		return nil, fmt.Errorf("total_units must be > 0")
	}

	res := &model.Resource{
		ID:           "res_" + uuid.New().String(),
		Type:         req.Type,
		Name:         req.Name,
		Version:      req.Version,
		Location:     req.Location,
		Status:       "online",
		TotalUnits:   req.TotalUnits,
		Capabilities: req.Capabilities,
		Metadata:     req.Metadata,
	}
	if err := x.sched.AddResource(res); err != nil {
		return nil, err
	}
	return res.Clone(), nil
}

// RemoveResource deregisters a resource pool. Fails while units are
// allocated.
func (x *Index) RemoveResource(id string) error {
	return x.sched.RemoveResource(id)
}

// GetResource returns a copy of the resource, or nil if unknown.
func (x *Index) GetResource(id string) *model.Resource {
	return x.sched.GetResource(id)
}

// ListResources returns copies of all registered resources.
func (x *Index) ListResources() []*model.Resource {
	return x.sched.ListResources()
}

// AddNode declares an execution host.
func (x *Index) AddNode(req model.AddNodeRequest) (*model.Node, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("node id is required")
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.nodes[req.ID]; ok {
		return nil, fmt.Errorf("node %s already registered", req.ID)
	}
	n := &model.Node{
		ID:           req.ID,
		Type:         req.Type,
		Location:     req.Location,
		Capabilities: req.Capabilities,
		Metadata:     req.Metadata,
		SuccessRate:  1.0,
	}
	x.nodes[n.ID] = n
	x.logger.Info("node registered", "node_id", n.ID, "location", n.Location)
	return n.Clone(), nil
}

// GetNode returns a copy of the node, or nil if unknown.
func (x *Index) GetNode(id string) *model.Node {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.nodes[id].Clone()
}

// ListNodes returns copies of all declared nodes.
func (x *Index) ListNodes() []*model.Node {
	x.mu.Lock()
	defer x.mu.Unlock()
	out := make([]*model.Node, 0, len(x.nodes))
	for _, n := range x.nodes {
		out = append(out, n.Clone())
	}
	return out
}

// Stats returns the scheduler counters.
func (x *Index) Stats() scheduler.Stats {
	return x.sched.Stats()
}

// TaskDispatched implements scheduler.ExecutionObserver: tasks attributed
// to a node bump its running counter.
func (x *Index) TaskDispatched(t *model.Task) {
	if t.ExecutionNode == "" {
		return
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if n := x.nodes[t.ExecutionNode]; n != nil {
		n.RunningTasks++
	}
}

// TaskFinished implements scheduler.ExecutionObserver: fold the execution
// into the node's rolling performance metrics.
func (x *Index) TaskFinished(t *model.Task, d time.Duration, success bool) {
	if t.ExecutionNode == "" {
		return
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if n := x.nodes[t.ExecutionNode]; n != nil {
		if n.RunningTasks > 0 {
			n.RunningTasks--
		}
		n.RecordExecution(d, success)
	}
}
