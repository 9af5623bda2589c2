package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/me/taskindex/internal/alloc"
	"github.com/me/taskindex/internal/depgraph"
	"github.com/me/taskindex/internal/payload"
	"github.com/me/taskindex/internal/queue"
	"github.com/me/taskindex/internal/registry"
	"github.com/me/taskindex/pkg/model"
)

// ExecutionObserver is notified, outside the scheduler lock, when tasks are
// dispatched and when their execution attempt ends. The facade uses it to
// keep node counters current.
type ExecutionObserver interface {
	TaskDispatched(t *model.Task)
	TaskFinished(t *model.Task, d time.Duration, success bool)
}

// NodeBinder picks the execution host a task is attributed to at dispatch
// time. It is called under the scheduler lock and must not call back into
// the scheduler. An empty return leaves the task unattributed.
type NodeBinder func(t *model.Task) string

// Core owns all mutable scheduling state: the queue, the task tables, the
// dependency graph, and the resource registry. A single mutex guards every
// field; task payloads execute on their own goroutines outside the lock.
type Core struct {
	config Config
	logger *slog.Logger

	mu         sync.Mutex
	policy     model.SchedulingPolicy
	registry   *registry.Registry
	graph      *depgraph.Graph
	queue      *queue.Queue
	tasks      map[string]*model.Task
	running    map[string]*model.Task
	completed  map[string]*model.Task
	failed     map[string]*model.Task
	strategies *alloc.Registry
	runner     payload.Runner
	observer   ExecutionObserver
	binder     NodeBinder
	stats      stats

	wakeCh chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}
	execWG sync.WaitGroup
}

type stats struct {
	submitted int64
	completed int64
	failed    int64
	cancelled int64
	byType    map[model.TaskType]int64
}

// Stats is a point-in-time snapshot of scheduler counters and table sizes.
type Stats struct {
	Submitted        int64                    `json:"tasks_submitted"`
	Completed        int64                    `json:"tasks_completed"`
	Failed           int64                    `json:"tasks_failed"`
	Cancelled        int64                    `json:"tasks_cancelled"`
	Queued           int                      `json:"queued_tasks"`
	Running          int                      `json:"running_tasks"`
	CompletedTasks   int                      `json:"completed_tasks"`
	FailedTasks      int                      `json:"failed_tasks"`
	ExecutionsByType map[model.TaskType]int64 `json:"executions_by_type"`
}

// New creates a Core with an empty queue and tables.
func New(policy model.SchedulingPolicy, runner payload.Runner, cfg Config, logger *slog.Logger) *Core {
	return &Core{
		config:     cfg,
		logger:     logger.With("component", "scheduler"),
		policy:     policy,
		registry:   registry.New(),
		graph:      depgraph.New(),
		queue:      queue.New(),
		tasks:      make(map[string]*model.Task),
		running:    make(map[string]*model.Task),
		completed:  make(map[string]*model.Task),
		failed:     make(map[string]*model.Task),
		strategies: alloc.NewRegistry(logger),
		runner:     runner,
		stats:      stats{byType: make(map[model.TaskType]int64)},
		wakeCh:     make(chan struct{}, 1),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// SetObserver installs the execution observer. Call before Start.
func (c *Core) SetObserver(o ExecutionObserver) {
	c.observer = o
}

// SetBinder installs the node binder. Call before Start.
func (c *Core) SetBinder(b NodeBinder) {
	c.binder = b
}

// Policy returns the active scheduling policy.
func (c *Core) Policy() model.SchedulingPolicy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.policy
}

// Start begins the dispatch loop. Blocks until ctx is cancelled or Stop is
// called. Cycle faults are logged and the loop continues on its next wake
// or timeout.
func (c *Core) Start(ctx context.Context) error {
	c.logger.Info("scheduler started",
		"cycle_timeout", c.config.CycleTimeout,
		"strategy", c.policy.Strategy,
		"max_concurrent", c.policy.MaxConcurrentTasks,
	)
	timer := time.NewTimer(c.config.CycleTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("scheduler stopping (context cancelled)")
			close(c.doneCh)
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("scheduler stopping (stop called)")
			close(c.doneCh)
			return nil
		case <-c.wakeCh:
		case <-timer.C:
		}

		if err := c.Tick(ctx); err != nil {
			c.logger.Error("dispatch cycle error", "error", err)
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(c.config.CycleTimeout)
	}
}

// Stop shuts down the loop and waits for the current cycle and all
// in-flight task executions to finish.
func (c *Core) Stop() error {
	close(c.stopCh)
	<-c.doneCh
	c.execWG.Wait()
	return nil
}

// Wake nudges the dispatch loop without waiting for the cycle timeout.
func (c *Core) Wake() {
	select {
	case c.wakeCh <- struct{}{}:
	default:
	}
}

// Tick runs one dispatch cycle: drain the queue, partition by readiness,
// re-queue the not-ready entries unchanged, then offer resources to ready
// tasks in descending score order and dispatch the ones that allocate.
func (c *Core) Tick(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	strat, err := c.strategies.Get(c.policy.Strategy)
	if err != nil {
		return fmt.Errorf("dispatch cycle: %w", err)
	}

	type entry struct {
		id    string
		score float64
	}
	var ready, notReady []entry
	for {
		id, score, ok := c.queue.Pop()
		if !ok {
			break
		}
		t := c.tasks[id]
		if t == nil || (t.Status != model.TaskStatusPending && t.Status != model.TaskStatusReady) {
			// Stale entry for a task that left the schedulable states.
			continue
		}
		// READY tasks already hold their reservation; re-checking resource
		// counts would see the pool they drained themselves.
		if t.Status == model.TaskStatusReady || c.isReadyLocked(t) {
			ready = append(ready, entry{id, score})
		} else {
			notReady = append(notReady, entry{id, score})
		}
	}

	// Not-ready tasks go back with their previous score untouched.
	for _, e := range notReady {
		c.queue.Push(e.id, e.score)
	}

	for i, e := range ready {
		t := c.tasks[e.id]

		if len(c.running) >= c.policy.MaxConcurrentTasks {
			// Concurrency cap reached: everything still waiting returns to
			// the queue with a freshly computed score.
			for _, rest := range ready[i:] {
				c.queue.Push(rest.id, c.scoreLocked(c.tasks[rest.id]))
			}
			break
		}

		// Tasks restored as READY already hold their reservation.
		if t.Status != model.TaskStatusReady {
			if !strat.Allocate(t, c.registry) {
				// Allocation failed: re-queue instead of dropping, so the
				// task retries next cycle rather than starving.
				c.queue.Push(t.ID, c.scoreLocked(t))
				c.logger.Debug("allocation failed, task re-queued",
					"task_id", t.ID, "strategy", strat.Name())
				continue
			}
			t.Status = model.TaskStatusReady
			t.Touch()
		}

		c.dispatchLocked(ctx, t)
	}

	return nil
}

// dispatchLocked moves a READY task to RUNNING and starts its execution
// goroutine. Caller holds the lock.
func (c *Core) dispatchLocked(ctx context.Context, t *model.Task) {
	if t.ExecutionNode == "" && c.binder != nil {
		t.ExecutionNode = c.binder(t)
	}
	t.Status = model.TaskStatusRunning
	t.Touch()
	c.running[t.ID] = t
	c.logger.Info("task dispatched", "task_id", t.ID, "name", t.Name, "type", t.Type)

	c.execWG.Add(1)
	go c.execute(ctx, t)
}

// execute runs the task payload outside the scheduler lock, then applies
// the outcome: release resources, update tables and statistics, drive the
// retry state machine, and signal dependents on completion.
func (c *Core) execute(ctx context.Context, t *model.Task) {
	defer c.execWG.Done()

	if c.observer != nil {
		c.observer.TaskDispatched(t)
	}

	start := time.Now()
	value, output, runErr := c.runner.Run(ctx, t)
	elapsed := time.Since(start)

	c.mu.Lock()

	// Resources are always released first, whatever the outcome.
	alloc.ReleaseAll(t, c.registry)
	delete(c.running, t.ID)
	c.stats.byType[t.Type]++

	success := false
	switch {
	case t.Status == model.TaskStatusCancelled:
		// Cancelled mid-run: the flag was flipped externally, the payload
		// ran to completion anyway. Record nothing beyond bookkeeping.
		t.ActualDuration = elapsed
		t.Touch()
		c.completed[t.ID] = t
		c.logger.Info("cancelled task finished", "task_id", t.ID)

	case runErr != nil:
		t.RetryCount++
		t.Error = runErr.Error()
		if t.RetryCount < t.MaxRetries {
			t.Error = ""
			t.Status = model.TaskStatusPending
			t.Touch()
			c.queue.Push(t.ID, c.scoreLocked(t))
			c.logger.Info("task failed, retrying",
				"task_id", t.ID, "attempt", t.RetryCount, "max_retries", t.MaxRetries, "error", runErr)
		} else {
			t.Status = model.TaskStatusFailed
			t.ActualDuration = elapsed
			t.Result = &model.TaskResult{
				Success:       false,
				Error:         runErr.Error(),
				ExecutionTime: elapsed,
			}
			t.Touch()
			c.failed[t.ID] = t
			c.stats.failed++
			c.logger.Warn("task failed permanently",
				"task_id", t.ID, "retry_count", t.RetryCount, "error", runErr)
		}

	default:
		success = true
		t.Status = model.TaskStatusCompleted
		t.ActualDuration = elapsed
		t.OutputData = output
		t.Result = &model.TaskResult{
			Success:       true,
			Value:         value,
			ExecutionTime: elapsed,
			OutputData:    output,
		}
		t.Touch()
		c.completed[t.ID] = t
		c.stats.completed++
		c.logger.Info("task completed", "task_id", t.ID, "duration", elapsed.String())

		// Signal dependents: any task waiting on this one whose readiness
		// now holds re-enters the queue with a fresh score.
		for _, depID := range c.graph.Dependents(t.ID) {
			dt := c.tasks[depID]
			if dt != nil && dt.Status == model.TaskStatusPending && c.isReadyLocked(dt) {
				c.queue.Push(depID, c.scoreLocked(dt))
			}
		}
	}

	obs := c.observer
	c.mu.Unlock()

	if obs != nil {
		obs.TaskFinished(t, elapsed, success)
	}
	c.Wake()
}

// Submit registers a PENDING task with the scheduler and queues it.
func (c *Core) Submit(t *model.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.ID == "" {
		return fmt.Errorf("task has no ID")
	}
	if _, ok := c.tasks[t.ID]; ok {
		return fmt.Errorf("task %s already submitted", t.ID)
	}
	if t.Status != model.TaskStatusPending {
		return fmt.Errorf("task %s: submitted with status %s, want PENDING", t.ID, t.Status)
	}

	c.tasks[t.ID] = t
	prereqs := make([]string, 0, len(t.Dependencies))
	for _, d := range t.Dependencies {
		prereqs = append(prereqs, d.TaskID)
	}
	c.graph.Add(t.ID, prereqs)
	c.queue.Push(t.ID, c.scoreLocked(t))
	c.stats.submitted++
	c.logger.Info("task submitted", "task_id", t.ID, "name", t.Name, "priority", t.Priority.String())

	c.wakeLocked()
	return nil
}

// Cancel cancels a task. A queued task is physically removed from the
// queue; a running task only has its status flipped, the execution
// goroutine is not interrupted.
func (c *Core) Cancel(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.tasks[id]
	if t == nil {
		return false
	}

	switch {
	case c.queue.Contains(id):
		c.queue.Remove(id)
		if t.HasAssignedResources() {
			alloc.ReleaseAll(t, c.registry)
		}
		t.Status = model.TaskStatusCancelled
		t.Touch()
		c.completed[id] = t
		c.stats.cancelled++
		c.logger.Info("queued task cancelled", "task_id", id)
		return true

	case t.Status == model.TaskStatusRunning:
		// Cooperative in name only: the payload keeps running until it
		// returns on its own.
		t.Status = model.TaskStatusCancelled
		t.Touch()
		c.stats.cancelled++
		c.logger.Info("running task marked cancelled", "task_id", id)
		return true
	}

	return false
}

// Get returns a copy of the task with the given ID, or nil.
func (c *Core) Get(id string) *model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.tasks[id]
	if t == nil {
		return nil
	}
	return t.Clone()
}

// GetByStatus returns copies of every task currently in the given status.
func (c *Core) GetByStatus(status model.TaskStatus) []*model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*model.Task
	for _, t := range c.tasks {
		if t.Status == status {
			out = append(out, t.Clone())
		}
	}
	return out
}

// HasTask reports whether the scheduler knows the task ID.
func (c *Core) HasTask(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.tasks[id]
	return ok
}

// AddResource registers a resource pool.
func (c *Core) AddResource(res *model.Resource) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.registry.Add(res); err != nil {
		return err
	}
	c.logger.Info("resource registered",
		"resource_id", res.ID, "type", res.Type, "total_units", res.TotalUnits)
	c.wakeLocked()
	return nil
}

// RemoveResource deregisters a resource pool. Fails while units are
// allocated.
func (c *Core) RemoveResource(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.registry.Remove(id); err != nil {
		return err
	}
	c.logger.Info("resource removed", "resource_id", id)
	return nil
}

// GetResource returns a copy of the resource with the given ID, or nil.
func (c *Core) GetResource(id string) *model.Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := c.registry.Get(id)
	if res == nil {
		return nil
	}
	return res.Clone()
}

// ListResources returns copies of every registered resource.
func (c *Core) ListResources() []*model.Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.registry.List()
	out := make([]*model.Resource, 0, len(list))
	for _, res := range list {
		out = append(out, res.Clone())
	}
	return out
}

// Stats returns a snapshot of the scheduler counters and table sizes.
func (c *Core) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	byType := make(map[model.TaskType]int64, len(c.stats.byType))
	for k, v := range c.stats.byType {
		byType[k] = v
	}
	return Stats{
		Submitted:        c.stats.submitted,
		Completed:        c.stats.completed,
		Failed:           c.stats.failed,
		Cancelled:        c.stats.cancelled,
		Queued:           c.queue.Len(),
		Running:          len(c.running),
		CompletedTasks:   len(c.completed),
		FailedTasks:      len(c.failed),
		ExecutionsByType: byType,
	}
}

// wakeLocked wakes the loop without blocking. Caller holds the lock; the
// channel send itself never blocks.
func (c *Core) wakeLocked() {
	select {
	case c.wakeCh <- struct{}{}:
	default:
	}
}
