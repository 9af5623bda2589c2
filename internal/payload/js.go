package payload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dop251/goja"

	"github.com/me/taskindex/pkg/model"
)

// JSRunner executes string payloads as JavaScript in a fresh goja VM per
// run. The task's input data is bound as the global `inputs` object and the
// value of the final expression becomes the result.
type JSRunner struct {
	logger *slog.Logger

	// lib contains JavaScript source loaded into every VM before the
	// payload runs (shared helper functions).
	lib []string
}

// NewJSRunner creates a JSRunner. lib entries are evaluated in order in
// every new VM.
func NewJSRunner(lib []string, logger *slog.Logger) *JSRunner {
	return &JSRunner{
		lib:    lib,
		logger: logger.With("component", "js-runner"),
	}
}

// Run compiles and executes the payload source. A non-string payload is an
// execution failure, not a crash.
func (r *JSRunner) Run(ctx context.Context, task *model.Task) (any, map[string]any, error) {
	src, ok := task.Payload.(string)
	if !ok {
		return nil, nil, fmt.Errorf("task %s: payload is not JavaScript source", task.ID)
	}

	vm := goja.New()

	// Abort the script when the context is cancelled.
	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	for i, lib := range r.lib {
		if _, err := vm.RunString(lib); err != nil {
			return nil, nil, fmt.Errorf("task %s: payload lib[%d]: %w", task.ID, i, err)
		}
	}

	input := task.InputData
	if input == nil {
		input = map[string]any{}
	}
	if err := vm.Set("inputs", input); err != nil {
		return nil, nil, fmt.Errorf("task %s: bind inputs: %w", task.ID, err)
	}

	r.logger.Debug("running js payload", "task_id", task.ID)

	v, err := vm.RunString(src)
	if err != nil {
		return nil, nil, fmt.Errorf("task %s: payload: %w", task.ID, err)
	}

	exported := v.Export()
	if m, ok := exported.(map[string]any); ok {
		return exported, m, nil
	}
	return exported, nil, nil
}
