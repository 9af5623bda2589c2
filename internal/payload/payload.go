// Package payload runs the opaque code object attached to a task. The
// scheduler treats the runner as an external collaborator: it is invoked
// outside the scheduler lock and either returns a value or an error that
// drives the retry state machine.
package payload

import (
	"context"
	"fmt"

	"github.com/me/taskindex/pkg/model"
)

// Runner executes a task's payload with its input data.
type Runner interface {
	// Run executes the payload and returns its opaque result value.
	// Output data, when the payload produces any, is returned separately.
	Run(ctx context.Context, task *model.Task) (value any, output map[string]any, err error)
}

// Func is the payload shape accepted by FuncRunner.
type Func func(ctx context.Context, input map[string]any) (any, error)

// FuncRunner runs payloads that are Go functions. Used by embedding hosts
// and tests.
type FuncRunner struct{}

// NewFuncRunner creates a FuncRunner.
func NewFuncRunner() *FuncRunner {
	return &FuncRunner{}
}

// Run invokes the payload as a Func.
func (r *FuncRunner) Run(ctx context.Context, task *model.Task) (any, map[string]any, error) {
	fn, ok := task.Payload.(Func)
	if !ok {
		if raw, okRaw := task.Payload.(func(ctx context.Context, input map[string]any) (any, error)); okRaw {
			fn = raw
		} else {
			return nil, nil, fmt.Errorf("task %s: payload is not a runnable function", task.ID)
		}
	}
	v, err := fn(ctx, task.InputData)
	if err != nil {
		return nil, nil, err
	}
	if m, ok := v.(map[string]any); ok {
		return v, m, nil
	}
	return v, nil, nil
}
