package payload

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/me/taskindex/internal/logging"
	"github.com/me/taskindex/pkg/model"
)

func TestJSRunnerEvaluatesPayload(t *testing.T) {
	r := NewJSRunner(nil, logging.Discard())
	task := &model.Task{
		ID:        "t1",
		Payload:   `inputs.a + inputs.b`,
		InputData: map[string]any{"a": 2, "b": 3},
	}

	value, _, err := r.Run(context.Background(), task)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v, ok := value.(int64); !ok || v != 5 {
		t.Errorf("value = %v (%T), want 5", value, value)
	}
}

func TestJSRunnerObjectResultBecomesOutput(t *testing.T) {
	r := NewJSRunner(nil, logging.Discard())
	task := &model.Task{
		ID:      "t1",
		Payload: `({status: "done", count: 7})`,
	}

	_, output, err := r.Run(context.Background(), task)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if output["status"] != "done" {
		t.Errorf("output = %v", output)
	}
}

func TestJSRunnerLibPreload(t *testing.T) {
	r := NewJSRunner([]string{`function double(x) { return x * 2 }`}, logging.Discard())
	task := &model.Task{ID: "t1", Payload: `double(21)`}

	value, _, err := r.Run(context.Background(), task)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v, ok := value.(int64); !ok || v != 42 {
		t.Errorf("value = %v, want 42", value)
	}
}

func TestJSRunnerErrors(t *testing.T) {
	r := NewJSRunner(nil, logging.Discard())

	if _, _, err := r.Run(context.Background(), &model.Task{ID: "t1", Payload: 42}); err == nil {
		t.Error("non-string payload did not error")
	}
	if _, _, err := r.Run(context.Background(), &model.Task{ID: "t1", Payload: `throw new Error("boom")`}); err == nil {
		t.Error("throwing payload did not error")
	} else if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want to contain boom", err)
	}
}

func TestJSRunnerHonorsContextCancellation(t *testing.T) {
	r := NewJSRunner(nil, logging.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := r.Run(ctx, &model.Task{ID: "t1", Payload: `for (;;) {}`})
	if err == nil {
		t.Fatal("infinite loop payload returned without error")
	}
}

func TestFuncRunner(t *testing.T) {
	r := NewFuncRunner()

	task := &model.Task{
		ID:        "t1",
		InputData: map[string]any{"n": 2},
		Payload: Func(func(ctx context.Context, in map[string]any) (any, error) {
			return map[string]any{"n": in["n"]}, nil
		}),
	}
	value, output, err := r.Run(context.Background(), task)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if output["n"] != 2 {
		t.Errorf("output = %v", output)
	}
	if _, ok := value.(map[string]any); !ok {
		t.Errorf("value = %T, want map", value)
	}

	if _, _, err := r.Run(context.Background(), &model.Task{ID: "t2", Payload: "not a func"}); err == nil {
		t.Error("string payload did not error on FuncRunner")
	}
}
