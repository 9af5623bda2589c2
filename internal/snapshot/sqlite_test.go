package snapshot

import (
	"context"
	"testing"

	"github.com/me/taskindex/internal/logging"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(":memory:", logging.Discard())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoadLatestOnEmptyStore(t *testing.T) {
	st := testStore(t)

	state, err := st.LoadLatest(context.Background())
	if err != nil {
		t.Fatalf("LoadLatest: %v", err)
	}
	if state != nil {
		t.Errorf("state = %v, want nil on empty store", state)
	}
}

func TestSaveAndLoadLatest(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	if err := st.Save(ctx, map[string]any{"generation": 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := st.Save(ctx, map[string]any{"generation": 2, "tasks": []any{}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	state, err := st.LoadLatest(ctx)
	if err != nil {
		t.Fatalf("LoadLatest: %v", err)
	}
	if state == nil {
		t.Fatal("state = nil, want latest snapshot")
	}
	if gen, ok := state["generation"].(float64); !ok || gen != 2 {
		t.Errorf("generation = %v, want 2 (latest wins)", state["generation"])
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	st := testStore(t)
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
