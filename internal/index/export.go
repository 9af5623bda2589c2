package index

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/me/taskindex/pkg/model"
)

// ExportState captures every task, resource, and node as a nested,
// string-keyed structure suitable for the snapshot store.
func (x *Index) ExportState() map[string]any {
	tasks := x.sched.SnapshotTasks()
	resources := x.sched.ListResources()
	nodes := x.ListNodes()

	taskRecs := make([]any, 0, len(tasks))
	for _, t := range tasks {
		taskRecs = append(taskRecs, encodeTask(t))
	}
	resRecs := make([]any, 0, len(resources))
	for _, r := range resources {
		resRecs = append(resRecs, encodeRecord(r))
	}
	nodeRecs := make([]any, 0, len(nodes))
	for _, n := range nodes {
		nodeRecs = append(nodeRecs, encodeRecord(n))
	}

	return map[string]any{
		"tasks":       taskRecs,
		"resources":   resRecs,
		"nodes":       nodeRecs,
		"exported_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// ImportState atomically replaces the in-memory tables from an exported
// state structure. Every record is decoded before anything is applied, so
// a malformed snapshot leaves the live state untouched. Tasks not in a
// terminal state are re-enqueued.
func (x *Index) ImportState(state map[string]any) error {
	tasks, err := decodeList[model.Task](state, "tasks")
	if err != nil {
		return fmt.Errorf("import state: %w", err)
	}
	resources, err := decodeList[model.Resource](state, "resources")
	if err != nil {
		return fmt.Errorf("import state: %w", err)
	}
	nodes, err := decodeList[model.Node](state, "nodes")
	if err != nil {
		return fmt.Errorf("import state: %w", err)
	}
	for _, n := range nodes {
		if n.ID == "" {
			return fmt.Errorf("import state: node record has no id")
		}
	}

	if err := x.sched.Restore(tasks, resources); err != nil {
		return fmt.Errorf("import state: %w", err)
	}

	x.mu.Lock()
	x.known = make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		x.known[t.ID] = struct{}{}
	}
	x.nodes = make(map[string]*model.Node, len(nodes))
	for _, n := range nodes {
		x.nodes[n.ID] = n
	}
	x.mu.Unlock()

	x.logger.Info("state imported",
		"tasks", len(tasks), "resources", len(resources), "nodes", len(nodes))
	return nil
}

// encodeTask flattens a task to a string-keyed record. A payload that does
// not survive JSON encoding (a Go function, say) is dropped; it is opaque
// and cannot travel through a snapshot.
func encodeTask(t *model.Task) map[string]any {
	if t.Payload != nil {
		if _, err := json.Marshal(t.Payload); err != nil {
			t = t.Clone()
			t.Payload = nil
		}
	}
	return encodeRecord(t)
}

// encodeRecord converts any JSON-encodable value to a string-keyed map.
func encodeRecord(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{}
	}
	return out
}

// decodeList pulls state[key] and decodes each element into T. Any
// malformed record aborts the whole decode.
func decodeList[T any](state map[string]any, key string) ([]*T, error) {
	rawList, ok := state[key]
	if !ok {
		return nil, fmt.Errorf("missing %q list", key)
	}
	list, ok := rawList.([]any)
	if !ok {
		return nil, fmt.Errorf("%q is not a list", key)
	}

	out := make([]*T, 0, len(list))
	for i, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: record is not a map", key, i)
		}
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		out = append(out, &v)
	}
	return out, nil
}
