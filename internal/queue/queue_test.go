package queue

import "testing"

func TestPopOrdersByScoreDescending(t *testing.T) {
	q := New()
	q.Push("low", 10)
	q.Push("high", 30)
	q.Push("mid", 20)

	want := []string{"high", "mid", "low"}
	for _, w := range want {
		id, _, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop: queue empty, want %s", w)
		}
		if id != w {
			t.Errorf("Pop = %s, want %s", id, w)
		}
	}
	if _, _, ok := q.Pop(); ok {
		t.Error("Pop on empty queue returned ok")
	}
}

func TestEqualScoresPopInInsertionOrder(t *testing.T) {
	q := New()
	q.Push("a", 5)
	q.Push("b", 5)
	q.Push("c", 5)

	for _, w := range []string{"a", "b", "c"} {
		id, _, _ := q.Pop()
		if id != w {
			t.Errorf("Pop = %s, want %s (FIFO tie-break)", id, w)
		}
	}
}

func TestPushUpdatesQueuedScore(t *testing.T) {
	q := New()
	q.Push("a", 10)
	q.Push("b", 20)
	q.Push("a", 30) // re-push: update in place, no duplicate

	if q.Len() != 2 {
		t.Fatalf("Len after re-push = %d, want 2", q.Len())
	}
	id, score, _ := q.Pop()
	if id != "a" || score != 30 {
		t.Errorf("Pop = (%s, %v), want (a, 30)", id, score)
	}
	id, _, _ = q.Pop()
	if id != "b" {
		t.Errorf("Pop = %s, want b", id)
	}
}

func TestRemove(t *testing.T) {
	q := New()
	q.Push("a", 10)
	q.Push("b", 20)
	q.Push("c", 15)

	if !q.Remove("b") {
		t.Fatal("Remove(b) = false")
	}
	if q.Remove("b") {
		t.Error("second Remove(b) = true")
	}
	if q.Contains("b") {
		t.Error("Contains(b) after Remove")
	}

	id, _, _ := q.Pop()
	if id != "c" {
		t.Errorf("Pop after Remove = %s, want c", id)
	}
}

func TestReset(t *testing.T) {
	q := New()
	q.Push("a", 1)
	q.Push("b", 2)
	q.Reset()

	if q.Len() != 0 || q.Contains("a") {
		t.Error("queue not empty after Reset")
	}
	q.Push("c", 3)
	if id, _, _ := q.Pop(); id != "c" {
		t.Error("queue unusable after Reset")
	}
}
