// Package queue provides the scheduler's max-priority queue of task IDs.
//
// Entries are ordered by descending score; ties break on a monotonic
// insertion sequence number so ordering is deterministic across runs.
// Pushing an ID that is already queued updates its score in place, so the
// queue never holds stale duplicate entries for a task.
//
// The queue is owned by the scheduler and accessed only under its lock.
package queue

import "container/heap"

type item struct {
	id    string
	score float64
	seq   uint64
	index int
}

type items []*item

func (h items) Len() int { return len(h) }

func (h items) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].seq < h[j].seq
}

func (h items) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *items) Push(x any) {
	it := x.(*item)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *items) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// Queue is an indexed max-heap of (task ID, score) pairs.
type Queue struct {
	heap items
	byID map[string]*item
	seq  uint64
}

// New creates an empty Queue.
func New() *Queue {
	return &Queue{byID: make(map[string]*item)}
}

// Push inserts a task with the given score, or updates the score if the
// task is already queued.
func (q *Queue) Push(id string, score float64) {
	if it, ok := q.byID[id]; ok {
		it.score = score
		heap.Fix(&q.heap, it.index)
		return
	}
	q.seq++
	it := &item{id: id, score: score, seq: q.seq}
	q.byID[id] = it
	heap.Push(&q.heap, it)
}

// Pop removes and returns the highest-scored task ID.
func (q *Queue) Pop() (id string, score float64, ok bool) {
	if len(q.heap) == 0 {
		return "", 0, false
	}
	it := heap.Pop(&q.heap).(*item)
	delete(q.byID, it.id)
	return it.id, it.score, true
}

// Remove deletes a queued task by ID. Returns false if it was not queued.
func (q *Queue) Remove(id string) bool {
	it, ok := q.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&q.heap, it.index)
	delete(q.byID, id)
	return true
}

// Contains reports whether the task is currently queued.
func (q *Queue) Contains(id string) bool {
	_, ok := q.byID[id]
	return ok
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	return len(q.heap)
}

// Reset empties the queue. Used by snapshot import.
func (q *Queue) Reset() {
	q.heap = nil
	q.byID = make(map[string]*item)
}
