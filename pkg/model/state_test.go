package model

import "testing"

func TestTaskStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to TaskStatus
		want     bool
	}{
		{TaskStatusPending, TaskStatusReady, true},
		{TaskStatusPending, TaskStatusCancelled, true},
		{TaskStatusPending, TaskStatusRunning, false},
		{TaskStatusReady, TaskStatusRunning, true},
		{TaskStatusReady, TaskStatusCompleted, false},
		{TaskStatusRunning, TaskStatusCompleted, true},
		{TaskStatusRunning, TaskStatusFailed, true},
		{TaskStatusRunning, TaskStatusCancelled, true},
		{TaskStatusRunning, TaskStatusPending, false},
		// Retry path.
		{TaskStatusFailed, TaskStatusPending, true},
		{TaskStatusFailed, TaskStatusReady, false},
		// Terminal states go nowhere else.
		{TaskStatusCompleted, TaskStatusPending, false},
		{TaskStatusCancelled, TaskStatusPending, false},
		// Reserved PAUSED edges.
		{TaskStatusPending, TaskStatusPaused, true},
		{TaskStatusPaused, TaskStatusPending, true},
		{TaskStatusPaused, TaskStatusRunning, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTaskStatusIsTerminal(t *testing.T) {
	terminal := []TaskStatus{TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s.IsTerminal() = false, want true", s)
		}
	}
	live := []TaskStatus{TaskStatusPending, TaskStatusReady, TaskStatusRunning, TaskStatusPaused}
	for _, s := range live {
		if s.IsTerminal() {
			t.Errorf("%s.IsTerminal() = true, want false", s)
		}
	}
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
	}{
		{"LOW", PriorityLow},
		{"NORMAL", PriorityNormal},
		{"HIGH", PriorityHigh},
		{"CRITICAL", PriorityCritical},
		{"", PriorityNormal},
		{"bogus", PriorityNormal},
	}
	for _, c := range cases {
		if got := ParsePriority(c.in); got != c.want {
			t.Errorf("ParsePriority(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	if PriorityCritical.String() != "CRITICAL" {
		t.Errorf("PriorityCritical.String() = %q", PriorityCritical.String())
	}
}
