package engine

import (
	"testing"
	"time"
)

func TestSchedulerOrder(t *testing.T) {
	var s scheduler
	var fired []int

	s.schedule(30*time.Millisecond, task{noticeID: 1})
	s.schedule(10*time.Millisecond, task{noticeID: 2})
	s.schedule(30*time.Millisecond, task{noticeID: 3})
	s.schedule(10*time.Millisecond, task{noticeID: 4})

	s.advance(time.Second, func(t task) { fired = append(fired, t.noticeID) })

	want := []int{2, 4, 1, 3}
	if len(fired) != len(want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired %v, want %v", fired, want)
		}
	}
	if s.now != time.Second {
		t.Errorf("now = %s, want 1s", s.now)
	}
}

func TestSchedulerChainedTasks(t *testing.T) {
	var s scheduler
	var at []time.Duration

	s.schedule(100*time.Millisecond, task{kind: taskDeadReveal})
	s.advance(time.Second, func(tk task) {
		at = append(at, s.now)
		if tk.kind == taskDeadReveal {
			s.schedule(200*time.Millisecond, task{kind: taskDeathSequence})
		}
	})

	if len(at) != 2 || at[0] != 100*time.Millisecond || at[1] != 300*time.Millisecond {
		t.Errorf("tasks ran at %v, want [100ms 300ms]", at)
	}
	if s.pending() != 0 {
		t.Errorf("pending = %d, want 0", s.pending())
	}
}

func TestSchedulerLeavesFutureTasks(t *testing.T) {
	var s scheduler
	s.schedule(time.Second, task{})

	ran := false
	s.advance(999*time.Millisecond, func(task) { ran = true })
	if ran || s.pending() != 1 {
		t.Fatalf("task ran early: ran = %v, pending = %d", ran, s.pending())
	}

	s.advance(-time.Second, func(task) { ran = true })
	if ran || s.now != 999*time.Millisecond {
		t.Errorf("negative advance moved the clock to %s", s.now)
	}

	s.advance(time.Millisecond, func(task) { ran = true })
	if !ran {
		t.Error("task did not run at its due time")
	}
}
