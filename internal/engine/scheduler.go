package engine

import "time"

type taskKind int

const (
	taskSafeReveal    taskKind = iota // Pick to level complete
	taskDeadReveal                    // Pick to death notice
	taskDeathSequence                 // Death notice to reveal-all
	taskDismiss                       // Notice auto-dismiss
)

// task is a one-shot deferred action. Its fields are fixed when it is
// scheduled and checked against the session when it fires.
type task struct {
	due  time.Duration
	seq  uint64
	kind taskKind

	round    uint64
	level    int // 1-based level the pick was made on
	position int
	noticeID int
}

// scheduler is a manual clock with an ordered set of tasks.
type scheduler struct {
	now   time.Duration
	seq   uint64
	tasks []task
}

func (s *scheduler) schedule(delay time.Duration, t task) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t.due = s.now + delay
	t.seq = s.seq
	s.tasks = append(s.tasks, t)
}

// advance moves the clock forward by d and runs every task that falls due,
// ordered by due time then scheduling order. Tasks scheduled while running
// fire in the same call if they fall due before the new time.
func (s *scheduler) advance(d time.Duration, run func(task)) {
	if d < 0 {
		d = 0
	}
	target := s.now + d

	for {
		i := s.next(target)
		if i < 0 {
			break
		}
		t := s.tasks[i]
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		s.now = t.due
		run(t)
	}
	s.now = target
}

// next returns the index of the earliest task due at or before target, or -1.
func (s *scheduler) next(target time.Duration) int {
	best := -1
	for i, t := range s.tasks {
		if t.due > target {
			continue
		}
		if best < 0 || t.due < s.tasks[best].due ||
			(t.due == s.tasks[best].due && t.seq < s.tasks[best].seq) {
			best = i
		}
	}
	return best
}

func (s *scheduler) pending() int {
	return len(s.tasks)
}
