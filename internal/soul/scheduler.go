package soul

import (
	"log"
	"time"
)

// task is a named callback on a fixed interval.
type task struct {
	name     string
	interval time.Duration
	callback func()
	lastRun  time.Time
	enabled  bool
}

func (t *task) due() bool {
	if !t.enabled {
		return false
	}
	return time.Since(t.lastRun) >= t.interval
}

// run stamps lastRun before the callback so a slow or panicking task
// cannot run hot on every tick.
func (t *task) run() {
	t.lastRun = time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[SOUL] task=%s panic: %v", t.name, r)
		}
	}()
	t.callback()
}

// TaskInfo is a read-only snapshot of a scheduled task.
type TaskInfo struct {
	Name      string
	Interval  time.Duration
	Enabled   bool
	LastRun   time.Time
	UntilNext time.Duration
}

// Scheduler runs named tasks at fixed intervals. It owns no clock of
// its own: the host loop calls Tick as often as it likes and due tasks
// fire inline, in registration order.
type Scheduler struct {
	tasks map[string]*task
	order []string
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[string]*task)}
}

// Add registers (or replaces) a task. The first run comes one full
// interval after registration, never immediately.
func (s *Scheduler) Add(name string, interval time.Duration, fn func()) {
	if _, exists := s.tasks[name]; !exists {
		s.order = append(s.order, name)
	}
	s.tasks[name] = &task{
		name:     name,
		interval: interval,
		callback: fn,
		lastRun:  time.Now(),
		enabled:  true,
	}
}

// Remove deletes a task. Unknown names are ignored.
func (s *Scheduler) Remove(name string) {
	if _, ok := s.tasks[name]; !ok {
		return
	}
	delete(s.tasks, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Enable turns a task back on.
func (s *Scheduler) Enable(name string) {
	if t, ok := s.tasks[name]; ok {
		t.enabled = true
	}
}

// Disable stops a task from firing. It stays registered.
func (s *Scheduler) Disable(name string) {
	if t, ok := s.tasks[name]; ok {
		t.enabled = false
	}
}

// Tick runs every due task. Call it regularly from the main loop.
func (s *Scheduler) Tick() {
	for _, name := range s.order {
		if t := s.tasks[name]; t.due() {
			t.run()
		}
	}
}

// RunNow forces a task to run immediately, enabled or not.
func (s *Scheduler) RunNow(name string) {
	if t, ok := s.tasks[name]; ok {
		t.run()
	}
}

// TaskInfo reports a task's schedule state.
func (s *Scheduler) TaskInfo(name string) (TaskInfo, bool) {
	t, ok := s.tasks[name]
	if !ok {
		return TaskInfo{}, false
	}
	until := t.interval - time.Since(t.lastRun)
	if until < 0 {
		until = 0
	}
	return TaskInfo{
		Name:      t.name,
		Interval:  t.interval,
		Enabled:   t.enabled,
		LastRun:   t.lastRun,
		UntilNext: until,
	}, true
}

// Tasks lists every task in registration order.
func (s *Scheduler) Tasks() []TaskInfo {
	infos := make([]TaskInfo, 0, len(s.order))
	for _, name := range s.order {
		if info, ok := s.TaskInfo(name); ok {
			infos = append(infos, info)
		}
	}
	return infos
}
