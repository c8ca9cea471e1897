package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"globeview/internal/globe"
)

// fireMsg delivers a due continuation back to Update.
type fireMsg struct{ id uint64 }

// Scheduler runs transition continuations on the bubbletea event loop.
// AfterFunc queues a tick command; Flush hands queued ticks to the runtime
// and the resulting fireMsg runs the task inside Update.
type Scheduler struct {
	now   func() time.Time
	next  uint64
	tasks map[uint64]func()
	cmds  []tea.Cmd
}

func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now, tasks: map[uint64]func(){}}
}

func (s *Scheduler) Now() time.Time { return s.now() }

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) globe.Timer {
	s.next++
	id := s.next
	s.tasks[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg { return fireMsg{id: id} }))
	return &teaTimer{s: s, id: id}
}

// Flush returns the ticks queued since the last call.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

// Pending reports tasks that have neither fired nor been stopped.
func (s *Scheduler) Pending() int { return len(s.tasks) }

func (s *Scheduler) fire(id uint64) {
	fn, ok := s.tasks[id]
	if !ok {
		return
	}
	delete(s.tasks, id)
	fn()
}

type teaTimer struct {
	s  *Scheduler
	id uint64
}

func (t *teaTimer) Stop() bool {
	_, ok := t.s.tasks[t.id]
	delete(t.s.tasks, t.id)
	return ok
}
