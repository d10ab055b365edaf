package listview

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// scrollTickMsg fires a deferred scroll flush.
type scrollTickMsg struct {
	owner *tickScheduler
	seq   uint64
}

// tickScheduler defers work onto the Bubble Tea event loop. Schedule queues
// a tea.Tick command; the model drains the queue after each Update and runs
// the callback when the matching tick message arrives.
type tickScheduler struct {
	seq     uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{pending: make(map[uint64]func())}
}

// Schedule implements dynlist.Scheduler.
func (s *tickScheduler) Schedule(delay time.Duration, fn func()) func() {
	s.seq++
	seq := s.seq
	s.pending[seq] = fn
	s.queued = append(s.queued, tea.Tick(delay, func(time.Time) tea.Msg {
		return scrollTickMsg{owner: s, seq: seq}
	}))
	return func() { delete(s.pending, seq) }
}

// drain returns the commands queued since the last call.
func (s *tickScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// fire runs the callback for msg if it belongs to s and was not cancelled.
func (s *tickScheduler) fire(msg scrollTickMsg) bool {
	if msg.owner != s {
		return false
	}
	fn, ok := s.pending[msg.seq]
	if !ok {
		return false
	}
	delete(s.pending, msg.seq)
	fn()
	return true
}

// Pending returns the number of callbacks waiting for their tick.
func (s *tickScheduler) Pending() int {
	return len(s.pending)
}
