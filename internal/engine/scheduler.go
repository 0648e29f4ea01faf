package engine

import "sort"

type scheduledAction struct {
	due    float64
	seq    uint64
	action func()
}

// Scheduler runs delayed actions against simulation time. It is advanced by
// the owning world once per step, on the same goroutine that mutates the scene.
type Scheduler struct {
	now     float64
	seq     uint64
	pending []scheduledAction
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulation time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules action to run once delay seconds have elapsed.
func (s *Scheduler) After(delay float64, action func()) {
	if action == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	s.seq++
	entry := scheduledAction{due: s.now + delay, seq: s.seq, action: action}

	i := sort.Search(len(s.pending), func(i int) bool {
		p := s.pending[i]
		return p.due > entry.due || (p.due == entry.due && p.seq > entry.seq)
	})
	s.pending = append(s.pending, scheduledAction{})
	copy(s.pending[i+1:], s.pending[i:])
	s.pending[i] = entry
}

// Advance moves time forward and runs every action that has come due, in due
// order. Actions scheduled while advancing run on a later call at the earliest.
func (s *Scheduler) Advance(deltaTime float64) {
	s.now += deltaTime

	n := 0
	for n < len(s.pending) && s.pending[n].due <= s.now {
		n++
	}
	if n == 0 {
		return
	}
	due := append([]scheduledAction(nil), s.pending[:n]...)
	s.pending = append(s.pending[:0], s.pending[n:]...)

	for _, entry := range due {
		entry.action()
	}
}

// Pending returns the number of actions not yet run.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Clear drops all pending actions.
func (s *Scheduler) Clear() {
	s.pending = nil
}
