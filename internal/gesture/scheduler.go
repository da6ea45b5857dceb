package gesture

import "time"

// ClockScheduler arms real timers. Dispatch moves the callback onto the
// thread that owns the classifier (fyne.Do in the GUI).
type ClockScheduler struct {
	Dispatch func(func())
}

// AfterFunc implements Scheduler
func (s ClockScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	dispatch := s.Dispatch
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	t := time.AfterFunc(d, func() { dispatch(f) })
	return t.Stop
}
