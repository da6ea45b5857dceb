package gesture

import (
	"math"
	"time"
)

// Kind is a classified gesture
type Kind int

const (
	Tap Kind = iota
	HoldStart
	HoldEnd
	SwipeLeft
	SwipeRight
	Cancel
)

func (k Kind) String() string {
	switch k {
	case Tap:
		return "Tap"
	case HoldStart:
		return "HoldStart"
	case HoldEnd:
		return "HoldEnd"
	case SwipeLeft:
		return "SwipeLeft"
	case SwipeRight:
		return "SwipeRight"
	case Cancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// State is the classifier state
type State int

const (
	Idle State = iota
	Pressed
	Holding
	Swiping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Pressed:
		return "Pressed"
	case Holding:
		return "Holding"
	case Swiping:
		return "Swiping"
	default:
		return "Unknown"
	}
}

// Point is a pointer coordinate in device independent pixels
type Point struct {
	X, Y float64
}

// Gesture is emitted by the classifier
type Gesture struct {
	Kind     Kind
	Start    Point
	End      Point
	Duration time.Duration // time since pointer-down; zero for HoldStart from the timer
}

// DX returns the net horizontal displacement
func (g Gesture) DX() float64 {
	return g.End.X - g.Start.X
}

// Thresholds tune the classifier
type Thresholds struct {
	Hold  time.Duration // press duration that turns a press into a hold
	Move  float64       // movement on either axis that turns a press into a swipe
	Swipe float64       // horizontal displacement a swipe needs to commit
}

// DefaultThresholds returns the thresholds used by the flashcard
func DefaultThresholds() Thresholds {
	return Thresholds{
		Hold:  450 * time.Millisecond,
		Move:  10,
		Swipe: 50,
	}
}

// Scheduler arms single-shot timers. The returned function disarms the
// timer and reports whether it was still pending.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// session is the record of one pointer interaction
type session struct {
	id        uint64
	start     Point
	startedAt time.Time
	last      Point
	stopTimer func() bool
}

func (s *session) disarm() {
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
}

// Classifier is the per-widget gesture state machine. All methods, including
// timer callbacks delivered by the Scheduler, must run on one goroutine.
type Classifier struct {
	th    Thresholds
	sched Scheduler
	emit  func(Gesture)

	state  State
	sess   *session
	nextID uint64
}

// New creates a classifier reporting gestures to emit
func New(th Thresholds, sched Scheduler, emit func(Gesture)) *Classifier {
	if emit == nil {
		emit = func(Gesture) {}
	}
	return &Classifier{th: th, sched: sched, emit: emit}
}

// Thresholds returns the configured thresholds
func (c *Classifier) Thresholds() Thresholds {
	return c.th
}

// State returns the current state
func (c *Classifier) State() State {
	return c.state
}

// Down starts a new session. A session already in progress is cancelled.
func (c *Classifier) Down(p Point, at time.Time) {
	if c.state != Idle {
		c.Cancel()
	}

	c.nextID++
	s := &session{id: c.nextID, start: p, startedAt: at, last: p}
	c.sess = s
	c.state = Pressed

	id := s.id
	s.stopTimer = c.sched.AfterFunc(c.th.Hold, func() { c.holdElapsed(id) })
}

// Move updates the pointer position of the live session
func (c *Classifier) Move(p Point, at time.Time) {
	if c.sess == nil {
		return
	}
	c.sess.last = p

	if c.state == Pressed && c.moved(p) {
		c.sess.disarm()
		c.state = Swiping
	}
}

// Up ends the live session and emits its outcome
func (c *Classifier) Up(p Point, at time.Time) {
	s := c.sess
	if s == nil {
		return
	}
	s.last = p
	s.disarm()

	state := c.state
	if state == Pressed && c.moved(p) {
		state = Swiping
	}
	c.reset()

	g := Gesture{Start: s.start, End: p, Duration: at.Sub(s.startedAt)}
	switch state {
	case Pressed:
		g.Kind = Tap
	case Holding:
		g.Kind = HoldEnd
	case Swiping:
		dx := p.X - s.start.X
		if math.Abs(dx) <= c.th.Swipe {
			return
		}
		if dx < 0 {
			g.Kind = SwipeLeft
		} else {
			g.Kind = SwipeRight
		}
	default:
		return
	}
	c.emit(g)
}

// Cancel discards the live session, e.g. when the widget goes away
func (c *Classifier) Cancel() {
	s := c.sess
	if s == nil {
		return
	}
	s.disarm()
	c.reset()
	c.emit(Gesture{Kind: Cancel, Start: s.start, End: s.last})
}

func (c *Classifier) holdElapsed(id uint64) {
	s := c.sess
	if s == nil || s.id != id || c.state != Pressed {
		return
	}
	s.stopTimer = nil
	c.state = Holding
	c.emit(Gesture{Kind: HoldStart, Start: s.start, End: s.last})
}

func (c *Classifier) moved(p Point) bool {
	dx := math.Abs(p.X - c.sess.start.X)
	dy := math.Abs(p.Y - c.sess.start.Y)
	return dx > c.th.Move || dy > c.th.Move
}

func (c *Classifier) reset() {
	c.sess = nil
	c.state = Idle
}
