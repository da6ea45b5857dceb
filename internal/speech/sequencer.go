package speech

import (
	"log"
	"strings"
	"sync"
)

// Engine is a speech capability
type Engine interface {
	// Start begins speaking text and returns without waiting. done is called
	// at most once, when the utterance finishes on its own; a stopped
	// utterance may skip it. done must not be called from within Start.
	Start(text string, done func()) error

	// Stop silences whatever is being spoken. It is safe to call when idle.
	Stop()

	// Name returns the engine name
	Name() string

	// IsAvailable checks if the engine can speak on this system
	IsAvailable() error
}

// Option configures a Sequencer
type Option func(*Sequencer)

// WithDispatch routes completion callbacks through dispatch, e.g. fyne.Do,
// so they run on the UI thread.
func WithDispatch(dispatch func(func())) Option {
	return func(s *Sequencer) {
		if dispatch != nil {
			s.dispatch = dispatch
		}
	}
}

// WithOnIdle registers a callback invoked when an utterance or a whole chain
// finishes naturally.
func WithOnIdle(onIdle func()) Option {
	return func(s *Sequencer) {
		s.onIdle = onIdle
	}
}

// Sequencer drives an Engine so that only one utterance is in flight
type Sequencer struct {
	engine    Engine
	available bool
	dispatch  func(func())
	onIdle    func()

	mu       sync.Mutex
	gen      uint64 // identifies the live utterance
	speaking bool
	current  string
	pending  string // second half of a chain
}

// New creates a sequencer. A nil or unavailable engine makes every
// operation a silent no-op.
func New(engine Engine, opts ...Option) *Sequencer {
	s := &Sequencer{
		engine:   engine,
		dispatch: func(f func()) { f() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if engine != nil {
		if err := engine.IsAvailable(); err != nil {
			log.Printf("Speech disabled, %s unavailable: %v", engine.Name(), err)
		} else {
			s.available = true
		}
	}

	return s
}

// Available reports whether the sequencer can produce audio
func (s *Sequencer) Available() bool {
	return s.available
}

// Speaking reports whether an utterance or chain is in flight
func (s *Sequencer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// Current returns the text being spoken, if any
func (s *Sequencer) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.speaking {
		return ""
	}
	return s.current
}

// Speak stops the utterance in flight and starts text
func (s *Sequencer) Speak(text string) {
	s.SpeakChained(text, "")
}

// SpeakChained stops the utterance in flight, starts first, and starts second
// once first finishes unless another request comes in before that.
func (s *Sequencer) SpeakChained(first, second string) {
	if !s.available {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	first = strings.TrimSpace(first)
	second = strings.TrimSpace(second)
	if first == "" {
		first, second = second, ""
	}
	if first == "" {
		return
	}

	s.pending = second
	s.startLocked(first)
}

// Cancel stops any in-flight or pending utterance
func (s *Sequencer) Cancel() {
	if !s.available {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
}

func (s *Sequencer) stopLocked() {
	s.gen++
	s.pending = ""
	if s.speaking {
		s.speaking = false
		s.current = ""
		s.engine.Stop()
	}
}

func (s *Sequencer) startLocked(text string) {
	s.gen++
	gen := s.gen

	err := s.engine.Start(text, func() {
		s.dispatch(func() { s.finished(gen) })
	})
	if err != nil {
		log.Printf("Speech (%s) failed to start %q: %v", s.engine.Name(), text, err)
		s.speaking = false
		s.current = ""
		s.pending = ""
		return
	}

	s.speaking = true
	s.current = text
}

// finished handles a natural completion. Completions of superseded
// utterances are ignored.
func (s *Sequencer) finished(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.speaking {
		s.mu.Unlock()
		return
	}

	if next := s.pending; next != "" {
		s.pending = ""
		s.startLocked(next)
		if s.speaking {
			s.mu.Unlock()
			return
		}
	}

	s.speaking = false
	s.current = ""
	onIdle := s.onIdle
	s.mu.Unlock()

	if onIdle != nil {
		onIdle()
	}
}
