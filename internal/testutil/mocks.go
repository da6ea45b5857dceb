package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// MockEngine mocks a speech engine. Utterances only finish when the test
// calls Complete.
type MockEngine struct {
	EngineName   string
	AvailableErr error
	StartErrors  map[string]error

	mu      sync.Mutex
	Calls   []string
	started []string
	done    func()
}

// NewMockEngine creates an available mock engine
func NewMockEngine() *MockEngine {
	return &MockEngine{EngineName: "mock", StartErrors: map[string]error{}}
}

// Start records the utterance and keeps its completion callback
func (m *MockEngine) Start(text string, done func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, fmt.Sprintf("START %s", text))
	if err, ok := m.StartErrors[text]; ok {
		return err
	}
	m.started = append(m.started, text)
	m.done = done
	return nil
}

// Stop records the call and forgets the pending completion
func (m *MockEngine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, "STOP")
	m.done = nil
}

// Name returns the engine name
func (m *MockEngine) Name() string {
	return m.EngineName
}

// IsAvailable returns AvailableErr
func (m *MockEngine) IsAvailable() error {
	return m.AvailableErr
}

// Started returns the texts passed to Start, in order
func (m *MockEngine) Started() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.started...)
}

// Stops returns the number of Stop calls
func (m *MockEngine) Stops() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == "STOP" {
			n++
		}
	}
	return n
}

// Complete finishes the current utterance naturally. It reports false when
// nothing is playing.
func (m *MockEngine) Complete() bool {
	m.mu.Lock()
	done := m.done
	m.done = nil
	m.mu.Unlock()

	if done == nil {
		return false
	}
	done()
	return true
}

// StaleCompletion returns the completion callback of the current utterance
// without clearing it, so a test can fire it after the utterance was
// superseded.
func (m *MockEngine) StaleCompletion() func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

// MockTimer is a timer armed on a MockScheduler
type MockTimer struct {
	Delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// Stop disarms the timer. It reports whether the timer was still armed.
func (t *MockTimer) Stop() bool {
	armed := !t.stopped && !t.fired
	t.stopped = true
	return armed
}

// Armed reports whether the timer can still fire
func (t *MockTimer) Armed() bool {
	return !t.stopped && !t.fired
}

// Fire runs the callback regardless of state, as a late timer would
func (t *MockTimer) Fire() {
	t.fired = true
	t.fn()
}

// MockScheduler hands out timers that fire only when the test says so
type MockScheduler struct {
	Timers []*MockTimer
}

// AfterFunc arms a mock timer and returns its stop function
func (s *MockScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := &MockTimer{Delay: d, fn: f}
	s.Timers = append(s.Timers, t)
	return t.Stop
}

// Last returns the most recently armed timer
func (s *MockScheduler) Last() *MockTimer {
	if len(s.Timers) == 0 {
		return nil
	}
	return s.Timers[len(s.Timers)-1]
}

// FireArmed fires every timer that is still armed and returns how many fired
func (s *MockScheduler) FireArmed() int {
	n := 0
	for _, t := range s.Timers {
		if t.Armed() {
			t.Fire()
			n++
		}
	}
	return n
}

// MockSynthesizer mocks a speech clip synthesizer
type MockSynthesizer struct {
	SynthName    string
	Data         []byte
	Errors       map[string]error
	AvailableErr error

	mu    sync.Mutex
	Calls []string
}

// Synthesize returns Data for text or the configured error
func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errors[text]; ok {
		return nil, err
	}
	if m.Data == nil {
		return nil, errors.New("no mock data")
	}
	return m.Data, nil
}

// Name returns the synthesizer name
func (m *MockSynthesizer) Name() string {
	return m.SynthName
}

// IsAvailable returns AvailableErr
func (m *MockSynthesizer) IsAvailable() error {
	return m.AvailableErr
}

// CallCount returns the number of Synthesize calls
func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// TestDataGenerator generates test data
type TestDataGenerator struct{}

// GenerateMP3Data generates mock mp3 audio data
func (g *TestDataGenerator) GenerateMP3Data() []byte {
	// Simple mock MP3 frame header
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}

// GenerateWAVData generates a minimal RIFF prefix
func (g *TestDataGenerator) GenerateWAVData() []byte {
	return []byte("RIFF\x24\x00\x00\x00WAVEfmt ")
}
