package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// ErrBackendTripped is returned while the circuit breaker skips a failing backend
var ErrBackendTripped = errors.New("speech backend temporarily disabled after repeated failures")

// BreakerSynthesizer stops calling a remote backend after consecutive
// failures and lets a single request through once the timeout has passed
type BreakerSynthesizer struct {
	inner Synthesizer
	cb    *gobreaker.CircuitBreaker
}

// BreakerSettings tune the circuit breaker
type BreakerSettings struct {
	MaxFailures uint32
	Timeout     time.Duration
}

// DefaultBreakerSettings trips after three failures in a row for thirty seconds
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{MaxFailures: 3, Timeout: 30 * time.Second}
}

// NewBreaker wraps inner with the default breaker settings
func NewBreaker(inner Synthesizer) *BreakerSynthesizer {
	return NewBreakerWithSettings(inner, DefaultBreakerSettings())
}

// NewBreakerWithSettings wraps inner with a circuit breaker
func NewBreakerWithSettings(inner Synthesizer, s BreakerSettings) *BreakerSynthesizer {
	return &BreakerSynthesizer{
		inner: inner,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    inner.Name(),
			Timeout: s.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= s.MaxFailures
			},
			IsSuccessful: func(err error) bool {
				// a cancelled utterance says nothing about the backend
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("Speech backend %s: %s -> %s", name, from, to)
			},
		}),
	}
}

// Synthesize calls the wrapped synthesizer unless the breaker is open
func (b *BreakerSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Synthesize(ctx, text)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w", b.inner.Name(), ErrBackendTripped)
	}
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

// State returns the breaker state
func (b *BreakerSynthesizer) State() gobreaker.State {
	return b.cb.State()
}

// Name returns the wrapped provider name
func (b *BreakerSynthesizer) Name() string {
	return b.inner.Name()
}

// IsAvailable reports the wrapped provider's availability
func (b *BreakerSynthesizer) IsAvailable() error {
	return b.inner.IsAvailable()
}
