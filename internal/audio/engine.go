package audio

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

const synthesisTimeout = 30 * time.Second

// ClipPlayer plays an encoded clip and blocks until it ends
type ClipPlayer interface {
	Play(ctx context.Context, data []byte) error
	IsAvailable() error
}

// ClipEngine speaks text by synthesizing a clip and playing it. It starts at
// most one utterance at a time; Start replaces whatever is running.
type ClipEngine struct {
	synth  Synthesizer
	player ClipPlayer

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

// NewEngine builds the speech engine for config
func NewEngine(config *Config) (*ClipEngine, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	synth, err := NewSynthesizer(config)
	if err != nil {
		return nil, err
	}
	return NewClipEngine(synth, NewPlayer(config.Player)), nil
}

// NewClipEngine combines a synthesizer with a player
func NewClipEngine(synth Synthesizer, player ClipPlayer) *ClipEngine {
	return &ClipEngine{synth: synth, player: player}
}

// Start begins speaking text in the background. done runs on a background
// goroutine once the clip has played, or once synthesis failed so that a
// chained utterance can still go ahead. It never runs after Stop.
func (e *ClipEngine) Start(text string, done func()) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.seq++

	go e.run(ctx, e.seq, text, done)
	return nil
}

func (e *ClipEngine) run(ctx context.Context, id uint64, text string, done func()) {
	defer e.finish(ctx, id, done)

	sctx, cancel := context.WithTimeout(ctx, synthesisTimeout)
	data, err := e.synth.Synthesize(sctx, text)
	cancel()
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		log.Printf("Speech synthesis failed for '%s' (%s): %v", text, e.synth.Name(), err)
		return
	}

	if err := e.player.Play(ctx, data); err != nil && ctx.Err() == nil {
		log.Printf("Playback failed for '%s': %v", text, err)
	}
}

func (e *ClipEngine) finish(ctx context.Context, id uint64, done func()) {
	e.mu.Lock()
	current := e.seq == id && ctx.Err() == nil
	if current {
		e.cancel = nil
	}
	e.mu.Unlock()

	if current && done != nil {
		done()
	}
}

// Stop cuts off the running utterance
func (e *ClipEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Name returns the synthesizer name
func (e *ClipEngine) Name() string {
	return e.synth.Name()
}

// IsAvailable checks both the synthesizer and the player
func (e *ClipEngine) IsAvailable() error {
	if err := e.synth.IsAvailable(); err != nil {
		return err
	}
	if err := e.player.IsAvailable(); err != nil {
		return fmt.Errorf("no playback: %w", err)
	}
	return nil
}
