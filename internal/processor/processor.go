package processor

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"codeberg.org/snonux/speakabc/internal/alphabet"
	"codeberg.org/snonux/speakabc/internal/audio"
	"codeberg.org/snonux/speakabc/internal/cli"
	"codeberg.org/snonux/speakabc/internal/gui"
	"codeberg.org/snonux/speakabc/internal/phonetic"
	"codeberg.org/snonux/speakabc/internal/speech"
)

// letterTimeout bounds one-shot mode, which speaks three utterances
const letterTimeout = 2 * time.Minute

// Processor handles the run modes of the application
type Processor struct {
	settings *cli.Settings
	engine   speech.Engine // nil when no speech backend could be set up
	out      io.Writer
}

// NewProcessor creates a processor and its speech engine. A backend that
// cannot be set up is logged and the processor runs silent.
func NewProcessor(settings *cli.Settings) *Processor {
	p := &Processor{settings: settings, out: os.Stdout}

	engine, err := audio.NewEngine(settings.Audio)
	if err != nil {
		log.Printf("Speech disabled: %v", err)
		return p
	}
	log.Printf("Speech backend: %s", engine.Name())
	p.engine = engine
	return p
}

// SpeakLetter says the letter name, then its sound and, if enabled, the
// "is for" phrase. It blocks until speech has finished.
func (p *Processor) SpeakLetter(ctx context.Context, arg string) error {
	index, err := cli.ParseLetter(arg)
	if err != nil {
		return err
	}
	e, _ := phonetic.Lookup(index)

	deck := alphabet.NewDeck()
	deck.SetLowercase(p.settings.Card.Lowercase)
	fmt.Fprintf(p.out, "%s  %s  /%s/  %s\n", deck.LetterAt(index), e.Name, e.IPA, e.ExamplePhrase())

	var engine speech.Engine
	tracker := &startTracker{Engine: p.engine}
	if p.engine != nil {
		engine = tracker
	}

	idle := make(chan struct{}, 1)
	seq := speech.New(engine, speech.WithOnIdle(func() {
		select {
		case idle <- struct{}{}:
		default:
		}
	}))
	if !seq.Available() {
		return fmt.Errorf("speech is not available, check --speech and the installed players")
	}

	ctx, cancel := context.WithTimeout(ctx, letterTimeout)
	defer cancel()

	if err := say(ctx, seq, tracker, idle, e.Name, ""); err != nil {
		return err
	}
	second := ""
	if p.settings.Card.ChainWord {
		second = e.ExamplePhrase()
	}
	return say(ctx, seq, tracker, idle, e.Sound, second)
}

// say speaks first and second as one chain and waits for it to finish. A
// chain that started signals idle exactly once, so the wait never sees a
// signal left over from an earlier chain.
func say(ctx context.Context, seq *speech.Sequencer, tracker *startTracker, idle chan struct{}, first, second string) error {
	select {
	case <-idle:
	default:
	}
	tracker.reset()

	seq.SpeakChained(first, second)
	if err := tracker.failed(); err != nil {
		return fmt.Errorf("failed to speak %q: %w", first, err)
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		seq.Cancel()
		return fmt.Errorf("speaking %q: %w", first, ctx.Err())
	}
}

// startTracker remembers whether the engine refused to start an utterance
type startTracker struct {
	speech.Engine

	mu  sync.Mutex
	err error
}

// Start implements speech.Engine
func (t *startTracker) Start(text string, done func()) error {
	err := t.Engine.Start(text, done)
	if err != nil {
		t.mu.Lock()
		t.err = err
		t.mu.Unlock()
	}
	return err
}

func (t *startTracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = nil
}

func (t *startTracker) failed() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// RunGUIMode opens the flashcard window and blocks until it is closed
func (p *Processor) RunGUIMode() error {
	guiConfig := &gui.Config{
		Card:      p.settings.Card,
		Engine:    p.engine,
		OpenAIKey: p.settings.Audio.OpenAIKey,
	}

	app := gui.New(guiConfig)
	app.Run()

	return nil
}
