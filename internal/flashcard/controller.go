package flashcard

import (
	"errors"
	"log"
	"time"

	"codeberg.org/snonux/speakabc/internal/alphabet"
	"codeberg.org/snonux/speakabc/internal/gesture"
	"codeberg.org/snonux/speakabc/internal/phonetic"
)

// Command is an explicit user command
type Command int

const (
	Previous Command = iota
	Next
	Random
	SayName
	SaySound
	ToggleBookmark
	ToggleFilter
	ToggleCase
	Stop
)

func (c Command) String() string {
	switch c {
	case Previous:
		return "Previous"
	case Next:
		return "Next"
	case Random:
		return "Random"
	case SayName:
		return "SayName"
	case SaySound:
		return "SaySound"
	case ToggleBookmark:
		return "ToggleBookmark"
	case ToggleFilter:
		return "ToggleFilter"
	case ToggleCase:
		return "ToggleCase"
	case Stop:
		return "Stop"
	default:
		return "Unknown"
	}
}

// Speaker is the audio side the controller drives
type Speaker interface {
	Speak(text string)
	SpeakChained(first, second string)
	Cancel()
	Available() bool
}

// Config holds the controller settings
type Config struct {
	Gesture   gesture.Thresholds
	Lowercase bool // start in lower case
	ChainWord bool // follow the sound with "<L> is for <Word>"
	PeekDepth int  // neighbours shown on each side
	Keys      map[string]Command
}

// DefaultConfig returns default controller configuration
func DefaultConfig() *Config {
	return &Config{
		Gesture:   gesture.DefaultThresholds(),
		ChainWord: true,
		PeekDepth: 2,
		Keys:      DefaultKeys(),
	}
}

// DefaultKeys maps key names (as reported by Fyne) to commands
func DefaultKeys() map[string]Command {
	return map[string]Command{
		"Left":   Previous,
		"Right":  Next,
		"Space":  SayName,
		"P":      SaySound,
		"R":      Random,
		"B":      ToggleBookmark,
		"F":      ToggleFilter,
		"C":      ToggleCase,
		"Escape": Stop,
	}
}

// Controller owns the deck, the current position and the gesture classifier
type Controller struct {
	config     *Config
	deck       *alphabet.Deck
	speaker    Speaker
	classifier *gesture.Classifier

	current  int
	onChange func()
}

// New creates a controller positioned on A
func New(config *Config, speaker Speaker, sched gesture.Scheduler) *Controller {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.Gesture == (gesture.Thresholds{}) {
			config.Gesture = defaults.Gesture
		}
		if config.PeekDepth < 0 {
			config.PeekDepth = 0
		}
		if config.Keys == nil {
			config.Keys = defaults.Keys
		}
	}

	if sched == nil {
		sched = gesture.ClockScheduler{}
	}

	c := &Controller{
		config:  config,
		deck:    alphabet.NewDeck(),
		speaker: speaker,
	}
	c.deck.SetLowercase(config.Lowercase)
	c.classifier = gesture.New(config.Gesture, sched, c.HandleGesture)

	return c
}

// Deck exposes the sequence model, mainly for tests
func (c *Controller) Deck() *alphabet.Deck {
	return c.deck
}

// Current returns the current base index
func (c *Controller) Current() int {
	return c.current
}

// SetOnChange registers the callback run after every state change
func (c *Controller) SetOnChange(f func()) {
	c.onChange = f
}

// PointerDown feeds a pointer-down event to the classifier
func (c *Controller) PointerDown(p gesture.Point, at time.Time) {
	c.classifier.Down(p, at)
}

// PointerMove feeds a pointer-move event to the classifier
func (c *Controller) PointerMove(p gesture.Point, at time.Time) {
	c.classifier.Move(p, at)
}

// PointerUp feeds a pointer-up event to the classifier
func (c *Controller) PointerUp(p gesture.Point, at time.Time) {
	c.classifier.Up(p, at)
}

// PointerCancel abandons the gesture in progress
func (c *Controller) PointerCancel() {
	c.classifier.Cancel()
}

// GestureState returns the classifier state, for pressed/holding feedback
func (c *Controller) GestureState() gesture.State {
	return c.classifier.State()
}

// HandleGesture applies a classified gesture. Swiping left advances, the
// same direction as the Right arrow key.
func (c *Controller) HandleGesture(g gesture.Gesture) {
	log.Printf("Gesture: %s (dx %.0f, %s)", g.Kind, g.DX(), g.Duration)

	switch g.Kind {
	case gesture.Tap:
		c.Do(SayName)
	case gesture.HoldStart:
		c.Do(SaySound)
	case gesture.SwipeLeft:
		c.Do(Next)
	case gesture.SwipeRight:
		c.Do(Previous)
	case gesture.HoldEnd, gesture.Cancel:
		c.changed()
	}
}

// HandleKey runs the command bound to key. It reports whether the key is bound.
func (c *Controller) HandleKey(key string) bool {
	cmd, ok := c.config.Keys[key]
	if !ok {
		return false
	}
	c.Do(cmd)
	return true
}

// Do executes a command
func (c *Controller) Do(cmd Command) {
	switch cmd {
	case Previous:
		c.step(-1)
	case Next:
		c.step(1)
	case Random:
		c.random()
	case SayName:
		c.sayName()
	case SaySound:
		c.saySound()
	case ToggleBookmark:
		c.toggleBookmark()
	case ToggleFilter:
		c.toggleFilter()
	case ToggleCase:
		c.deck.ToggleCase()
	case Stop:
		c.classifier.Cancel()
		c.speak(func(s Speaker) { s.Cancel() })
	}
	c.changed()
}

// GoTo moves to a base index if it is addressable
func (c *Controller) GoTo(index int) bool {
	if !c.deck.Contains(index) {
		return false
	}
	c.current = index
	c.changed()
	return true
}

func (c *Controller) step(delta int) {
	next, err := c.deck.Step(c.current, delta)
	if errors.Is(err, alphabet.ErrNotAddressable) {
		c.relocate()
		next, err = c.deck.Step(c.current, delta)
	}
	if err != nil {
		log.Printf("Navigation ignored: %v", err)
		return
	}
	c.current = next
}

func (c *Controller) random() {
	next, err := c.deck.Random()
	if err != nil {
		log.Printf("Random ignored: %v", err)
		return
	}
	c.current = next
}

func (c *Controller) toggleBookmark() {
	c.deck.ToggleBookmark(c.current)
	c.relocate()
}

func (c *Controller) toggleFilter() {
	if err := c.deck.SetFilter(!c.deck.Filter()); err != nil {
		log.Printf("Bookmarks-only mode unavailable: %v", err)
		return
	}
	c.relocate()
}

// relocate moves the current position to the nearest following addressable
// index when a filter or bookmark change left it outside the space.
func (c *Controller) relocate() {
	if c.deck.Contains(c.current) {
		return
	}
	next, err := c.deck.Following(c.current)
	if err != nil {
		log.Printf("Relocation failed: %v", err)
		return
	}
	c.current = next
}

func (c *Controller) sayName() {
	e, _ := phonetic.Lookup(c.current)
	c.speak(func(s Speaker) { s.Speak(e.Name) })
}

func (c *Controller) saySound() {
	e, _ := phonetic.Lookup(c.current)
	if c.config.ChainWord {
		c.speak(func(s Speaker) { s.SpeakChained(e.Sound, e.ExamplePhrase()) })
		return
	}
	c.speak(func(s Speaker) { s.Speak(e.Sound) })
}

func (c *Controller) speak(f func(Speaker)) {
	if c.speaker == nil {
		return
	}
	f(c.speaker)
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
