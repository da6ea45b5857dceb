package cli

import (
	"codeberg.org/snonux/speakabc/internal/audio"
	"codeberg.org/snonux/speakabc/internal/flashcard"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	ListLetters bool
	ListModels  bool
	ClearCache  bool

	// Card flags
	Lowercase bool
	Chain     bool
	Peek      int

	// Gesture flags
	HoldMs  int
	MovePx  float64
	SwipePx float64

	// Speech flags
	Speech   string
	CacheDir string
	NoCache  bool
	Player   string

	// espeak-ng flags
	ESpeakVoice string
	ESpeakSpeed int

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Gemini flags
	GeminiModel string
	GeminiVoice string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	a := audio.DefaultProviderConfig()
	c := flashcard.DefaultConfig()

	return &Flags{
		Lowercase:         c.Lowercase,
		Chain:             c.ChainWord,
		Peek:              c.PeekDepth,
		HoldMs:            int(c.Gesture.Hold.Milliseconds()),
		MovePx:            c.Gesture.Move,
		SwipePx:           c.Gesture.Swipe,
		Speech:            a.Provider,
		CacheDir:          a.CacheDir,
		ESpeakVoice:       a.ESpeakVoice,
		ESpeakSpeed:       a.ESpeakSpeed,
		OpenAIModel:       a.OpenAIModel,
		OpenAIVoice:       a.OpenAIVoice,
		OpenAISpeed:       a.OpenAISpeed,
		OpenAIInstruction: a.OpenAIInstruction,
		GeminiModel:       a.GeminiModel,
		GeminiVoice:       a.GeminiVoice,
	}
}
