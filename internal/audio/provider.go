package audio

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Synthesizer turns text into an encoded audio clip
type Synthesizer interface {
	// Synthesize returns the clip for text (mp3 or wav, see DetectFormat)
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider    string // "auto", "espeak", "openai", "gemini" or "none"
	CacheDir    string // Directory for cached clips
	EnableCache bool
	Player      string // Playback command; empty picks one for the platform

	// espeak-ng settings
	ESpeakVoice string
	ESpeakSpeed int
	ESpeakPitch int

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "ballad", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer", "verse"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string
	GeminiVoice string
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          "auto",
		CacheDir:          defaultCacheDir(),
		EnableCache:       true,
		ESpeakVoice:       "en-us",
		ESpeakSpeed:       140,
		ESpeakPitch:       50,
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "nova",
		OpenAISpeed:       0.9,
		OpenAIInstruction: "You are a friendly teacher speaking to a young child learning the English alphabet. Speak slowly and clearly. When given a single letter sound, pronounce only that sound.",
		GeminiModel:       "gemini-2.5-flash-preview-tts",
		GeminiVoice:       "Kore",
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "speakabc")
	}
	return filepath.Join(os.TempDir(), "speakabc")
}

// NewSynthesizer creates the synthesizer chain for the configured provider.
// Remote providers sit behind a circuit breaker and fall back to espeak-ng
// when it is installed. Each backend caches its own clips when enabled.
func NewSynthesizer(config *Config) (Synthesizer, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "espeak":
		return newESpeak(config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		s, err := newOpenAI(config)
		if err != nil {
			return nil, err
		}
		return withFallback(s, config), nil

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		s, err := newGemini(config)
		if err != nil {
			return nil, err
		}
		return withFallback(s, config), nil

	case "auto", "":
		return autoSynthesizer(config)

	case "none":
		return nil, fmt.Errorf("speech disabled")

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// autoSynthesizer prefers OpenAI, then Gemini, then espeak-ng
func autoSynthesizer(config *Config) (Synthesizer, error) {
	if config.OpenAIKey != "" {
		s, err := newOpenAI(config)
		if err == nil {
			return withFallback(s, config), nil
		}
		log.Printf("OpenAI speech unavailable: %v", err)
	}
	if config.GeminiKey != "" {
		s, err := newGemini(config)
		if err == nil {
			return withFallback(s, config), nil
		}
		log.Printf("Gemini speech unavailable: %v", err)
	}
	return newESpeak(config)
}

func newESpeak(config *Config) (Synthesizer, error) {
	ec := espeakConfig(config)
	s, err := NewESpeak(ec)
	if err != nil {
		return nil, err
	}
	return cached(config, s, fmt.Sprintf("espeak|%s|%d|%d", ec.Voice, ec.Speed, ec.Pitch))
}

func newOpenAI(config *Config) (Synthesizer, error) {
	s, err := NewOpenAISynthesizer(config)
	if err != nil {
		return nil, err
	}
	fp := fmt.Sprintf("openai|%s|%s|%.2f|%s", config.OpenAIModel, config.OpenAIVoice, config.OpenAISpeed, config.OpenAIInstruction)
	return cached(config, NewBreaker(s), fp)
}

func newGemini(config *Config) (Synthesizer, error) {
	s, err := NewGeminiSynthesizer(context.Background(), config)
	if err != nil {
		return nil, err
	}
	return cached(config, NewBreaker(s), fmt.Sprintf("gemini|%s|%s", config.GeminiModel, config.GeminiVoice))
}

func cached(config *Config, s Synthesizer, fingerprint string) (Synthesizer, error) {
	if !config.EnableCache || config.CacheDir == "" {
		return s, nil
	}
	return NewCachedSynthesizer(s, config.CacheDir, fingerprint)
}

func withFallback(primary Synthesizer, config *Config) Synthesizer {
	fallback, err := newESpeak(config)
	if err != nil {
		return primary
	}
	return NewProviderWithFallback(primary, fallback)
}

func espeakConfig(config *Config) *ESpeakConfig {
	c := DefaultConfig()
	if config.ESpeakVoice != "" {
		c.Voice = config.ESpeakVoice
	}
	if config.ESpeakSpeed > 0 {
		c.Speed = config.ESpeakSpeed
	}
	if config.ESpeakPitch > 0 {
		c.Pitch = config.ESpeakPitch
	}
	return c
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Synthesizer
	fallback Synthesizer
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Synthesizer) Synthesizer {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Synthesize tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Synthesize(ctx context.Context, text string) ([]byte, error) {
	data, err := p.primary.Synthesize(ctx, text)
	if err == nil {
		return data, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	log.Printf("Primary provider (%s) failed: %v. Falling back to %s",
		p.primary.Name(), err, p.fallback.Name())

	return p.fallback.Synthesize(ctx, text)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
