package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// ESpeakConfig holds configuration for espeak-ng audio generation
type ESpeakConfig struct {
	Voice     string // Voice variant (e.g., "en-us", "en-us+f3", "en-gb")
	Speed     int    // Speech speed in words per minute (default: 140)
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
	WordGap   int    // Gap between words in 10ms units (default: 0)
}

// DefaultConfig returns the default configuration for the English voice
func DefaultConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Voice:     "en-us",
		Speed:     140,
		Pitch:     50,
		Amplitude: 100,
		WordGap:   0,
	}
}

// ESpeak provides an interface to the espeak-ng text-to-speech engine
type ESpeak struct {
	config *ESpeakConfig
}

// NewESpeak creates a new ESpeak instance with the given configuration
func NewESpeak(config *ESpeakConfig) (*ESpeak, error) {
	// Check if espeak-ng is installed
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}

	if config == nil {
		config = DefaultConfig()
	}

	return &ESpeak{config: config}, nil
}

// Synthesize renders text to a WAV clip
func (e *ESpeak) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "espeak-ng", e.args(text)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("no audio data received from espeak-ng")
	}

	return stdout.Bytes(), nil
}

func (e *ESpeak) args(text string) []string {
	args := []string{
		"-v", e.config.Voice, // Voice selection
		"-s", fmt.Sprintf("%d", e.config.Speed),
		"-p", fmt.Sprintf("%d", e.config.Pitch),
		"-a", fmt.Sprintf("%d", e.config.Amplitude),
	}

	if e.config.WordGap > 0 {
		args = append(args, "-g", fmt.Sprintf("%d", e.config.WordGap))
	}

	return append(args, "--stdout", text)
}

// Name returns the provider name
func (e *ESpeak) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (e *ESpeak) IsAvailable() error {
	return checkESpeakInstalled()
}

// SetVoice updates the voice variant
func (e *ESpeak) SetVoice(voice string) {
	e.config.Voice = voice
}

// SetSpeed updates the speech speed
func (e *ESpeak) SetSpeed(speed int) {
	if speed < 80 {
		speed = 80
	} else if speed > 450 {
		speed = 450
	}
	e.config.Speed = speed
}

// SetPitch updates the pitch (0-99, 50 is default)
func (e *ESpeak) SetPitch(pitch int) {
	if pitch < 0 {
		pitch = 0
	} else if pitch > 99 {
		pitch = 99
	}
	e.config.Pitch = pitch
}

// SetAmplitude updates the volume/amplitude (0-200, 100 is default)
func (e *ESpeak) SetAmplitude(amplitude int) {
	if amplitude < 0 {
		amplitude = 0
	} else if amplitude > 200 {
		amplitude = 200
	}
	e.config.Amplitude = amplitude
}

// SetWordGap updates the gap between words in 10ms units
func (e *ESpeak) SetWordGap(gap int) {
	if gap < 0 {
		gap = 0
	}
	e.config.WordGap = gap
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// ListVoices returns English voice variants suited to young listeners
func ListVoices() []string {
	return []string{
		"en-us",    // Default American English voice
		"en-gb",    // British English
		"en-us+f2", // Female voice 2
		"en-us+f3", // Female voice 3
		"en-us+f4", // Female voice 4
		"en-us+m1", // Male voice 1
		"en-us+m3", // Male voice 3
	}
}
