package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAISynthesizer implements Synthesizer for OpenAI TTS
type OpenAISynthesizer struct {
	client *openai.Client
	config *Config
}

// NewOpenAISynthesizer creates a new OpenAI TTS provider
func NewOpenAISynthesizer(config *Config) (*OpenAISynthesizer, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAISynthesizer{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}, nil
}

// Synthesize generates an mp3 clip using OpenAI TTS
func (p *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	input := preprocessText(text)
	log.Printf("OpenAI TTS: model '%s', voice '%s', speed %.2f, input '%s'",
		p.config.OpenAIModel, p.config.OpenAIVoice, p.config.OpenAISpeed, input)

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          input,
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	// Add instructions for gpt-4o-mini-tts model
	if p.config.OpenAIInstruction != "" && supportsInstructions(p.config.OpenAIModel) {
		req.Instructions = p.config.OpenAIInstruction
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "does not have access to model") && supportsInstructions(p.config.OpenAIModel) {
			return nil, fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try using --openai-model tts-1-hd instead", err, p.config.OpenAIModel)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	return data, nil
}

// Name returns the provider name
func (p *OpenAISynthesizer) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAISynthesizer) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	// A test call would cost credits, so a key is enough
	return nil
}

func supportsInstructions(model string) bool {
	return model == "gpt-4o-mini-tts" || model == "gpt-4o-mini-audio-preview"
}

// preprocessText strips punctuation the TTS model would otherwise read out
// or turn into odd pauses. Letter sounds like "mmm" pass through unchanged.
func preprocessText(text string) string {
	cleaned := strings.TrimSpace(text)

	for _, punct := range []string{"\"", "(", ")", "[", "]", "{", "}", ";", ":"} {
		cleaned = strings.ReplaceAll(cleaned, punct, "")
	}

	return strings.TrimSpace(cleaned)
}
