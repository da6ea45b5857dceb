package audio

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Gemini TTS returns raw 16-bit mono PCM at this rate
const geminiSampleRate = 24000

// GeminiSynthesizer implements Synthesizer with the Gemini speech models
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
	voice  string
	apiKey string
}

// NewGeminiSynthesizer creates a Gemini TTS provider
func NewGeminiSynthesizer(ctx context.Context, config *Config) (*GeminiSynthesizer, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSynthesizer{
		client: client,
		model:  config.GeminiModel,
		voice:  config.GeminiVoice,
		apiKey: config.GeminiKey,
	}, nil
}

// Synthesize generates a WAV clip
func (g *GeminiSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	log.Printf("Gemini TTS: model '%s', voice '%s', input '%s'", g.model, g.voice, text)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini TTS API error: %w", err)
	}

	pcm, err := inlineAudio(resp)
	if err != nil {
		return nil, err
	}

	return EncodeWAV(pcm, geminiSampleRate, 1, 16), nil
}

func inlineAudio(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in Gemini response")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return nil, fmt.Errorf("empty Gemini candidate")
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, fmt.Errorf("no audio data received from Gemini")
}

// Name returns the provider name
func (g *GeminiSynthesizer) Name() string {
	return "gemini"
}

// IsAvailable checks that a key is configured
func (g *GeminiSynthesizer) IsAvailable() error {
	if g.apiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
