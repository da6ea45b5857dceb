package audio

import (
	"context"
	"os"
	"testing"
)

func TestNewOpenAISynthesizer(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "missing API key",
			config: &Config{
				OpenAIKey: "",
			},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name: "valid config",
			config: &Config{
				OpenAIKey: "test-key",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewOpenAISynthesizer(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOpenAISynthesizer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && err.Error() != tt.errMsg {
				t.Errorf("NewOpenAISynthesizer() error = %v, want %v", err.Error(), tt.errMsg)
			}

			if !tt.wantErr && provider != nil {
				if provider.Name() != "openai" {
					t.Errorf("Name() = %v, want %v", provider.Name(), "openai")
				}
				if err := provider.IsAvailable(); err != nil {
					t.Errorf("IsAvailable() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestOpenAISynthesizerRejectsEmptyText(t *testing.T) {
	provider, err := NewOpenAISynthesizer(&Config{OpenAIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAISynthesizer() error = %v", err)
	}

	if _, err := provider.Synthesize(context.Background(), " "); err == nil {
		t.Error("Synthesize() expected error for empty text")
	}
}

func TestPreprocessText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  ay  ", "ay"},
		{"\"mmm\"", "mmm"},
		{"A is for Apple", "A is for Apple"},
		{"(zzz)", "zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := preprocessText(tt.input); got != tt.expected {
				t.Errorf("preprocessText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSupportsInstructions(t *testing.T) {
	if !supportsInstructions("gpt-4o-mini-tts") {
		t.Error("gpt-4o-mini-tts should support instructions")
	}
	if supportsInstructions("tts-1") {
		t.Error("tts-1 should not support instructions")
	}
}

func TestOpenAISynthesizerIntegration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set")
	}

	config := DefaultProviderConfig()
	config.OpenAIKey = apiKey
	config.OpenAIModel = "tts-1"

	provider, err := NewOpenAISynthesizer(config)
	if err != nil {
		t.Fatalf("NewOpenAISynthesizer() error = %v", err)
	}

	data, err := provider.Synthesize(context.Background(), "bee")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if DetectFormat(data) != "mp3" {
		t.Errorf("Expected mp3 output, got %s", DetectFormat(data))
	}
}
