package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Speech", flags.Speech, "auto"},
		{"Chain", flags.Chain, true},
		{"Lowercase", flags.Lowercase, false},
		{"Peek", flags.Peek, 2},
		{"HoldMs", flags.HoldMs, 450},
		{"MovePx", flags.MovePx, 10.0},
		{"SwipePx", flags.SwipePx, 50.0},
		{"ESpeakVoice", flags.ESpeakVoice, "en-us"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
		{"OpenAISpeed", flags.OpenAISpeed, 0.9},
		{"GeminiVoice", flags.GeminiVoice, "Kore"},
		{"NoCache", flags.NoCache, false},
		{"ListLetters", flags.ListLetters, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	if flags.CacheDir == "" {
		t.Error("Expected a default cache directory")
	}
}

func TestPrintLetterTable(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintLetterTable(&buf, false)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 27 {
		t.Fatalf("Expected header plus 26 rows, got %d lines", len(lines))
	}
	for _, want := range []string{"Letter", "A is for Apple", "Z is for Zebra", "/æ/"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q", want)
		}
	}

	buf.Reset()
	PrintLetterTable(&buf, true)
	if !strings.Contains(buf.String(), "  a  ") && !strings.Contains(buf.String(), " a ") {
		t.Error("Expected lower case letters")
	}
}

func firstLetter(t *testing.T, out string) string {
	t.Helper()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("Expected table rows, got %q", out)
	}
	return strings.Fields(lines[1])[0]
}

func TestListLettersUsesConfiguredCase(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name  string
		setup func(t *testing.T)
		want  string
	}{
		{"default", func(t *testing.T) {}, "A"},
		{"config key", func(t *testing.T) { viper.Set("card.lowercase", true) }, "a"},
		{"environment", func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			t.Setenv("SPEAKABC_CARD_LOWERCASE", "true")
			InitConfig("")
		}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			tt.setup(t)

			var buf bytes.Buffer
			if err := ListLetters(&buf); err != nil {
				t.Fatalf("ListLetters() error = %v", err)
			}
			if got := firstLetter(t, buf.String()); got != tt.want {
				t.Errorf("first letter = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListLettersInvalidConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("card.peek", 9)

	var buf bytes.Buffer
	if err := ListLetters(&buf); err == nil {
		t.Error("Expected error for invalid configuration")
	}
}

func TestParseLetter(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"a", 0, false},
		{"A", 0, false},
		{"z", 25, false},
		{" M ", 12, false},
		{"", 0, true},
		{"ab", 0, true},
		{"1", 0, true},
		{"ä", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseLetter(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLetter(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLetter(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}
