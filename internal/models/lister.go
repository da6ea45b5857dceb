package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// Catalog holds model IDs by purpose
type Catalog struct {
	Speech []string
	Chat   []string
}

// Categorize sorts model IDs into speech and chat models. Everything else
// is dropped.
func Categorize(ids []string) Catalog {
	var c Catalog
	for _, id := range ids {
		switch {
		case strings.Contains(id, "tts") || strings.Contains(id, "audio"):
			c.Speech = append(c.Speech, id)
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat"):
			c.Chat = append(c.Chat, id)
		}
	}
	sort.Strings(c.Speech)
	sort.Strings(c.Chat)
	return c
}

// ListAvailableModels prints the speech and chat models for the API key
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .speakabc.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	Print(w, Categorize(ids))

	return nil
}

// Print writes a catalog in the --list-models format
func Print(w io.Writer, c Catalog) {
	fmt.Fprintln(w, "Available OpenAI Models:")
	fmt.Fprintln(w, "\nText-to-Speech (TTS) Models (--openai-model):")
	if len(c.Speech) == 0 {
		fmt.Fprintln(w, "  No TTS models found")
	}
	for _, model := range c.Speech {
		fmt.Fprintf(w, "  %s\n", model)
	}

	fmt.Fprintln(w, "\nChat Models (phonetic explanations):")
	if len(c.Chat) > 10 {
		// Show only relevant models
		relevant := 0
		for _, model := range c.Chat {
			if strings.Contains(model, "gpt-4o") {
				fmt.Fprintf(w, "  %s\n", model)
				relevant++
			}
		}
		fmt.Fprintf(w, "  ... and %d more models\n", len(c.Chat)-relevant)
		return
	}
	for _, model := range c.Chat {
		fmt.Fprintf(w, "  %s\n", model)
	}
}
