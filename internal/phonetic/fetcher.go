package phonetic

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Fetcher asks OpenAI for an explanation of a letter's sound and keeps the
// answers for the rest of the session.
type Fetcher struct {
	apiKey string
	client *openai.Client

	mu    sync.Mutex
	cache map[string]string
}

// NewFetcher creates a new phonetic explanation fetcher
func NewFetcher(apiKey string) *Fetcher {
	return &Fetcher{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
		cache:  make(map[string]string),
	}
}

// Enabled reports whether an API key is configured
func (f *Fetcher) Enabled() bool {
	return f.apiKey != ""
}

// Explain returns an explanation of how the letter sounds. Answers are cached
// per letter.
func (f *Fetcher) Explain(ctx context.Context, e Entry) (string, error) {
	f.mu.Lock()
	cached, ok := f.cache[e.Letter]
	f.mu.Unlock()
	if ok {
		return cached, nil
	}

	if f.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a patient reading teacher helping a young child learn English letter sounds. Use the International Phonetic Alphabet (IPA) once, then explain in very simple words where the tongue, lips and teeth go.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(`Explain the sound of the letter '%s' as in '%s'.
1. Give the IPA symbol
2. Describe how to make the sound in two short sentences
3. Give three more simple words that start with the sound

Keep it under 80 words.`, e.Letter, e.Word),
			},
		},
		Temperature: 0.3,
		MaxTokens:   200,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from OpenAI")
	}

	explanation := strings.TrimSpace(resp.Choices[0].Message.Content)

	f.mu.Lock()
	f.cache[e.Letter] = explanation
	f.mu.Unlock()

	return explanation, nil
}
