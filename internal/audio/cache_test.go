package audio

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/speakabc/internal/testutil"
)

func TestCachedSynthesizer(t *testing.T) {
	dir := t.TempDir()
	gen := &testutil.TestDataGenerator{}
	inner := &testutil.MockSynthesizer{SynthName: "openai", Data: gen.GenerateMP3Data()}

	cache, err := NewCachedSynthesizer(inner, dir, "openai|tts-1|nova")
	if err != nil {
		t.Fatalf("NewCachedSynthesizer() error = %v", err)
	}
	ctx := context.Background()

	first, err := cache.Synthesize(ctx, "ay")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	second, err := cache.Synthesize(ctx, "ay")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("cached clip differs from the synthesized one")
	}
	if inner.CallCount() != 1 {
		t.Errorf("Expected 1 synthesis, got %d", inner.CallCount())
	}

	if _, err := cache.Synthesize(ctx, "bee"); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if inner.CallCount() != 2 {
		t.Errorf("Expected a new synthesis for new text, got %d calls", inner.CallCount())
	}

	// Survives a restart
	reopened, err := NewCachedSynthesizer(inner, dir, "openai|tts-1|nova")
	if err != nil {
		t.Fatalf("NewCachedSynthesizer() error = %v", err)
	}
	if _, err := reopened.Synthesize(ctx, "ay"); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if inner.CallCount() != 2 {
		t.Errorf("Expected cache hit after reopening, got %d calls", inner.CallCount())
	}

	if cache.Name() != "openai" {
		t.Errorf("Name() = %v, want openai", cache.Name())
	}
}

func TestCachedSynthesizerFingerprint(t *testing.T) {
	dir := t.TempDir()
	inner := &testutil.MockSynthesizer{SynthName: "openai", Data: []byte("ID3clip")}
	ctx := context.Background()

	nova, _ := NewCachedSynthesizer(inner, dir, "voice=nova")
	alloy, _ := NewCachedSynthesizer(inner, dir, "voice=alloy")

	if _, err := nova.Synthesize(ctx, "see"); err != nil {
		t.Fatal(err)
	}
	if _, err := alloy.Synthesize(ctx, "see"); err != nil {
		t.Fatal(err)
	}

	if inner.CallCount() != 2 {
		t.Errorf("Different voice settings must not share clips, got %d calls", inner.CallCount())
	}
}

func TestCachedSynthesizerDoesNotCacheErrors(t *testing.T) {
	inner := &testutil.MockSynthesizer{
		SynthName: "openai",
		Data:      []byte("ID3clip"),
		Errors:    map[string]error{"dee": errors.New("rate limited")},
	}
	cache, err := NewCachedSynthesizer(inner, t.TempDir(), "fp")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := cache.Synthesize(context.Background(), "dee"); err == nil {
		t.Fatal("Synthesize() expected error")
	}
	delete(inner.Errors, "dee")
	if _, err := cache.Synthesize(context.Background(), "dee"); err != nil {
		t.Errorf("Synthesize() unexpected error after recovery: %v", err)
	}
	if inner.CallCount() != 2 {
		t.Errorf("Expected 2 calls, got %d", inner.CallCount())
	}
}

func TestClearCacheAndStats(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	inner := &testutil.MockSynthesizer{SynthName: "mock", Data: []byte("ID3clip")}
	cache, _ := NewCachedSynthesizer(inner, dir, "fp")

	for _, text := range []string{"ay", "bee", "see"} {
		if _, err := cache.Synthesize(ctx, text); err != nil {
			t.Fatal(err)
		}
	}

	count, size, err := GetCacheStats(ctx, dir)
	if err != nil {
		t.Fatalf("GetCacheStats() error = %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if size != int64(3*len("ID3clip")) {
		t.Errorf("size = %d, want %d", size, 3*len("ID3clip"))
	}

	if err := ClearCache(dir); err != nil {
		t.Fatalf("ClearCache() error = %v", err)
	}
	count, _, err = GetCacheStats(ctx, dir)
	if err != nil {
		t.Fatalf("GetCacheStats() error = %v", err)
	}
	if count != 0 {
		t.Errorf("count after clear = %d, want 0", count)
	}
}

func TestCachedSynthesizerFileLayout(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	inner := &testutil.MockSynthesizer{SynthName: "mock", Data: []byte("ID3ay")}
	cache, _ := NewCachedSynthesizer(inner, dir, "fp")

	if _, err := cache.Synthesize(ctx, "ay"); err != nil {
		t.Fatal(err)
	}

	key := cache.key("ay")
	path := filepath.Join(dir, key[:2], key)
	testutil.AssertFileContent(t, path, []byte("ID3ay"))

	if err := ClearCache(dir); err != nil {
		t.Fatal(err)
	}
	testutil.AssertFileNotExists(t, path)
}

func TestCachedSynthesizerEmptyEntry(t *testing.T) {
	dir := t.TempDir()
	inner := &testutil.MockSynthesizer{SynthName: "mock", Data: []byte("ID3bee")}
	cache, _ := NewCachedSynthesizer(inner, dir, "fp")

	// A truncated clip left behind by an interrupted write
	key := cache.key("bee")
	path := filepath.Join(dir, key[:2], key)
	testutil.CreateTestFile(t, path, []byte{})

	data, err := cache.Synthesize(context.Background(), "bee")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("ID3bee")) {
		t.Errorf("Synthesize() = %q, want fresh clip", data)
	}
	if inner.CallCount() != 1 {
		t.Errorf("Expected the empty entry to be resynthesized, got %d calls", inner.CallCount())
	}
	testutil.AssertFileExists(t, path)
}

func TestClearCacheMissingDir(t *testing.T) {
	if err := ClearCache(""); err != nil {
		t.Errorf("ClearCache(\"\") error = %v", err)
	}
	if err := ClearCache(t.TempDir() + "/missing"); err != nil {
		t.Errorf("ClearCache(missing) error = %v", err)
	}
}

func TestCacheKeyTransform(t *testing.T) {
	if got := cacheKeyTransform("abcdef"); len(got) != 1 || got[0] != "ab" {
		t.Errorf("cacheKeyTransform() = %v, want [ab]", got)
	}
	if got := cacheKeyTransform("a"); len(got) != 0 {
		t.Errorf("cacheKeyTransform() = %v, want []", got)
	}
}
