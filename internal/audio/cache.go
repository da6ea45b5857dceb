package audio

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// CachedSynthesizer keeps synthesized clips on disk so each letter only
// costs one remote call per voice setting
type CachedSynthesizer struct {
	inner       Synthesizer
	fingerprint string
	d           *diskv.Diskv
}

// NewCachedSynthesizer wraps inner with a clip cache under dir. fingerprint
// must change whenever a setting that affects the audio changes.
func NewCachedSynthesizer(inner Synthesizer, dir, fingerprint string) (*CachedSynthesizer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &CachedSynthesizer{
		inner:       inner,
		fingerprint: fingerprint,
		d:           openCache(dir),
	}, nil
}

func openCache(dir string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    cacheKeyTransform,
		CacheSizeMax: 4 * 1024 * 1024,
	})
}

// cacheKeyTransform uses the first two hash characters as subdirectory for
// better file system performance
func cacheKeyTransform(key string) []string {
	if len(key) < 2 {
		return []string{}
	}
	return []string{key[:2]}
}

func (c *CachedSynthesizer) key(text string) string {
	h := md5.New()
	h.Write([]byte(c.fingerprint))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Synthesize returns the cached clip or asks the wrapped synthesizer
func (c *CachedSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	key := c.key(text)
	if c.d.Has(key) {
		if data, err := c.d.Read(key); err == nil && len(data) > 0 {
			return data, nil
		}
	}

	data, err := c.inner.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.d.Write(key, data); err != nil {
		// A broken cache only costs another synthesis next time
		log.Printf("Failed to cache clip for '%s': %v", text, err)
	}
	return data, nil
}

// Name returns the wrapped provider name
func (c *CachedSynthesizer) Name() string {
	return c.inner.Name()
}

// IsAvailable reports the wrapped provider's availability
func (c *CachedSynthesizer) IsAvailable() error {
	return c.inner.IsAvailable()
}

// ClearCache removes all cached clips under dir
func ClearCache(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return openCache(dir).EraseAll()
}

// GetCacheStats returns the number of cached clips and their total size
func GetCacheStats(ctx context.Context, dir string) (fileCount int, totalSize int64, err error) {
	if dir == "" {
		return 0, 0, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}

	d := openCache(dir)
	for key := range d.Keys(ctx.Done()) {
		data, err := d.Read(key)
		if err != nil {
			return fileCount, totalSize, err
		}
		fileCount++
		totalSize += int64(len(data))
	}
	return fileCount, totalSize, ctx.Err()
}
