package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bobmcallan/stocksage/internal/common"
)

// imageMarker separates the ticker prefix from the timestamp in cache file names
const imageMarker = "-price-"

// ImageCache stores rendered chart images on disk, keeping only the latest per ticker.
type ImageCache struct {
	dir    string
	logger *common.Logger
}

// NewImageCache creates an ImageCache that stores images under dir.
func NewImageCache(dir string, logger *common.Logger) *ImageCache {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("Failed to create image cache directory")
	}
	return &ImageCache{dir: dir, logger: logger}
}

// Put writes image data to disk and returns its path.
// Older images for the same ticker are removed.
func (c *ImageCache) Put(name string, data []byte) (string, error) {
	c.cleanOld(name)

	path := c.Path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write image %s: %w", name, err)
	}

	c.logger.Debug().Str("name", name).Int("bytes", len(data)).Msg("Cached chart image")
	return path, nil
}

// Get reads a cached image from disk.
func (c *ImageCache) Get(name string) ([]byte, bool) {
	data, err := os.ReadFile(c.Path(name))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Path returns the file path for a cached image.
func (c *ImageCache) Path(name string) string {
	return filepath.Join(c.dir, name)
}

// ImageName generates a cache filename for a ticker's price chart.
// Characters outside [A-Za-z0-9.-] are replaced so user input cannot escape the cache dir.
func ImageName(ticker string, now time.Time) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, ticker)
	return safe + imageMarker + now.Format("20060102-150405") + ".png"
}

// cleanOld removes older images with the same ticker prefix.
func (c *ImageCache) cleanOld(name string) {
	prefix := ""
	if idx := strings.LastIndex(name, imageMarker); idx >= 0 {
		prefix = name[:idx+len(imageMarker)]
	}
	if prefix == "" {
		return
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	var matches []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) && e.Name() != name {
			matches = append(matches, e.Name())
		}
	}
	sort.Strings(matches)

	for _, old := range matches {
		if err := os.Remove(filepath.Join(c.dir, old)); err == nil {
			c.logger.Debug().Str("file", old).Msg("Cleaned old cached image")
		}
	}
}
