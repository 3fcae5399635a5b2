// Package caching keeps fetched page HTML on disk so repeated runs against
// the same URL skip the network.
package caching

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/llm-blog-writer/internal/common"
)

// Cache is a file-based cache with a TTL. A negative TTL never expires.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if path == "" {
		return nil, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

func (c *Cache) file(url string) string {
	return filepath.Join(c.path, common.ContentHash([]byte(url))+".html")
}

// Get returns the cached page for url if present and fresh.
func (c *Cache) Get(url string) ([]byte, bool) {
	filePath := c.file(url)

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false
	}
	if c.ttl >= 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false // expired
	}

	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores the page for url.
func (c *Cache) Set(url string, data []byte) error {
	if err := os.WriteFile(c.file(url), data, 0600); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Delete drops the entry for url. Missing entries are not an error.
func (c *Cache) Delete(url string) error {
	err := os.Remove(c.file(url))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}
