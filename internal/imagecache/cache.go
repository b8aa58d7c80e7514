// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package imagecache provides a bounded LRU cache of decoded or
// rasterized RGBA images.
//
// Cached images are shared: callers must not modify them. Uploading one
// to a backend copies the pixels, so a cached image can back any number
// of textures.
package imagecache

import (
	"image"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of entries used when New is given a size <= 0.
const DefaultSize = 64

// Cache is a fixed-size LRU cache of images. It is safe for concurrent use.
type Cache[K comparable] struct {
	lru    *lru.Cache[K, *image.RGBA]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// New creates a cache holding at most size images.
func New[K comparable](size int) *Cache[K] {
	if size <= 0 {
		size = DefaultSize
	}
	// lru.New only fails for non-positive sizes.
	l, _ := lru.New[K, *image.RGBA](size)
	return &Cache[K]{lru: l}
}

// Get returns the cached image for key, calling load on a miss.
// Failed loads are not cached.
func (c *Cache[K]) Get(key K, load func() (*image.RGBA, error)) (*image.RGBA, error) {
	if img, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return img, nil
	}
	c.misses.Add(1)
	img, err := load()
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, img)
	return img, nil
}

// Remove drops key from the cache.
func (c *Cache[K]) Remove(key K) {
	c.lru.Remove(key)
}

// Purge empties the cache.
func (c *Cache[K]) Purge() {
	c.lru.Purge()
}

// Len returns the number of cached images.
func (c *Cache[K]) Len() int {
	return c.lru.Len()
}

// Stats returns hit and miss counters.
func (c *Cache[K]) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Len: c.lru.Len()}
}
