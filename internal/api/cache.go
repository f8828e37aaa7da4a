package api

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// estimateCache remembers token counts per (counter, text) pair.
type estimateCache struct {
	lru *lru.Cache[string, int]
}

func newEstimateCache(size int) (*estimateCache, error) {
	if size <= 0 {
		size = 1024
	}
	c, err := lru.New[string, int](size)
	if err != nil {
		return nil, err
	}
	return &estimateCache{lru: c}, nil
}

func cacheKey(counter, text string) string {
	sum := sha256.Sum256([]byte(text))
	return counter + ":" + hex.EncodeToString(sum[:])
}

func (c *estimateCache) get(counter, text string) (int, bool) {
	return c.lru.Get(cacheKey(counter, text))
}

func (c *estimateCache) add(counter, text string, tokens int) {
	c.lru.Add(cacheKey(counter, text), tokens)
}

func (c *estimateCache) len() int {
	return c.lru.Len()
}
