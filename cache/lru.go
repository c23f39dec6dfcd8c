// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache provides the in-memory caches shared by contracts.
package cache

import lru "github.com/hashicorp/golang-lru"

// LRU is a typed view over a golang-lru cache.
type LRU[K comparable, V any] struct {
	c *lru.Cache
}

// NewLRU creates an LRU holding at most maxSize entries.
// maxSize must be positive.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{c}, nil
}

// GetOrLoad returns the value of key, calling load on a miss. Load errors
// are returned as is and nothing is stored.
// cached reports whether the value came from the cache.
func (l *LRU[K, V]) GetOrLoad(key K, load func(K) (V, error)) (value V, cached bool, err error) {
	if v, ok := l.c.Get(key); ok {
		return v.(V), true, nil
	}
	if value, err = load(key); err != nil {
		return
	}
	l.c.Add(key, value)
	return value, false, nil
}

// Contains reports whether key is cached without updating its recency.
func (l *LRU[K, V]) Contains(key K) bool { return l.c.Contains(key) }

// Len returns the number of cached entries.
func (l *LRU[K, V]) Len() int { return l.c.Len() }

// Purge drops every entry.
func (l *LRU[K, V]) Purge() { l.c.Purge() }
