// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/abikit/abi"
	"github.com/vechain/abikit/log"
	"github.com/vechain/abikit/metrics"
)

var (
	logger              = log.WithContext("pkg", "cache")
	metricABICacheCount = metrics.LazyLoadCounterVec("abi_cache_count", []string{"event"})
)

// ABITable caches parsed ABI tables keyed by the keccak-256 hash of their
// text. Parsed tables are immutable, so one instance is handed to every
// contract built from the same text.
type ABITable struct {
	lru   *LRU[common.Hash, *abi.ABI]
	stats Stats
}

// NewABITable creates an ABI table cache holding at most size entries.
func NewABITable(size int) (*ABITable, error) {
	l, err := NewLRU[common.Hash, *abi.ABI](size)
	if err != nil {
		return nil, err
	}
	return &ABITable{lru: l}, nil
}

// Get returns the parsed table for text, parsing it on a miss. Parse
// failures are not cached.
func (t *ABITable) Get(text []byte) (*abi.ABI, error) {
	v, cached, err := t.lru.GetOrLoad(Key(text), func(common.Hash) (*abi.ABI, error) {
		return abi.Parse(text)
	})
	if err != nil {
		return nil, err
	}

	if cached {
		metricABICacheCount().AddWithLabel(1, map[string]string{"event": "hit"})
		if t.stats.Hit()%1000 == 0 {
			t.logStats()
		}
	} else {
		metricABICacheCount().AddWithLabel(1, map[string]string{"event": "miss"})
		t.stats.Miss()
	}
	return v, nil
}

// Contains reports whether the table for text is cached, without touching
// its recency.
func (t *ABITable) Contains(text []byte) bool {
	return t.lru.Contains(Key(text))
}

// Purge drops every cached table.
func (t *ABITable) Purge() {
	t.lru.Purge()
}

// Len returns the number of cached tables.
func (t *ABITable) Len() int {
	return t.lru.Len()
}

// Stats returns the number of hits and misses.
func (t *ABITable) Stats() (hit, miss int64) {
	_, hit, miss = t.stats.Stats()
	return
}

func (t *ABITable) logStats() {
	changed, hit, miss := t.stats.Stats()
	if !changed {
		return
	}
	logger.Debug("abi cache stats",
		"lookups", hit+miss,
		"hitrate", fmt.Sprintf("%.3f", HitRate(hit, miss)),
	)
}

// Key returns the cache key of an ABI text.
func Key(text []byte) common.Hash {
	return crypto.Keccak256Hash(text)
}
