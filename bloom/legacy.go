// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bloom

import (
	"fmt"
	"iter"
	"math"
)

// MaxLegacyK is the largest probe count a legacy bloom supports.
const MaxLegacyK = 16

// LegacyBloom is the 2048 bit bloom carried by vechain block headers. Each
// item sets K bits taken from consecutive 16 bit words of its blake2b-256
// digest. Unlike LogBloom, the probe count travels next to the bits.
type LegacyBloom struct {
	bits [LogBloomLength]byte
	k    int
}

// LegacyK returns the probe count a vechain header bloom uses for itemCount
// items.
func LegacyK(itemCount int) int {
	k := int(math.Round(float64(logBloomBits) / float64(itemCount) * math.Ln2))
	return min(max(k, 1), MaxLegacyK)
}

// NewLegacyBloom creates an empty legacy bloom probing k bits per item.
func NewLegacyBloom(k int) (*LegacyBloom, error) {
	if k < 1 || k > MaxLegacyK {
		return nil, fmt.Errorf("bloom: k must be in [1, %d], got %d", MaxLegacyK, k)
	}
	return &LegacyBloom{k: k}, nil
}

// LegacyFromBytes adopts the bits of a header bloom built with k probes.
func LegacyFromBytes(k int, b []byte) (*LegacyBloom, error) {
	if len(b) != LogBloomLength {
		return nil, fmt.Errorf("bloom: want %d bytes, got %d", LogBloomLength, len(b))
	}
	bloom, err := NewLegacyBloom(k)
	if err != nil {
		return nil, err
	}
	copy(bloom.bits[:], b)
	return bloom, nil
}

// K returns the probe count.
func (b *LegacyBloom) K() int {
	return b.k
}

// Bytes returns a copy of the bloom bits.
func (b *LegacyBloom) Bytes() []byte {
	return append([]byte(nil), b.bits[:]...)
}

// Add adds item into bloom.
func (b *LegacyBloom) Add(item []byte) {
	for index, bit := range b.probes(item) {
		b.bits[index] |= bit
	}
}

// Test tests if item contained. (false positive)
func (b *LegacyBloom) Test(item []byte) bool {
	for index, bit := range b.probes(item) {
		if b.bits[index]&bit == 0 {
			return false
		}
	}
	return true
}

// probes yields the byte index and bit mask of each of the k bits of item.
// Bit d lives in byte d/8, counted from the front.
func (b *LegacyBloom) probes(item []byte) iter.Seq2[int, byte] {
	digest := blake2b256(item)
	return func(yield func(int, byte) bool) {
		for i := range b.k {
			d := (uint(digest[2*i])<<8 | uint(digest[2*i+1])) % logBloomBits
			if !yield(int(d/8), byte(1)<<(d%8)) {
				return
			}
		}
	}
}
