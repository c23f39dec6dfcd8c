// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bloom provides the bloom filters used to pre-screen blocks for
// event logs.
package bloom

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Filter is a probabilistic set of byte strings. Test never reports false
// for an added item but may report true for an item never added.
type Filter interface {
	Test(item []byte) bool
}

const (
	// LogBloomLength is the byte length of an ethereum log bloom.
	LogBloomLength = 256
	logBloomBits   = LogBloomLength * 8
)

// LogBloom is the 2048 bit bloom carried by ethereum block headers and
// receipts. Each item sets three bits derived from its keccak-256 digest.
type LogBloom [LogBloomLength]byte

// FromBytes builds a LogBloom from its byte form, left padding short input.
func FromBytes(b []byte) (bloom LogBloom) {
	if len(b) > LogBloomLength {
		b = b[len(b)-LogBloomLength:]
	}
	copy(bloom[LogBloomLength-len(b):], b)
	return
}

// Parse builds the filter of a header bloom. k is zero for an ethereum log
// bloom and the probe count of a vechain legacy bloom otherwise.
func Parse(k int, b []byte) (Filter, error) {
	if k != 0 {
		return LegacyFromBytes(k, b)
	}
	if len(b) != LogBloomLength {
		return nil, fmt.Errorf("bloom: want %d bytes, got %d", LogBloomLength, len(b))
	}
	bloom := FromBytes(b)
	return &bloom, nil
}

// FromHeader adopts the bloom of a go-ethereum header or receipt.
func FromHeader(b types.Bloom) LogBloom {
	return LogBloom(b)
}

// LogsBloom folds the addresses and topics of logs into a LogBloom.
func LogsBloom(logs []*types.Log) (bloom LogBloom) {
	for _, log := range logs {
		bloom.Add(log.Address.Bytes())
		for _, topic := range log.Topics {
			bloom.Add(topic.Bytes())
		}
	}
	return
}

// Add adds item into bloom.
func (b *LogBloom) Add(item []byte) {
	b.distribute(item, func(index int, bit byte) bool {
		b[index] |= bit
		return true
	})
}

// Test tests if item contained. (false positive)
func (b *LogBloom) Test(item []byte) bool {
	return b.distribute(item, func(index int, bit byte) bool {
		return b[index]&bit == bit
	})
}

// Bytes returns the bloom bytes.
func (b *LogBloom) Bytes() []byte {
	return b[:]
}

func (b LogBloom) String() string {
	return hexutil.Encode(b[:])
}

// MarshalText implements encoding.TextMarshaler.
func (b LogBloom) MarshalText() ([]byte, error) {
	return hexutil.Bytes(b[:]).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *LogBloom) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("LogBloom", input, b[:])
}

func (b *LogBloom) distribute(item []byte, cb func(index int, bit byte) bool) bool {
	hash := Keccak256(item)
	for i := 0; i < 6; i += 2 {
		d := (uint(hash[i])<<8 | uint(hash[i+1])) % logBloomBits
		// bit 0 is the lowest bit of the last byte
		if !cb(LogBloomLength-1-int(d/8), byte(1)<<(d%8)) {
			return false
		}
	}
	return true
}
