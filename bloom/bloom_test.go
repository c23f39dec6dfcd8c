// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bloom

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Filter = (*LogBloom)(nil)
	_ Filter = (*LegacyBloom)(nil)
)

func TestKeccak256(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("hello"), make([]byte, 300)} {
		assert.Equal(t, crypto.Keccak256Hash(data), common.Hash(Keccak256(data)))
	}
	assert.Equal(t, crypto.Keccak256Hash([]byte("ab")), common.Hash(Keccak256([]byte("a"), []byte("b"))))
}

func TestLogBloom(t *testing.T) {
	var bloom LogBloom
	for i := range 100 {
		bloom.Add(fmt.Appendf(nil, "%v", i))
	}
	for i := range 100 {
		assert.True(t, bloom.Test(fmt.Appendf(nil, "%v", i)))
	}

	var empty LogBloom
	assert.False(t, empty.Test([]byte("anything")))
}

func TestLogBloomMatchesHeaderBloom(t *testing.T) {
	addr := common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	topic := crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
	logs := []*types.Log{{Address: addr, Topics: []common.Hash{topic}}}

	var header types.Bloom
	header.Add(addr.Bytes())
	header.Add(topic.Bytes())

	ours := LogsBloom(logs)
	assert.Equal(t, header.Bytes(), ours.Bytes())

	adopted := FromHeader(header)
	assert.True(t, adopted.Test(addr.Bytes()))
	assert.True(t, adopted.Test(topic.Bytes()))
	assert.Equal(t, types.BloomLookup(header, topic), adopted.Test(topic.Bytes()))

	other := crypto.Keccak256Hash([]byte("Approval(address,address,uint256)"))
	assert.Equal(t, types.BloomLookup(header, other), adopted.Test(other.Bytes()))
}

func TestLogBloomText(t *testing.T) {
	var bloom LogBloom
	bloom.Add([]byte("x"))

	data, err := json.Marshal(bloom)
	require.NoError(t, err)

	var decoded LogBloom
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, bloom, decoded)
	assert.Equal(t, bloom, FromBytes(bloom.Bytes()))

	assert.Error(t, decoded.UnmarshalText([]byte("0x00")))
}

func TestFromBytesPads(t *testing.T) {
	b := FromBytes([]byte{1})
	assert.Equal(t, byte(1), b[LogBloomLength-1])
	assert.Equal(t, byte(0), b[0])
}
