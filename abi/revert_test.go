// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/abikit/abi"
)

func TestUnpackRevert(t *testing.T) {
	tests := []struct {
		input  string
		expect string
		err    bool
	}{
		{"", "", true},
		{"0x08c379a1", "", true},
		{"0x08c379a00000000000000000000000000000000000000000000000000000000000000020000000000000000000000000000000000000000000000000000000000000000d72657665727420726561736f6e00000000000000000000000000000000000000", "revert reason", false},
		{"0x4e487b710000000000000000000000000000000000000000000000000000000000000000", "generic panic", false},
		{"0x4e487b7100000000000000000000000000000000000000000000000000000000000000ff", "unknown panic code: 0xff", false},
	}
	for _, tt := range tests {
		var data []byte
		if tt.input != "" {
			data = hexutil.MustDecode(tt.input)
		}
		got, err := abi.UnpackRevert(data)
		if tt.err {
			assert.Error(t, err, tt.input)
			continue
		}
		assert.NoError(t, err, tt.input)
		assert.Equal(t, tt.expect, got)
	}
}

func TestRevertReason(t *testing.T) {
	reason, ok := abi.RevertReason(nil, hexutil.MustDecode("0x4e487b710000000000000000000000000000000000000000000000000000000000000011"))
	assert.True(t, ok)
	assert.Equal(t, "arithmetic underflow or overflow", reason)

	_, ok = abi.RevertReason(nil, []byte{1, 2, 3, 4})
	assert.False(t, ok)
	_, ok = abi.RevertReason(mustParse(t, tokenABI), []byte{1, 2, 3, 4})
	assert.False(t, ok)
}
