// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/abikit/abi"
)

const counterABI = `[{"type":"function","name":"number","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}]`

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		format   Format
		contract string
		bytecode []byte
	}{
		{"bare abi", counterABI, FormatABI, "", nil},
		{"hardhat", `{"contractName":"Counter","abi":` + counterABI + `,"bytecode":"0x6080","deployedBytecode":"0x60"}`, FormatHardhat, "Counter", []byte{0x60, 0x80}},
		{"foundry", `{"abi":` + counterABI + `,"bytecode":{"object":"0x6080"},"deployedBytecode":{"object":"0x60"}}`, FormatFoundry, "", []byte{0x60, 0x80}},
		{"no prefix", `{"abi":` + counterABI + `,"bytecode":"6080"}`, FormatHardhat, "", []byte{0x60, 0x80}},
		{"interface", `{"abi":` + counterABI + `,"bytecode":"0x"}`, FormatHardhat, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.format, a.Format)
			assert.Equal(t, tt.contract, a.Name)
			assert.Equal(t, tt.bytecode, a.Bytecode)

			table, err := abi.Parse(a.ABI)
			require.NoError(t, err)
			_, ok := table.MethodByName("number")
			assert.True(t, ok)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, content := range []string{
		"broken",
		`[broken`,
		`{"bytecode":"0x6080"}`,
		`{"abi":{},"bytecode":"0x6080"}`,
		`{"abi":[],"bytecode":"0xzz"}`,
		`{"abi":[],"bytecode":"0x60__$abc$__80"}`,
	} {
		_, err := Parse([]byte(content))
		assert.Error(t, err, content)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Counter.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"abi":`+counterABI+`,"bytecode":{"object":"0x6080"}}`), 0o644))

	a, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Counter", a.Name)
	code, err := a.RequireBytecode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80}, code)

	abiOnly := filepath.Join(dir, "IERC.abi")
	require.NoError(t, os.WriteFile(abiOnly, []byte(counterABI), 0o644))
	a, err = Load(abiOnly)
	require.NoError(t, err)
	assert.Equal(t, "IERC", a.Name)
	_, err = a.RequireBytecode()
	assert.ErrorIs(t, err, ErrNoBytecode)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
