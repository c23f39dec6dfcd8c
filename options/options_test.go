// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package options_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/abikit/options"
)

var (
	addrA = common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	addrB = common.HexToAddress("0x0000000000000000000000000000456e65726779")
)

func TestMergeRightBias(t *testing.T) {
	base := &options.Options{
		To:       &addrA,
		Value:    big.NewInt(1),
		GasLimit: options.Uint64(21000),
	}
	override := &options.Options{
		To:       &addrB,
		GasPrice: big.NewInt(7),
	}

	merged := options.Merge(base, override)

	assert.Equal(t, addrB, *merged.To)
	assert.Equal(t, big.NewInt(7), merged.GasPrice)
	assert.Equal(t, big.NewInt(1), merged.Value)
	assert.Equal(t, uint64(21000), *merged.GasLimit)
	assert.Nil(t, merged.ChainID)
	assert.Nil(t, merged.From)
	assert.Nil(t, merged.Nonce)
}

func TestMergeDoesNotAlias(t *testing.T) {
	base := &options.Options{To: &addrA, Value: big.NewInt(5), Nonce: options.Uint64(1)}
	merged := options.Merge(base, nil)

	merged.Value.SetInt64(99)
	*merged.To = addrB
	*merged.Nonce = 2

	assert.Equal(t, big.NewInt(5), base.Value)
	assert.Equal(t, addrA, *base.To)
	assert.Equal(t, uint64(1), *base.Nonce)
}

func TestMergeNil(t *testing.T) {
	merged := options.Merge(nil, nil)
	require.NotNil(t, merged)
	assert.True(t, merged.IsEmpty())
	assert.Equal(t, "{}", merged.String())
}

func randomOptions(f *fuzz.Fuzzer) *options.Options {
	var (
		o       options.Options
		present [7]bool
		addrs   [2]common.Address
		nums    [3]int64
		uints   [2]uint64
	)
	f.Fuzz(&present)
	f.Fuzz(&addrs)
	f.Fuzz(&nums)
	f.Fuzz(&uints)
	if present[0] {
		o.From = &addrs[0]
	}
	if present[1] {
		o.To = &addrs[1]
	}
	if present[2] {
		o.Value = big.NewInt(nums[0])
	}
	if present[3] {
		o.GasPrice = big.NewInt(nums[1])
	}
	if present[4] {
		o.ChainID = big.NewInt(nums[2])
	}
	if present[5] {
		o.GasLimit = &uints[0]
	}
	if present[6] {
		o.Nonce = &uints[1]
	}
	return &o
}

func TestMergeAssociative(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 200 {
		a, b, c := randomOptions(f), randomOptions(f), randomOptions(f)
		left := options.Merge(options.Merge(a, b), c)
		right := options.Merge(a, options.Merge(b, c))
		assert.Equal(t, left, right)
	}
}

func TestParse(t *testing.T) {
	o, err := options.Parse([]byte(`
to: 0x7567d83b7b8d80addcb281a71d54fc7b3364ffed
value: 1000000000000000000
gasLimit: 0x5208
gasPrice: "0x0"
chainId: 1
`))
	require.NoError(t, err)
	assert.Equal(t, addrA, *o.To)
	assert.Equal(t, "1000000000000000000", o.Value.String())
	assert.Equal(t, uint64(21000), *o.GasLimit)
	assert.Equal(t, 0, o.GasPrice.Sign())
	assert.Equal(t, big.NewInt(1), o.ChainID)
	assert.Nil(t, o.From)
	assert.Nil(t, o.Nonce)
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		"to: 0x1234",
		"value: abc",
		"gasLimit: 0x10000000000000000",
		"gasLimit: 0",
		"value: [1, 2]",
	} {
		_, err := options.Parse([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (*options.Options)(nil).Validate())
	assert.Error(t, (&options.Options{Value: big.NewInt(-1)}).Validate())
	assert.NoError(t, (&options.Options{Value: big.NewInt(0)}).Validate())
}
