// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vechain/abikit/options"
)

// Builder to make it easy to build a descriptor.
type Builder struct {
	body descriptorBody
}

// NewBuilder creates a builder seeded with the transport fields of opts.
func NewBuilder(opts *options.Options) *Builder {
	b := &Builder{}
	if opts == nil {
		return b
	}
	o := opts.Copy()
	b.body = descriptorBody{
		To:       o.To,
		Value:    o.Value,
		GasLimit: o.GasLimit,
		GasPrice: o.GasPrice,
		ChainID:  o.ChainID,
		Nonce:    o.Nonce,
		From:     o.From,
	}
	return b
}

// To set destination, nil for contract creation.
func (b *Builder) To(to *common.Address) *Builder {
	if to == nil {
		b.body.To = nil
	} else {
		cpy := *to
		b.body.To = &cpy
	}
	return b
}

// Data set call data or init code.
func (b *Builder) Data(data []byte) *Builder {
	b.body.Data = append([]byte(nil), data...)
	return b
}

// Value set value.
func (b *Builder) Value(value *big.Int) *Builder {
	b.body.Value = copyBig(value)
	return b
}

// GasLimit set gas limit.
func (b *Builder) GasLimit(gas uint64) *Builder {
	b.body.GasLimit = &gas
	return b
}

// GasPrice set gas price.
func (b *Builder) GasPrice(price *big.Int) *Builder {
	b.body.GasPrice = copyBig(price)
	return b
}

// ChainID set chain id.
func (b *Builder) ChainID(id *big.Int) *Builder {
	b.body.ChainID = copyBig(id)
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = &nonce
	return b
}

// From set sender.
func (b *Builder) From(from common.Address) *Builder {
	b.body.From = &from
	return b
}

// Build build descriptor object.
func (b *Builder) Build() *Descriptor {
	body := b.body
	body.Data = append([]byte(nil), b.body.Data...)
	if body.Value == nil {
		body.Value = new(big.Int)
	} else {
		body.Value = new(big.Int).Set(body.Value)
	}
	return &Descriptor{body: body}
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
