// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package options holds the transport level transaction options a contract
// call is built with. Every field is optional; nil means absent.
package options

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Options is an immutable set of optional transaction fields.
type Options struct {
	From     *common.Address
	To       *common.Address
	Value    *big.Int
	GasLimit *uint64
	GasPrice *big.Int
	ChainID  *big.Int
	Nonce    *uint64
}

// Merge combines base with override. For each field the override wins when
// present, otherwise the base value is kept. Neither input is modified and the
// result shares no pointers with them. Nil inputs are treated as empty sets.
func Merge(base, override *Options) *Options {
	var b, o Options
	if base != nil {
		b = *base
	}
	if override != nil {
		o = *override
	}
	return &Options{
		From:     copyAddress(pick(o.From, b.From)),
		To:       copyAddress(pick(o.To, b.To)),
		Value:    copyBig(pick(o.Value, b.Value)),
		GasLimit: copyUint64(pick(o.GasLimit, b.GasLimit)),
		GasPrice: copyBig(pick(o.GasPrice, b.GasPrice)),
		ChainID:  copyBig(pick(o.ChainID, b.ChainID)),
		Nonce:    copyUint64(pick(o.Nonce, b.Nonce)),
	}
}

func pick[T any](override, base *T) *T {
	if override != nil {
		return override
	}
	return base
}

// Copy returns a deep copy. A nil receiver yields an empty set.
func (o *Options) Copy() *Options {
	return Merge(o, nil)
}

// WithTo returns a copy with To replaced.
func (o *Options) WithTo(to *common.Address) *Options {
	return Merge(o, &Options{To: to})
}

// IsEmpty returns whether no field is present.
func (o *Options) IsEmpty() bool {
	return o == nil || *o == Options{}
}

// Validate checks that numeric fields are not negative.
func (o *Options) Validate() error {
	if o == nil {
		return nil
	}
	for name, v := range map[string]*big.Int{"value": o.Value, "gasPrice": o.GasPrice, "chainId": o.ChainID} {
		if v != nil && v.Sign() < 0 {
			return fmt.Errorf("options: negative %s", name)
		}
	}
	if o.GasLimit != nil && *o.GasLimit == 0 {
		return errors.New("options: zero gasLimit")
	}
	return nil
}

func (o *Options) String() string {
	if o.IsEmpty() {
		return "{}"
	}
	var parts []string
	add := func(k string, v fmt.Stringer) { parts = append(parts, k+"="+v.String()) }
	if o.From != nil {
		add("from", o.From)
	}
	if o.To != nil {
		add("to", o.To)
	}
	if o.Value != nil {
		add("value", o.Value)
	}
	if o.GasLimit != nil {
		parts = append(parts, fmt.Sprintf("gasLimit=%d", *o.GasLimit))
	}
	if o.GasPrice != nil {
		add("gasPrice", o.GasPrice)
	}
	if o.ChainID != nil {
		add("chainId", o.ChainID)
	}
	if o.Nonce != nil {
		parts = append(parts, fmt.Sprintf("nonce=%d", *o.Nonce))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func copyAddress(a *common.Address) *common.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

func copyBig(b *big.Int) *big.Int {
	if b == nil {
		return nil
	}
	return new(big.Int).Set(b)
}

func copyUint64(u *uint64) *uint64 {
	if u == nil {
		return nil
	}
	cpy := *u
	return &cpy
}

// Uint64 is a helper returning a pointer to v.
func Uint64(v uint64) *uint64 { return &v }

// Address is a helper returning a pointer to a.
func Address(a common.Address) *common.Address { return &a }
