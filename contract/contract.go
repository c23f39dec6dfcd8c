// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package contract builds transactions for, and decodes data of, a contract
// described by its ABI.
package contract

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vechain/abikit/abi"
	"github.com/vechain/abikit/cache"
	"github.com/vechain/abikit/options"
	"github.com/vechain/abikit/tx"
)

const (
	fallbackName = "fallback"
	receiveName  = "receive"

	defaultTableCacheSize = 256
)

// tables is shared by every contract built from ABI text.
var tables = mustNewABITable(defaultTableCacheSize)

func mustNewABITable(size int) *cache.ABITable {
	t, err := cache.NewABITable(size)
	if err != nil {
		panic(err)
	}
	return t
}

// Contract builds deploy and call transactions for one contract, decodes its
// call data and matches its event logs. A Contract is safe for concurrent use.
type Contract struct {
	client Client
	desc   *Descriptor
	opts   *options.Options
}

// New parses abiText and creates a contract. The address is at, else the
// 'to' of the merged client and contract options. A given at also becomes
// the 'to' of the contract options. The error matches
// abi.ErrABIInvalid when the text parses under no dialect.
func New(client Client, abiText []byte, at *common.Address, opts *options.Options) (*Contract, error) {
	table, err := tables.Get(abiText)
	if err != nil {
		return nil, err
	}
	return NewWithABI(client, table, at, opts), nil
}

// NewWithABI creates a contract over an already parsed table.
func NewWithABI(client Client, table *abi.ABI, at *common.Address, opts *options.Options) *Contract {
	var base *options.Options
	if client != nil {
		base = client.Options()
	}
	merged := options.Merge(base, opts)

	if at != nil {
		addr := *at
		merged.To = &addr
	}
	return &Contract{
		client: client,
		desc:   newDescriptor(table, merged.To),
		opts:   merged,
	}
}

// Descriptor returns the contract descriptor.
func (c *Contract) Descriptor() *Descriptor {
	return c.desc
}

// ABI returns the contract ABI table.
func (c *Contract) ABI() *abi.ABI {
	return c.desc.abi
}

// Address returns the contract address, nil when unknown.
func (c *Contract) Address() *common.Address {
	return c.desc.Address()
}

// Options returns the contract level default options.
func (c *Contract) Options() *options.Options {
	return c.opts.Copy()
}

// Deploy builds the creation transaction. The init code is
// bytecode ++ extraData ++ encoded constructor params.
func (c *Contract) Deploy(bytecode []byte, params []any, extraData []byte, opts *options.Options) (*tx.Descriptor, error) {
	desc, err := c.deploy(bytecode, params, extraData, opts)
	countBuild("deploy", err)
	return desc, err
}

func (c *Contract) deploy(bytecode []byte, params []any, extraData []byte, opts *options.Options) (*tx.Descriptor, error) {
	merged := options.Merge(c.opts, opts)

	var encoded []byte
	if ctor := c.desc.abi.Constructor(); ctor != nil {
		var err error
		if encoded, err = ctor.EncodeInput(params...); err != nil {
			return nil, &ABIError{err}
		}
	} else if len(params) > 0 {
		return nil, &ABIError{abi.ErrConstructorNotFound}
	}

	data := make([]byte, 0, len(bytecode)+len(extraData)+len(encoded))
	data = append(append(append(data, bytecode...), extraData...), encoded...)

	desc := tx.NewBuilder(merged).
		To(nil).
		Data(data).
		Build()
	return c.stamp(desc), nil
}

// Method builds a call of the named function. An empty name selects the
// fallback. The call data is selector ++ encoded params ++ extraData, or
// just extraData for fallback and receive.
func (c *Contract) Method(name string, params []any, extraData []byte, opts *options.Options) (*tx.Descriptor, error) {
	_, desc, err := c.method(name, params, extraData, opts)
	countBuild("method", err)
	return desc, err
}

func (c *Contract) method(name string, params []any, extraData []byte, opts *options.Options) (*abi.Method, *tx.Descriptor, error) {
	m, err := c.lookupMethod(name)
	if err != nil {
		return nil, nil, &ABIError{err}
	}

	var data []byte
	if m.ID().IsEmpty() {
		if len(params) > 0 {
			return nil, nil, &ABIError{&abi.EncodeParamError{
				Params: params,
				Err:    errors.New("fallback and receive take no params"),
			}}
		}
		data = append([]byte(nil), extraData...)
	} else {
		encoded, err := m.EncodeInput(params...)
		if err != nil {
			return nil, nil, &ABIError{err}
		}
		data = append(encoded, extraData...)
	}

	merged := options.Merge(c.opts, opts)
	to := c.desc.Address()
	if to == nil {
		to = merged.To
	}
	if to == nil {
		return nil, nil, ErrToNotFound
	}

	desc := tx.NewBuilder(merged).
		To(to).
		Data(data).
		Build()
	return m, c.stamp(desc), nil
}

// lookupMethod resolves name as a declared function, then as the fallback
// or receive function.
func (c *Contract) lookupMethod(name string) (*abi.Method, error) {
	if name == "" {
		name = fallbackName
	}
	table := c.desc.abi
	if m, ok := table.MethodByName(name); ok {
		return m, nil
	}
	switch name {
	case fallbackName:
		if fb := table.Fallback(); fb != nil {
			return fb, nil
		}
	case receiveName:
		if table.Dialect() != abi.Current {
			return nil, abi.ErrMethodNotSupported
		}
		if rcv := table.Receive(); rcv != nil {
			return rcv, nil
		}
	}
	return nil, &abi.MethodNotFoundError{Name: name}
}

// stamp sets the chain id of the owning client, if it has one.
func (c *Contract) stamp(desc *tx.Descriptor) *tx.Descriptor {
	if c.client == nil {
		return desc
	}
	if id := c.client.ChainID(); id != nil {
		return desc.WithChainID(id)
	}
	return desc
}
