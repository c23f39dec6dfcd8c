// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/vechain/abikit/abi"
	"github.com/vechain/abikit/options"
	"github.com/vechain/abikit/tx"
)

// Intermediate is a built transaction still bound to the function it calls,
// so that results can be decoded and the transaction finalized for signing.
type Intermediate struct {
	contract *Contract
	method   *abi.Method
	desc     *tx.Descriptor
	opts     *options.Options
}

// Prepare builds a call of the named function, see Method.
func (c *Contract) Prepare(name string, params []any, extraData []byte, opts *options.Options) (*Intermediate, error) {
	m, desc, err := c.method(name, params, extraData, opts)
	countBuild("method", err)
	if err != nil {
		return nil, err
	}
	return &Intermediate{c, m, desc, options.Merge(c.opts, opts)}, nil
}

// PrepareDeploy builds the creation transaction, see Deploy.
func (c *Contract) PrepareDeploy(bytecode []byte, params []any, extraData []byte, opts *options.Options) (*Intermediate, error) {
	desc, err := c.Deploy(bytecode, params, extraData, opts)
	if err != nil {
		return nil, err
	}
	return &Intermediate{c, c.desc.abi.Constructor(), desc, options.Merge(c.opts, opts)}, nil
}

// Descriptor returns the built transaction descriptor.
func (i *Intermediate) Descriptor() *tx.Descriptor {
	return i.desc
}

// Method returns the called function name, "constructor" for deployments
// and "fallback" or "receive" for the special functions.
func (i *Intermediate) Method() string {
	switch {
	case i.desc.IsCreatingContract():
		return "constructor"
	case !i.method.ID().IsEmpty():
		return i.method.Name()
	case i.method == i.contract.desc.abi.Receive():
		return receiveName
	default:
		return fallbackName
	}
}

// Options returns the merged options the transaction was built with.
func (i *Intermediate) Options() *options.Options {
	return i.opts.Copy()
}

// DecodeResult decodes the output of executing the call. Revert data is
// reported as an error carrying the revert reason.
func (i *Intermediate) DecodeResult(output []byte) (map[string]any, error) {
	if i.desc.IsCreatingContract() {
		return nil, errors.New("contract: deployment has no result")
	}
	values, err := i.method.DecodeOutput(output)
	if err == nil {
		return values, nil
	}
	if reason, ok := abi.RevertReason(i.contract.desc.abi, output); ok {
		return nil, fmt.Errorf("contract: execution reverted: %s", reason)
	}
	return nil, err
}

// Transaction finalizes the descriptor into an unsigned legacy transaction
// with the given nonce. Gas limit and gas price must have been resolved.
func (i *Intermediate) Transaction(nonce uint64) (*types.Transaction, error) {
	return i.desc.WithNonce(nonce).Unsigned()
}
