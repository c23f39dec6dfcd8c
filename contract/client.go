// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"math/big"

	"github.com/vechain/abikit/options"
)

// Client is the chain context owning contracts. Its chain id is stamped on
// every built transaction and its options are the outermost defaults.
type Client interface {
	ChainID() *big.Int
	Options() *options.Options
}

type staticClient struct {
	chainID *big.Int
	opts    *options.Options
}

// NewClient returns a Client with a fixed chain id and default options.
// Both may be nil.
func NewClient(chainID *big.Int, opts *options.Options) Client {
	c := &staticClient{opts: opts.Copy()}
	if chainID != nil {
		c.chainID = new(big.Int).Set(chainID)
	}
	return c
}

func (c *staticClient) ChainID() *big.Int {
	if c.chainID == nil {
		return nil
	}
	return new(big.Int).Set(c.chainID)
}

func (c *staticClient) Options() *options.Options {
	return c.opts.Copy()
}
