// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/vechain/abikit/abi"
)

// Descriptor is the parsed view of one contract: its ABI table and address.
// It is frozen once the owning Contract is returned.
type Descriptor struct {
	abi     *abi.ABI
	address *common.Address
}

func newDescriptor(table *abi.ABI, address *common.Address) *Descriptor {
	if address != nil {
		cpy := *address
		address = &cpy
	}
	return &Descriptor{table, address}
}

// ABI returns the ABI table.
func (d *Descriptor) ABI() *abi.ABI {
	return d.abi
}

// Dialect returns the dialect that parsed the ABI.
func (d *Descriptor) Dialect() abi.Dialect {
	return d.abi.Dialect()
}

// Address returns the contract address, nil when unknown.
func (d *Descriptor) Address() *common.Address {
	if d.address == nil {
		return nil
	}
	cpy := *d.address
	return &cpy
}
