// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"errors"
	"fmt"

	"github.com/vechain/abikit/tx"
)

var (
	// ErrToNotFound is returned when a call has no destination: the contract
	// has no address and the merged options carry no 'to'.
	ErrToNotFound = errors.New("contract: to not found")
	// ErrGasLimitNotFound is returned when finalizing a transaction without
	// gas limit.
	ErrGasLimitNotFound = tx.ErrGasLimitNotFound
	// ErrGasPriceNotFound is returned when finalizing a transaction without
	// gas price.
	ErrGasPriceNotFound = tx.ErrGasPriceNotFound
)

// ABIError wraps an ABI error surfaced while building a transaction.
type ABIError struct {
	Err error
}

func (e *ABIError) Error() string {
	return fmt.Sprintf("contract: %v", e.Err)
}

func (e *ABIError) Unwrap() error { return e.Err }
