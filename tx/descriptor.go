// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tx holds the unsigned transaction descriptors produced for
// contract deployments and method calls.
package tx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/abikit/options"
)

var (
	// ErrGasLimitNotFound is returned when a transaction needs a gas limit
	// and none was given.
	ErrGasLimitNotFound = errors.New("tx: gas limit not found")
	// ErrGasPriceNotFound is returned when a transaction needs a gas price
	// and none was given.
	ErrGasPriceNotFound = errors.New("tx: gas price not found")
	// ErrNonceNotFound is returned when a transaction needs a nonce and none
	// was given.
	ErrNonceNotFound = errors.New("tx: nonce not found")
)

type descriptorBody struct {
	To       *common.Address
	Data     []byte
	Value    *big.Int
	GasLimit *uint64
	GasPrice *big.Int
	ChainID  *big.Int
	Nonce    *uint64
	From     *common.Address
}

// presence bits of the optional numeric fields in the RLP form, where zero
// and absent would otherwise share one encoding
const (
	hasGasLimit uint = 1 << iota
	hasGasPrice
	hasChainID
	hasNonce
)

type descriptorRLP struct {
	Present  uint
	To       *common.Address `rlp:"nil"`
	Data     []byte
	Value    *big.Int
	GasLimit uint64
	GasPrice *big.Int
	ChainID  *big.Int
	Nonce    uint64
	From     *common.Address `rlp:"nil"`
}

// Descriptor is an unsigned transaction: a contract creation when To is nil,
// a call otherwise. Accessors return copies, a Descriptor never changes once
// built.
type Descriptor struct {
	body descriptorBody
}

// To returns the destination, nil for contract creation.
func (d *Descriptor) To() *common.Address {
	if d.body.To == nil {
		return nil
	}
	cpy := *d.body.To
	return &cpy
}

// Data returns the call data or init code.
func (d *Descriptor) Data() []byte {
	return append([]byte(nil), d.body.Data...)
}

// Value returns the transferred value, zero when not given.
func (d *Descriptor) Value() *big.Int {
	if d.body.Value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(d.body.Value)
}

// GasLimit returns the gas limit if given.
func (d *Descriptor) GasLimit() *uint64 {
	if d.body.GasLimit == nil {
		return nil
	}
	cpy := *d.body.GasLimit
	return &cpy
}

// GasPrice returns the gas price if given.
func (d *Descriptor) GasPrice() *big.Int {
	if d.body.GasPrice == nil {
		return nil
	}
	return new(big.Int).Set(d.body.GasPrice)
}

// ChainID returns the chain id if given.
func (d *Descriptor) ChainID() *big.Int {
	if d.body.ChainID == nil {
		return nil
	}
	return new(big.Int).Set(d.body.ChainID)
}

// Nonce returns the nonce if given.
func (d *Descriptor) Nonce() *uint64 {
	if d.body.Nonce == nil {
		return nil
	}
	cpy := *d.body.Nonce
	return &cpy
}

// From returns the sender if given.
func (d *Descriptor) From() *common.Address {
	if d.body.From == nil {
		return nil
	}
	cpy := *d.body.From
	return &cpy
}

// IsCreatingContract return if this descriptor is going to create a contract.
func (d *Descriptor) IsCreatingContract() bool {
	return d.body.To == nil
}

// WithChainID create a new descriptor copy with chain id changed.
func (d *Descriptor) WithChainID(id *big.Int) *Descriptor {
	newDesc := *d
	if id == nil {
		newDesc.body.ChainID = nil
	} else {
		newDesc.body.ChainID = new(big.Int).Set(id)
	}
	return &newDesc
}

// WithNonce create a new descriptor copy with nonce changed.
func (d *Descriptor) WithNonce(nonce uint64) *Descriptor {
	newDesc := *d
	newDesc.body.Nonce = &nonce
	return &newDesc
}

// Options returns the transport fields as an option set.
func (d *Descriptor) Options() *options.Options {
	return &options.Options{
		From:     d.From(),
		To:       d.To(),
		Value:    d.Value(),
		GasLimit: d.GasLimit(),
		GasPrice: d.GasPrice(),
		ChainID:  d.ChainID(),
		Nonce:    d.Nonce(),
	}
}

// Unsigned converts the descriptor into a go-ethereum legacy transaction.
// Gas limit, gas price and nonce must be present.
func (d *Descriptor) Unsigned() (*types.Transaction, error) {
	if d.body.GasLimit == nil {
		return nil, ErrGasLimitNotFound
	}
	if d.body.GasPrice == nil {
		return nil, ErrGasPriceNotFound
	}
	if d.body.Nonce == nil {
		return nil, ErrNonceNotFound
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    *d.body.Nonce,
		GasPrice: d.GasPrice(),
		Gas:      *d.body.GasLimit,
		To:       d.To(),
		Value:    d.Value(),
		Data:     d.Data(),
	}), nil
}

// SigningHash returns the hash to be signed by the sender, EIP-155 replay
// protected when the chain id is present.
func (d *Descriptor) SigningHash() (common.Hash, error) {
	tx, err := d.Unsigned()
	if err != nil {
		return common.Hash{}, err
	}
	if d.body.ChainID == nil {
		return types.HomesteadSigner{}.Hash(tx), nil
	}
	return types.NewEIP155Signer(d.ChainID()).Hash(tx), nil
}

// EncodeRLP implements rlp.Encoder.
func (d *Descriptor) EncodeRLP(w io.Writer) error {
	enc := descriptorRLP{
		To:       d.body.To,
		Data:     d.body.Data,
		Value:    d.Value(),
		GasPrice: new(big.Int),
		ChainID:  new(big.Int),
		From:     d.body.From,
	}
	if d.body.GasLimit != nil {
		enc.Present |= hasGasLimit
		enc.GasLimit = *d.body.GasLimit
	}
	if d.body.GasPrice != nil {
		enc.Present |= hasGasPrice
		enc.GasPrice = d.body.GasPrice
	}
	if d.body.ChainID != nil {
		enc.Present |= hasChainID
		enc.ChainID = d.body.ChainID
	}
	if d.body.Nonce != nil {
		enc.Present |= hasNonce
		enc.Nonce = *d.body.Nonce
	}
	return rlp.Encode(w, &enc)
}

// DecodeRLP implements rlp.Decoder.
func (d *Descriptor) DecodeRLP(s *rlp.Stream) error {
	var dec descriptorRLP
	if err := s.Decode(&dec); err != nil {
		return err
	}
	if dec.Present&^(hasGasLimit|hasGasPrice|hasChainID|hasNonce) != 0 {
		return fmt.Errorf("tx: unknown descriptor fields %#x", dec.Present)
	}
	body := descriptorBody{
		To:    dec.To,
		Data:  dec.Data,
		Value: dec.Value,
		From:  dec.From,
	}
	if dec.Present&hasGasLimit != 0 {
		body.GasLimit = &dec.GasLimit
	}
	if dec.Present&hasGasPrice != 0 {
		body.GasPrice = dec.GasPrice
	}
	if dec.Present&hasChainID != 0 {
		body.ChainID = dec.ChainID
	}
	if dec.Present&hasNonce != 0 {
		body.Nonce = &dec.Nonce
	}
	*d = Descriptor{body}
	return nil
}

type descriptorJSON struct {
	From     *common.Address `json:"from,omitempty"`
	To       *common.Address `json:"to"`
	Data     hexutil.Bytes   `json:"data"`
	Value    *hexutil.Big    `json:"value"`
	GasLimit *hexutil.Uint64 `json:"gasLimit,omitempty"`
	GasPrice *hexutil.Big    `json:"gasPrice,omitempty"`
	ChainID  *hexutil.Big    `json:"chainId,omitempty"`
	Nonce    *hexutil.Uint64 `json:"nonce,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&descriptorJSON{
		From:     d.body.From,
		To:       d.body.To,
		Data:     d.body.Data,
		Value:    (*hexutil.Big)(d.Value()),
		GasLimit: (*hexutil.Uint64)(d.body.GasLimit),
		GasPrice: (*hexutil.Big)(d.body.GasPrice),
		ChainID:  (*hexutil.Big)(d.body.ChainID),
		Nonce:    (*hexutil.Uint64)(d.body.Nonce),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var dj descriptorJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return err
	}
	*d = Descriptor{descriptorBody{
		To:       dj.To,
		Data:     dj.Data,
		Value:    (*big.Int)(dj.Value),
		GasLimit: (*uint64)(dj.GasLimit),
		GasPrice: (*big.Int)(dj.GasPrice),
		ChainID:  (*big.Int)(dj.ChainID),
		Nonce:    (*uint64)(dj.Nonce),
		From:     dj.From,
	}}
	return nil
}

func (d *Descriptor) String() string {
	var to string
	if d.body.To == nil {
		to = "nil"
	} else {
		to = d.body.To.String()
	}
	return fmt.Sprintf(`
		(To:	%v
		 Value:	%v
		 Data:	0x%x
		 %v)`, to, d.Value(), d.body.Data, d.Options())
}
