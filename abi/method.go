// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"bytes"
	"errors"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// MethodID method id.
type MethodID [4]byte

// EmptyMethodID represents an empty method ID (constructor, fallback, receive).
var EmptyMethodID = MethodID{}

// IsEmpty returns true if the MethodID is empty.
func (id MethodID) IsEmpty() bool {
	return id == EmptyMethodID
}

// Method see abi.Method in go-ethereum.
type Method struct {
	id     MethodID
	method *ethabi.Method
}

func newMethod(m *ethabi.Method) *Method {
	var id MethodID
	if m.Type == ethabi.Function {
		copy(id[:], m.ID)
	}
	return &Method{id, m}
}

// ID returns method id.
func (m *Method) ID() MethodID {
	return m.id
}

// Name returns the method name. Overloaded functions of the current dialect
// carry a numeric suffix, see RawName.
func (m *Method) Name() string {
	return m.method.Name
}

// RawName returns the name as declared.
func (m *Method) RawName() string {
	return m.method.RawName
}

// Sig returns the canonical signature, e.g. "transfer(address,uint256)".
func (m *Method) Sig() string {
	return m.method.Sig
}

// Const returns if the method is const.
func (m *Method) Const() bool {
	return m.method.IsConstant()
}

// Payable returns if the method accepts value.
func (m *Method) Payable() bool {
	return m.method.IsPayable()
}

// Inputs returns the declared input arguments.
func (m *Method) Inputs() ethabi.Arguments {
	return m.method.Inputs
}

// Outputs returns the declared output arguments.
func (m *Method) Outputs() ethabi.Arguments {
	return m.method.Outputs
}

func (m *Method) String() string {
	return m.method.String()
}

// EncodeInput encode args to data, and the data is prefixed with method id.
func (m *Method) EncodeInput(args ...any) ([]byte, error) {
	data, err := m.method.Inputs.Pack(args...)
	if err != nil {
		return nil, &EncodeParamError{Params: args, Err: err}
	}

	// constructors and fallbacks have no selector to prefix
	if m.id.IsEmpty() {
		return data, nil
	}

	return append(m.id[:], data...), nil
}

// DecodeInput decodes call data into values keyed by position and name.
func (m *Method) DecodeInput(input []byte) (map[string]any, error) {
	if !m.id.IsEmpty() {
		if !bytes.HasPrefix(input, m.id[:]) {
			return nil, errors.New("input has incorrect prefix")
		}
		input = input[len(m.id):]
	}
	values, err := m.method.Inputs.Unpack(input)
	if err != nil {
		return nil, err
	}
	return toMap(m.method.Inputs, values), nil
}

// EncodeOutput encode output args to data.
func (m *Method) EncodeOutput(args ...any) ([]byte, error) {
	data, err := m.method.Outputs.Pack(args...)
	if err != nil {
		return nil, &EncodeParamError{Params: args, Err: err}
	}
	return data, nil
}

// DecodeOutput decodes return data into values keyed by position and name.
func (m *Method) DecodeOutput(output []byte) (map[string]any, error) {
	if len(output)%32 != 0 {
		return nil, errors.New("output has incorrect length")
	}
	values, err := m.method.Outputs.Unpack(output)
	if err != nil {
		return nil, err
	}
	return toMap(m.method.Outputs, values), nil
}

// ExtractMethodID extract method id from input data.
func ExtractMethodID(input []byte) (id MethodID, err error) {
	if len(input) < len(id) {
		err = errors.New("input data too short")
		return
	}
	copy(id[:], input)
	return
}
