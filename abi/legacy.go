// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"encoding/json"
	"errors"
	"fmt"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

type legacyField struct {
	Type            string
	Name            string
	Constant        bool
	Payable         bool
	StateMutability string
	Anonymous       bool
	Inputs          []ethabi.Argument
	Outputs         []ethabi.Argument
}

// mutability derives the state mutability from the pre-0.5 flags when the
// entry does not state it.
func (f *legacyField) mutability() string {
	switch {
	case f.StateMutability != "":
		return f.StateMutability
	case f.Payable:
		return "payable"
	case f.Constant:
		return "view"
	default:
		return "nonpayable"
	}
}

// ParseLegacy parses the ABI text with the legacy dialect only.
func ParseLegacy(data []byte) (*ABI, error) {
	var fields []legacyField
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	abi := newABI(Legacy)
	for _, field := range fields {
		switch field.Type {
		case "constructor":
			if abi.constructor != nil {
				return nil, errors.New("only single constructor is allowed")
			}
			ctor := ethabi.NewMethod("", "", ethabi.Constructor, field.mutability(), field.Constant, field.Payable, field.Inputs, nil)
			abi.constructor = newMethod(&ctor)
		// empty defaults to function
		case "function", "":
			if field.Name == "" {
				return nil, errors.New("function without name")
			}
			if _, dup := abi.nameToMethod[field.Name]; dup {
				return nil, fmt.Errorf("overloaded function %q", field.Name)
			}
			m := ethabi.NewMethod(field.Name, field.Name, ethabi.Function, field.mutability(), field.Constant, field.Payable, field.Inputs, field.Outputs)
			abi.addMethod(newMethod(&m))
		case "fallback":
			if abi.fallback != nil {
				return nil, errors.New("only single fallback is allowed")
			}
			fb := ethabi.NewMethod("", "", ethabi.Fallback, field.mutability(), field.Constant, field.Payable, nil, nil)
			abi.fallback = newMethod(&fb)
		case "event":
			if _, dup := abi.nameToEvent[field.Name]; dup {
				return nil, fmt.Errorf("overloaded event %q", field.Name)
			}
			e := ethabi.NewEvent(field.Name, field.Name, field.Anonymous, field.Inputs)
			abi.addEvent(newEvent(&e))
		default:
			return nil, fmt.Errorf("unsupported entry type %q", field.Type)
		}
	}
	abi.sort()
	return abi, nil
}
