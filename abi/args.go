// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

// ParseArgs converts textual values, as typed on a command line, into the
// Go values the codec expects for args. Arrays are written as JSON arrays,
// e.g. `["0x01","0x02"]`.
func ParseArgs(args ethabi.Arguments, raw []string) ([]any, error) {
	if len(raw) != len(args) {
		return nil, fmt.Errorf("argument count mismatch: want %d, got %d", len(args), len(raw))
	}
	out := make([]any, len(raw))
	for i, s := range raw {
		v, err := ParseArg(args[i].Type, s)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, args[i].Type, err)
		}
		out[i] = v
	}
	return out, nil
}

// ParseJSONArgs is ParseArgs for JSON encoded values. JSON strings are
// unquoted, any other JSON value is taken verbatim.
func ParseJSONArgs(args ethabi.Arguments, raw []json.RawMessage) ([]any, error) {
	texts := make([]string, len(raw))
	for i, r := range raw {
		texts[i] = jsonText(r)
	}
	return ParseArgs(args, texts)
}

func jsonText(r json.RawMessage) string {
	var s string
	if err := json.Unmarshal(r, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(r))
}

// ParseArg converts a single textual value for the ABI type t.
func ParseArg(t ethabi.Type, s string) (any, error) {
	s = strings.TrimSpace(s)
	switch t.T {
	case ethabi.IntTy, ethabi.UintTy:
		return parseInteger(t, s)
	case ethabi.BoolTy:
		return strconv.ParseBool(s)
	case ethabi.StringTy:
		return s, nil
	case ethabi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil
	case ethabi.BytesTy:
		return hexutil.Decode(s)
	case ethabi.FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("want %d bytes, got %d", t.Size, len(b))
		}
		v := reflect.New(t.GetType()).Elem()
		reflect.Copy(v, reflect.ValueOf(b))
		return v.Interface(), nil
	case ethabi.SliceTy, ethabi.ArrayTy:
		return parseList(t, s)
	default:
		return nil, fmt.Errorf("unsupported argument type %s", t)
	}
}

func parseInteger(t ethabi.Type, s string) (any, error) {
	n, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	if t.T == ethabi.UintTy && n.Sign() < 0 {
		return nil, fmt.Errorf("negative value for %s", t)
	}
	if n.BitLen() > t.Size || (t.T == ethabi.IntTy && n.BitLen() == t.Size && !isMinInt(n, t.Size)) {
		return nil, fmt.Errorf("%s overflows %s", s, t)
	}

	typ := t.GetType()
	if typ == reflect.TypeOf(&big.Int{}) {
		return n, nil
	}
	v := reflect.New(typ).Elem()
	if t.T == ethabi.IntTy {
		v.SetInt(n.Int64())
	} else {
		v.SetUint(n.Uint64())
	}
	return v.Interface(), nil
}

// isMinInt reports whether n is -2^(size-1), the only signed value whose bit
// length equals the type size.
func isMinInt(n *big.Int, size int) bool {
	return n.Sign() < 0 && new(big.Int).Neg(n).Cmp(new(big.Int).Lsh(big.NewInt(1), uint(size-1))) == 0
}

func parseList(t ethabi.Type, s string) (any, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("invalid list %q: %w", s, err)
	}
	if t.T == ethabi.ArrayTy && len(items) != t.Size {
		return nil, fmt.Errorf("want %d elements, got %d", t.Size, len(items))
	}

	var v reflect.Value
	if t.T == ethabi.ArrayTy {
		v = reflect.New(t.GetType()).Elem()
	} else {
		v = reflect.MakeSlice(t.GetType(), len(items), len(items))
	}
	for i, item := range items {
		elem, err := ParseArg(*t.Elem, jsonText(item))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		v.Index(i).Set(reflect.ValueOf(elem))
	}
	return v.Interface(), nil
}
