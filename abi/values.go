// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"math/big"
	"reflect"
	"strconv"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// toMap keys decoded values by position ("0", "1", ...) and, when the
// argument is named, by name as well.
func toMap(args ethabi.Arguments, values []any) map[string]any {
	out := make(map[string]any, 2*len(values))
	for i, v := range values {
		name := ""
		if i < len(args) {
			name = args[i].Name
		}
		setValue(out, i, name, v)
	}
	return out
}

func setValue(out map[string]any, pos int, name string, v any) {
	out[strconv.Itoa(pos)] = v
	if name != "" {
		out[name] = v
	}
}

// FormatValue converts a decoded value into a JSON friendly form: integers
// become decimal strings, byte sequences and hashes 0x-hex strings.
func FormatValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *big.Int:
		return x.String()
	case common.Address:
		return x.Hex()
	case common.Hash:
		return x.Hex()
	case []byte:
		return hexutil.Encode(x)
	case string, bool:
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			for i := range b {
				b[i] = byte(rv.Index(i).Uint())
			}
			return hexutil.Encode(b)
		}
		fallthrough
	case reflect.Slice:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = FormatValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Struct:
		out := make(map[string]any, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			if f := rv.Type().Field(i); f.IsExported() {
				out[f.Name] = FormatValue(rv.Field(i).Interface())
			}
		}
		return out
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return FormatValue(rv.Elem().Interface())
	}
	return v
}

// FormatValues applies FormatValue to every entry.
func FormatValues(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = FormatValue(v)
	}
	return out
}
