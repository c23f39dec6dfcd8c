// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"fmt"
	"strconv"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// UnpackRevert resolves the abi-encoded revert reason, either an
// Error(string) message or a Panic(uint256) code.
func UnpackRevert(data []byte) (string, error) {
	return ethabi.UnpackRevert(data)
}

// RevertReason explains revert data using the built-in reasons first and the
// custom errors declared in the table next. ok is false when neither matches.
func RevertReason(a *ABI, data []byte) (reason string, ok bool) {
	if msg, err := UnpackRevert(data); err == nil {
		return msg, true
	}
	if a == nil {
		return "", false
	}
	name, values, err := a.UnpackError(data)
	if err != nil {
		return "", false
	}
	return formatCall(name, values), true
}

func formatCall(name string, values map[string]any) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i := 0; ; i++ {
		v, ok := values[strconv.Itoa(i)]
		if !ok {
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, FormatValue(v))
	}
	b.WriteByte(')')
	return b.String()
}
