// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package options

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"
)

// fileOptions is the YAML layout. Numbers are strings so that both decimal
// and 0x-prefixed hex are accepted for 256-bit quantities.
type fileOptions struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Value    string `yaml:"value"`
	GasLimit string `yaml:"gasLimit"`
	GasPrice string `yaml:"gasPrice"`
	ChainID  string `yaml:"chainId"`
	Nonce    string `yaml:"nonce"`
}

// Load reads an options set from a YAML file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes an options set from YAML.
//
//	to: 0x7567d83b7b8d80addcb281a71d54fc7b3364ffed
//	value: 1000000000000000000
//	gasLimit: 0x5208
func Parse(data []byte) (*Options, error) {
	var f fileOptions
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	var (
		o   Options
		err error
	)
	if o.From, err = parseAddress("from", f.From); err != nil {
		return nil, err
	}
	if o.To, err = parseAddress("to", f.To); err != nil {
		return nil, err
	}
	if o.Value, err = parseBig("value", f.Value); err != nil {
		return nil, err
	}
	if o.GasPrice, err = parseBig("gasPrice", f.GasPrice); err != nil {
		return nil, err
	}
	if o.ChainID, err = parseBig("chainId", f.ChainID); err != nil {
		return nil, err
	}
	if o.GasLimit, err = parseUint64("gasLimit", f.GasLimit); err != nil {
		return nil, err
	}
	if o.Nonce, err = parseUint64("nonce", f.Nonce); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

func parseAddress(field, s string) (*common.Address, error) {
	if s == "" {
		return nil, nil
	}
	if !common.IsHexAddress(s) {
		return nil, fmt.Errorf("options: invalid %s address %q", field, s)
	}
	addr := common.HexToAddress(s)
	return &addr, nil
}

// ParseQuantity parses a decimal or 0x-prefixed hex unsigned 256-bit number.
func ParseQuantity(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = uint256.FromHex("0x" + strings.TrimLeft(s[2:], "0"))
		if errors.Is(err, uint256.ErrEmptyNumber) {
			return new(big.Int), nil
		}
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, err
	}
	return v.ToBig(), nil
}

func parseBig(field, s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := ParseQuantity(s)
	if err != nil {
		return nil, fmt.Errorf("options: invalid %s %q: %w", field, s, err)
	}
	return v, nil
}

func parseUint64(field, s string) (*uint64, error) {
	v, err := parseBig(field, s)
	if err != nil || v == nil {
		return nil, err
	}
	if !v.IsUint64() {
		return nil, fmt.Errorf("options: %s overflows uint64", field)
	}
	u := v.Uint64()
	return &u, nil
}
