// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package artifact loads contract ABIs and creation code from compiler
// output: a bare ABI array, a Hardhat/Truffle artifact or a Foundry artifact.
package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Format names the layout an artifact was read from.
type Format string

const (
	FormatABI     Format = "abi"
	FormatHardhat Format = "hardhat"
	FormatFoundry Format = "foundry"
)

// Artifact is the ABI and creation code of a compiled contract.
type Artifact struct {
	Name             string
	Format           Format
	ABI              json.RawMessage
	Bytecode         []byte
	DeployedBytecode []byte
}

// ErrNoBytecode is returned by RequireBytecode for interfaces and abstract
// contracts.
var ErrNoBytecode = errors.New("artifact: no bytecode")

// Load reads an artifact file. The contract name defaults to the file name.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if a.Name == "" {
		a.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return a, nil
}

type code struct {
	hex    string
	object bool
}

// UnmarshalJSON accepts "0x.." (Hardhat) and {"object":"0x.."} (Foundry).
func (c *code) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		c.hex, c.object = obj.Object, true
		return nil
	}
	return json.Unmarshal(data, &c.hex)
}

func (c *code) decode() ([]byte, error) {
	s := strings.TrimPrefix(strings.TrimSpace(c.hex), "0x")
	if s == "" {
		return nil, nil
	}
	if strings.Contains(s, "__") {
		return nil, errors.New("bytecode has unresolved library links")
	}
	return hexutil.Decode("0x" + s)
}

type artifactJSON struct {
	ContractName     string          `json:"contractName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         *code           `json:"bytecode"`
	DeployedBytecode *code           `json:"deployedBytecode"`
}

// Parse parses artifact content.
func Parse(data []byte) (*Artifact, error) {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		if !json.Valid(data) {
			return nil, errors.New("artifact: invalid json")
		}
		return &Artifact{Format: FormatABI, ABI: json.RawMessage(data)}, nil
	}

	var aj artifactJSON
	if err := json.Unmarshal(data, &aj); err != nil {
		return nil, fmt.Errorf("artifact: %w", err)
	}
	if len(aj.ABI) == 0 || !bytes.HasPrefix(bytes.TrimSpace(aj.ABI), []byte("[")) {
		return nil, errors.New("artifact: no abi array")
	}

	a := &Artifact{
		Name:   aj.ContractName,
		Format: FormatHardhat,
		ABI:    aj.ABI,
	}
	var err error
	if aj.Bytecode != nil {
		if aj.Bytecode.object {
			a.Format = FormatFoundry
		}
		if a.Bytecode, err = aj.Bytecode.decode(); err != nil {
			return nil, fmt.Errorf("artifact: bytecode: %w", err)
		}
	}
	if aj.DeployedBytecode != nil {
		if a.DeployedBytecode, err = aj.DeployedBytecode.decode(); err != nil {
			return nil, fmt.Errorf("artifact: deployed bytecode: %w", err)
		}
	}
	return a, nil
}

// RequireBytecode returns the creation code, failing when the artifact has
// none.
func (a *Artifact) RequireBytecode() ([]byte, error) {
	if len(a.Bytecode) == 0 {
		return nil, ErrNoBytecode
	}
	return a.Bytecode, nil
}
