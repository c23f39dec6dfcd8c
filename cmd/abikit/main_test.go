// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/abikit/abi"
	"github.com/vechain/abikit/bloom"
)

const tokenArtifact = `{
	"contractName": "Token",
	"abi": [
		{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}],"stateMutability":"nonpayable"},
		{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
		{"type":"function","name":"balanceOf","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"balance","type":"uint256"}],"stateMutability":"view"},
		{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
		{"type":"error","name":"InsufficientBalance","inputs":[{"name":"available","type":"uint256"},{"name":"required","type":"uint256"}]}
	],
	"bytecode": "0x6080604052"
}`

var (
	tokenAddr     = common.HexToAddress("0x0000000000000000000000000000456e65726779")
	bob           = common.HexToAddress("0xd3ae78222beadb038203be21ed5ce7c9b1bff602")
	transferTopic = common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
)

type env struct {
	dir      string
	artifact string
	options  string
}

func newEnv(t *testing.T) *env {
	dir := t.TempDir()
	e := &env{
		dir:      dir,
		artifact: filepath.Join(dir, "Token.json"),
		options:  filepath.Join(dir, "options.yaml"),
	}
	require.NoError(t, os.WriteFile(e.artifact, []byte(tokenArtifact), 0600))
	require.NoError(t, os.WriteFile(e.options, []byte("gasLimit: 100000\ngasPrice: 1000000000\n"), 0600))
	return e
}

// run executes the command line and returns what it printed.
func (e *env) run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	full := append([]string{"abikit", "--verbosity", "1", "--data-dir", filepath.Join(e.dir, "data"), "--chain-id", "1337"}, args...)
	err := app.Run(full)
	return out.String(), err
}

func TestRegistryCommands(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "registry", "add", "--address", tokenAddr.Hex(), "token", e.artifact)
	require.NoError(t, err)
	_, err = e.run(t, "registry", "import", e.artifact)
	require.NoError(t, err)

	out, err := e.run(t, "registry", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Token "))
	assert.Contains(t, lines[2], tokenAddr.Hex())

	require.NoError(t, ignoreOutput(e.run(t, "registry", "remove", "Token")))
	assert.Error(t, ignoreOutput(e.run(t, "registry", "remove", "Token")))
	assert.Error(t, ignoreOutput(e.run(t, "registry", "add", "bad/name", e.artifact)))
}

func TestDescribe(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "describe", "--abi", e.artifact)
	require.NoError(t, err)
	assert.Contains(t, out, "Token")
	assert.Contains(t, out, "constructor(uint256 supply)")
	assert.Contains(t, out, "transfer(address to, uint256 amount) returns (bool)")
	assert.Contains(t, out, "0xa9059cbb")
	assert.Contains(t, out, transferTopic.Hex())

	assert.Error(t, ignoreOutput(e.run(t, "describe")))
	assert.Error(t, ignoreOutput(e.run(t, "describe", "--abi", e.artifact, "--contract", "token")))
}

func TestEncodeAndDecode(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, ignoreOutput(e.run(t, "registry", "add", "--address", tokenAddr.Hex(), "token", e.artifact)))

	out, err := e.run(t, "encode", "--contract", "token", "transfer", bob.Hex(), "100")
	require.NoError(t, err)
	var res struct {
		Method string `json:"method"`
		Tx     struct {
			To      *common.Address `json:"to"`
			Data    hexutil.Bytes   `json:"data"`
			ChainID *hexutil.Big    `json:"chainId"`
		} `json:"tx"`
		Raw hexutil.Bytes `json:"raw"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "transfer", res.Method)
	assert.Equal(t, &tokenAddr, res.Tx.To)
	assert.Equal(t, int64(1337), res.Tx.ChainID.ToInt().Int64())
	assert.Empty(t, res.Raw)
	data := res.Tx.Data.String()

	out, err = e.run(t, "decode", "--contract", "token", "--data", data)
	require.NoError(t, err)
	var decoded struct {
		Method string         `json:"method"`
		Values map[string]any `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "transfer", decoded.Method)
	assert.Equal(t, bob.Hex(), decoded.Values["to"])
	assert.Equal(t, "100", decoded.Values["amount"])

	out, err = e.run(t, "decode", "--contract", "token", "--output", "--data",
		"0x00000000000000000000000000000000000000000000000000000000000003e8", "balanceOf")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "1000", decoded.Values["balance"])

	assert.Error(t, ignoreOutput(e.run(t, "encode", "--contract", "token", "transfer", "nope", "1")))
	assert.Error(t, ignoreOutput(e.run(t, "encode", "--contract", "token", "missing")))
	assert.Error(t, ignoreOutput(e.run(t, "encode", "--contract", "token", "--nonce", "1", "transfer", bob.Hex(), "1")))
	assert.Error(t, ignoreOutput(e.run(t, "decode", "--contract", "token", "--data", "0xdeadbeef")))
}

func TestDecodeRevert(t *testing.T) {
	e := newEnv(t)
	// InsufficientBalance(5, 9)
	data := "0xcf479181" +
		"0000000000000000000000000000000000000000000000000000000000000005" +
		"0000000000000000000000000000000000000000000000000000000000000009"
	out, err := e.run(t, "decode", "--abi", e.artifact, "--output", "--data", data, "balanceOf")
	require.NoError(t, err)
	var decoded struct {
		Reverted string `json:"reverted"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "InsufficientBalance(5, 9)", decoded.Reverted)
}

func TestDeploy(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "--options", e.options, "deploy", "--abi", e.artifact, "--nonce", "7", "0x10")
	require.NoError(t, err)
	var res struct {
		Method string `json:"method"`
		Tx     struct {
			To   *common.Address `json:"to"`
			Data hexutil.Bytes   `json:"data"`
		} `json:"tx"`
		Raw         hexutil.Bytes `json:"raw"`
		SigningHash *common.Hash  `json:"signingHash"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "constructor", res.Method)
	assert.Nil(t, res.Tx.To)
	assert.Equal(t, "0x6080604052"+
		"0000000000000000000000000000000000000000000000000000000000000010", res.Tx.Data.String())
	assert.NotEmpty(t, res.Raw)
	assert.NotNil(t, res.SigningHash)

	out, err = e.run(t, "deploy", "--abi", e.artifact, "--bytecode", "0x00", "1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "0x00"+
		"0000000000000000000000000000000000000000000000000000000000000001", res.Tx.Data.String())

	assert.Error(t, ignoreOutput(e.run(t, "deploy", "--abi", e.artifact)))
}

func TestFinalize(t *testing.T) {
	e := newEnv(t)

	type txResult struct {
		Encoded     hexutil.Bytes `json:"encoded"`
		Raw         hexutil.Bytes `json:"raw"`
		SigningHash *common.Hash  `json:"signingHash"`
	}
	parse := func(out string) (res txResult) {
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		return
	}

	out, err := e.run(t, "--options", e.options, "deploy", "--abi", e.artifact, "--nonce", "0", "0x10")
	require.NoError(t, err)
	deployed := parse(out)
	require.NotEmpty(t, deployed.Encoded)
	require.NotNil(t, deployed.SigningHash)

	// the nonce carried by the encoded descriptor is kept, zero included
	out, err = e.run(t, "finalize", deployed.Encoded.String())
	require.NoError(t, err)
	finalized := parse(out)
	assert.Equal(t, deployed.Raw, finalized.Raw)
	assert.Equal(t, deployed.SigningHash, finalized.SigningHash)

	out, err = e.run(t, "--options", e.options, "deploy", "--abi", e.artifact, "0x10")
	require.NoError(t, err)
	pending := parse(out)
	assert.Empty(t, pending.Raw)

	assert.Error(t, ignoreOutput(e.run(t, "finalize", pending.Encoded.String())))
	out, err = e.run(t, "finalize", "--nonce", "0", pending.Encoded.String())
	require.NoError(t, err)
	assert.Equal(t, deployed.SigningHash, parse(out).SigningHash)

	assert.Error(t, ignoreOutput(e.run(t, "finalize", "0x1234")))
	assert.Error(t, ignoreOutput(e.run(t, "finalize")))
}

func TestEventAndBloom(t *testing.T) {
	e := newEnv(t)

	from := common.BytesToHash(tokenAddr[:])
	to := common.BytesToHash(bob[:])
	out, err := e.run(t, "event", "--abi", e.artifact,
		"--topics", strings.Join([]string{transferTopic.Hex(), from.Hex(), to.Hex()}, ","),
		"--data", hexutil.Encode(common.LeftPadBytes([]byte{0x2a}, 32)))
	require.NoError(t, err)
	var ev struct {
		Event  string         `json:"event"`
		Fields map[string]any `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ev))
	assert.Equal(t, "Transfer", ev.Event)
	assert.Equal(t, "42", ev.Fields["value"])
	assert.Equal(t, bob.Hex(), ev.Fields["to"])

	var b bloom.LogBloom
	b.Add(transferTopic[:])
	out, err = e.run(t, "bloom", "--abi", e.artifact, "Transfer", hexutil.Encode(b.Bytes()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"possible":true}`, out)

	out, err = e.run(t, "bloom", "--abi", e.artifact, "Transfer", hexutil.Encode(make([]byte, bloom.LogBloomLength)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"possible":false}`, out)

	var notFound *abi.EventNotFoundError
	err = ignoreOutput(e.run(t, "bloom", "--abi", e.artifact, "Approval", hexutil.Encode(b.Bytes())))
	assert.ErrorAs(t, err, &notFound)

	legacy, err := bloom.NewLegacyBloom(bloom.LegacyK(3))
	require.NoError(t, err)
	legacy.Add(transferTopic[:])
	k := strconv.Itoa(legacy.K())
	out, err = e.run(t, "bloom", "--abi", e.artifact, "--legacy-k", k, "Transfer", hexutil.Encode(legacy.Bytes()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"possible":true}`, out)

	out, err = e.run(t, "bloom", "--abi", e.artifact, "--legacy-k", k, "Transfer", hexutil.Encode(b.Bytes()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"possible":false}`, out)
}

func TestParseTopicFilters(t *testing.T) {
	table, err := abi.Parse([]byte(`[{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]}]`))
	require.NoError(t, err)
	ev, ok := table.EventByName("Transfer")
	require.True(t, ok)

	filters, err := parseTopicFilters(ev, []string{"", bob.Hex() + "," + tokenAddr.Hex()})
	require.NoError(t, err)
	require.Len(t, filters, 2)
	assert.Nil(t, filters[0])
	assert.Equal(t, []any{bob, tokenAddr}, filters[1])

	_, err = parseTopicFilters(ev, []string{"", "", ""})
	assert.Error(t, err)
	_, err = parseTopicFilters(ev, []string{"0x12"})
	assert.Error(t, err)
}

func ignoreOutput(_ string, err error) error {
	return err
}
