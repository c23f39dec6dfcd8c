// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/abikit/abi"
	"github.com/vechain/abikit/artifact"
	"github.com/vechain/abikit/bloom"
	"github.com/vechain/abikit/contract"
	"github.com/vechain/abikit/options"
	"github.com/vechain/abikit/tx"
)

func describeAction(ctx *cli.Context) error {
	t, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	table := t.contract.ABI()

	w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "contract\t%s\t%s dialect\n", t.name, table.Dialect())
	if addr := t.contract.Address(); addr != nil {
		fmt.Fprintf(w, "address\t%s\t\n", addr.Hex())
	}
	if ctor := table.Constructor(); ctor != nil {
		fmt.Fprintf(w, "constructor\t%s\t\n", formatArgs("constructor", ctor.Inputs()))
	}
	if table.Fallback() != nil {
		fmt.Fprintf(w, "fallback\t\t\n")
	}
	if table.Receive() != nil {
		fmt.Fprintf(w, "receive\t\t\n")
	}
	for _, m := range table.Methods() {
		id := m.ID()
		sig := formatArgs(m.Name(), m.Inputs())
		if len(m.Outputs()) > 0 {
			sig += " returns " + formatArgs("", m.Outputs())
		}
		fmt.Fprintf(w, "function\t%s\t%s\n", sig, hexutil.Encode(id[:]))
	}
	for _, ev := range table.Events() {
		topic := "anonymous"
		if !ev.Anonymous() {
			topic = ev.ID().Hex()
		}
		fmt.Fprintf(w, "event\t%s\t%s\n", formatArgs(ev.Name(), ev.Inputs()), topic)
	}
	return w.Flush()
}

func formatArgs(name string, args ethabi.Arguments) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		s := arg.Type.String()
		if arg.Indexed {
			s += " indexed"
		}
		if arg.Name != "" {
			s += " " + arg.Name
		}
		parts = append(parts, s)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// parseParams parses the command line arguments of the named function.
func parseParams(c *contract.Contract, name string, raw []string) ([]any, error) {
	m, ok := c.ABI().MethodByName(name)
	if !ok {
		if len(raw) > 0 {
			return nil, fmt.Errorf("%q takes no arguments", name)
		}
		return nil, nil
	}
	return abi.ParseArgs(m.Inputs(), raw)
}

type txOutput struct {
	Method      string         `json:"method,omitempty"`
	Tx          *tx.Descriptor `json:"tx"`
	Encoded     hexutil.Bytes  `json:"encoded"`
	Raw         hexutil.Bytes  `json:"raw,omitempty"`
	SigningHash *common.Hash   `json:"signingHash,omitempty"`
}

func newTxOutput(method string, desc *tx.Descriptor, trx *types.Transaction) (*txOutput, error) {
	encoded, err := rlp.EncodeToBytes(desc)
	if err != nil {
		return nil, err
	}
	out := &txOutput{Method: method, Tx: desc, Encoded: encoded}
	if trx == nil {
		return out, nil
	}
	if out.Raw, err = trx.MarshalBinary(); err != nil {
		return nil, err
	}
	hash, err := desc.SigningHash()
	if err != nil {
		return nil, err
	}
	out.SigningHash = &hash
	return out, nil
}

func parseNonce(ctx *cli.Context) (uint64, bool, error) {
	s := ctx.String(nonceFlag.Name)
	if s == "" {
		return 0, false, nil
	}
	n, err := options.ParseQuantity(s)
	if err != nil || !n.IsUint64() {
		return 0, false, fmt.Errorf("%s: invalid nonce %q", nonceFlag.Name, s)
	}
	return n.Uint64(), true, nil
}

func writeTx(ctx *cli.Context, inter *contract.Intermediate) error {
	nonce, ok, err := parseNonce(ctx)
	if err != nil {
		return err
	}
	var (
		desc = inter.Descriptor()
		trx  *types.Transaction
	)
	if ok {
		if trx, err = inter.Transaction(nonce); err != nil {
			return err
		}
		desc = desc.WithNonce(nonce)
	}
	out, err := newTxOutput(inter.Method(), desc, trx)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, out)
}

// finalizeAction turns an encoded descriptor, as printed by encode and
// deploy, into a raw unsigned transaction.
func finalizeAction(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		return errors.New("encoded descriptor required")
	}
	raw, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("descriptor: %w", err)
	}
	desc := new(tx.Descriptor)
	if err := rlp.DecodeBytes(raw, desc); err != nil {
		return fmt.Errorf("descriptor: %w", err)
	}
	nonce, ok, err := parseNonce(ctx)
	if err != nil {
		return err
	}
	if ok {
		desc = desc.WithNonce(nonce)
	}
	trx, err := desc.Unsigned()
	if err != nil {
		return err
	}
	out, err := newTxOutput("", desc, trx)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, out)
}

func encodeAction(ctx *cli.Context) error {
	t, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	if !ctx.Args().Present() {
		return errors.New("method required, use fallback or receive for the special functions")
	}
	name := ctx.Args().First()
	params, err := parseParams(t.contract, name, ctx.Args().Tail())
	if err != nil {
		return err
	}
	extra, err := decodeHexFlag(ctx, extraDataFlag)
	if err != nil {
		return err
	}
	inter, err := t.contract.Prepare(name, params, extra, nil)
	if err != nil {
		return err
	}
	return writeTx(ctx, inter)
}

func deployAction(ctx *cli.Context) error {
	t, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	if len(t.bytecode) == 0 {
		return fmt.Errorf("%s: %w, use -%s", t.name, artifact.ErrNoBytecode, bytecodeFlag.Name)
	}

	var params []any
	if ctor := t.contract.ABI().Constructor(); ctor != nil {
		if params, err = abi.ParseArgs(ctor.Inputs(), ctx.Args()); err != nil {
			return err
		}
	} else if ctx.Args().Present() {
		return abi.ErrConstructorNotFound
	}
	extra, err := decodeHexFlag(ctx, extraDataFlag)
	if err != nil {
		return err
	}
	inter, err := t.contract.PrepareDeploy(t.bytecode, params, extra, nil)
	if err != nil {
		return err
	}
	return writeTx(ctx, inter)
}

type decodeOutput struct {
	Method   string         `json:"method,omitempty"`
	Values   map[string]any `json:"values,omitempty"`
	Reverted string         `json:"reverted,omitempty"`
}

func decodeAction(ctx *cli.Context) error {
	t, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	data, err := decodeHexFlag(ctx, dataFlag)
	if err != nil {
		return err
	}

	out := decodeOutput{Method: ctx.Args().First()}
	switch {
	case out.Method == "":
		if ctx.Bool(outputFlag.Name) {
			return errors.New("decoding return data requires a method")
		}
		var values map[string]any
		out.Method, values = t.contract.DecodeInput(data)
		out.Values = abi.FormatValues(values)
	case ctx.Bool(outputFlag.Name):
		out.Values = abi.FormatValues(t.contract.DecodeReturnData(out.Method, data))
		if out.Values == nil {
			out.Reverted, _ = abi.RevertReason(t.contract.ABI(), data)
		}
	default:
		out.Values = abi.FormatValues(t.contract.DecodeInputData(out.Method, data))
	}
	if out.Values == nil && out.Reverted == "" {
		return errors.New("data has no interpretation")
	}
	return printJSON(ctx.App.Writer, &out)
}

type eventOutput struct {
	Event       string         `json:"event"`
	Fields      map[string]any `json:"fields"`
	BlockNumber uint64         `json:"blockNumber,omitempty"`
	TxHash      *common.Hash   `json:"transactionHash,omitempty"`
	LogIndex    uint           `json:"logIndex,omitempty"`
}

func eventAction(ctx *cli.Context) error {
	t, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	data, err := decodeHexFlag(ctx, dataFlag)
	if err != nil {
		return err
	}

	var topics []common.Hash
	for _, s := range strings.Split(ctx.String(topicsFlag.Name), ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		b, err := hexutil.Decode(s)
		if err != nil || len(b) != common.HashLength {
			return fmt.Errorf("%s: invalid topic %q", topicsFlag.Name, s)
		}
		topics = append(topics, common.BytesToHash(b))
	}

	var log types.Log
	if addr := t.contract.Address(); addr != nil {
		log.Address = *addr
	}
	log.Topics, log.Data = topics, data

	name, fields := t.contract.ParseEvent(log)
	if fields == nil {
		return errors.New("log matches no declared event")
	}
	return printJSON(ctx.App.Writer, &eventOutput{Event: name, Fields: abi.FormatValues(fields)})
}

func bloomAction(ctx *cli.Context) error {
	t, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	if len(ctx.Args()) != 2 {
		return errors.New("event and bloom required")
	}
	raw, err := hexutil.Decode(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("bloom: %w", err)
	}
	filter, err := bloom.Parse(ctx.Int(legacyKFlag.Name), raw)
	if err != nil {
		return err
	}
	possible, declared := t.contract.TestBloomForEventPresence(ctx.Args().First(), filter)
	if !declared {
		return &abi.EventNotFoundError{Name: ctx.Args().First()}
	}
	return printJSON(ctx.App.Writer, map[string]bool{"possible": possible})
}
