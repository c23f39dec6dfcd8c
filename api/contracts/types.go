// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"encoding/json"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/vechain/abikit/abi"
	"github.com/vechain/abikit/contract"
	"github.com/vechain/abikit/registry"
)

// Summary describes a registered contract.
type Summary struct {
	Name        string          `json:"name"`
	Address     *common.Address `json:"address"`
	Dialect     string          `json:"dialect"`
	Created     uint64          `json:"created"`
	HasBytecode bool            `json:"hasBytecode"`
}

// Param is a declared argument.
type Param struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed,omitempty"`
}

// Method describes a function.
type Method struct {
	Name      string  `json:"name"`
	Signature string  `json:"signature"`
	Selector  string  `json:"selector,omitempty"`
	Constant  bool    `json:"constant"`
	Payable   bool    `json:"payable"`
	Inputs    []Param `json:"inputs"`
	Outputs   []Param `json:"outputs"`
}

// Event describes an event. Topic is absent for anonymous events.
type Event struct {
	Name      string       `json:"name"`
	Signature string       `json:"signature"`
	Topic     *common.Hash `json:"topic,omitempty"`
	Anonymous bool         `json:"anonymous"`
	Inputs    []Param      `json:"inputs"`
}

// Detail describes a registered contract and its ABI.
type Detail struct {
	Summary
	Constructor *Method         `json:"constructor,omitempty"`
	Fallback    bool            `json:"fallback"`
	Receive     bool            `json:"receive"`
	Methods     []Method        `json:"methods"`
	Events      []Event         `json:"events"`
	ABI         json.RawMessage `json:"abi"`
}

// EncodeRequest asks for a deploy or call transaction. Options follow the
// options file layout.
type EncodeRequest struct {
	Method    string            `json:"method"`
	Args      []json.RawMessage `json:"args"`
	ExtraData hexutil.Bytes     `json:"extraData"`
	Deploy    bool              `json:"deploy"`
	Options   json.RawMessage   `json:"options"`
}

// DecodeRequest asks to decode call data, or return data when Output is
// set. Without a method the call data selector picks the function.
type DecodeRequest struct {
	Method string        `json:"method"`
	Data   hexutil.Bytes `json:"data"`
	Output bool          `json:"output"`
}

// DecodeResult is the decoded data, Values is null when the data has no
// interpretation.
type DecodeResult struct {
	Method string         `json:"method"`
	Values map[string]any `json:"values"`
}

// Log is an event log as returned by a node.
type Log struct {
	Address     common.Address `json:"address"`
	Topics      []common.Hash  `json:"topics"`
	Data        hexutil.Bytes  `json:"data"`
	BlockNumber hexutil.Uint64 `json:"blockNumber"`
	TxHash      common.Hash    `json:"transactionHash"`
	LogIndex    hexutil.Uint   `json:"logIndex"`
}

// EventsRequest asks to decode logs, optionally only those of one event.
type EventsRequest struct {
	Event string `json:"event"`
	Logs  []Log  `json:"logs"`
}

// DecodedEvent is a log matched to a declared event.
type DecodedEvent struct {
	Name   string         `json:"name"`
	Fields map[string]any `json:"fields"`
	Log
}

// BloomRequest asks whether an event may be covered by a 256 byte header
// bloom. K is omitted for an ethereum log bloom and carries the probe count
// of a vechain legacy bloom.
type BloomRequest struct {
	Event string        `json:"event"`
	Bloom hexutil.Bytes `json:"bloom"`
	K     int           `json:"k,omitempty"`
}

// BloomResult answers a BloomRequest.
type BloomResult struct {
	Possible bool `json:"possible"`
	Declared bool `json:"declared"`
}

func convertSummary(e *registry.Entry, table *abi.ABI) Summary {
	return Summary{
		Name:        e.Name,
		Address:     e.Address,
		Dialect:     table.Dialect().String(),
		Created:     e.Created,
		HasBytecode: len(e.Bytecode) > 0,
	}
}

func convertParams(args ethabi.Arguments) []Param {
	params := make([]Param, 0, len(args))
	for _, arg := range args {
		params = append(params, Param{Name: arg.Name, Type: arg.Type.String(), Indexed: arg.Indexed})
	}
	return params
}

func convertMethod(m *abi.Method) Method {
	out := Method{
		Name:      m.Name(),
		Signature: m.Sig(),
		Constant:  m.Const(),
		Payable:   m.Payable(),
		Inputs:    convertParams(m.Inputs()),
		Outputs:   convertParams(m.Outputs()),
	}
	if id := m.ID(); !id.IsEmpty() {
		out.Selector = hexutil.Encode(id[:])
	}
	return out
}

func convertEvent(e *abi.Event) Event {
	out := Event{
		Name:      e.Name(),
		Signature: e.Sig(),
		Anonymous: e.Anonymous(),
		Inputs:    convertParams(e.Inputs()),
	}
	if !e.Anonymous() {
		id := e.ID()
		out.Topic = &id
	}
	return out
}

func convertDetail(e *registry.Entry, c *contract.Contract) *Detail {
	table := c.ABI()
	d := &Detail{
		Summary:  convertSummary(e, table),
		Fallback: table.Fallback() != nil,
		Receive:  table.Receive() != nil,
		Methods:  []Method{},
		Events:   []Event{},
		ABI:      json.RawMessage(e.ABI),
	}
	if ctor := table.Constructor(); ctor != nil {
		m := convertMethod(ctor)
		m.Name = "constructor"
		d.Constructor = &m
	}
	for _, m := range table.Methods() {
		d.Methods = append(d.Methods, convertMethod(m))
	}
	for _, ev := range table.Events() {
		d.Events = append(d.Events, convertEvent(ev))
	}
	return d
}

func (l *Log) toEth() types.Log {
	return types.Log{
		Address:     l.Address,
		Topics:      l.Topics,
		Data:        l.Data,
		BlockNumber: uint64(l.BlockNumber),
		TxHash:      l.TxHash,
		Index:       uint(l.LogIndex),
	}
}

func convertLog(l *types.Log) Log {
	return Log{
		Address:     l.Address,
		Topics:      l.Topics,
		Data:        l.Data,
		BlockNumber: hexutil.Uint64(l.BlockNumber),
		TxHash:      l.TxHash,
		LogIndex:    hexutil.Uint(l.Index),
	}
}
