// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gorilla/mux"

	"github.com/vechain/abikit/abi"
	"github.com/vechain/abikit/api/utils"
	"github.com/vechain/abikit/bloom"
	"github.com/vechain/abikit/contract"
	"github.com/vechain/abikit/options"
	"github.com/vechain/abikit/registry"
	"github.com/vechain/abikit/tx"
)

// Contracts serves the registered contracts.
type Contracts struct {
	reg    *registry.Registry
	client contract.Client
}

// New returns the contracts api over a registry. client supplies the chain id
// and default options of built transactions, it may be nil.
func New(reg *registry.Registry, client contract.Client) *Contracts {
	return &Contracts{reg, client}
}

func (c *Contracts) load(name string) (*registry.Entry, *contract.Contract, error) {
	entry, err := c.reg.Get(name)
	if err != nil {
		if registry.IsNotFound(err) {
			return nil, nil, utils.NotFound(fmt.Errorf("contract %s not found", name))
		}
		return nil, nil, err
	}
	ct, err := entry.Contract(c.client, nil)
	if err != nil {
		return nil, nil, err
	}
	return entry, ct, nil
}

func (c *Contracts) handleList(w http.ResponseWriter, _ *http.Request) error {
	entries, err := c.reg.List()
	if err != nil {
		return err
	}
	summaries := make([]Summary, 0, len(entries))
	for _, e := range entries {
		ct, err := e.Contract(c.client, nil)
		if err != nil {
			return err
		}
		summaries = append(summaries, convertSummary(e, ct.ABI()))
	}
	return utils.WriteJSON(w, summaries)
}

func (c *Contracts) handleGet(w http.ResponseWriter, req *http.Request) error {
	entry, ct, err := c.load(mux.Vars(req)["name"])
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertDetail(entry, ct))
}

func (c *Contracts) handleEncode(w http.ResponseWriter, req *http.Request) error {
	entry, ct, err := c.load(mux.Vars(req)["name"])
	if err != nil {
		return err
	}
	var body EncodeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(fmt.Errorf("body: %w", err))
	}
	opts, err := parseOptions(body.Options)
	if err != nil {
		return utils.BadRequest(err)
	}

	var desc *tx.Descriptor
	if body.Deploy {
		if len(entry.Bytecode) == 0 {
			return utils.BadRequest(errors.New("contract has no bytecode"))
		}
		var params []any
		if ctor := ct.ABI().Constructor(); ctor != nil {
			if params, err = abi.ParseJSONArgs(ctor.Inputs(), body.Args); err != nil {
				return utils.BadRequest(fmt.Errorf("args: %w", err))
			}
		} else if len(body.Args) > 0 {
			return utils.BadRequest(abi.ErrConstructorNotFound)
		}
		desc, err = ct.Deploy(entry.Bytecode, params, body.ExtraData, opts)
	} else {
		var params []any
		if m, ok := ct.ABI().MethodByName(body.Method); ok {
			if params, err = abi.ParseJSONArgs(m.Inputs(), body.Args); err != nil {
				return utils.BadRequest(fmt.Errorf("args: %w", err))
			}
		} else if len(body.Args) > 0 {
			// fallback, receive or unknown; let the builder reject them
			params = make([]any, len(body.Args))
		}
		desc, err = ct.Method(body.Method, params, body.ExtraData, opts)
	}
	if err != nil {
		return utils.BadRequest(err)
	}
	return utils.WriteJSON(w, desc)
}

func (c *Contracts) handleDecode(w http.ResponseWriter, req *http.Request) error {
	_, ct, err := c.load(mux.Vars(req)["name"])
	if err != nil {
		return err
	}
	var body DecodeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(fmt.Errorf("body: %w", err))
	}

	result := DecodeResult{Method: body.Method}
	switch {
	case body.Method == "":
		if body.Output {
			return utils.BadRequest(errors.New("decoding output requires a method"))
		}
		var values map[string]any
		result.Method, values = ct.DecodeInput(body.Data)
		result.Values = abi.FormatValues(values)
	case body.Output:
		result.Values = abi.FormatValues(ct.DecodeReturnData(body.Method, body.Data))
	default:
		result.Values = abi.FormatValues(ct.DecodeInputData(body.Method, body.Data))
	}
	return utils.WriteJSON(w, result)
}

func (c *Contracts) handleEvents(w http.ResponseWriter, req *http.Request) error {
	_, ct, err := c.load(mux.Vars(req)["name"])
	if err != nil {
		return err
	}
	var body EventsRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(fmt.Errorf("body: %w", err))
	}

	decoded := []DecodedEvent{}
	if body.Event != "" {
		parser, err := ct.CreateEventParser(body.Event, &contract.EventFilter{})
		if err != nil {
			return utils.BadRequest(err)
		}
		logs := make([]types.Log, 0, len(body.Logs))
		for i := range body.Logs {
			logs = append(logs, body.Logs[i].toEth())
		}
		for _, ev := range parser.ParseLogs(logs) {
			decoded = append(decoded, DecodedEvent{ev.Name, abi.FormatValues(ev.Fields), convertLog(&ev.Log)})
		}
	} else {
		for i := range body.Logs {
			name, fields := ct.ParseEvent(body.Logs[i].toEth())
			if fields == nil {
				continue
			}
			decoded = append(decoded, DecodedEvent{name, abi.FormatValues(fields), body.Logs[i]})
		}
	}
	return utils.WriteJSON(w, decoded)
}

func (c *Contracts) handleBloom(w http.ResponseWriter, req *http.Request) error {
	_, ct, err := c.load(mux.Vars(req)["name"])
	if err != nil {
		return err
	}
	var body BloomRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(fmt.Errorf("body: %w", err))
	}
	filter, err := bloom.Parse(body.K, body.Bloom)
	if err != nil {
		return utils.BadRequest(err)
	}
	possible, declared := ct.TestBloomForEventPresence(body.Event, filter)
	return utils.WriteJSON(w, &BloomResult{possible, declared})
}

// parseOptions accepts the options object as JSON, or as a YAML document
// held in a JSON string.
func parseOptions(raw []byte) (*options.Options, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var doc string
	if err := json.Unmarshal(raw, &doc); err == nil {
		raw = []byte(doc)
	}
	return options.Parse(raw)
}

func (c *Contracts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /contracts").
		HandlerFunc(utils.WrapHandlerFunc(c.handleList))
	sub.Path("/{name}").
		Methods(http.MethodGet).
		Name("GET /contracts/{name}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGet))
	sub.Path("/{name}/encode").
		Methods(http.MethodPost).
		Name("POST /contracts/{name}/encode").
		HandlerFunc(utils.WrapHandlerFunc(c.handleEncode))
	sub.Path("/{name}/decode").
		Methods(http.MethodPost).
		Name("POST /contracts/{name}/decode").
		HandlerFunc(utils.WrapHandlerFunc(c.handleDecode))
	sub.Path("/{name}/events").
		Methods(http.MethodPost).
		Name("POST /contracts/{name}/events").
		HandlerFunc(utils.WrapHandlerFunc(c.handleEvents))
	sub.Path("/{name}/bloom").
		Methods(http.MethodPost).
		Name("POST /contracts/{name}/bloom").
		HandlerFunc(utils.WrapHandlerFunc(c.handleBloom))
}
