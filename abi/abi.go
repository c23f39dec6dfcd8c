// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vechain/abikit/log"
	"github.com/vechain/abikit/metrics"
)

var (
	logger           = log.WithContext("pkg", "abi")
	metricParseCount = metrics.LazyLoadCounterVec("abi_parse_count", []string{"dialect"})
)

// Dialect tells which ABI grammar produced a table.
type Dialect uint8

const (
	// Current is the modern JSON ABI (stateMutability, receive, error entries,
	// overloads).
	Current Dialect = iota + 1
	// Legacy is the pre-0.6 JSON ABI (implicit function type, constant/payable
	// flags, no overloads).
	Legacy
)

func (d Dialect) String() string {
	switch d {
	case Current:
		return "current"
	case Legacy:
		return "legacy"
	default:
		return fmt.Sprintf("dialect(%d)", uint8(d))
	}
}

// ABI holds information about methods and events of contract.
// It is immutable once parsed and safe for concurrent use.
type ABI struct {
	dialect      Dialect
	constructor  *Method
	fallback     *Method
	receive      *Method
	methods      []*Method
	nameToMethod map[string]*Method
	idToMethods  map[MethodID][]*Method
	events       []*Event
	nameToEvent  map[string]*Event
	idToEvent    map[common.Hash]*Event
	errors       map[MethodID]*ethabi.Error
}

func newABI(dialect Dialect) *ABI {
	return &ABI{
		dialect:      dialect,
		nameToMethod: make(map[string]*Method),
		idToMethods:  make(map[MethodID][]*Method),
		nameToEvent:  make(map[string]*Event),
		idToEvent:    make(map[common.Hash]*Event),
		errors:       make(map[MethodID]*ethabi.Error),
	}
}

// Parse parses the ABI text with the current dialect, falling back to the
// legacy dialect. ErrABIInvalid is returned when both reject it.
func Parse(data []byte) (*ABI, error) {
	abi, currentErr := ParseCurrent(data)
	if currentErr == nil {
		metricParseCount().AddWithLabel(1, map[string]string{"dialect": Current.String()})
		return abi, nil
	}

	abi, legacyErr := ParseLegacy(data)
	if legacyErr == nil {
		logger.Debug("abi parsed with legacy dialect", "reason", currentErr)
		metricParseCount().AddWithLabel(1, map[string]string{"dialect": Legacy.String()})
		return abi, nil
	}

	metricParseCount().AddWithLabel(1, map[string]string{"dialect": "invalid"})
	return nil, &invalidError{current: currentErr, legacy: legacyErr}
}

// ParseCurrent parses the ABI text with the current dialect only.
func ParseCurrent(data []byte) (*ABI, error) {
	var entries []struct {
		Type string
		Name string
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	hasConstructor := false
	for _, e := range entries {
		switch e.Type {
		case "":
			return nil, fmt.Errorf("entry %q has no type", e.Name)
		case "constructor":
			if hasConstructor {
				return nil, errors.New("only single constructor is allowed")
			}
			hasConstructor = true
		}
	}

	parsed, err := ethabi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	abi := newABI(Current)
	if hasConstructor {
		ctor := parsed.Constructor
		abi.constructor = newMethod(&ctor)
	}
	if parsed.HasFallback() {
		fb := parsed.Fallback
		abi.fallback = newMethod(&fb)
	}
	if parsed.HasReceive() {
		rcv := parsed.Receive
		abi.receive = newMethod(&rcv)
	}
	for _, m := range parsed.Methods {
		abi.addMethod(newMethod(&m))
	}
	for _, e := range parsed.Events {
		abi.addEvent(newEvent(&e))
	}
	for _, e := range parsed.Errors {
		var id MethodID
		copy(id[:], e.ID[:4])
		abi.errors[id] = &e
	}
	abi.sort()
	return abi, nil
}

func (a *ABI) addMethod(m *Method) {
	a.methods = append(a.methods, m)
	a.nameToMethod[m.Name()] = m
	a.nameToMethod[m.Sig()] = m
	a.idToMethods[m.ID()] = append(a.idToMethods[m.ID()], m)
}

func (a *ABI) addEvent(e *Event) {
	a.events = append(a.events, e)
	a.nameToEvent[e.Name()] = e
	a.nameToEvent[e.Sig()] = e
	if !e.Anonymous() {
		a.idToEvent[e.ID()] = e
	}
}

func (a *ABI) sort() {
	sort.Slice(a.methods, func(i, j int) bool { return a.methods[i].Name() < a.methods[j].Name() })
	sort.Slice(a.events, func(i, j int) bool { return a.events[i].Name() < a.events[j].Name() })
}

// Dialect returns the dialect that produced this table.
func (a *ABI) Dialect() Dialect {
	return a.dialect
}

// Constructor returns the constructor method if any.
func (a *ABI) Constructor() *Method {
	return a.constructor
}

// Fallback returns the fallback function if declared.
func (a *ABI) Fallback() *Method {
	return a.fallback
}

// Receive returns the receive function if declared.
func (a *ABI) Receive() *Method {
	return a.receive
}

// Methods returns the declared functions ordered by name.
func (a *ABI) Methods() []*Method {
	return append([]*Method(nil), a.methods...)
}

// Events returns the declared events ordered by name.
func (a *ABI) Events() []*Event {
	return append([]*Event(nil), a.events...)
}

// MethodByName finds a function by name or by canonical signature,
// e.g. "transfer" or "transfer(address,uint256)".
func (a *ABI) MethodByName(name string) (*Method, bool) {
	m, found := a.nameToMethod[name]
	return m, found
}

// MethodByID returns the function for the given selector. It reports false
// when no function, or more than one, has the selector.
func (a *ABI) MethodByID(id MethodID) (*Method, bool) {
	ms := a.idToMethods[id]
	if len(ms) != 1 {
		return nil, false
	}
	return ms[0], true
}

// MethodByInput finds the function for the given call data.
// If the input is shorter than a selector, or the selector is unknown or
// ambiguous, an error is returned.
func (a *ABI) MethodByInput(input []byte) (*Method, error) {
	id, err := ExtractMethodID(input)
	if err != nil {
		return nil, err
	}
	switch ms := a.idToMethods[id]; len(ms) {
	case 0:
		return nil, fmt.Errorf("no method with id %#x", id[:])
	case 1:
		return ms[0], nil
	default:
		return nil, fmt.Errorf("ambiguous method id %#x", id[:])
	}
}

// EventByName finds an event by name or by canonical signature.
func (a *ABI) EventByName(name string) (*Event, bool) {
	e, found := a.nameToEvent[name]
	return e, found
}

// EventByID returns the non-anonymous event with the given topic.
func (a *ABI) EventByID(id common.Hash) (*Event, bool) {
	e, found := a.idToEvent[id]
	return e, found
}

// UnpackError decodes revert data produced by a declared custom error.
// Custom errors only exist in the current dialect.
func (a *ABI) UnpackError(data []byte) (string, map[string]any, error) {
	if a.dialect != Current {
		return "", nil, ErrMethodNotSupported
	}
	id, err := ExtractMethodID(data)
	if err != nil {
		return "", nil, err
	}
	e, ok := a.errors[id]
	if !ok {
		return "", nil, fmt.Errorf("no error with id %#x", id[:])
	}
	values, err := e.Inputs.Unpack(data[len(id):])
	if err != nil {
		return "", nil, err
	}
	return e.Name, toMap(e.Inputs, values), nil
}
