// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"errors"
	"strconv"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Event see abi.Event in go-ethereum.
type Event struct {
	event              *ethabi.Event
	argsWithoutIndexed ethabi.Arguments
	// indexed arguments renamed to their position, the key used when
	// reconstructing them from topics
	indexed ethabi.Arguments
}

func newEvent(event *ethabi.Event) *Event {
	var (
		argsWithoutIndexed ethabi.Arguments
		indexed            ethabi.Arguments
	)
	for i, arg := range event.Inputs {
		if arg.Indexed {
			arg.Name = strconv.Itoa(i)
			indexed = append(indexed, arg)
		} else {
			argsWithoutIndexed = append(argsWithoutIndexed, arg)
		}
	}
	return &Event{event, argsWithoutIndexed, indexed}
}

// ID returns event id, the first topic of non-anonymous logs.
func (e *Event) ID() common.Hash {
	return e.event.ID
}

// Name returns event name.
func (e *Event) Name() string {
	return e.event.Name
}

// Sig returns the canonical signature, e.g. "Transfer(address,address,uint256)".
func (e *Event) Sig() string {
	return e.event.Sig
}

// Anonymous returns whether the event omits its id topic.
func (e *Event) Anonymous() bool {
	return e.event.Anonymous
}

// Inputs returns the declared arguments.
func (e *Event) Inputs() ethabi.Arguments {
	return e.event.Inputs
}

func (e *Event) String() string {
	return e.event.String()
}

// Encode encodes args to data.
func (e *Event) Encode(args ...any) ([]byte, error) {
	data, err := e.argsWithoutIndexed.Pack(args...)
	if err != nil {
		return nil, &EncodeParamError{Params: args, Err: err}
	}
	return data, nil
}

// Topics builds the log topics for the given indexed argument values.
func (e *Event) Topics(indexed ...any) ([]common.Hash, error) {
	if len(indexed) != len(e.indexed) {
		return nil, errors.New("indexed argument count mismatch")
	}
	var topics []common.Hash
	if !e.event.Anonymous {
		topics = append(topics, e.event.ID)
	}
	for _, v := range indexed {
		t, err := ethabi.MakeTopics([]any{v})
		if err != nil {
			return nil, err
		}
		topics = append(topics, t[0][0])
	}
	return topics, nil
}

// Decode decodes a log into values keyed by position and name. Indexed
// arguments of dynamic types yield the topic hash instead of the value.
func (e *Event) Decode(topics []common.Hash, data []byte) (map[string]any, error) {
	if !e.event.Anonymous {
		if len(topics) == 0 || topics[0] != e.event.ID {
			return nil, errors.New("event id mismatch")
		}
		topics = topics[1:]
	}

	values, err := e.argsWithoutIndexed.Unpack(data)
	if err != nil {
		return nil, err
	}
	byPos := make(map[string]any, len(e.indexed))
	if err := ethabi.ParseTopicsIntoMap(byPos, e.indexed, topics); err != nil {
		return nil, err
	}

	out := make(map[string]any, 2*len(e.event.Inputs))
	next := 0
	for i, arg := range e.event.Inputs {
		var v any
		if arg.Indexed {
			v = byPos[strconv.Itoa(i)]
		} else {
			v = values[next]
			next++
		}
		setValue(out, i, arg.Name, v)
	}
	return out, nil
}
