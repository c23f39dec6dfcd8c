// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"errors"
	"fmt"
)

var (
	// ErrABIInvalid is returned when neither dialect accepts the ABI text.
	ErrABIInvalid = errors.New("abi: invalid")
	// ErrConstructorNotFound is returned when constructor arguments are
	// supplied but the ABI declares no constructor.
	ErrConstructorNotFound = errors.New("abi: constructor not found")
	// ErrMethodNotSupported is returned for operations the parsed dialect lacks.
	ErrMethodNotSupported = errors.New("abi: method not supported")
)

// MethodNotFoundError reports a function name absent from the ABI.
type MethodNotFoundError struct {
	Name string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("abi: method not found: %s", e.Name)
}

// EventNotFoundError reports an event name absent from the ABI.
type EventNotFoundError struct {
	Name string
}

func (e *EventNotFoundError) Error() string {
	return fmt.Sprintf("abi: event not found: %s", e.Name)
}

// EncodeParamError reports parameters that do not match the declared
// arity or types.
type EncodeParamError struct {
	Params []any
	Err    error
}

func (e *EncodeParamError) Error() string {
	return fmt.Sprintf("abi: failed to encode %d param(s): %v", len(e.Params), e.Err)
}

func (e *EncodeParamError) Unwrap() error { return e.Err }

type invalidError struct {
	current, legacy error
}

func (e *invalidError) Error() string {
	return fmt.Sprintf("%v (current: %v; legacy: %v)", ErrABIInvalid, e.current, e.legacy)
}

func (e *invalidError) Is(target error) bool { return target == ErrABIInvalid }

func (e *invalidError) Unwrap() []error { return []error{e.current, e.legacy} }
