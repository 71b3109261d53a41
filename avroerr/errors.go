// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package avroerr defines the error taxonomy shared by the binding
// compiler (builder core, case registry) and the primitive wire codec.
//
// Errors are plain values wrapping a message and, where useful, a cause
// chain, the way goavro itself returns wrapped fmt.Errorf values instead
// of panicking. Callers should use errors.Is/errors.As against the Kind
// sentinel values below rather than string-matching messages.
package avroerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error without tying callers to a concrete error type.
type Kind int

const (
	UnsupportedSchema Kind = iota
	UnsupportedType
	Conversion
	SizeMismatch
	AmbiguousSymbol
	AmbiguousField
	Overflow
	Wire
	Eof
	Utf8
	Dispatch
)

func (k Kind) String() string {
	switch k {
	case UnsupportedSchema:
		return "unsupported schema"
	case UnsupportedType:
		return "unsupported type"
	case Conversion:
		return "conversion"
	case SizeMismatch:
		return "size mismatch"
	case AmbiguousSymbol:
		return "ambiguous symbol"
	case AmbiguousField:
		return "ambiguous field"
	case Overflow:
		return "overflow"
	case Wire:
		return "wire"
	case Eof:
		return "eof"
	case Utf8:
		return "utf8"
	case Dispatch:
		return "dispatch"
	default:
		return "unknown"
	}
}

// Error is the concrete error type for every Kind in this taxonomy.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("avrobind: %s: %s: %s", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("avrobind: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, avroerr.New(Kind, "")) match on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Sentinel values for errors.Is comparisons against a bare Kind.
var (
	ErrUnsupportedSchema = &Error{Kind: UnsupportedSchema}
	ErrUnsupportedType   = &Error{Kind: UnsupportedType}
	ErrConversion        = &Error{Kind: Conversion}
	ErrSizeMismatch      = &Error{Kind: SizeMismatch}
	ErrAmbiguousSymbol   = &Error{Kind: AmbiguousSymbol}
	ErrAmbiguousField    = &Error{Kind: AmbiguousField}
	ErrOverflow          = &Error{Kind: Overflow}
	ErrWire              = &Error{Kind: Wire}
	ErrEof               = &Error{Kind: Eof}
	ErrUtf8              = &Error{Kind: Utf8}
	ErrDispatch          = &Error{Kind: Dispatch}
)

// Aggregate collects the per-case causes the builder accumulates while
// walking the case registry: when every case fails, the build raises one
// UnsupportedType error carrying every case's individual rejection reason.
type Aggregate struct {
	Kind   Kind
	Header string
	Causes []error
}

func (a *Aggregate) Error() string {
	parts := make([]string, len(a.Causes))
	for i, c := range a.Causes {
		parts[i] = c.Error()
	}
	return fmt.Sprintf("avrobind: %s: %s: [%s]", a.Kind, a.Header, strings.Join(parts, "; "))
}

func (a *Aggregate) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == a.Kind
}

func (a *Aggregate) Unwrap() []error { return a.Causes }

func NewAggregate(kind Kind, header string, causes []error) *Aggregate {
	return &Aggregate{Kind: kind, Header: header, Causes: causes}
}

// IsKind reports whether err carries the given Kind, looking through
// wrapping via errors.Is/As and Aggregate.Unwrap chains.
func IsKind(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}
