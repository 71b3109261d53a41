// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package resolve is a minimal, concrete TypeResolver: the binding
// compiler's view of "what shape is this Go type". Schema parsing's
// counterpart — reflection/introspection of the target type — is the
// other external collaborator this compiler expects; this package is
// that collaborator's reference implementation, built with
// github.com/modern-go/reflect2 for cheap repeated introspection and
// github.com/ettle/strcase for name mangling, the way hamba-avro/
// justtrackio-avro's own reflection layer is built.
package resolve

import "reflect"

// Kind is the TypeResolution sum type's tag.
type Kind int

const (
	PrimitiveKind Kind = iota
	ArrayKind
	MapKind
	EnumKind
	RecordKind
	TimestampKind
	DurationKind
	DecimalKind
	InterfaceKind
	URIKind
)

// TypeResolution is the abstract description of a target type consumed by
// the builder.
type TypeResolution interface {
	Kind() Kind
	GoType() reflect.Type
	// Nullable reports whether this resolution's Go representation (a
	// pointer or interface) can itself stand for Avro null, independent
	// of any union wrapping.
	Nullable() bool
}

type base struct {
	t        reflect.Type
	nullable bool
}

func (b base) GoType() reflect.Type { return b.t }
func (b base) Nullable() bool       { return b.nullable }

// PrimitiveResolution covers bool/int*/uint*/float32/float64/string/[]byte
// and their pointer forms.
type PrimitiveResolution struct {
	base
}

func (PrimitiveResolution) Kind() Kind { return PrimitiveKind }

// ArrayResolution describes a slice or array Go type.
type ArrayResolution struct {
	base
	Item TypeResolution
}

func (ArrayResolution) Kind() Kind { return ArrayKind }

// MapResolution describes a Go map type. Avro map keys are always
// strings on the wire; Key describes the Go key type so the case can
// convert to/from string.
type MapResolution struct {
	base
	Key   TypeResolution
	Value TypeResolution
}

func (MapResolution) Kind() Kind { return MapKind }

// EnumSymbol pairs a matchable Name with the Go-side ordinal value used to
// construct/compare instances of the enum type.
type EnumSymbol struct {
	Name  Name
	Value int
}

// EnumResolution describes a Go type implementing Enumer.
type EnumResolution struct {
	base
	Symbols []EnumSymbol
}

func (EnumResolution) Kind() Kind { return EnumKind }

// RecordField pairs a matchable Name with the struct field path (for
// reflect.Value.FieldByIndex) and its own resolved type.
type RecordField struct {
	Name  Name
	Index []int
	Type  TypeResolution
}

// RecordResolution describes a Go struct type.
type RecordResolution struct {
	base
	Fields []RecordField
}

func (RecordResolution) Kind() Kind { return RecordKind }

// TimestampResolution describes a time.Time-shaped Go type.
type TimestampResolution struct {
	base
}

func (TimestampResolution) Kind() Kind { return TimestampKind }

// DurationResolution describes a time.Duration-shaped Go type.
type DurationResolution struct {
	base
}

func (DurationResolution) Kind() Kind { return DurationKind }

// DecimalResolution describes a *big.Rat-shaped Go type.
type DecimalResolution struct {
	base
}

func (DecimalResolution) Kind() Kind { return DecimalKind }

// InterfaceResolution describes a Go interface type with a closed,
// pre-registered set of concrete implementations — the polymorphic union
// case dispatches on these by runtime type, the way encoding/gob requires
// gob.Register for interface values.
type InterfaceResolution struct {
	base
	Candidates []TypeResolution
}

func (InterfaceResolution) Kind() Kind { return InterfaceKind }

// URIResolution describes a *url.URL-shaped Go type, one of the String
// case's format conversions.
type URIResolution struct {
	base
}

func (URIResolution) Kind() Kind { return URIKind }
