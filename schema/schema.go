// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package schema is a minimal, concrete Avro schema model. The binding
// compiler (package compile/cases) treats schema parsing as an external
// collaborator — this package exists only so the compiler has a real tree
// to pattern-match against; it does not parse Avro JSON.
package schema

// Kind is the schema sum type's tag.
type Kind int

const (
	Null Kind = iota
	Boolean
	Int
	Long
	Float
	Double
	Bytes
	String
	Fixed
	Enum
	Array
	Map
	Record
	Union
)

func (k Kind) String() string {
	names := [...]string{"null", "boolean", "int", "long", "float", "double",
		"bytes", "string", "fixed", "enum", "array", "map", "record", "union"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Logical is the logical-type overlay tag. Only a subset of base Kinds may
// carry a given Logical value — see each Schema implementation's doc.
type Logical int

const (
	NoLogical Logical = iota
	Decimal
	Duration
	TimestampMillis
	TimestampMicros
)

// Schema is the sum type every concrete schema implements. Implementations
// are pattern-matched via a type switch in the case registry, never via
// this interface's methods alone — Kind/LogicalType exist for quick case
// pre-filtering.
type Schema interface {
	Kind() Kind
	LogicalType() Logical
}

type NullSchema struct{}

func (NullSchema) Kind() Kind           { return Null }
func (NullSchema) LogicalType() Logical { return NoLogical }

type BooleanSchema struct{}

func (BooleanSchema) Kind() Kind           { return Boolean }
func (BooleanSchema) LogicalType() Logical { return NoLogical }

type IntSchema struct{}

func (IntSchema) Kind() Kind           { return Int }
func (IntSchema) LogicalType() Logical { return NoLogical }

// LongSchema may carry TimestampMillis or TimestampMicros.
type LongSchema struct {
	Logical Logical
}

func (s LongSchema) Kind() Kind           { return Long }
func (s LongSchema) LogicalType() Logical { return s.Logical }

type FloatSchema struct{}

func (FloatSchema) Kind() Kind           { return Float }
func (FloatSchema) LogicalType() Logical { return NoLogical }

type DoubleSchema struct{}

func (DoubleSchema) Kind() Kind           { return Double }
func (DoubleSchema) LogicalType() Logical { return NoLogical }

// DecimalInfo carries the precision/scale of a Decimal overlay.
type DecimalInfo struct {
	Precision int
	Scale     int
}

// BytesSchema may carry a Decimal overlay.
type BytesSchema struct {
	Decimal *DecimalInfo
}

func (s BytesSchema) Kind() Kind { return Bytes }
func (s BytesSchema) LogicalType() Logical {
	if s.Decimal != nil {
		return Decimal
	}
	return NoLogical
}

type StringSchema struct{}

func (StringSchema) Kind() Kind           { return String }
func (StringSchema) LogicalType() Logical { return NoLogical }

// FixedSchema may carry a Decimal overlay (any size) or a Duration overlay
// (size must be exactly 12 — invariant checked by Validate and again by
// the Duration case, not by this type itself).
type FixedSchema struct {
	Name     string
	Size     int
	Decimal  *DecimalInfo
	Duration bool
}

func (s FixedSchema) Kind() Kind { return Fixed }
func (s FixedSchema) LogicalType() Logical {
	switch {
	case s.Decimal != nil:
		return Decimal
	case s.Duration:
		return Duration
	default:
		return NoLogical
	}
}

// EnumSchema's Symbols order is the wire index. Like RecordSchema, it is
// always used by pointer: every schema variant that holds a slice is
// pointer-typed so two Schema values are always safe to compare by
// interface equality (pointer identity) when used as part of a
// (type, schema) compilation cache key — a value type embedding a slice
// would panic if Go ever compared it by value.
type EnumSchema struct {
	Name    string
	Symbols []string
}

func (s *EnumSchema) Kind() Kind           { return Enum }
func (s *EnumSchema) LogicalType() Logical { return NoLogical }

type ArraySchema struct {
	Item Schema
}

func (s *ArraySchema) Kind() Kind           { return Array }
func (s *ArraySchema) LogicalType() Logical { return NoLogical }

// MapSchema keys are always strings, regardless of target key type.
type MapSchema struct {
	Value Schema
}

func (s *MapSchema) Kind() Kind           { return Map }
func (s *MapSchema) LogicalType() Logical { return NoLogical }

type Field struct {
	Name string
	Type Schema
}

// RecordSchema supports self-reference by pointer identity: a field's Type
// may point back to the same *RecordSchema, forming a cycle the builder
// resolves via forward references. Schemas are constructed
// programmatically in this codebase (schema parsing is an external
// collaborator), so cycles are built the same way any Go code builds a
// cyclic pointer graph — declare, then mutate.
type RecordSchema struct {
	Name   string
	Fields []Field
}

func (s *RecordSchema) Kind() Kind           { return Record }
func (s *RecordSchema) LogicalType() Logical { return NoLogical }

// UnionSchema contains at most one Null branch and no nested Union
// (invariant checked by Validate, which BuildEncoder/BuildDecoder call,
// not by this type itself).
type UnionSchema struct {
	Schemas []Schema
}

func (s *UnionSchema) Kind() Kind           { return Union }
func (s *UnionSchema) LogicalType() Logical { return NoLogical }

// NullIndex returns the index of the Null branch, or -1 if the union has
// none.
func (s *UnionSchema) NullIndex() int {
	for i, sub := range s.Schemas {
		if sub.Kind() == Null {
			return i
		}
	}
	return -1
}
