// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package numeric implements the checked numeric conversions the
// Integer/Float/Double cases need, generic over the target Go numeric
// type via golang.org/x/exp/constraints, and the same per-concrete-type
// specialization technique hamba-avro's native codec uses (a generic
// struct/function instantiated once per Go Kind, rather than a single
// any-typed conversion with runtime branching).
package numeric

import (
	"math"
	"reflect"

	"golang.org/x/exp/constraints"

	"github.com/cpoole/avrobind/avroerr"
)

func isUnsigned[T constraints.Integer]() bool {
	var z T
	return z-1 > 0
}

// FromInt64 converts the wire-decoded long src to T, signalling
// Conversion if T cannot represent it losslessly.
func FromInt64[T constraints.Integer](src int64) (T, error) {
	if isUnsigned[T]() && src < 0 {
		var z T
		return 0, avroerr.New(avroerr.Conversion, "value %d cannot convert to unsigned type %T", src, z)
	}
	conv := T(src)
	if int64(conv) != src {
		var z T
		return 0, avroerr.New(avroerr.Conversion, "value %d overflows target type %T", src, z)
	}
	return conv, nil
}

// ToInt64 converts a Go numeric value of type T to the int64 the long
// wire form requires, signalling Conversion if T's value exceeds int64's
// range (only possible for a uint64/uint whose value is above MaxInt64).
func ToInt64[T constraints.Integer](v T) (int64, error) {
	if isUnsigned[T]() {
		u := uint64(v)
		if u > math.MaxInt64 {
			return 0, avroerr.New(avroerr.Conversion, "value %d exceeds int64 range", u)
		}
		return int64(u), nil
	}
	return int64(v), nil
}

// FromFloat64 narrows a wire-decoded double to T, signalling Conversion
// if the result is no longer finite while the source was.
func FromFloat64[T constraints.Float](src float64) (T, error) {
	conv := T(src)
	if math.IsInf(float64(conv), 0) && !math.IsInf(src, 0) {
		var z T
		return 0, avroerr.New(avroerr.Conversion, "value %v overflows target type %T", src, z)
	}
	return conv, nil
}

// ToFloat64 widens a Go floating-point value of type T to float64 for the
// double/float wire forms. Widening a float32 or float64 to float64 never
// overflows.
func ToFloat64[T constraints.Float](v T) float64 {
	return float64(v)
}

// ReflectInt extracts a T from v, whose reflect.Kind must already match
// T's (the caller dispatches per-Kind before instantiating this generic).
func ReflectInt[T constraints.Integer](v reflect.Value) T {
	if isUnsigned[T]() {
		return T(v.Uint())
	}
	return T(v.Int())
}

// ReflectFloat extracts a T from v, whose reflect.Kind must already match
// T's.
func ReflectFloat[T constraints.Float](v reflect.Value) T {
	return T(v.Float())
}
