// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package cases

import (
	"fmt"
	"reflect"

	"golang.org/x/exp/constraints"

	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/numeric"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

// integerCase handles both Int and Long schemas with the long wire form.
// It is specialized per concrete Go integer kind the way hamba-avro's
// codec_native.go dispatches to intCodec[int8], intCodec[uint32], etc. —
// one generic instantiation per reflect.Kind instead of a single
// any-typed conversion with runtime branching.
type integerCase struct{}

func (integerCase) Name() string { return "Integer" }

func (integerCase) Build(_ *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	if sch.Kind() != schema.Int && sch.Kind() != schema.Long {
		return nil, fmt.Errorf("schema kind is %s, not int/long", sch.Kind())
	}
	if err := requireKind(typ, resolve.PrimitiveKind); err != nil {
		return nil, err
	}
	t := elemType(typ)
	switch t.Kind() {
	case reflect.Int:
		return integerDelegate[int](typ), nil
	case reflect.Int8:
		return integerDelegate[int8](typ), nil
	case reflect.Int16:
		return integerDelegate[int16](typ), nil
	case reflect.Int32:
		return integerDelegate[int32](typ), nil
	case reflect.Int64:
		return integerDelegate[int64](typ), nil
	case reflect.Uint:
		return integerDelegate[uint](typ), nil
	case reflect.Uint8:
		return integerDelegate[uint8](typ), nil
	case reflect.Uint16:
		return integerDelegate[uint16](typ), nil
	case reflect.Uint32:
		return integerDelegate[uint32](typ), nil
	case reflect.Uint64:
		return integerDelegate[uint64](typ), nil
	default:
		return nil, fmt.Errorf("type %s is not an integer kind", t)
	}
}

func integerDelegate[T constraints.Integer](typ resolve.TypeResolution) *compile.Delegate {
	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			native := numeric.ReflectInt[T](derefForEncode(v))
			n, err := numeric.ToInt64(native)
			if err != nil {
				return err
			}
			return wire.WriteLong(sink, n)
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			n, err := wire.ReadLong(source)
			if err != nil {
				return reflect.Value{}, err
			}
			native, err := numeric.FromInt64[T](n)
			if err != nil {
				return reflect.Value{}, err
			}
			return wrapForDecode(typ, reflect.ValueOf(native)), nil
		},
	}
}
