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

	"github.com/google/uuid"

	"github.com/cpoole/avrobind/avroerr"
	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

// fixedCase handles a Fixed schema (without a Decimal/Duration overlay —
// those are shadowed earlier in the registry) against a Go [N]byte array,
// a []byte slice of the exact size, or a uuid.UUID when Fixed.Size == 16.
type fixedCase struct{}

func (fixedCase) Name() string { return "Fixed" }

func (fixedCase) Build(_ *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	fs, ok := sch.(schema.FixedSchema)
	if !ok {
		return nil, fmt.Errorf("schema kind is %s, not fixed", sch.Kind())
	}
	t := elemType(typ)

	if t == uuidType {
		if fs.Size != 16 {
			return nil, avroerr.New(avroerr.SizeMismatch, "fixed %q size %d cannot hold a uuid (needs 16)", fs.Name, fs.Size)
		}
		return &compile.Delegate{
			Encode: func(v reflect.Value, sink wire.Sink) error {
				id := derefForEncode(v).Interface().(uuid.UUID)
				b := littleEndianUUID(id)
				return wire.WriteFixed(sink, b[:])
			},
			Decode: func(source wire.Source) (reflect.Value, error) {
				var b [16]byte
				if err := wire.ReadFixed(source, b[:]); err != nil {
					return reflect.Value{}, err
				}
				return wrapForDecode(typ, reflect.ValueOf(uuidFromLittleEndian(b))), nil
			},
		}, nil
	}

	switch {
	case t.Kind() == reflect.Array && t.Elem().Kind() == reflect.Uint8:
		if t.Len() != fs.Size {
			return nil, avroerr.New(avroerr.SizeMismatch, "array length %d does not match fixed size %d", t.Len(), fs.Size)
		}
		return fixedArrayDelegate(typ, t, fs.Size), nil

	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		return fixedSliceDelegate(typ, fs.Size), nil

	default:
		return nil, fmt.Errorf("type %s is not fixed-bytes-shaped", t)
	}
}

func fixedArrayDelegate(typ resolve.TypeResolution, arrType reflect.Type, size int) *compile.Delegate {
	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			arr := derefForEncode(v)
			buf := make([]byte, size)
			reflect.Copy(reflect.ValueOf(buf), arr)
			return wire.WriteFixed(sink, buf)
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			buf := make([]byte, size)
			if err := wire.ReadFixed(source, buf); err != nil {
				return reflect.Value{}, err
			}
			out := reflect.New(arrType).Elem()
			reflect.Copy(out, reflect.ValueOf(buf))
			return wrapForDecode(typ, out), nil
		},
	}
}

func fixedSliceDelegate(typ resolve.TypeResolution, size int) *compile.Delegate {
	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			b := derefForEncode(v).Bytes()
			if len(b) != size {
				return avroerr.New(avroerr.SizeMismatch, "[]byte length %d does not match fixed size %d", len(b), size)
			}
			return wire.WriteFixed(sink, b)
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			buf := make([]byte, size)
			if err := wire.ReadFixed(source, buf); err != nil {
				return reflect.Value{}, err
			}
			return wrapForDecode(typ, reflect.ValueOf(buf)), nil
		},
	}
}
