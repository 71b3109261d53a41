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

var uuidType = reflect.TypeOf(uuid.UUID{})

// bytesCase handles a Bytes schema against either a raw []byte Go type or
// a uuid.UUID, encoded as its 16-byte little-endian form. Bytes schemas
// carrying a Decimal overlay are matched by decimalCase
// first (registry order); this case still accepts them for a []byte
// target, for callers that want the raw two's-complement bytes rather
// than a decimal value.
type bytesCase struct{}

func (bytesCase) Name() string { return "Bytes" }

func (bytesCase) Build(_ *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	if sch.Kind() != schema.Bytes {
		return nil, fmt.Errorf("schema kind is %s, not bytes", sch.Kind())
	}
	t := elemType(typ)

	if t == uuidType {
		return &compile.Delegate{
			Encode: func(v reflect.Value, sink wire.Sink) error {
				id := derefForEncode(v).Interface().(uuid.UUID)
				b := littleEndianUUID(id)
				return wire.WriteBytes(sink, b[:])
			},
			Decode: func(source wire.Source) (reflect.Value, error) {
				b, err := wire.ReadBytes(source)
				if err != nil {
					return reflect.Value{}, err
				}
				if len(b) != 16 {
					return reflect.Value{}, avroerr.New(avroerr.SizeMismatch, "uuid bytes length is %d, want 16", len(b))
				}
				var arr [16]byte
				copy(arr[:], b)
				return wrapForDecode(typ, reflect.ValueOf(uuidFromLittleEndian(arr))), nil
			},
		}, nil
	}

	if err := requireKind(typ, resolve.PrimitiveKind); err != nil {
		return nil, err
	}
	if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.Uint8 {
		return nil, fmt.Errorf("type %s is not []byte-shaped", t)
	}
	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			return wire.WriteBytes(sink, derefForEncode(v).Bytes())
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			b, err := wire.ReadBytes(source)
			if err != nil {
				return reflect.Value{}, err
			}
			return wrapForDecode(typ, reflect.ValueOf(b)), nil
		},
	}, nil
}

// littleEndianUUID/uuidFromLittleEndian convert between uuid.UUID's
// canonical big-endian byte layout and the little-endian wire form (the
// .NET Guid layout): the first three fields (32-bit, 16-bit, 16-bit) are
// byte-reversed; the trailing 8-byte clock-seq/node field is left as-is.
func littleEndianUUID(id uuid.UUID) [16]byte {
	var out [16]byte
	out[0], out[1], out[2], out[3] = id[3], id[2], id[1], id[0]
	out[4], out[5] = id[5], id[4]
	out[6], out[7] = id[7], id[6]
	copy(out[8:], id[8:])
	return out
}

func uuidFromLittleEndian(b [16]byte) uuid.UUID {
	var out uuid.UUID
	out[0], out[1], out[2], out[3] = b[3], b[2], b[1], b[0]
	out[4], out[5] = b[5], b[4]
	out[6], out[7] = b[7], b[6]
	copy(out[8:], b[8:])
	return out
}
