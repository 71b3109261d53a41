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

	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

// arrayCase handles an Array schema against a slice or array Go type,
// delegating each item to a recursively-built sub-delegate.
type arrayCase struct{}

func (arrayCase) Name() string { return "Array" }

func (arrayCase) Build(ctx *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	as, ok := sch.(*schema.ArraySchema)
	if !ok {
		return nil, fmt.Errorf("schema kind is %s, not array", sch.Kind())
	}
	ar, ok := typ.(resolve.ArrayResolution)
	if !ok {
		return nil, fmt.Errorf("type resolution kind %d is not an array resolution", typ.Kind())
	}
	t := elemType(typ)
	if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
		return nil, fmt.Errorf("type %s is not slice/array-shaped", t)
	}

	item, err := ctx.BuildResolved(ar.Item.GoType(), as.Item, ar.Item)
	if err != nil {
		return nil, fmt.Errorf("array item: %w", err)
	}

	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			s := derefForEncode(v)
			n := s.Len()
			return wire.EncodeBlock(sink, n, func(i int) error {
				return item.Encode(s.Index(i), sink)
			})
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			out := reflect.MakeSlice(reflect.SliceOf(ar.Item.GoType()), 0, 0)
			err := wire.DecodeBlock(source, func() error {
				dv, derr := item.Decode(source)
				if derr != nil {
					return derr
				}
				out = reflect.Append(out, dv)
				return nil
			})
			if err != nil {
				return reflect.Value{}, err
			}
			if t.Kind() == reflect.Array {
				arr := reflect.New(t).Elem()
				reflect.Copy(arr, out)
				return wrapForDecode(typ, arr), nil
			}
			return wrapForDecode(typ, out), nil
		},
	}, nil
}
