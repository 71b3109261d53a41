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

type booleanCase struct{}

func (booleanCase) Name() string { return "Boolean" }

func (booleanCase) Build(_ *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	if sch.Kind() != schema.Boolean {
		return nil, fmt.Errorf("schema kind is %s, not boolean", sch.Kind())
	}
	if err := requireKind(typ, resolve.PrimitiveKind); err != nil {
		return nil, err
	}
	t := elemType(typ)
	if t.Kind() != reflect.Bool {
		return nil, fmt.Errorf("type %s is not bool-shaped", t)
	}
	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			return wire.WriteBoolean(sink, derefForEncode(v).Bool())
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			b, err := wire.ReadBoolean(source)
			if err != nil {
				return reflect.Value{}, err
			}
			return wrapForDecode(typ, reflect.ValueOf(b)), nil
		},
	}, nil
}
