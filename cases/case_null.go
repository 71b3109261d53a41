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

// nullCase handles a bare Null schema matched against a resolution whose
// Go representation can itself be the zero value standing for null — used
// for e.g. an empty struct{} placeholder field, never for a union branch
// (Union handles nullability of its sibling branches itself).
type nullCase struct{}

func (nullCase) Name() string { return "Null" }

func (nullCase) Build(_ *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	if sch.Kind() != schema.Null {
		return nil, fmt.Errorf("schema kind is %s, not null", sch.Kind())
	}
	t := typ.GoType()
	if t.Kind() != reflect.Struct || t.NumField() != 0 {
		return nil, fmt.Errorf("type %s is not empty-struct shaped for a null schema", t)
	}
	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			return nil
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			return reflect.Zero(t), nil
		},
	}, nil
}
