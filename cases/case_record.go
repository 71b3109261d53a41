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

	"github.com/cpoole/avrobind/avroerr"
	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

// recordCase handles a Record schema against a Go struct type (directly
// or through one level of pointer). Each schema field, in declared
// order, is matched to exactly one resolution field by name and
// delegates to a recursively-built sub-delegate; self-referential
// schemas rely on compile.Context's forward-reference cache entry
// (already installed by BuildResolved before this Build runs), so a
// field typed as the same (Go type, schema) pair captures the same
// *compile.Delegate pointer rather than recursing into another Build.
type recordCase struct{}

func (recordCase) Name() string { return "Record" }

type boundField struct {
	index    []int
	sub      *compile.Delegate
	fieldTyp reflect.Type
}

func (recordCase) Build(ctx *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	rs, ok := sch.(*schema.RecordSchema)
	if !ok {
		return nil, fmt.Errorf("schema kind is %s, not record", sch.Kind())
	}
	rr, ok := typ.(*resolve.RecordResolution)
	if !ok {
		return nil, fmt.Errorf("type resolution kind %d is not a record resolution", typ.Kind())
	}
	t := elemType(typ)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type %s is not struct-shaped", t)
	}

	bound := make([]boundField, len(rs.Fields))
	for i, f := range rs.Fields {
		matchIdx := -1
		for j, rf := range rr.Fields {
			if rf.Name.IsMatch(f.Name) {
				if matchIdx != -1 {
					return nil, avroerr.New(avroerr.AmbiguousField,
						"record field %q matches more than one struct field", f.Name)
				}
				matchIdx = j
			}
		}
		if matchIdx == -1 {
			return nil, avroerr.New(avroerr.UnsupportedType, "record field %q has no matching struct field", f.Name)
		}
		rf := rr.Fields[matchIdx]
		sub, err := ctx.BuildResolved(rf.Type.GoType(), f.Type, rf.Type)
		if err != nil {
			return nil, fmt.Errorf("record field %q: %w", f.Name, err)
		}
		bound[i] = boundField{index: rf.Index, sub: sub, fieldTyp: rf.Type.GoType()}
	}

	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			s := derefForEncode(v)
			for _, bf := range bound {
				if err := bf.sub.Encode(s.FieldByIndex(bf.index), sink); err != nil {
					return err
				}
			}
			return nil
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			out := reflect.New(t).Elem()
			for _, bf := range bound {
				dv, err := bf.sub.Decode(source)
				if err != nil {
					return reflect.Value{}, err
				}
				out.FieldByIndex(bf.index).Set(dv)
			}
			return wrapForDecode(typ, out), nil
		},
	}, nil
}
