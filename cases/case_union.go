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

// unionCase handles a Union schema. For an ordinary (non-interface)
// target, the branch is chosen once at build time: the first non-null
// schema branch whose sub-build succeeds for the target type. For an
// interface target (resolve.InterfaceResolution), a dispatch table is
// built once per registered candidate concrete type, and the branch is
// chosen per value at encode time by the value's runtime dynamic type.
type unionCase struct{}

func (unionCase) Name() string { return "Union" }

type unionBranch struct {
	index int
	sub   *compile.Delegate
}

func (unionCase) Build(ctx *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	us, ok := sch.(*schema.UnionSchema)
	if !ok {
		return nil, fmt.Errorf("schema kind is %s, not union", sch.Kind())
	}
	if len(us.Schemas) == 0 {
		return nil, fmt.Errorf("union schema has no branches")
	}
	nullIndex := us.NullIndex()

	if ir, ok := typ.(resolve.InterfaceResolution); ok {
		return buildPolymorphicUnion(ctx, us, ir, nullIndex)
	}
	return buildPlainUnion(ctx, us, typ, nullIndex)
}

func buildPlainUnion(ctx *compile.Context, us *schema.UnionSchema, typ resolve.TypeResolution, nullIndex int) (*compile.Delegate, error) {
	var chosen *unionBranch
	var causes []error
	for i, branch := range us.Schemas {
		if i == nullIndex {
			continue
		}
		d, err := ctx.BuildResolved(typ.GoType(), branch, typ)
		if err != nil {
			causes = append(causes, fmt.Errorf("branch %d (%s): %w", i, branch.Kind(), err))
			continue
		}
		chosen = &unionBranch{index: i, sub: d}
		break
	}
	if chosen == nil {
		return nil, avroerr.NewAggregate(avroerr.UnsupportedType, "no union branch matched the target type", causes)
	}

	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			if v.Kind() == reflect.Ptr && v.IsNil() {
				if nullIndex < 0 {
					return fmt.Errorf("value is nil but union has no null branch")
				}
				return wire.WriteLong(sink, int64(nullIndex))
			}
			if err := wire.WriteLong(sink, int64(chosen.index)); err != nil {
				return err
			}
			return chosen.sub.Encode(v, sink)
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			idx, err := wire.ReadLong(source)
			if err != nil {
				return reflect.Value{}, err
			}
			if idx == int64(nullIndex) {
				return nullValueOf(typ), nil
			}
			if idx != int64(chosen.index) {
				return reflect.Value{}, avroerr.New(avroerr.Wire, "union branch index %d out of range", idx)
			}
			return chosen.sub.Decode(source)
		},
	}, nil
}

func buildPolymorphicUnion(ctx *compile.Context, us *schema.UnionSchema, ir resolve.InterfaceResolution, nullIndex int) (*compile.Delegate, error) {
	type dispatchEntry struct {
		branch unionBranch
		typ    resolve.TypeResolution
	}
	byConcreteType := make(map[reflect.Type]dispatchEntry)
	byBranchIndex := make(map[int]dispatchEntry)

	for _, cand := range ir.Candidates {
		var matched *dispatchEntry
		var causes []error
		for i, branch := range us.Schemas {
			if i == nullIndex {
				continue
			}
			d, err := ctx.BuildResolved(cand.GoType(), branch, cand)
			if err != nil {
				causes = append(causes, fmt.Errorf("branch %d (%s): %w", i, branch.Kind(), err))
				continue
			}
			matched = &dispatchEntry{branch: unionBranch{index: i, sub: d}, typ: cand}
			break
		}
		if matched == nil {
			return nil, avroerr.NewAggregate(avroerr.Dispatch,
				fmt.Sprintf("no union branch matched candidate type %s", cand.GoType()), causes)
		}
		byConcreteType[cand.GoType()] = *matched
		byBranchIndex[matched.branch.index] = *matched
	}

	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			if v.Kind() == reflect.Interface {
				if v.IsNil() {
					if nullIndex < 0 {
						return fmt.Errorf("value is nil but union has no null branch")
					}
					return wire.WriteLong(sink, int64(nullIndex))
				}
				v = v.Elem()
			}
			concrete := v.Type()
			entry, ok := byConcreteType[concrete]
			if !ok {
				return avroerr.New(avroerr.Dispatch, "no registered union candidate for runtime type %s", concrete)
			}
			if err := wire.WriteLong(sink, int64(entry.branch.index)); err != nil {
				return err
			}
			return entry.branch.sub.Encode(v, sink)
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			idx, err := wire.ReadLong(source)
			if err != nil {
				return reflect.Value{}, err
			}
			if idx == int64(nullIndex) {
				return nullValueOf(ir), nil
			}
			entry, ok := byBranchIndex[int(idx)]
			if !ok {
				return reflect.Value{}, avroerr.New(avroerr.Wire, "union branch index %d out of range", idx)
			}
			decoded, derr := entry.branch.sub.Decode(source)
			if derr != nil {
				return reflect.Value{}, derr
			}
			out := reflect.New(ir.GoType()).Elem()
			out.Set(decoded)
			return out, nil
		},
	}, nil
}

// nullValueOf returns the nullable-null value of res's Go representation:
// a typed nil pointer or nil interface.
func nullValueOf(res resolve.TypeResolution) reflect.Value {
	return reflect.Zero(res.GoType())
}
