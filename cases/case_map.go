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
	"sort"

	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

// mapCase handles a Map schema against a Go map type. Keys are always
// strings on the wire; the resolution's Key type converts to/from string.
type mapCase struct{}

func (mapCase) Name() string { return "Map" }

func (mapCase) Build(ctx *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	ms, ok := sch.(*schema.MapSchema)
	if !ok {
		return nil, fmt.Errorf("schema kind is %s, not map", sch.Kind())
	}
	mr, ok := typ.(resolve.MapResolution)
	if !ok {
		return nil, fmt.Errorf("type resolution kind %d is not a map resolution", typ.Kind())
	}
	t := elemType(typ)
	if t.Kind() != reflect.Map {
		return nil, fmt.Errorf("type %s is not map-shaped", t)
	}
	if elemType(mr.Key).Kind() != reflect.String {
		return nil, fmt.Errorf("map key type %s does not convert to string", elemType(mr.Key))
	}

	value, err := ctx.BuildResolved(mr.Value.GoType(), ms.Value, mr.Value)
	if err != nil {
		return nil, fmt.Errorf("map value: %w", err)
	}

	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			m := derefForEncode(v)
			keys := m.MapKeys()
			// reflect.Value.MapKeys iterates in Go's randomized map order;
			// sort by the wire string form so encoding the same map twice
			// produces the same bytes.
			sort.Slice(keys, func(i, j int) bool {
				return keys[i].Convert(reflect.TypeOf("")).String() < keys[j].Convert(reflect.TypeOf("")).String()
			})
			return wire.EncodeBlock(sink, len(keys), func(i int) error {
				k := keys[i]
				if err := wire.WriteString(sink, k.Convert(reflect.TypeOf("")).String()); err != nil {
					return err
				}
				return value.Encode(m.MapIndex(k), sink)
			})
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			out := reflect.MakeMap(reflect.MapOf(mr.Key.GoType(), mr.Value.GoType()))
			err := wire.DecodeBlock(source, func() error {
				k, kerr := wire.ReadString(source)
				if kerr != nil {
					return kerr
				}
				dv, derr := value.Decode(source)
				if derr != nil {
					return derr
				}
				out.SetMapIndex(reflect.ValueOf(k).Convert(mr.Key.GoType()), dv)
				return nil
			})
			if err != nil {
				return reflect.Value{}, err
			}
			return wrapForDecode(typ, out), nil
		},
	}, nil
}
