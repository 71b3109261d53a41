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

// enumCase handles an Enum schema against a Go type implementing
// resolve.Enumer, matching each resolution symbol to a schema symbol by
// name once at build time and encoding/decoding the matched index.
type enumCase struct{}

func (enumCase) Name() string { return "Enum" }

func (enumCase) Build(_ *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	es, ok := sch.(*schema.EnumSchema)
	if !ok {
		return nil, fmt.Errorf("schema kind is %s, not enum", sch.Kind())
	}
	er, ok := typ.(resolve.EnumResolution)
	if !ok {
		return nil, fmt.Errorf("type resolution kind %d is not an enum resolution", typ.Kind())
	}
	// resToSchema[i] is the schema-side index resolution symbol i matches.
	resToSchema := make([]int, len(er.Symbols))
	schemaToRes := make([]int, len(es.Symbols))
	for i := range schemaToRes {
		schemaToRes[i] = -1
	}
	for i, sym := range er.Symbols {
		match := -1
		for j, schemaSym := range es.Symbols {
			if sym.Name.IsMatch(schemaSym) {
				if match != -1 {
					return nil, avroerr.New(avroerr.AmbiguousSymbol,
						"enum symbol %q matches both schema symbols %q and %q", sym.Name, es.Symbols[match], schemaSym)
				}
				match = j
			}
		}
		if match == -1 {
			return nil, fmt.Errorf("enum symbol %q has no matching schema symbol", sym.Name)
		}
		resToSchema[i] = match
		schemaToRes[match] = i
	}

	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			ordinal := int(derefForEncode(v).Int())
			if ordinal < 0 || ordinal >= len(resToSchema) {
				return fmt.Errorf("enum ordinal %d out of range", ordinal)
			}
			return wire.WriteLong(sink, int64(resToSchema[ordinal]))
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			idx, err := wire.ReadLong(source)
			if err != nil {
				return reflect.Value{}, err
			}
			if idx < 0 || int(idx) >= len(schemaToRes) || schemaToRes[idx] == -1 {
				return reflect.Value{}, avroerr.New(avroerr.Wire, "enum index %d has no matching resolution symbol", idx)
			}
			return wrapForDecode(typ, reflect.ValueOf(schemaToRes[idx])), nil
		},
	}, nil
}
