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
	"net/url"
	"reflect"
	"time"

	"github.com/cpoole/avrobind/avroerr"
	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

// isoExtended is the ISO-8601 extended format used for date/time String
// values: complete date, time, and zone. time.RFC3339Nano already
// produces exactly that shape.
const isoExtended = time.RFC3339Nano

// stringCase handles a String schema against a Go string (direct), or one
// of the format-conversion types: time.Time (ISO-8601 extended),
// time.Duration (ISO-8601 period), and *url.URL (canonical string form).
type stringCase struct{}

func (stringCase) Name() string { return "String" }

func (stringCase) Build(_ *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	if sch.Kind() != schema.String {
		return nil, fmt.Errorf("schema kind is %s, not string", sch.Kind())
	}

	switch typ.Kind() {
	case resolve.TimestampKind:
		return &compile.Delegate{
			Encode: func(v reflect.Value, sink wire.Sink) error {
				t := derefForEncode(v).Interface().(time.Time)
				return wire.WriteString(sink, t.UTC().Format(isoExtended))
			},
			Decode: func(source wire.Source) (reflect.Value, error) {
				s, err := wire.ReadString(source)
				if err != nil {
					return reflect.Value{}, err
				}
				t, perr := time.Parse(isoExtended, s)
				if perr != nil {
					return reflect.Value{}, avroerr.New(avroerr.Conversion, "%q is not an ISO-8601 timestamp: %v", s, perr)
				}
				return wrapForDecode(typ, reflect.ValueOf(t)), nil
			},
		}, nil

	case resolve.DurationKind:
		return &compile.Delegate{
			Encode: func(v reflect.Value, sink wire.Sink) error {
				d := derefForEncode(v).Interface().(time.Duration)
				return wire.WriteString(sink, durationToISO8601(d))
			},
			Decode: func(source wire.Source) (reflect.Value, error) {
				s, err := wire.ReadString(source)
				if err != nil {
					return reflect.Value{}, err
				}
				d, derr := iso8601ToDuration(s)
				if derr != nil {
					return reflect.Value{}, derr
				}
				return wrapForDecode(typ, reflect.ValueOf(d)), nil
			},
		}, nil

	case resolve.URIKind:
		return &compile.Delegate{
			Encode: func(v reflect.Value, sink wire.Sink) error {
				u := derefForEncode(v).Interface().(url.URL)
				return wire.WriteString(sink, u.String())
			},
			Decode: func(source wire.Source) (reflect.Value, error) {
				s, err := wire.ReadString(source)
				if err != nil {
					return reflect.Value{}, err
				}
				u, perr := url.Parse(s)
				if perr != nil {
					return reflect.Value{}, avroerr.New(avroerr.Conversion, "%q is not a valid URI: %v", s, perr)
				}
				return wrapForDecode(typ, reflect.ValueOf(*u)), nil
			},
		}, nil

	case resolve.PrimitiveKind:
		t := elemType(typ)
		if t.Kind() != reflect.String {
			return nil, fmt.Errorf("type %s is not string-shaped", t)
		}
		return &compile.Delegate{
			Encode: func(v reflect.Value, sink wire.Sink) error {
				return wire.WriteString(sink, derefForEncode(v).String())
			},
			Decode: func(source wire.Source) (reflect.Value, error) {
				s, err := wire.ReadString(source)
				if err != nil {
					return reflect.Value{}, err
				}
				return wrapForDecode(typ, reflect.ValueOf(s)), nil
			},
		}, nil

	default:
		return nil, fmt.Errorf("type resolution kind %d has no string-schema format conversion", typ.Kind())
	}
}
