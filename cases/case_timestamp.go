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
	"time"

	"github.com/cpoole/avrobind/avroerr"
	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

// ticksPerSecond is the 100ns-tick unit the logical timestamp encoding is
// defined in terms of, regardless of which factor (millis or micros) the
// wire value is ultimately divided by.
const ticksPerSecond = int64(time.Second / 100)

// timestampCase handles a Long schema carrying a TimestampMillis or
// TimestampMicros overlay against a time.Time-shaped target: convert to
// ticks since the Unix epoch, then divide by the logical factor
// (10_000 for millis, 10 for micros).
type timestampCase struct{}

func (timestampCase) Name() string { return "Timestamp" }

func (timestampCase) Build(_ *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	ls, ok := sch.(schema.LongSchema)
	if !ok {
		return nil, fmt.Errorf("schema kind is %s, not long", sch.Kind())
	}
	var factor int64
	switch ls.Logical {
	case schema.TimestampMillis:
		factor = 10_000
	case schema.TimestampMicros:
		factor = 10
	default:
		return nil, fmt.Errorf("schema has no timestamp overlay")
	}
	if err := requireKind(typ, resolve.TimestampKind); err != nil {
		return nil, err
	}

	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			t := derefForEncode(v).Interface().(time.Time).UTC()
			ticks := t.Unix()*ticksPerSecond + int64(t.Nanosecond())/100
			return wire.WriteLong(sink, ticks/factor)
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			units, err := wire.ReadLong(source)
			if err != nil {
				return reflect.Value{}, err
			}
			ticks := units * factor
			secs := ticks / ticksPerSecond
			remTicks := ticks % ticksPerSecond
			if remTicks < 0 {
				remTicks += ticksPerSecond
				secs--
			}
			t := time.Unix(secs, remTicks*100).UTC()
			if t.Year() < 1 || t.Year() > 9999 {
				return reflect.Value{}, avroerr.New(avroerr.Conversion, "timestamp %d out of representable range", units)
			}
			return wrapForDecode(typ, reflect.ValueOf(t)), nil
		},
	}, nil
}
