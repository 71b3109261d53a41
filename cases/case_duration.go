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
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/cpoole/avrobind/avroerr"
	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

// durationCase handles a Fixed{size=12} schema carrying a Duration
// overlay against a time.Duration-shaped target: three little-endian
// uint32 fields, months/days/milliseconds. This encoder always writes
// months=0 and folds every calendar month into 30-day units at the days
// field — time.Duration has no concept of a calendar month, so there is
// no lossless months value to emit on encode. Decode adds any nonzero
// months back in as 30-day increments.
type durationCase struct{}

func (durationCase) Name() string { return "Duration" }

func (durationCase) Build(_ *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	fs, ok := sch.(schema.FixedSchema)
	if !ok || fs.LogicalType() != schema.Duration {
		return nil, fmt.Errorf("schema has no duration overlay")
	}
	if fs.Size != 12 {
		return nil, avroerr.New(avroerr.SizeMismatch, "duration fixed %q size %d, want 12", fs.Name, fs.Size)
	}
	if err := requireKind(typ, resolve.DurationKind); err != nil {
		return nil, err
	}

	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error {
			d := derefForEncode(v).Interface().(time.Duration)
			if d < 0 {
				return avroerr.New(avroerr.Conversion, "duration %s is negative; avro duration logical type has no sign", d)
			}
			totalDays := int64(d / (24 * time.Hour))
			millis := int64((d - time.Duration(totalDays)*24*time.Hour) / time.Millisecond)
			if totalDays > math.MaxUint32 {
				return avroerr.New(avroerr.Overflow, "duration %s spans %d days, exceeding the 32-bit days field", d, totalDays)
			}
			if millis > math.MaxUint32 {
				return avroerr.New(avroerr.Overflow, "duration %s has %d residual milliseconds, exceeding the 32-bit millisecond field", d, millis)
			}
			var buf [12]byte
			binary.LittleEndian.PutUint32(buf[0:4], 0)
			binary.LittleEndian.PutUint32(buf[4:8], uint32(totalDays))
			binary.LittleEndian.PutUint32(buf[8:12], uint32(millis))
			return wire.WriteFixed(sink, buf[:])
		},
		Decode: func(source wire.Source) (reflect.Value, error) {
			var buf [12]byte
			if err := wire.ReadFixed(source, buf[:]); err != nil {
				return reflect.Value{}, err
			}
			months := binary.LittleEndian.Uint32(buf[0:4])
			days := binary.LittleEndian.Uint32(buf[4:8])
			millis := binary.LittleEndian.Uint32(buf[8:12])
			d := time.Duration(months)*30*24*time.Hour +
				time.Duration(days)*24*time.Hour +
				time.Duration(millis)*time.Millisecond
			return wrapForDecode(typ, reflect.ValueOf(d)), nil
		},
	}, nil
}
