// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrobind_test

import (
	"math/big"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cpoole/avrobind"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/schema"
)

func TestDecimal_BytesRoundTrip(t *testing.T) {
	sch := schema.BytesSchema{Decimal: &schema.DecimalInfo{Precision: 10, Scale: 2}}
	enc, err := avrobind.BuildEncoder[big.Rat](sch)
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[big.Rat](sch)
	require.NoError(t, err)

	in := *big.NewRat(12345, 100) // 123.45
	sink := wire.NewBufferSink()
	require.NoError(t, enc(in, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 0, in.Cmp(&got))
}

func TestDecimal_EncodeRejectsLossyScale(t *testing.T) {
	sch := schema.BytesSchema{Decimal: &schema.DecimalInfo{Precision: 10, Scale: 2}}
	enc, err := avrobind.BuildEncoder[big.Rat](sch)
	require.NoError(t, err)

	in := *big.NewRat(1, 3) // 0.333... has no exact representation at scale 2
	sink := wire.NewBufferSink()
	err = enc(in, sink)
	require.Error(t, err)
	require.True(t, avrobind.IsConversion(err))
}

func TestDecimal_FixedSizeMismatch(t *testing.T) {
	sch := schema.FixedSchema{Name: "dec", Size: 2, Decimal: &schema.DecimalInfo{Precision: 20, Scale: 0}}
	enc, err := avrobind.BuildEncoder[big.Rat](sch)
	require.NoError(t, err)

	huge := *new(big.Rat).SetInt(big.NewInt(1 << 40))
	sink := wire.NewBufferSink()
	err = enc(huge, sink)
	require.Error(t, err)
	require.True(t, avrobind.IsSizeMismatch(err))
}

func TestDuration_RoundTrip(t *testing.T) {
	sch := schema.FixedSchema{Name: "dur", Size: 12, Duration: true}
	enc, err := avrobind.BuildEncoder[time.Duration](sch)
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[time.Duration](sch)
	require.NoError(t, err)

	in := 90 * time.Minute
	sink := wire.NewBufferSink()
	require.NoError(t, enc(in, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestTimestamp_MillisRoundTrip(t *testing.T) {
	sch := schema.LongSchema{Logical: schema.TimestampMillis}
	enc, err := avrobind.BuildEncoder[time.Time](sch)
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[time.Time](sch)
	require.NoError(t, err)

	in := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	sink := wire.NewBufferSink()
	require.NoError(t, enc(in, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.True(t, in.Equal(got))
}

func TestString_URIFormat(t *testing.T) {
	enc, err := avrobind.BuildEncoder[url.URL](schema.StringSchema{})
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[url.URL](schema.StringSchema{})
	require.NoError(t, err)

	u, err := url.Parse("https://example.com/path?q=1")
	require.NoError(t, err)
	sink := wire.NewBufferSink()
	require.NoError(t, enc(*u, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, u.String(), got.String())
}

func TestString_DurationFormat(t *testing.T) {
	enc, err := avrobind.BuildEncoder[time.Duration](schema.StringSchema{})
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[time.Duration](schema.StringSchema{})
	require.NoError(t, err)

	in := 26*time.Hour + 30*time.Minute + 5*time.Second
	sink := wire.NewBufferSink()
	require.NoError(t, enc(in, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestString_DurationFormat_Zero(t *testing.T) {
	enc, err := avrobind.BuildEncoder[time.Duration](schema.StringSchema{})
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[time.Duration](schema.StringSchema{})
	require.NoError(t, err)

	sink := wire.NewBufferSink()
	require.NoError(t, enc(0, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), got)
}

func TestString_TimestampFormat(t *testing.T) {
	enc, err := avrobind.BuildEncoder[time.Time](schema.StringSchema{})
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[time.Time](schema.StringSchema{})
	require.NoError(t, err)

	in := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	sink := wire.NewBufferSink()
	require.NoError(t, enc(in, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.True(t, in.Equal(got))
}

type priority int

func (priority) EnumSymbols() []string { return []string{"low", "medium", "high"} }

const (
	priorityLow priority = iota
	priorityMedium
	priorityHigh
)

func TestEnum_RoundTrip(t *testing.T) {
	sch := &schema.EnumSchema{Name: "priority", Symbols: []string{"low", "medium", "high"}}
	enc, err := avrobind.BuildEncoder[priority](sch)
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[priority](sch)
	require.NoError(t, err)

	sink := wire.NewBufferSink()
	require.NoError(t, enc(priorityHigh, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, priorityHigh, got)
}
