// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package wire_test

import (
	"math"
	"testing"

	"github.com/cpoole/avrobind/avroerr"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLong_150(t *testing.T) {
	sink := wire.NewBufferSink()
	require.NoError(t, wire.WriteLong(sink, 150))
	assert.Equal(t, []byte{0xAC, 0x02}, sink.Bytes())
}

func TestReadLong_150(t *testing.T) {
	src := wire.NewBufferSource([]byte{0xAC, 0x02})
	v, err := wire.ReadLong(src)
	require.NoError(t, err)
	assert.Equal(t, int64(150), v)
	assert.Equal(t, 2, src.Pos())
}

func TestLongRoundTripNegative(t *testing.T) {
	for _, n := range []int64{0, -1, 1, -64, 64, math.MinInt64, math.MaxInt64} {
		sink := wire.NewBufferSink()
		require.NoError(t, wire.WriteLong(sink, n))
		require.LessOrEqual(t, len(sink.Bytes()), 10)
		src := wire.NewBufferSource(sink.Bytes())
		got, err := wire.ReadLong(src)
		require.NoError(t, err)
		assert.Equal(t, n, got)
		assert.Equal(t, len(sink.Bytes()), src.Pos())
	}
}

func TestReadLongOverflow(t *testing.T) {
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = 0xFF
	}
	src := wire.NewBufferSource(buf)
	_, err := wire.ReadLong(src)
	require.Error(t, err)
	assert.True(t, avroerr.IsKind(err, avroerr.Overflow))
}

func TestBoolean(t *testing.T) {
	sink := wire.NewBufferSink()
	require.NoError(t, wire.WriteBoolean(sink, true))
	require.NoError(t, wire.WriteBoolean(sink, false))
	src := wire.NewBufferSource(sink.Bytes())
	v, err := wire.ReadBoolean(src)
	require.NoError(t, err)
	assert.True(t, v)
	v, err = wire.ReadBoolean(src)
	require.NoError(t, err)
	assert.False(t, v)
}

func TestFloatDoubleRoundTrip(t *testing.T) {
	sink := wire.NewBufferSink()
	require.NoError(t, wire.WriteFloat(sink, 3.25))
	require.NoError(t, wire.WriteDouble(sink, math.Pi))
	src := wire.NewBufferSource(sink.Bytes())
	f, err := wire.ReadFloat(src)
	require.NoError(t, err)
	assert.Equal(t, float32(3.25), f)
	d, err := wire.ReadDouble(src)
	require.NoError(t, err)
	assert.Equal(t, math.Pi, d)
}

func TestStringEncoding(t *testing.T) {
	sink := wire.NewBufferSink()
	require.NoError(t, wire.WriteString(sink, "foo"))
	assert.Equal(t, []byte{0x06, 0x66, 0x6F, 0x6F}, sink.Bytes())

	src := wire.NewBufferSource(sink.Bytes())
	s, err := wire.ReadString(src)
	require.NoError(t, err)
	assert.Equal(t, "foo", s)
}

func TestStringInvalidUTF8(t *testing.T) {
	sink := wire.NewBufferSink()
	require.NoError(t, wire.WriteBytes(sink, []byte{0xff, 0xfe}))
	src := wire.NewBufferSource(sink.Bytes())
	_, err := wire.ReadString(src)
	require.Error(t, err)
	assert.True(t, avroerr.IsKind(err, avroerr.Utf8))
}

func TestBlockEmpty(t *testing.T) {
	sink := wire.NewBufferSink()
	require.NoError(t, wire.EncodeBlock(sink, 0, func(i int) error { return nil }))
	assert.Equal(t, []byte{0x00}, sink.Bytes())
}

func TestBlockArrayTwoItems(t *testing.T) {
	items := []int64{3, 27}
	sink := wire.NewBufferSink()
	err := wire.EncodeBlock(sink, len(items), func(i int) error {
		return wire.WriteLong(sink, items[i])
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x06, 0x36, 0x00}, sink.Bytes())

	var got []int64
	src := wire.NewBufferSource(sink.Bytes())
	err = wire.DecodeBlock(src, func() error {
		v, err := wire.ReadLong(src)
		if err != nil {
			return err
		}
		got = append(got, v)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestDecodeBlockNegativeCountWithByteLengthHint(t *testing.T) {
	sink := wire.NewBufferSink()
	require.NoError(t, wire.WriteLong(sink, -2))
	require.NoError(t, wire.WriteLong(sink, 4)) // byte-length hint, discarded by reader
	require.NoError(t, wire.WriteLong(sink, 1))
	require.NoError(t, wire.WriteLong(sink, 2))
	require.NoError(t, wire.WriteLong(sink, 0))

	var got []int64
	src := wire.NewBufferSource(sink.Bytes())
	err := wire.DecodeBlock(src, func() error {
		v, err := wire.ReadLong(src)
		if err != nil {
			return err
		}
		got = append(got, v)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, got)
}
