// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/cpoole/avrobind/avroerr"
)

// maxVarintBytes is the longest a zig-zag varint encoding of a 64-bit
// value can be.
const maxVarintBytes = 10

// WriteLong encodes a signed 64-bit integer as a zig-zag varint.
func WriteLong(sink Sink, n int64) error {
	u := zigZagEncode(n)
	for {
		if u&^0x7f == 0 {
			return sink.WriteByte(byte(u))
		}
		if err := sink.WriteByte(byte(u&0x7f | 0x80)); err != nil {
			return err
		}
		u >>= 7
	}
}

// ReadLong decodes a zig-zag varint, signalling Overflow past 10
// continuation bytes and Eof on a truncated stream.
func ReadLong(source Source) (int64, error) {
	var u uint64
	for i := 0; ; i++ {
		if i == maxVarintBytes {
			return 0, avroerr.New(avroerr.Overflow, "varint exceeds %d bytes", maxVarintBytes)
		}
		b, err := source.ReadByte()
		if err != nil {
			return 0, err
		}
		u |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			break
		}
	}
	return zigZagDecode(u), nil
}

func zigZagEncode(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

func zigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// WriteBoolean writes 0x00 for false, 0x01 for true.
func WriteBoolean(sink Sink, v bool) error {
	if v {
		return sink.WriteByte(1)
	}
	return sink.WriteByte(0)
}

// ReadBoolean treats any nonzero byte as true.
func ReadBoolean(source Source) (bool, error) {
	b, err := source.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// WriteFloat writes the IEEE-754 single-precision bit pattern,
// little-endian. encoding/binary.LittleEndian already produces the wire
// byte order regardless of host endianness, so there is no separate
// "reverse on big-endian hosts" branch to write.
func WriteFloat(sink Sink, v float32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	return sink.WriteAll(buf[:])
}

func ReadFloat(source Source) (float32, error) {
	var buf [4]byte
	if err := source.ReadExact(buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

// WriteDouble writes the IEEE-754 double-precision bit pattern, little-endian.
func WriteDouble(sink Sink, v float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return sink.WriteAll(buf[:])
}

func ReadDouble(source Source) (float64, error) {
	var buf [8]byte
	if err := source.ReadExact(buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

// WriteFixed writes exactly len(p) raw bytes, no length prefix.
func WriteFixed(sink Sink, p []byte) error { return sink.WriteAll(p) }

// ReadFixed reads exactly len(p) raw bytes into p.
func ReadFixed(source Source, p []byte) error { return source.ReadExact(p) }

// WriteBytes writes a zig-zag varint length followed by the raw bytes.
func WriteBytes(sink Sink, p []byte) error {
	if err := WriteLong(sink, int64(len(p))); err != nil {
		return err
	}
	return sink.WriteAll(p)
}

// ReadBytes reads a zig-zag varint length then that many raw bytes.
func ReadBytes(source Source) ([]byte, error) {
	n, err := ReadLong(source)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, avroerr.New(avroerr.Wire, "negative byte length %d", n)
	}
	buf := make([]byte, n)
	if err := source.ReadExact(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteString writes a length-prefixed UTF-8 string with no BOM.
func WriteString(sink Sink, s string) error {
	return WriteBytes(sink, []byte(s))
}

// ReadString reads a length-prefixed string, validating UTF-8.
func ReadString(source Source) (string, error) {
	b, err := ReadBytes(source)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", avroerr.New(avroerr.Utf8, "string is not valid UTF-8")
	}
	return string(b), nil
}

// EncodeBlock writes count items as a single positive-count block plus a
// terminating zero, or just a zero if count is 0 — the only two framings
// this encoder ever produces.
func EncodeBlock(sink Sink, count int, writeItem func(i int) error) error {
	if count > 0 {
		if err := WriteLong(sink, int64(count)); err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := writeItem(i); err != nil {
				return err
			}
		}
	}
	return WriteLong(sink, 0)
}

// block-read state machine: NeedHeader -> NeedBlockBody -> ... -> Done.
// DecodeBlock hides the states behind a per-item callback loop.
func DecodeBlock(source Source, decodeItem func() error) error {
	for {
		count, err := ReadLong(source)
		if err != nil {
			return err
		}
		if count == 0 {
			return nil // Done
		}
		if count < 0 {
			count = -count
			if _, err := ReadLong(source); err != nil { // byte-length hint, discarded
				return err
			}
		}
		for i := int64(0); i < count; i++ {
			if err := decodeItem(); err != nil {
				return err
			}
		}
	}
}
