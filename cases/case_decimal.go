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
	"math/big"
	"reflect"

	"github.com/cpoole/avrobind/avroerr"
	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

var bigRatType = reflect.TypeOf(big.Rat{})

// decimalCase handles a Bytes or Fixed schema carrying a Decimal overlay
// against a *big.Rat-shaped target (resolve.DecimalKind). The unscaled
// value is value*10^scale, represented two's-complement, big-endian,
// minimum length; Bytes schemas prefix that with a varint length, Fixed
// schemas pad (sign-extending) to the fixed size or signal SizeMismatch.
type decimalCase struct{}

func (decimalCase) Name() string { return "Decimal" }

func (decimalCase) Build(_ *compile.Context, sch schema.Schema, typ resolve.TypeResolution) (*compile.Delegate, error) {
	if sch.LogicalType() != schema.Decimal {
		return nil, fmt.Errorf("schema has no decimal overlay")
	}
	if err := requireKind(typ, resolve.DecimalKind); err != nil {
		return nil, err
	}
	if elemType(typ) != bigRatType {
		return nil, fmt.Errorf("type %s is not big.Rat-shaped", elemType(typ))
	}

	var info *schema.DecimalInfo
	fixedSize := -1
	switch s := sch.(type) {
	case schema.BytesSchema:
		info = s.Decimal
	case schema.FixedSchema:
		info = s.Decimal
		fixedSize = s.Size
	default:
		return nil, fmt.Errorf("schema kind %s cannot carry a decimal overlay", sch.Kind())
	}
	scale := info.Scale

	encode := func(v reflect.Value, sink wire.Sink) error {
		r := derefForEncode(v).Interface().(big.Rat)
		unscaled, err := scaleRat(&r, scale)
		if err != nil {
			return err
		}
		raw := twosComplementBytes(unscaled)
		if fixedSize < 0 {
			return wire.WriteBytes(sink, raw)
		}
		padded, err := padTwosComplement(raw, fixedSize)
		if err != nil {
			return err
		}
		return wire.WriteFixed(sink, padded)
	}

	decode := func(source wire.Source) (reflect.Value, error) {
		var raw []byte
		var err error
		if fixedSize < 0 {
			raw, err = wire.ReadBytes(source)
		} else {
			raw = make([]byte, fixedSize)
			err = wire.ReadFixed(source, raw)
		}
		if err != nil {
			return reflect.Value{}, err
		}
		unscaled := twosComplementToBigInt(raw)
		r := unscaleToRat(unscaled, scale)
		return wrapForDecode(typ, reflect.ValueOf(*r)), nil
	}

	return &compile.Delegate{Encode: encode, Decode: decode}, nil
}

// scaleRat returns r * 10^scale as an exact integer. r must already be
// representable at this scale without loss; a nonzero remainder means the
// value cannot be carried at the schema's declared scale, which is a
// conversion error, not a rounding opportunity.
func scaleRat(r *big.Rat, scale int) (*big.Int, error) {
	factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(factor))
	num := new(big.Int).Set(scaled.Num())
	den := scaled.Denom()
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		return nil, avroerr.New(avroerr.Conversion, "value %s cannot be represented exactly at scale %d", r.RatString(), scale)
	}
	return q, nil
}

func unscaleToRat(unscaled *big.Int, scale int) *big.Rat {
	factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	return new(big.Rat).SetFrac(unscaled, factor)
}

// twosComplementBytes renders n as minimum-length two's-complement,
// big-endian bytes.
func twosComplementBytes(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0}
	}
	if n.Sign() > 0 {
		b := n.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}
	// Negative: two's complement of |n| at the minimum byte width that
	// keeps the sign bit set. ^n (= -n-1) counts the magnitude bits, so
	// -128 fits in one byte while -129 needs two.
	bitLen := new(big.Int).Not(n).BitLen()
	nBytes := bitLen/8 + 1
	mod := new(big.Int).Lsh(big.NewInt(1), uint(nBytes*8))
	twos := new(big.Int).Add(mod, n)
	b := twos.Bytes()
	for len(b) < nBytes {
		b = append([]byte{0}, b...)
	}
	return b
}

func twosComplementToBigInt(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	n := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
		n.Sub(n, mod)
	}
	return n
}

func padTwosComplement(raw []byte, size int) ([]byte, error) {
	if len(raw) > size {
		return nil, avroerr.New(avroerr.SizeMismatch, "decimal needs %d bytes, fixed size is %d", len(raw), size)
	}
	if len(raw) == size {
		return raw, nil
	}
	pad := byte(0)
	if raw[0]&0x80 != 0 {
		pad = 0xff
	}
	out := make([]byte, size)
	for i := 0; i < size-len(raw); i++ {
		out[i] = pad
	}
	copy(out[size-len(raw):], raw)
	return out, nil
}
