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
	"reflect"
	"testing"

	"github.com/mohae/deepcopy"
	"github.com/stretchr/testify/require"

	"github.com/cpoole/avrobind"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

func TestBuildEncoderDecoder_Int32RoundTrip(t *testing.T) {
	enc, err := avrobind.BuildEncoder[int32](schema.IntSchema{})
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[int32](schema.IntSchema{})
	require.NoError(t, err)

	sink := wire.NewBufferSink()
	require.NoError(t, enc(42, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, int32(42), got)
}

func TestBuildEncoderDecoder_StringArray(t *testing.T) {
	sch := &schema.ArraySchema{Item: schema.StringSchema{}}
	enc, err := avrobind.BuildEncoder[[]string](sch)
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[[]string](sch)
	require.NoError(t, err)

	in := []string{"a", "bb", "ccc"}
	sink := wire.NewBufferSink()
	require.NoError(t, enc(in, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestBuildEncoderDecoder_StringIntMap(t *testing.T) {
	sch := &schema.MapSchema{Value: schema.IntSchema{}}
	enc, err := avrobind.BuildEncoder[map[string]int32](sch)
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[map[string]int32](sch)
	require.NoError(t, err)

	in := map[string]int32{"one": 1, "two": 2}
	sink := wire.NewBufferSink()
	require.NoError(t, enc(in, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, in, got)
}

// listNode is a self-referential record, compiled against a schema whose
// "next" field points back to the same *RecordSchema — the forward
// reference cycle the builder's cache must break.
type listNode struct {
	Value int32
	Next  *listNode
}

func TestBuildEncoderDecoder_RecursiveLinkedList(t *testing.T) {
	nodeSchema := &schema.RecordSchema{Name: "listNode"}
	nodeUnion := &schema.UnionSchema{Schemas: []schema.Schema{schema.NullSchema{}, nodeSchema}}
	nodeSchema.Fields = []schema.Field{
		{Name: "Value", Type: schema.IntSchema{}},
		{Name: "Next", Type: nodeUnion},
	}

	enc, err := avrobind.BuildEncoder[*listNode](nodeUnion)
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[*listNode](nodeUnion)
	require.NoError(t, err)

	in := &listNode{Value: 1, Next: &listNode{Value: 2, Next: &listNode{Value: 3}}}
	sink := wire.NewBufferSink()
	require.NoError(t, enc(in, sink))

	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, in, got)
}

// TestBuildEncoderDecoder_RecursiveLinkedList_MutateAfterDecode guards
// against a decoder that aliases into its own scratch state: a clone taken
// via deepcopy before mutating the decoded chain must stay untouched.
func TestBuildEncoderDecoder_RecursiveLinkedList_MutateAfterDecode(t *testing.T) {
	nodeSchema := &schema.RecordSchema{Name: "listNode"}
	nodeUnion := &schema.UnionSchema{Schemas: []schema.Schema{schema.NullSchema{}, nodeSchema}}
	nodeSchema.Fields = []schema.Field{
		{Name: "Value", Type: schema.IntSchema{}},
		{Name: "Next", Type: nodeUnion},
	}

	enc, err := avrobind.BuildEncoder[*listNode](nodeUnion)
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[*listNode](nodeUnion)
	require.NoError(t, err)

	in := &listNode{Value: 1, Next: &listNode{Value: 2, Next: &listNode{Value: 3}}}
	sink := wire.NewBufferSink()
	require.NoError(t, enc(in, sink))

	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)

	clone := deepcopy.Copy(got).(*listNode)
	got.Next.Value = 99

	require.Equal(t, int32(2), clone.Next.Value)
	require.Equal(t, int32(99), got.Next.Value)
}

// shape is a closed interface union: circle and square are its only
// registered implementers, the way RegisterUnionCandidates requires.
type shape interface {
	Area() float64
}

type circle struct {
	Radius float64
}

func (c circle) Area() float64 { return 3.14159 * c.Radius * c.Radius }

type square struct {
	Side float64
}

func (s square) Area() float64 { return s.Side * s.Side }

func TestBuildEncoderDecoder_PolymorphicUnion(t *testing.T) {
	circleSchema := &schema.RecordSchema{
		Name:   "circle",
		Fields: []schema.Field{{Name: "Radius", Type: schema.DoubleSchema{}}},
	}
	squareSchema := &schema.RecordSchema{
		Name:   "square",
		Fields: []schema.Field{{Name: "Side", Type: schema.DoubleSchema{}}},
	}
	unionSchema := &schema.UnionSchema{Schemas: []schema.Schema{circleSchema, squareSchema}}

	resolver := resolve.NewReflectResolver()
	ifaceType := reflect.TypeOf((*shape)(nil)).Elem()
	resolver.RegisterUnionCandidates(ifaceType, reflect.TypeOf(circle{}), reflect.TypeOf(square{}))

	enc, err := avrobind.BuildEncoder[shape](unionSchema, avrobind.WithTypeResolver(resolver))
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[shape](unionSchema, avrobind.WithTypeResolver(resolver))
	require.NoError(t, err)

	sink := wire.NewBufferSink()
	require.NoError(t, enc(circle{Radius: 2}, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, circle{Radius: 2}, got)

	sink = wire.NewBufferSink()
	require.NoError(t, enc(square{Side: 3}, sink))
	got, err = dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Equal(t, square{Side: 3}, got)
}

func TestBuildEncoderDecoder_NilRecursiveLinkedList(t *testing.T) {
	nodeSchema := &schema.RecordSchema{Name: "listNode"}
	nodeUnion := &schema.UnionSchema{Schemas: []schema.Schema{schema.NullSchema{}, nodeSchema}}
	nodeSchema.Fields = []schema.Field{
		{Name: "Value", Type: schema.IntSchema{}},
		{Name: "Next", Type: nodeUnion},
	}

	enc, err := avrobind.BuildEncoder[*listNode](nodeUnion)
	require.NoError(t, err)
	dec, err := avrobind.BuildDecoder[*listNode](nodeUnion)
	require.NoError(t, err)

	sink := wire.NewBufferSink()
	require.NoError(t, enc(nil, sink))
	got, err := dec(wire.NewBufferSource(sink.Bytes()))
	require.NoError(t, err)
	require.Nil(t, got)
}
