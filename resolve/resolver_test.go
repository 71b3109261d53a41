// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package resolve_test

import (
	"math/big"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpoole/avrobind/resolve"
)

type color int

func (color) EnumSymbols() []string { return []string{"red", "green", "blue"} }

type node struct {
	Value int32
	Next  *node
}

func TestResolve_Primitives(t *testing.T) {
	r := resolve.NewReflectResolver()
	res, err := r.Resolve(reflect.TypeOf(int32(0)))
	require.NoError(t, err)
	assert.Equal(t, resolve.PrimitiveKind, res.Kind())
	assert.False(t, res.Nullable())
}

func TestResolve_PointerIsNullable(t *testing.T) {
	r := resolve.NewReflectResolver()
	res, err := r.Resolve(reflect.TypeOf((*int32)(nil)))
	require.NoError(t, err)
	assert.True(t, res.Nullable())
}

func TestResolve_TimeDurationDecimalURI(t *testing.T) {
	r := resolve.NewReflectResolver()

	tRes, err := r.Resolve(reflect.TypeOf(time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, resolve.TimestampKind, tRes.Kind())

	dRes, err := r.Resolve(reflect.TypeOf(time.Duration(0)))
	require.NoError(t, err)
	assert.Equal(t, resolve.DurationKind, dRes.Kind())

	decRes, err := r.Resolve(reflect.TypeOf(big.Rat{}))
	require.NoError(t, err)
	assert.Equal(t, resolve.DecimalKind, decRes.Kind())

	uRes, err := r.Resolve(reflect.TypeOf(url.URL{}))
	require.NoError(t, err)
	assert.Equal(t, resolve.URIKind, uRes.Kind())
}

func TestResolve_Enum(t *testing.T) {
	r := resolve.NewReflectResolver()
	res, err := r.Resolve(reflect.TypeOf(color(0)))
	require.NoError(t, err)
	er, ok := res.(resolve.EnumResolution)
	require.True(t, ok)
	require.Len(t, er.Symbols, 3)
	assert.Equal(t, "red", er.Symbols[0].Name.String())
}

func TestResolve_SelfReferentialStruct(t *testing.T) {
	r := resolve.NewReflectResolver()
	res, err := r.Resolve(reflect.TypeOf((*node)(nil)))
	require.NoError(t, err)
	rr, ok := res.(*resolve.RecordResolution)
	require.True(t, ok)
	require.Len(t, rr.Fields, 2)
	assert.Equal(t, "Next", rr.Fields[1].Name.String())
	nextRes, ok := rr.Fields[1].Type.(*resolve.RecordResolution)
	require.True(t, ok)
	assert.Same(t, rr, nextRes)
}

func TestResolve_InterfaceRequiresRegisteredCandidates(t *testing.T) {
	r := resolve.NewReflectResolver()
	type shape interface{ isShape() }
	_, err := r.Resolve(reflect.TypeOf((*shape)(nil)).Elem())
	require.Error(t, err)
}

func TestName_IsMatch_SnakeCaseMangling(t *testing.T) {
	n := resolve.NewName("UserID")
	assert.True(t, n.IsMatch("user_id"))
	assert.True(t, n.IsMatch("UserID"))
	assert.False(t, n.IsMatch("completely_different"))
}
