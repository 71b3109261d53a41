// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package compile_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

// stubCase matches any schema/type pair exactly once per call, recording
// how many times Build ran — used to assert the cache's at-most-once
// build guarantee.
type stubCase struct {
	builds *int
}

func (stubCase) Name() string { return "Stub" }

func (s stubCase) Build(_ *compile.Context, _ schema.Schema, _ resolve.TypeResolution) (*compile.Delegate, error) {
	*s.builds++
	return &compile.Delegate{
		Encode: func(v reflect.Value, sink wire.Sink) error { return wire.WriteLong(sink, v.Int()) },
		Decode: func(source wire.Source) (reflect.Value, error) {
			n, err := wire.ReadLong(source)
			return reflect.ValueOf(n), err
		},
	}, nil
}

type stubResolver struct{}

func (stubResolver) Resolve(t reflect.Type) (resolve.TypeResolution, error) {
	return resolve.PrimitiveResolution{}, nil
}

func TestBuildResolved_CachesSecondCallWithoutRebuilding(t *testing.T) {
	builds := 0
	ctx := compile.NewContext([]compile.Case{stubCase{builds: &builds}}, stubResolver{}, nil)

	d1, err := ctx.Build(reflect.TypeOf(int64(0)), schema.LongSchema{})
	require.NoError(t, err)
	d2, err := ctx.Build(reflect.TypeOf(int64(0)), schema.LongSchema{})
	require.NoError(t, err)

	assert.Same(t, d1, d2)
	assert.Equal(t, 1, builds)
}

// failingCase fails on every Build call — used to ensure a failed build's
// placeholder is discarded from the cache rather than left permanently
// unbound.
type failingCase struct{}

func (failingCase) Name() string { return "AlwaysFails" }

func (failingCase) Build(_ *compile.Context, _ schema.Schema, _ resolve.TypeResolution) (*compile.Delegate, error) {
	return nil, fmt.Errorf("intentional failure")
}

func TestBuildResolved_DiscardsFailedPlaceholder(t *testing.T) {
	ctx := compile.NewContext([]compile.Case{failingCase{}}, stubResolver{}, nil)

	_, err := ctx.Build(reflect.TypeOf(int64(0)), schema.LongSchema{})
	require.Error(t, err)

	// A later, different registry for the same (type, schema) pair must
	// be able to build fresh — proof the failed placeholder was removed,
	// not left stuck unbound in the shared cache.
	cache := ctx.Cache
	builds := 0
	ctx2 := compile.NewContext([]compile.Case{stubCase{builds: &builds}}, stubResolver{}, cache)
	d, err := ctx2.Build(reflect.TypeOf(int64(0)), schema.LongSchema{})
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 1, builds)
}
