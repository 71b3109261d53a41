// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package avrobind builds Avro binary (encode, decode) closure pairs for a
// statically-known Go type T against a schema tree, the way goavro builds
// a *Codec from a schema except specialized per call-site type instead of
// dispatching on reflect.Value at every call.
package avrobind

import (
	"fmt"
	"reflect"

	"github.com/cpoole/avrobind/avroerr"
	"github.com/cpoole/avrobind/cases"
	"github.com/cpoole/avrobind/internal/compile"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
)

// EncodeFn writes one value of type T to sink.
type EncodeFn[T any] func(v T, sink wire.Sink) error

// DecodeFn reads one value of type T from source.
type DecodeFn[T any] func(source wire.Source) (T, error)

type buildConfig struct {
	cache    *compile.Cache
	resolver resolve.TypeResolver
}

// BuildOption configures BuildEncoder/BuildDecoder, mirroring goavro's
// options-style codec constructors.
type BuildOption func(*buildConfig)

// WithCache shares a compilation cache across multiple Build calls, so
// repeated (type, schema) pairs reuse already-compiled delegates.
func WithCache(c *compile.Cache) BuildOption {
	return func(cfg *buildConfig) { cfg.cache = c }
}

// WithTypeResolver overrides the default reflection-based TypeResolver —
// useful for tests that register union candidates ahead of a build.
func WithTypeResolver(r resolve.TypeResolver) BuildOption {
	return func(cfg *buildConfig) { cfg.resolver = r }
}

func newContext(opts []BuildOption) *compile.Context {
	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.resolver == nil {
		cfg.resolver = resolve.NewReflectResolver()
	}
	return compile.NewContext(cases.Registry(), cfg.resolver, cfg.cache)
}

// goTypeOf returns T's reflect.Type even when T is an interface — the
// zero-value trick (reflect.TypeOf(zero)) loses interface identity
// because a nil interface value carries no type, so this dereferences a
// pointer-to-T instead.
func goTypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// BuildEncoder compiles sch against T once and returns a reusable encode
// closure.
func BuildEncoder[T any](sch schema.Schema, opts ...BuildOption) (EncodeFn[T], error) {
	if err := schema.Validate(sch); err != nil {
		return nil, avroerr.Wrap(avroerr.UnsupportedSchema, err, "validating schema")
	}
	ctx := newContext(opts)
	delegate, err := ctx.Build(goTypeOf[T](), sch)
	if err != nil {
		return nil, err
	}
	return func(v T, sink wire.Sink) error {
		return delegate.Encode(reflect.ValueOf(v), sink)
	}, nil
}

// BuildDecoder compiles sch against T once and returns a reusable decode
// closure.
func BuildDecoder[T any](sch schema.Schema, opts ...BuildOption) (DecodeFn[T], error) {
	if err := schema.Validate(sch); err != nil {
		return nil, avroerr.Wrap(avroerr.UnsupportedSchema, err, "validating schema")
	}
	ctx := newContext(opts)
	delegate, err := ctx.Build(goTypeOf[T](), sch)
	if err != nil {
		return nil, err
	}
	return func(source wire.Source) (T, error) {
		var zero T
		dv, err := delegate.Decode(source)
		if err != nil {
			return zero, err
		}
		out, ok := dv.Interface().(T)
		if !ok {
			return zero, fmt.Errorf("decoded value %s is not assignable to %T", dv.Type(), zero)
		}
		return out, nil
	}, nil
}
