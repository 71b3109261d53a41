// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package compile is the builder core: the case registry dispatcher, the
// recursive compilation cache, and the forward-reference mechanism that
// resolves cycles in self-referential record schemas.
package compile

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/cpoole/avrobind/avroerr"
	"github.com/cpoole/avrobind/resolve"
	"github.com/cpoole/avrobind/schema"
	"github.com/cpoole/avrobind/internal/wire"
)

// EncodeFunc writes one value of the type a Delegate was built for.
type EncodeFunc func(v reflect.Value, sink wire.Sink) error

// DecodeFunc reads one value of the type a Delegate was built for.
type DecodeFunc func(source wire.Source) (reflect.Value, error)

// Delegate is the (encode, decode) closure pair the binding compiler
// produces. A freshly inserted forward-reference Delegate has both fields
// nil until its case finishes building; every forward reference must be
// bound before any closure in the build is invoked — callers that recurse
// into an unbound Delegate must only ever call it through another closure
// that runs later, never synchronously during the build itself.
type Delegate struct {
	Encode EncodeFunc
	Decode DecodeFunc
}

// Case is one entry in the ordered registry. Build returns
// a fully-formed Delegate on a match, or a non-nil error otherwise —
// callers are expected to collect that error as a cause and keep trying
// later cases, whether the error represents "this case doesn't apply" or
// a fatal shape mismatch (e.g. a Record schema paired with a non-record
// type).
type Case interface {
	Name() string
	Build(ctx *Context, sch schema.Schema, typ resolve.TypeResolution) (*Delegate, error)
}

type cacheKey struct {
	typ reflect.Type
	sch schema.Schema
}

// Cache is the (type, schema) -> Delegate compilation cache. It may be
// shared across builds; insertion is at-most-once via sync.Map.LoadOrStore,
// satisfying the compare-and-swap put a shared cache requires. Lookups may
// happen concurrently with builds once an entry is present.
type Cache struct {
	m sync.Map // cacheKey -> *Delegate
}

func NewCache() *Cache { return &Cache{} }

// getOrInsert returns the Delegate for key, installing an empty
// forward-reference placeholder exactly once if absent. created reports
// whether this call installed the placeholder; the caller that gets
// created == true owns building and binding the Delegate's body.
func (c *Cache) getOrInsert(key cacheKey) (delegate *Delegate, created bool) {
	actual, loaded := c.m.LoadOrStore(key, &Delegate{})
	return actual.(*Delegate), !loaded
}

// discard removes a placeholder whose build failed, so a later attempt
// (with the same type+schema) is not handed a permanently broken,
// never-bound Delegate. This is not the "double insertion" race a shared
// cache must guard against — that race is two concurrent *successful*
// binds of the same forward reference; a failed build never gets that far.
func (c *Cache) discard(key cacheKey, placeholder *Delegate) {
	c.m.CompareAndDelete(key, placeholder)
}

// Context carries everything Build/BuildResolved need to dispatch and recurse:
// the case registry (in its load-bearing fixed order), the type resolver,
// and the shared compilation cache.
type Context struct {
	Registry []Case
	Resolver resolve.TypeResolver
	Cache    *Cache
}

func NewContext(registry []Case, resolver resolve.TypeResolver, cache *Cache) *Context {
	if cache == nil {
		cache = NewCache()
	}
	return &Context{Registry: registry, Resolver: resolver, Cache: cache}
}

// Build resolves t to a TypeResolution and dispatches to the registry.
func (ctx *Context) Build(t reflect.Type, sch schema.Schema) (*Delegate, error) {
	res, err := ctx.Resolver.Resolve(t)
	if err != nil {
		return nil, avroerr.Wrap(avroerr.UnsupportedType, err, "resolving Go type %s", t)
	}
	return ctx.BuildResolved(t, sch, res)
}

// BuildResolved is Build for a type that has already been resolved —
// every recursive case call goes through here directly, so a record field
// of a type already walked by the resolver is not re-resolved for each
// occurrence.
func (ctx *Context) BuildResolved(t reflect.Type, sch schema.Schema, res resolve.TypeResolution) (*Delegate, error) {
	key := cacheKey{typ: t, sch: sch}
	delegate, created := ctx.Cache.getOrInsert(key)
	if !created {
		return delegate, nil
	}

	var causes []error
	for _, c := range ctx.Registry {
		d, err := c.Build(ctx, sch, res)
		if err != nil {
			causes = append(causes, fmt.Errorf("case %s: %w", c.Name(), err))
			continue
		}
		if d == nil {
			continue
		}
		delegate.Encode = d.Encode
		delegate.Decode = d.Decode
		return delegate, nil
	}

	ctx.Cache.discard(key, delegate)
	return nil, avroerr.NewAggregate(avroerr.UnsupportedType,
		fmt.Sprintf("no case in the registry matched schema kind %s for Go type %s", sch.Kind(), t), causes)
}
