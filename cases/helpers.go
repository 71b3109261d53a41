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
	"reflect"

	"github.com/cpoole/avrobind/avroerr"
	"github.com/cpoole/avrobind/resolve"
)

// requireKind returns a mismatch error unless res.Kind() == want, the
// common first check every case's Build method makes.
func requireKind(res resolve.TypeResolution, want resolve.Kind) error {
	if res.Kind() != want {
		return avroerr.New(avroerr.UnsupportedType, "type resolution kind is %d, not %d", res.Kind(), want)
	}
	return nil
}

// elemType returns the non-pointer Go type a resolution describes,
// unwrapping the single level of pointer nullability a TypeResolver
// applies (resolve.base.nullable).
func elemType(res resolve.TypeResolution) reflect.Type {
	t := res.GoType()
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// derefForEncode returns the reflect.Value a case's Encode closure should
// operate on: if the resolution is nullable (pointer-shaped) and the
// value is non-nil, dereference it; nil values are the Union case's
// concern; a bare value case is never invoked with a nil pointer because
// Union intercepts null before delegating.
func derefForEncode(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Ptr {
		return v.Elem()
	}
	return v
}

// wrapForDecode re-wraps a decoded elemType value into res's Go
// representation (allocating a pointer if res is nullable) and converts
// it to the exact declared type (handling named types like `type ID int32`).
func wrapForDecode(res resolve.TypeResolution, decoded reflect.Value) reflect.Value {
	target := elemType(res)
	converted := decoded.Convert(target)
	if res.GoType().Kind() == reflect.Ptr {
		ptr := reflect.New(target)
		ptr.Elem().Set(converted)
		return ptr
	}
	return converted
}
