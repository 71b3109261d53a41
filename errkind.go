// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrobind

import "github.com/cpoole/avrobind/avroerr"

// The named error predicates below mirror goavro's style of exposing a
// flat set of checkable error conditions instead of a typed hierarchy.
// Each wraps avroerr.IsKind so callers never need to import the avroerr
// package directly.
func IsUnsupportedSchema(err error) bool { return avroerr.IsKind(err, avroerr.UnsupportedSchema) }
func IsUnsupportedType(err error) bool   { return avroerr.IsKind(err, avroerr.UnsupportedType) }
func IsConversion(err error) bool        { return avroerr.IsKind(err, avroerr.Conversion) }
func IsSizeMismatch(err error) bool      { return avroerr.IsKind(err, avroerr.SizeMismatch) }
func IsAmbiguousSymbol(err error) bool   { return avroerr.IsKind(err, avroerr.AmbiguousSymbol) }
func IsAmbiguousField(err error) bool    { return avroerr.IsKind(err, avroerr.AmbiguousField) }
func IsOverflow(err error) bool          { return avroerr.IsKind(err, avroerr.Overflow) }
func IsWireError(err error) bool         { return avroerr.IsKind(err, avroerr.Wire) }
func IsEof(err error) bool               { return avroerr.IsKind(err, avroerr.Eof) }
func IsUtf8(err error) bool              { return avroerr.IsKind(err, avroerr.Utf8) }
func IsDispatch(err error) bool          { return avroerr.IsKind(err, avroerr.Dispatch) }
