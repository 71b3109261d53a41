// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package resolve

import (
	"strings"

	"github.com/ettle/strcase"
)

// Name exposes the match predicate a resolved member name needs:
// case-insensitive, optionally "mangled" (snake_case folded) comparison
// against an Avro schema name.
type Name struct {
	raw string
}

func NewName(raw string) Name { return Name{raw: raw} }

func (n Name) String() string { return n.raw }

// IsMatch compares n against an Avro-side name. It first tries a plain
// case-insensitive compare (handles "ID" vs "id"), then falls back to
// comparing both sides' snake_case mangling (handles "UserId" vs
// "user_id" and "userID" vs "user_id") — the same two-tier strategy
// hamba-avro/justtrackio-avro use via ettle/strcase for struct-tag-less
// field matching.
func (n Name) IsMatch(other string) bool {
	if strings.EqualFold(n.raw, other) {
		return true
	}
	return strcase.ToSnake(n.raw) == strcase.ToSnake(other)
}
