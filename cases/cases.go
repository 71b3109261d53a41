// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package cases implements the specialized builder cases, in the fixed,
// load-bearing order the dispatcher relies on (logical-type cases must
// shadow the primitive cases that share their base wire shape).
package cases

import (
	"github.com/cpoole/avrobind/internal/compile"
)

// Registry returns the case list in dispatch order: Decimal, Duration,
// Timestamp, Boolean, Bytes, Double, Fixed, Float, Integer, Null, String,
// Array, Map, Enum, Record, Union.
func Registry() []compile.Case {
	return []compile.Case{
		decimalCase{},
		durationCase{},
		timestampCase{},
		booleanCase{},
		bytesCase{},
		doubleCase{},
		fixedCase{},
		floatCase{},
		integerCase{},
		nullCase{},
		stringCase{},
		arrayCase{},
		mapCase{},
		enumCase{},
		recordCase{},
		unionCase{},
	}
}
