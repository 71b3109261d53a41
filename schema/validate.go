// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package schema

import "fmt"

// Validate checks the structural invariants a schema tree must satisfy:
// a Union contains at most one Null and no nested Union; a Duration Fixed
// is exactly 12 bytes; Decimal only overlays Bytes or Fixed (enforced by
// the type system itself, so only the size/arity checks remain here).
//
// Record schemas may be self-referential by pointer identity, so
// validation tracks visited *RecordSchema pointers to avoid looping
// forever on a cycle.
func Validate(s Schema) error {
	return validate(s, map[*RecordSchema]bool{})
}

func validate(s Schema, seen map[*RecordSchema]bool) error {
	switch v := s.(type) {
	case *UnionSchema:
		seenNull := false
		for i, sub := range v.Schemas {
			if _, nested := sub.(*UnionSchema); nested {
				return fmt.Errorf("union member %d: unions cannot nest", i)
			}
			if sub.Kind() == Null {
				if seenNull {
					return fmt.Errorf("union has more than one null branch")
				}
				seenNull = true
			}
			if err := validate(sub, seen); err != nil {
				return fmt.Errorf("union member %d: %w", i, err)
			}
		}
	case FixedSchema:
		if v.Duration && v.Size != 12 {
			return fmt.Errorf("fixed %q: duration logical type requires size 12, got %d", v.Name, v.Size)
		}
	case *ArraySchema:
		return validate(v.Item, seen)
	case *MapSchema:
		return validate(v.Value, seen)
	case *RecordSchema:
		if seen[v] {
			return nil
		}
		seen[v] = true
		for _, f := range v.Fields {
			if err := validate(f.Type, seen); err != nil {
				return fmt.Errorf("field %q: %w", f.Name, err)
			}
		}
	}
	return nil
}
