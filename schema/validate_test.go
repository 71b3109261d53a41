// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpoole/avrobind/schema"
)

func TestValidate_UnionRejectsSecondNull(t *testing.T) {
	u := &schema.UnionSchema{Schemas: []schema.Schema{schema.NullSchema{}, schema.NullSchema{}}}
	require.Error(t, schema.Validate(u))
}

func TestValidate_UnionRejectsNesting(t *testing.T) {
	inner := &schema.UnionSchema{Schemas: []schema.Schema{schema.NullSchema{}, schema.IntSchema{}}}
	outer := &schema.UnionSchema{Schemas: []schema.Schema{inner, schema.StringSchema{}}}
	require.Error(t, schema.Validate(outer))
}

func TestValidate_DurationFixedRequiresSize12(t *testing.T) {
	bad := schema.FixedSchema{Name: "dur", Size: 8, Duration: true}
	require.Error(t, schema.Validate(bad))

	good := schema.FixedSchema{Name: "dur", Size: 12, Duration: true}
	assert.NoError(t, schema.Validate(good))
}

func TestValidate_SelfReferentialRecordDoesNotLoop(t *testing.T) {
	node := &schema.RecordSchema{Name: "node"}
	node.Fields = []schema.Field{
		{Name: "Value", Type: schema.IntSchema{}},
		{Name: "Next", Type: &schema.UnionSchema{Schemas: []schema.Schema{schema.NullSchema{}, node}}},
	}
	assert.NoError(t, schema.Validate(node))
}
