// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Command avrobind-roundtrip is a small demonstration CLI: it reads a
// JSON-encoded record from stdin, compiles an encoder/decoder pair for a
// fixed demo record schema, encodes the value to Avro binary, logs the
// encoded size, decodes it back, and prints the round-tripped value.
//
// Schema parsing and JSON-to-schema mapping are out of scope for the core
// library (see the schema package doc), so this CLI hardcodes the one
// schema it demonstrates rather than accepting an arbitrary schema file.
package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/cpoole/avrobind"
	"github.com/cpoole/avrobind/internal/wire"
	"github.com/cpoole/avrobind/schema"
)

// event is the demo record: a name, a sequence number, and an optional
// tag list, matching the schema built in main below.
type event struct {
	Name string
	Seq  int64
	Tags []string
}

func eventSchema() *schema.RecordSchema {
	return &schema.RecordSchema{
		Name: "event",
		Fields: []schema.Field{
			{Name: "Name", Type: schema.StringSchema{}},
			{Name: "Seq", Type: schema.LongSchema{}},
			{Name: "Tags", Type: &schema.ArraySchema{Item: schema.StringSchema{}}},
		},
	}
}

func main() {
	log.SetFlags(0)

	var in event
	if err := json.NewDecoder(os.Stdin).Decode(&in); err != nil {
		log.Fatalf("reading input event: %v", err)
	}

	sch := eventSchema()
	encode, err := avrobind.BuildEncoder[event](sch)
	if err != nil {
		log.Fatalf("building encoder: %v", err)
	}
	decode, err := avrobind.BuildDecoder[event](sch)
	if err != nil {
		log.Fatalf("building decoder: %v", err)
	}

	sink := wire.NewBufferSink()
	if err := encode(in, sink); err != nil {
		log.Fatalf("encoding event: %v", err)
	}
	log.Printf("encoded %d bytes", len(sink.Bytes()))

	out, err := decode(wire.NewBufferSource(sink.Bytes()))
	if err != nil {
		log.Fatalf("decoding event: %v", err)
	}
	if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
		log.Fatalf("writing output event: %v", err)
	}
}
