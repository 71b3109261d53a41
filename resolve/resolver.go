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
	"fmt"
	"math/big"
	"net/url"
	"reflect"
	"sync"
	"time"

	"github.com/modern-go/reflect2"
)

// Enumer is implemented by a Go type that the resolver should treat as an
// EnumResolution. Symbols is the ordered, declaration-order list of symbol
// names; a value's ordinal is its index in that slice.
type Enumer interface {
	EnumSymbols() []string
}

// TypeResolver resolves a static Go type to a TypeResolution.
type TypeResolver interface {
	Resolve(t reflect.Type) (TypeResolution, error)
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	bigRatType   = reflect.TypeOf(big.Rat{})
	urlType      = reflect.TypeOf(url.URL{})
	enumerType   = reflect.TypeOf((*Enumer)(nil)).Elem()
)

// ReflectResolver is the reference TypeResolver: ordinary reflect.Type
// introspection, cached by reflect2 RType for cheap repeat lookups (the
// same role reflect2 plays in hamba-avro's codec builder), with name
// matching backed by resolve.Name/ettle-strcase.
type ReflectResolver struct {
	mu         sync.Mutex
	cache      map[uintptr]TypeResolution
	candidates map[reflect.Type][]reflect.Type
}

func NewReflectResolver() *ReflectResolver {
	return &ReflectResolver{
		cache:      make(map[uintptr]TypeResolution),
		candidates: make(map[reflect.Type][]reflect.Type),
	}
}

// rtypeOf returns reflect2's cheap, comparable type identity for t —
// the same uintptr-keyed cache technique hamba-avro's codec builder uses
// (Reader/Writer cfg.getDecoderFromCache(fingerprint, rtype)) in place of
// repeated reflect.Type map lookups.
func rtypeOf(t reflect.Type) uintptr {
	return reflect2.Type2(t).RType()
}

// RegisterUnionCandidates declares the closed set of concrete types an
// interface field may hold, the way encoding/gob requires gob.Register.
// A polymorphic union needs this closed set to build its dispatch table
// at build time, since Go reflection cannot enumerate an interface's
// implementers.
func (r *ReflectResolver) RegisterUnionCandidates(iface reflect.Type, concrete ...reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates[iface] = append(append([]reflect.Type{}, r.candidates[iface]...), concrete...)
}

func (r *ReflectResolver) Resolve(t reflect.Type) (TypeResolution, error) {
	r.mu.Lock()
	if res, ok := r.cache[rtypeOf(t)]; ok {
		r.mu.Unlock()
		return res, nil
	}
	r.mu.Unlock()

	nullable := t.Kind() == reflect.Ptr
	valueType := t
	if nullable {
		valueType = t.Elem()
	}
	return r.resolveValueType(t, valueType, nullable)
}

func (r *ReflectResolver) resolveValueType(goType, valueType reflect.Type, nullable bool) (TypeResolution, error) {
	b := base{t: goType, nullable: nullable}

	switch {
	case valueType == timeType:
		res := TimestampResolution{base: b}
		r.store(goType, res)
		return res, nil

	case valueType == durationType:
		res := DurationResolution{base: b}
		r.store(goType, res)
		return res, nil

	case valueType == bigRatType:
		res := DecimalResolution{base: b}
		r.store(goType, res)
		return res, nil

	case valueType == urlType:
		res := URIResolution{base: b}
		r.store(goType, res)
		return res, nil

	case implementsEnumer(valueType):
		symbols := enumSymbolsOf(valueType)
		syms := make([]EnumSymbol, len(symbols))
		for i, s := range symbols {
			syms[i] = EnumSymbol{Name: NewName(s), Value: i}
		}
		res := EnumResolution{base: b, Symbols: syms}
		r.store(goType, res)
		return res, nil
	}

	switch valueType.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		res := PrimitiveResolution{base: b}
		r.store(goType, res)
		return res, nil

	case reflect.Slice:
		if valueType.Elem().Kind() == reflect.Uint8 {
			res := PrimitiveResolution{base: b}
			r.store(goType, res)
			return res, nil
		}
		item, err := r.Resolve(valueType.Elem())
		if err != nil {
			return nil, fmt.Errorf("resolving slice element of %s: %w", goType, err)
		}
		res := ArrayResolution{base: b, Item: item}
		r.store(goType, res)
		return res, nil

	case reflect.Array:
		item, err := r.Resolve(valueType.Elem())
		if err != nil {
			return nil, fmt.Errorf("resolving array element of %s: %w", goType, err)
		}
		res := ArrayResolution{base: b, Item: item}
		r.store(goType, res)
		return res, nil

	case reflect.Map:
		key, err := r.Resolve(valueType.Key())
		if err != nil {
			return nil, fmt.Errorf("resolving map key of %s: %w", goType, err)
		}
		val, err := r.Resolve(valueType.Elem())
		if err != nil {
			return nil, fmt.Errorf("resolving map value of %s: %w", goType, err)
		}
		res := MapResolution{base: b, Key: key, Value: val}
		r.store(goType, res)
		return res, nil

	case reflect.Struct:
		return r.resolveStruct(goType, valueType, b)

	case reflect.Interface:
		return r.resolveInterface(goType, valueType, b)

	default:
		return nil, fmt.Errorf("cannot resolve Go type %s: unsupported kind %s", goType, valueType.Kind())
	}
}

func (r *ReflectResolver) resolveStruct(goType, valueType reflect.Type, b base) (TypeResolution, error) {
	// Forward reference: install an (empty-Fields) placeholder before
	// walking fields, so a self-referential struct (e.g. a linked list
	// node whose Next field is *Node) resolves its own cached entry
	// instead of recursing forever.
	placeholder := &RecordResolution{base: b}
	r.store(goType, placeholder)

	fields := make([]RecordField, 0, valueType.NumField())
	for i := 0; i < valueType.NumField(); i++ {
		sf := valueType.Field(i)
		if sf.PkgPath != "" { // unexported
			continue
		}
		name := sf.Name
		if tag := sf.Tag.Get("avro"); tag != "" && tag != "-" {
			name = tag
		} else if tag == "-" {
			continue
		}
		fieldRes, err := r.Resolve(sf.Type)
		if err != nil {
			return nil, fmt.Errorf("resolving field %s.%s: %w", goType, sf.Name, err)
		}
		fields = append(fields, RecordField{
			Name:  NewName(name),
			Index: sf.Index,
			Type:  fieldRes,
		})
	}
	placeholder.Fields = fields
	return placeholder, nil
}

func (r *ReflectResolver) resolveInterface(goType, valueType reflect.Type, b base) (TypeResolution, error) {
	r.mu.Lock()
	concrete := r.candidates[valueType]
	r.mu.Unlock()
	if len(concrete) == 0 {
		return nil, fmt.Errorf("interface type %s has no registered union candidates (RegisterUnionCandidates)", valueType)
	}
	cands := make([]TypeResolution, 0, len(concrete))
	for _, c := range concrete {
		res, err := r.Resolve(c)
		if err != nil {
			return nil, fmt.Errorf("resolving union candidate %s of %s: %w", c, valueType, err)
		}
		cands = append(cands, res)
	}
	res := InterfaceResolution{base: b, Candidates: cands}
	r.store(goType, res)
	return res, nil
}

func (r *ReflectResolver) store(t reflect.Type, res TypeResolution) {
	r.mu.Lock()
	r.cache[rtypeOf(t)] = res
	r.mu.Unlock()
}

func implementsEnumer(t reflect.Type) bool {
	return t.Implements(enumerType) || reflect.PointerTo(t).Implements(enumerType)
}

// enumSymbolsOf instantiates a zero value of t (or *t) to call EnumSymbols,
// since the method is typically declared on a named int/string type and
// carries no per-instance state.
func enumSymbolsOf(t reflect.Type) []string {
	if t.Implements(enumerType) {
		return reflect.Zero(t).Interface().(Enumer).EnumSymbols()
	}
	return reflect.New(t).Interface().(Enumer).EnumSymbols()
}
