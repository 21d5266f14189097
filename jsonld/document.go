// Copyright 2015-2017 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package jsonld implements the JSON-LD 1.1 context processing, expansion
// and compaction algorithms. Internally, the document tree an Expand or
// Compact call walks is the ordinary dynamic shape encoding/json already
// produces (map[string]interface{}, []interface{}, and JSON scalars); a
// handful of typed accessors (see object.go) sit on top for callers who
// want Node/Value/List as Go values instead of untyped maps.
package jsonld

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/jsonldcore/jsonld/internal/numfmt"
)

// Arrayify returns v unchanged if it is already a []interface{}, otherwise
// wraps it in a single-element slice. Most of the algorithms operate on
// "value or array of values" fields and normalize with this first.
func Arrayify(v interface{}) []interface{} {
	if a, ok := v.([]interface{}); ok {
		return a
	}
	return []interface{}{v}
}

// IsObject reports whether v decoded from JSON as an object.
func IsObject(v interface{}) bool {
	_, ok := v.(map[string]interface{})
	return ok
}

// IsArray reports whether v decoded from JSON as an array.
func IsArray(v interface{}) bool {
	_, ok := v.([]interface{})
	return ok
}

// IsString reports whether v decoded from JSON as a string.
func IsString(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

// IsEmptyObject reports whether v is a JSON object with no members.
func IsEmptyObject(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	return ok && len(m) == 0
}

// IsValueObject reports whether v is a JSON-LD value object (has @value).
func IsValueObject(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok {
		return false
	}
	_, has := m["@value"]
	return has
}

// IsListObject reports whether v is a JSON-LD list object (has @list).
func IsListObject(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok {
		return false
	}
	_, has := m["@list"]
	return has
}

// IsGraphObject reports whether v has an @graph entry and nothing besides
// @id/@index alongside it.
func IsGraphObject(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok {
		return false
	}
	if _, has := m["@graph"]; !has {
		return false
	}
	for k := range m {
		if k != "@id" && k != "@index" && k != "@graph" {
			return false
		}
	}
	return true
}

// IsSimpleGraphObject reports whether v is a graph object with no @id.
func IsSimpleGraphObject(v interface{}) bool {
	if !IsGraphObject(v) {
		return false
	}
	m := v.(map[string]interface{})
	_, hasID := m["@id"]
	return !hasID
}

// IsSubjectObject reports whether v is a node object with actual
// properties: an object that is not a value/list/set and either has more
// than one key or a key other than @id.
func IsSubjectObject(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok {
		return false
	}
	_, hasValue := m["@value"]
	_, hasSet := m["@set"]
	_, hasList := m["@list"]
	if hasValue || hasSet || hasList {
		return false
	}
	_, hasID := m["@id"]
	return len(m) > 1 || !hasID
}

// IsSubjectReference reports whether v is a bare node reference: an
// object whose only member is @id.
func IsSubjectReference(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok || len(m) != 1 {
		return false
	}
	_, hasID := m["@id"]
	return hasID
}

// IsBlankNodeValue reports whether v denotes a blank node: either an
// object whose @id starts with "_:", or a node object with no @id at all
// (and not itself a value/list).
func IsBlankNodeValue(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok {
		return false
	}
	if id, hasID := m["@id"]; hasID {
		idStr, _ := id.(string)
		return strings.HasPrefix(idStr, "_:")
	}
	_, hasValue := m["@value"]
	_, hasSet := m["@set"]
	_, hasList := m["@list"]
	return len(m) == 0 || !(hasValue || hasSet || hasList)
}

// CompareValues reports whether v1 and v2 are the same JSON-LD value:
// identical scalars, value objects agreeing on @value/@type/@language/
// @index, or node references sharing an @id.
func CompareValues(v1, v2 interface{}) bool {
	m1, isMap1 := v1.(map[string]interface{})
	m2, isMap2 := v2.(map[string]interface{})

	if !isMap1 && !isMap2 {
		return v1 == v2
	}

	if IsValueObject(v1) && IsValueObject(v2) {
		return m1["@value"] == m2["@value"] &&
			m1["@type"] == m2["@type"] &&
			m1["@language"] == m2["@language"] &&
			m1["@index"] == m2["@index"]
	}

	if isMap1 && isMap2 {
		id1, hasID1 := m1["@id"]
		id2, hasID2 := m2["@id"]
		if hasID1 && hasID2 {
			return id1 == id2
		}
	}
	return false
}

func containsValue(values []interface{}, value interface{}) bool {
	for _, v := range values {
		if DeepEqual(v, value, false) {
			return true
		}
	}
	return false
}

// MergeValue appends value onto obj[key], treating obj[key] as an array
// regardless of its current shape, and skipping the append when value is
// already present — unless key is @list or value is itself a list object,
// since list members are never deduplicated.
func MergeValue(obj map[string]interface{}, key string, value interface{}) {
	if obj == nil {
		return
	}
	values, _ := obj[key].([]interface{})
	if values == nil {
		values = make([]interface{}, 0)
	}
	if key == "@list" || IsListObject(value) || !containsValue(values, value) {
		values = append(values, value)
	}
	obj[key] = values
}

// HasValue reports whether value is already one of subject's values for
// property.
func HasValue(subject interface{}, property string, value interface{}) bool {
	subjMap, ok := subject.(map[string]interface{})
	if !ok {
		return false
	}
	val, found := subjMap[property]
	if !found {
		return false
	}
	if IsListObject(val) {
		for _, v := range val.(map[string]interface{})["@list"].([]interface{}) {
			if CompareValues(value, v) {
				return true
			}
		}
		return false
	}
	if arr, isArray := val.([]interface{}); isArray {
		for _, v := range arr {
			if CompareValues(value, v) {
				return true
			}
		}
		return false
	}
	if _, valueIsArray := value.([]interface{}); !valueIsArray {
		return CompareValues(value, val)
	}
	return false
}

// AddValue adds value to subject[property], normalizing to an array as
// needed. propertyIsArray forces array representation even for a single
// value; valueAsArray stores value verbatim without flattening;
// allowDuplicate controls whether an already-present value is skipped;
// prependValue inserts new values at the front instead of the back.
func AddValue(subject interface{}, property string, value interface{}, propertyIsArray, valueAsArray, allowDuplicate, prependValue bool) {
	subjMap, ok := subject.(map[string]interface{})
	if !ok {
		return
	}
	propVal, propertyFound := subjMap[property]

	if valueAsArray {
		subjMap[property] = value
		return
	}

	if valueArray, isArray := value.([]interface{}); isArray {
		if prependValue {
			var merged []interface{}
			if propertyIsArray {
				merged = append(append([]interface{}{}, subjMap[property].([]interface{})...), valueArray...)
			} else {
				merged = append([]interface{}{subjMap[property]}, valueArray...)
			}
			valueArray = merged
			subjMap[property] = make([]interface{}, 0)
		} else if len(valueArray) == 0 && propertyIsArray && !propertyFound {
			subjMap[property] = make([]interface{}, 0)
		}
		for _, v := range valueArray {
			AddValue(subject, property, v, propertyIsArray, valueAsArray, allowDuplicate, prependValue)
		}
		return
	}

	if propertyFound {
		alreadyHas := !allowDuplicate && HasValue(subject, property, value)

		valArray, isArray := propVal.([]interface{})
		if !isArray && (!alreadyHas || propertyIsArray) {
			valArray = []interface{}{subjMap[property]}
			subjMap[property] = valArray
		}

		if !alreadyHas {
			if prependValue {
				subjMap[property] = append([]interface{}{value}, valArray...)
			} else {
				subjMap[property] = append(valArray, value)
			}
		}
		return
	}

	if propertyIsArray {
		subjMap[property] = []interface{}{value}
	} else {
		subjMap[property] = value
	}
}

// RemoveValue removes value from subject[property], collapsing back to a
// bare scalar if only one value remains and propertyIsArray is false.
func RemoveValue(subject interface{}, property string, value interface{}, propertyIsArray bool) {
	subjMap, ok := subject.(map[string]interface{})
	if !ok {
		return
	}
	propVal, found := subjMap[property]
	if !found {
		return
	}

	remaining := make([]interface{}, 0)
	for _, v := range Arrayify(propVal) {
		if !CompareValues(v, value) {
			remaining = append(remaining, v)
		}
	}

	switch {
	case len(remaining) == 0:
		delete(subjMap, property)
	case len(remaining) == 1 && !propertyIsArray:
		subjMap[property] = remaining[0]
	default:
		subjMap[property] = remaining
	}
}

// CloneDocument returns a deep copy of a JSON tree built from maps,
// slices, and scalars.
func CloneDocument(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		clone := make(map[string]interface{}, len(v))
		for k, val := range v {
			clone[k] = CloneDocument(val)
		}
		return clone
	case []interface{}:
		clone := make([]interface{}, 0, len(v))
		for _, val := range v {
			clone = append(clone, CloneDocument(val))
		}
		return clone
	default:
		return value
	}
}

// DeepEqual reports whether v1 and v2 are structurally identical JSON
// trees. When listOrderMatters is false, array comparison is order
// insensitive (used for set-like comparisons in the testable-properties
// sense; @list arrays should always be compared with it true).
func DeepEqual(v1, v2 interface{}, listOrderMatters bool) bool {
	if v1 == nil || v2 == nil {
		return v1 == nil && v2 == nil
	}

	m1, isMap1 := v1.(map[string]interface{})
	m2, isMap2 := v2.(map[string]interface{})
	if isMap1 && isMap2 {
		if len(m1) != len(m2) {
			return false
		}
		for k, val1 := range m1 {
			val2, present := m2[k]
			if !present || !DeepEqual(val1, val2, listOrderMatters) {
				return false
			}
		}
		return true
	}

	l1, isList1 := v1.([]interface{})
	l2, isList2 := v2.([]interface{})
	if isList1 && isList2 {
		if len(l1) != len(l2) {
			return false
		}
		if listOrderMatters {
			for i := range l1 {
				if !DeepEqual(l1[i], l2[i], listOrderMatters) {
					return false
				}
			}
			return true
		}
		matched := make([]bool, len(l2))
		for _, item := range l1 {
			found := false
			for j, candidate := range l2 {
				if matched[j] {
					continue
				}
				if DeepEqual(item, candidate, listOrderMatters) {
					matched[j] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}

	if isMap1 != isMap2 || isList1 != isList2 {
		return false
	}
	return v1 == v2
}

// GetKeys returns the keys of m in unspecified (map iteration) order.
func GetKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// GetOrderedKeys returns the keys of m sorted lexicographically, for the
// Ordered processing option.
func GetOrderedKeys(m map[string]interface{}) []string {
	keys := GetKeys(m)
	sort.Strings(keys)
	return keys
}

// memberKeys returns the keys of m in the order Options.Ordered requests.
func memberKeys(m map[string]interface{}, ordered bool) []string {
	if ordered {
		return GetOrderedKeys(m)
	}
	return GetKeys(m)
}

// canonicalFloat renders a float64 using the ES6 number-to-string grammar
// instead of encoding/json's default verb, so numeric output matches what
// other JSON-LD processors produce byte-for-byte.
type canonicalFloat float64

func (f canonicalFloat) MarshalJSON() ([]byte, error) {
	s, err := numfmt.FormatDouble(float64(f))
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func canonicalizeNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = canonicalizeNumbers(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = canonicalizeNumbers(val)
		}
		return out
	case float64:
		return canonicalFloat(t)
	default:
		return v
	}
}

// MarshalCompact renders doc as indented JSON, matching the formatting
// conventions used by the library's own example programs, with float64
// values rendered through the ES6 canonical number grammar rather than
// encoding/json's default float formatting.
func MarshalCompact(doc interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(canonicalizeNumbers(doc)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
