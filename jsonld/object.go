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

package jsonld

// Node is a read-only view over an expanded node object, giving typed
// access to the handful of keyword-prefixed members callers usually
// care about without repeating map[string]interface{} type assertions.
type Node struct {
	raw map[string]interface{}
}

// AsNode wraps raw as a Node view if it is a node object (anything that
// isn't a value, list, or graph-only object), returning ok=false otherwise.
func AsNode(raw interface{}) (Node, bool) {
	m, isMap := raw.(map[string]interface{})
	if !isMap {
		return Node{}, false
	}
	if IsValueObject(m) || IsListObject(m) {
		return Node{}, false
	}
	return Node{raw: m}, true
}

// Id returns the node's @id, or the zero Id if it has none.
func (n Node) Id() Id {
	if v, has := n.raw["@id"]; has {
		if s, isString := v.(string); isString {
			return NewId(s)
		}
	}
	return Id{}
}

// Types returns the node's @type values, already-expanded IRI strings.
func (n Node) Types() []string {
	v, has := n.raw["@type"]
	if !has {
		return nil
	}
	types := make([]string, 0, 1)
	for _, t := range Arrayify(v) {
		if s, isString := t.(string); isString {
			types = append(types, s)
		}
	}
	return types
}

// Property returns the raw (already-expanded) values for an absolute-IRI
// property name, or nil if the node has no such property.
func (n Node) Property(iri string) []interface{} {
	v, has := n.raw[iri]
	if !has {
		return nil
	}
	return Arrayify(v)
}

// Raw returns the underlying map this Node wraps.
func (n Node) Raw() map[string]interface{} { return n.raw }

// Value is a read-only view over an expanded value object (@value).
type Value struct {
	raw map[string]interface{}
}

// AsValue wraps raw as a Value view if it is a value object.
func AsValue(raw interface{}) (Value, bool) {
	m, isMap := raw.(map[string]interface{})
	if !isMap || !IsValueObject(m) {
		return Value{}, false
	}
	return Value{raw: m}, true
}

// Scalar returns the underlying @value.
func (v Value) Scalar() interface{} { return v.raw["@value"] }

// Type returns the value's @type IRI, if any.
func (v Value) Type() string {
	s, _ := v.raw["@type"].(string)
	return s
}

// Language returns the value's @language tag, if any.
func (v Value) Language() string {
	s, _ := v.raw["@language"].(string)
	return s
}

// Direction returns the value's @direction ("ltr"/"rtl"), if any.
func (v Value) Direction() string {
	s, _ := v.raw["@direction"].(string)
	return s
}

// List is a read-only view over an expanded list object (@list).
type List struct {
	raw map[string]interface{}
}

// AsList wraps raw as a List view if it is a list object.
func AsList(raw interface{}) (List, bool) {
	m, isMap := raw.(map[string]interface{})
	if !isMap || !IsListObject(m) {
		return List{}, false
	}
	return List{raw: m}, true
}

// Items returns the list's members.
func (l List) Items() []interface{} {
	return Arrayify(l.raw["@list"])
}
