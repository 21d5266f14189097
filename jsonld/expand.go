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

import (
	"sort"
	"strings"
)

// Expander runs the Expansion algorithm over an input document, turning
// compacted/aliased property names into absolute IRIs and normalizing
// values into a uniform node/value-object shape.
type Expander struct {
	options *Options
}

// NewExpander creates an Expander that will resolve remote contexts and
// apply processing-mode rules according to options.
func NewExpander(options *Options) *Expander {
	if options == nil {
		options = DefaultOptions()
	}
	return &Expander{options: options}
}

// Expand runs the algorithm against element using activeCtx as the
// starting active context and activeProperty as the property under which
// element was found ("" at the document root). fromMap is true when
// element was produced by unpacking an @id/@index/@type-indexed container
// map entry rather than appearing directly in the document; it suppresses
// the term-scoped previous-context reversion below, since the synthetic
// node object already carries the index map's own context.
func (e *Expander) Expand(activeCtx *ActiveContext, activeProperty string, element interface{}, fromMap bool) (interface{}, error) {
	if element == nil {
		return nil, nil
	}

	switch elem := element.(type) {
	case []interface{}:
		result := make([]interface{}, 0, len(elem))
		for _, item := range elem {
			v, err := e.Expand(activeCtx, activeProperty, item, fromMap)
			if err != nil {
				return nil, err
			}
			if activeProperty == "@list" || activeCtx.HasContainerMapping(activeProperty, "@list") {
				_, isList := v.([]interface{})
				vMap, isMap := v.(map[string]interface{})
				_, containsList := vMap["@list"]
				if isList || (isMap && containsList) {
					return nil, NewError(ErrListOfLists, "lists of lists are not permitted")
				}
			}
			if v == nil {
				continue
			}
			if vList, isList := v.([]interface{}); isList {
				result = append(result, vList...)
			} else {
				result = append(result, v)
			}
		}
		return result, nil

	case map[string]interface{}:
		// Unless from_map, and except for value objects and objects with a
		// single entry expanding to @id, revert to the previous context:
		// the scope of a type-scoped context introduced by an enclosing
		// object does not extend across ordinary recursion into a new
		// object.
		if activeCtx.previous != nil && !fromMap {
			hasValueEntry := elemHasEntryExpandingTo(activeCtx, elem, "@value")
			singleIDEntry := len(elem) == 1 && elemHasEntryExpandingTo(activeCtx, elem, "@id")
			if !hasValueEntry && !singleIDEntry {
				activeCtx = activeCtx.RevertToPreviousContext()
			}
		}

		if ctx, hasContext := elem["@context"]; hasContext {
			newCtx, err := activeCtx.Process(ctx)
			if err != nil {
				return nil, err
			}
			activeCtx = newCtx
		}

		typeScopedCtx := activeCtx

		for _, key := range GetOrderedKeys(elem) {
			value := elem[key]
			expandedProperty, err := typeScopedCtx.ExpandIri(key, false, true, nil, nil)
			if err != nil {
				return nil, err
			}
			if expandedProperty != "@type" {
				continue
			}
			types := make([]string, 0)
			for _, t := range Arrayify(value) {
				if typeStr, isString := t.(string); isString {
					types = append(types, typeStr)
				}
			}
			sort.Strings(types)
			for _, t := range types {
				td := typeScopedCtx.GetTermDefinition(t)
				if ctx, hasCtx := td["@context"]; hasCtx {
					// Type-scoped contexts never propagate past the object
					// that introduced them, regardless of the top-level
					// Options.Propagate setting.
					newCtx, err := activeCtx.ProcessWithFlags(ctx, false, e.options.OverrideProtected)
					if err != nil {
						return nil, err
					}
					activeCtx = newCtx
				}
			}
		}

		expandedActiveProperty, err := activeCtx.ExpandIri(activeProperty, false, true, nil, nil)
		if err != nil {
			return nil, err
		}

		resultMap := make(map[string]interface{})
		if err := e.expandObject(activeCtx, activeProperty, expandedActiveProperty, elem, resultMap); err != nil {
			return nil, err
		}

		if rval, hasValue := resultMap["@value"]; hasValue {
			allowedKeys := map[string]bool{"@value": true, "@index": true, "@language": true, "@type": true}
			for key := range resultMap {
				if !allowedKeys[key] {
					return nil, NewError(ErrInvalidValueObject, "value object has unknown keys")
				}
			}
			_, hasLanguage := resultMap["@language"]
			typeValue, hasType := resultMap["@type"]
			if hasLanguage && hasType {
				return nil, NewError(ErrInvalidValueObject, "an element containing @value may not contain both @type and @language")
			}
			if rval == nil {
				return nil, nil
			}
			if hasLanguage {
				for _, v := range Arrayify(rval) {
					if _, isString := v.(string); !isString {
						return nil, NewError(ErrInvalidLanguageTaggedValue, "only strings may be language-tagged")
					}
				}
			} else if hasType {
				for _, v := range Arrayify(typeValue) {
					vStr, isString := v.(string)
					if !isString || !IsAbsoluteIRI(vStr) || strings.HasPrefix(vStr, "_:") {
						return nil, NewError(ErrInvalidTypedValue, "an element containing @value and @type must have an absolute IRI for the value of @type")
					}
				}
			}
		} else if rtype, hasType := resultMap["@type"]; hasType {
			if _, isList := rtype.([]interface{}); !isList {
				resultMap["@type"] = []interface{}{rtype}
			}
		} else {
			rset, hasSet := resultMap["@set"]
			_, hasList := resultMap["@list"]
			if hasSet || hasList {
				maxSize := 1
				if _, hasIndex := resultMap["@index"]; hasIndex {
					maxSize = 2
				}
				if len(resultMap) > maxSize {
					return nil, NewError(ErrInvalidSetOrListObject, "@set or @list may only contain @index")
				}
				if hasSet {
					return rset, nil
				}
			}
		}

		var result interface{} = resultMap
		if _, hasLanguage := resultMap["@language"]; hasLanguage && len(resultMap) == 1 {
			result = nil
		}
		if activeProperty == "" || activeProperty == "@graph" {
			_, hasValue := resultMap["@value"]
			_, hasList := resultMap["@list"]
			_, hasID := resultMap["@id"]
			if result != nil && (len(resultMap) == 0 || hasValue || hasList) {
				result = nil
			} else if result != nil && hasID && len(resultMap) == 1 {
				result = nil
			}
		}
		return result, nil

	default:
		if activeProperty == "" || activeProperty == "@graph" {
			return nil, nil
		}
		return activeCtx.ExpandValue(activeProperty, element)
	}
}

// elemHasEntryExpandingTo reports whether any key of elem IRI-expands to
// expandedKeyword under activeCtx.
func elemHasEntryExpandingTo(activeCtx *ActiveContext, elem map[string]interface{}, expandedKeyword string) bool {
	for key := range elem {
		expanded, err := activeCtx.ExpandIri(key, false, true, nil, nil)
		if err == nil && expanded == expandedKeyword {
			return true
		}
	}
	return false
}

func (e *Expander) expandObject(activeCtx *ActiveContext, activeProperty, expandedActiveProperty string, elem, resultMap map[string]interface{}) error {
	nests := make([]string, 0)

	for _, key := range GetOrderedKeys(elem) {
		value := elem[key]
		if key == "@context" {
			continue
		}
		expandedProperty, err := activeCtx.ExpandIri(key, false, true, nil, nil)
		if err != nil {
			return err
		}
		var expandedValue interface{}

		if expandedProperty == "" || (!strings.Contains(expandedProperty, ":") && !IsKeyword(expandedProperty)) {
			continue
		}

		if IsKeyword(expandedProperty) {
			if expandedActiveProperty == "@reverse" {
				return NewError(ErrInvalidReversePropertyMap, "a keyword cannot be used as a @reverse property")
			}
			if _, exists := resultMap[expandedProperty]; exists {
				return NewError(ErrCollidingKeywords, expandedProperty+" already exists in result")
			}

			switch expandedProperty {
			case "@id":
				switch v := value.(type) {
				case string:
					expandedValue, err = activeCtx.ExpandIri(v, true, false, nil, nil)
					if err != nil {
						return err
					}
				default:
					return NewError(ErrInvalidIdValue, "value of @id must be a string")
				}
			case "@type":
				switch v := value.(type) {
				case []interface{}:
					list := make([]interface{}, 0, len(v))
					for _, item := range v {
						s, isString := item.(string)
						if !isString {
							return NewError(ErrInvalidTypeValue, "@type value must be a string or array of strings")
						}
						expanded, err := activeCtx.ExpandIri(s, true, true, nil, nil)
						if err != nil {
							return err
						}
						list = append(list, expanded)
					}
					expandedValue = list
				case string:
					expandedValue, err = activeCtx.ExpandIri(v, true, true, nil, nil)
					if err != nil {
						return err
					}
				default:
					return NewError(ErrInvalidTypeValue, "@type value must be a string or array of strings")
				}
			case "@graph":
				expandedValue, err = e.Expand(activeCtx, "@graph", value, false)
				if err != nil {
					return err
				}
				expandedValue = Arrayify(expandedValue)
			case "@value":
				_, isMap := value.(map[string]interface{})
				_, isList := value.([]interface{})
				if value != nil && (isMap || isList) {
					return NewError(ErrInvalidValueObjectValue, "value of @value must be a scalar or null")
				}
				expandedValue = value
				if expandedValue == nil {
					resultMap["@value"] = nil
					continue
				}
			case "@language":
				s, isString := value.(string)
				if !isString {
					return NewError(ErrInvalidLanguageTaggedString, "@language value must be a string")
				}
				expandedValue = strings.ToLower(s)
			case "@direction":
				s, isString := value.(string)
				if !isString || (s != "ltr" && s != "rtl") {
					return NewError(ErrInvalidBaseDirection, "@direction value must be 'ltr' or 'rtl'")
				}
				expandedValue = s
			case "@index":
				if _, isString := value.(string); !isString {
					return NewError(ErrInvalidIndexValue, "value of @index must be a string")
				}
				expandedValue = value
			case "@included":
				included, err := e.Expand(activeCtx, "@included", value, false)
				if err != nil {
					return err
				}
				for _, item := range Arrayify(included) {
					if _, isNode := AsNode(item); !isNode {
						return NewError(ErrInvalidIncludedValue, "@included value must be a node object")
					}
				}
				expandedValue = Arrayify(included)
			case "@list":
				if activeProperty == "" || activeProperty == "@graph" {
					continue
				}
				expandedValue, _ = e.Expand(activeCtx, activeProperty, value, false)
				list, isList := expandedValue.([]interface{})
				if !isList {
					list = []interface{}{expandedValue}
					expandedValue = list
				}
				for _, o := range list {
					if oMap, isMap := o.(map[string]interface{}); isMap {
						if _, containsList := oMap["@list"]; containsList {
							return NewError(ErrListOfLists, "a list may not contain another list")
						}
					}
				}
			case "@set":
				expandedValue, _ = e.Expand(activeCtx, activeProperty, value, false)
			case "@reverse":
				vMap, isMap := value.(map[string]interface{})
				if !isMap {
					return NewError(ErrInvalidReverseValue, "@reverse value must be an object")
				}
				expandedValue, err = e.Expand(activeCtx, "@reverse", vMap, false)
				if err != nil {
					return err
				}
				expandedValueMap, _ := expandedValue.(map[string]interface{})
				reverseValue, containsReverse := expandedValueMap["@reverse"]
				if containsReverse {
					for property, item := range reverseValue.(map[string]interface{}) {
						propertyList, _ := resultMap[property].([]interface{})
						if itemList, isList := item.([]interface{}); isList {
							propertyList = append(propertyList, itemList...)
						} else {
							propertyList = append(propertyList, item)
						}
						resultMap[property] = propertyList
					}
				}
				maxSize := 0
				if containsReverse {
					maxSize = 1
				}
				if len(expandedValueMap) > maxSize {
					reverseMap, _ := resultMap["@reverse"].(map[string]interface{})
					if reverseMap == nil {
						reverseMap = make(map[string]interface{})
						resultMap["@reverse"] = reverseMap
					}
					for property, propertyValue := range expandedValueMap {
						if property == "@reverse" {
							continue
						}
						items, _ := propertyValue.([]interface{})
						for _, item := range items {
							itemMap, isMap := item.(map[string]interface{})
							if isMap {
								_, containsValue := itemMap["@value"]
								_, containsList := itemMap["@list"]
								if containsValue || containsList {
									return NewError(ErrInvalidReversePropertyValue, nil)
								}
							}
							propertyValueList, _ := reverseMap[property].([]interface{})
							reverseMap[property] = append(propertyValueList, item)
						}
					}
				}
				continue
			case "@nest":
				nests = append(nests, key)
			case "@default", "@embed", "@explicit", "@omitDefault", "@requireAll":
				expandedValue = value
			}

			if expandedValue != nil {
				resultMap[expandedProperty] = expandedValue
			}
			continue
		}

		termCtx := activeCtx
		td := activeCtx.GetTermDefinition(key)
		if ctx, hasCtx := td["@context"]; hasCtx {
			// A property-scoped context is always allowed to override a
			// protected term, independent of Options.OverrideProtected.
			termCtx, err = activeCtx.ProcessWithFlags(ctx, e.options.Propagate, true)
			if err != nil {
				return err
			}
		}

		valueMap, isMap := value.(map[string]interface{})

		switch {
		case activeCtx.HasContainerMapping(key, "@language") && isMap:
			var list []interface{}
			for _, language := range GetOrderedKeys(valueMap) {
				expandedLanguage, err := termCtx.ExpandIri(language, false, true, nil, nil)
				if err != nil {
					return err
				}
				for _, item := range Arrayify(valueMap[language]) {
					if item == nil {
						continue
					}
					s, isString := item.(string)
					if !isString {
						return NewError(ErrInvalidLanguageMapValue, item)
					}
					v := map[string]interface{}{"@value": s}
					if expandedLanguage != "@none" {
						v["@language"] = strings.ToLower(language)
					}
					list = append(list, v)
				}
			}
			expandedValue = list
		case activeCtx.HasContainerMapping(key, "@index") && isMap:
			asGraph := activeCtx.HasContainerMapping(key, "@graph")
			expandedValue, err = e.expandIndexMap(termCtx, key, valueMap, "@index", asGraph)
			if err != nil {
				return err
			}
		case activeCtx.HasContainerMapping(key, "@id") && isMap:
			asGraph := activeCtx.HasContainerMapping(key, "@graph")
			expandedValue, err = e.expandIndexMap(termCtx, key, valueMap, "@id", asGraph)
			if err != nil {
				return err
			}
		case activeCtx.HasContainerMapping(key, "@type") && isMap:
			expandedValue, err = e.expandIndexMap(termCtx, key, valueMap, "@type", false)
			if err != nil {
				return err
			}
		default:
			isList := expandedProperty == "@list"
			if isList || expandedProperty == "@set" {
				nextActiveProperty := activeProperty
				if isList && expandedActiveProperty == "@graph" {
					nextActiveProperty = ""
				}
				expandedValue, err = e.Expand(termCtx, nextActiveProperty, value, false)
				if err != nil {
					return err
				}
				if isList && IsListObject(expandedValue) {
					return NewError(ErrListOfLists, "lists of lists are not permitted")
				}
			} else {
				expandedValue, err = e.Expand(termCtx, key, value, false)
				if err != nil {
					return err
				}
			}
		}

		if expandedValue == nil {
			continue
		}

		if activeCtx.HasContainerMapping(key, "@list") {
			expandedValueMap, isMap := expandedValue.(map[string]interface{})
			_, containsList := expandedValueMap["@list"]
			if !isMap || !containsList {
				if list, isList := expandedValue.([]interface{}); isList {
					expandedValue = map[string]interface{}{"@list": list}
				} else {
					expandedValue = map[string]interface{}{"@list": []interface{}{expandedValue}}
				}
			}
		}

		isContainerGraph := activeCtx.HasContainerMapping(key, "@graph")
		isContainerID := activeCtx.HasContainerMapping(key, "@id")
		isContainerIndex := activeCtx.HasContainerMapping(key, "@index")
		if isContainerGraph && !isContainerID && !isContainerIndex && !IsGraphObject(expandedValue) {
			result := make([]interface{}, 0)
			for _, ev := range Arrayify(expandedValue) {
				if !IsGraphObject(ev) {
					ev = map[string]interface{}{"@graph": Arrayify(ev)}
				}
				result = append(result, ev)
			}
			expandedValue = result
		}

		if termCtx.IsReverseProperty(key) {
			reverseMap, _ := resultMap["@reverse"].(map[string]interface{})
			if reverseMap == nil {
				reverseMap = make(map[string]interface{})
				resultMap["@reverse"] = reverseMap
			}
			expandedValueList, isList := expandedValue.([]interface{})
			if !isList {
				expandedValueList = []interface{}{expandedValue}
			}
			for _, item := range expandedValueList {
				expandedPropertyList, _ := reverseMap[expandedProperty].([]interface{})
				switch v := item.(type) {
				case map[string]interface{}:
					_, containsValue := v["@value"]
					_, containsList := v["@list"]
					if containsValue || containsList {
						return NewError(ErrInvalidReversePropertyValue, nil)
					}
					expandedPropertyList = append(expandedPropertyList, v)
				case []interface{}:
					expandedPropertyList = append(expandedPropertyList, v...)
				default:
					expandedPropertyList = append(expandedPropertyList, v)
				}
				reverseMap[expandedProperty] = expandedPropertyList
			}
		} else {
			expandedPropertyList, _ := resultMap[expandedProperty].([]interface{})
			if expandedValueList, isList := expandedValue.([]interface{}); isList {
				expandedPropertyList = append(expandedPropertyList, expandedValueList...)
			} else {
				expandedPropertyList = append(expandedPropertyList, expandedValue)
			}
			resultMap[expandedProperty] = expandedPropertyList
		}
	}

	for _, n := range nests {
		for _, nv := range Arrayify(elem[n]) {
			nvMap, isMap := nv.(map[string]interface{})
			hasValues := false
			if isMap {
				for k := range nvMap {
					expanded, _ := activeCtx.ExpandIri(k, false, true, nil, nil)
					if expanded == "@value" {
						hasValues = true
						break
					}
				}
			}
			if !isMap || hasValues {
				return NewError(ErrInvalidNestValue, "nested value must be a node object")
			}
			if err := e.expandObject(activeCtx, activeProperty, expandedActiveProperty, nvMap, resultMap); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Expander) expandIndexMap(activeCtx *ActiveContext, activeProperty string, value map[string]interface{}, indexKey string, asGraph bool) (interface{}, error) {
	result := make([]interface{}, 0)

	for _, index := range GetOrderedKeys(value) {
		indexValue := value[index]

		indexCtx := activeCtx
		td := activeCtx.GetTermDefinition(index)
		if ctx, hasCtx := td["@context"]; hasCtx {
			newCtx, err := activeCtx.Process(ctx)
			if err != nil {
				return nil, err
			}
			indexCtx = newCtx
		}

		expandedIndex, err := indexCtx.ExpandIri(index, false, true, nil, nil)
		if err != nil {
			return nil, err
		}
		resolvedIndex := index
		if indexKey == "@id" {
			resolvedIndex, err = indexCtx.ExpandIri(index, true, false, nil, nil)
			if err != nil {
				return nil, err
			}
		} else if indexKey == "@type" {
			resolvedIndex = expandedIndex
		}

		expanded, err := e.Expand(indexCtx, activeProperty, Arrayify(indexValue), true)
		if err != nil {
			return nil, err
		}

		for _, itemValue := range expanded.([]interface{}) {
			if asGraph && !IsGraphObject(itemValue) {
				itemValue = map[string]interface{}{"@graph": Arrayify(itemValue)}
			}
			item, isMap := itemValue.(map[string]interface{})
			if !isMap {
				result = append(result, itemValue)
				continue
			}
			if indexKey == "@type" {
				if expandedIndex != "@none" {
					types := []interface{}{resolvedIndex}
					if existing, hasType := item["@type"]; hasType {
						types = append(types, existing.([]interface{})...)
					}
					item["@type"] = types
				}
			} else if _, has := item[indexKey]; !has && expandedIndex != "@none" {
				item[indexKey] = resolvedIndex
			}
			result = append(result, item)
		}
	}

	return result, nil
}
