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

// Compactor runs the Compaction algorithm over an expanded document,
// replacing absolute IRIs with terms and compact IRIs drawn from an
// active context and collapsing single-element arrays where
// Options.CompactArrays allows it.
type Compactor struct {
	options *Options
}

// NewCompactor creates a Compactor honoring options.CompactArrays.
func NewCompactor(options *Options) *Compactor {
	if options == nil {
		options = DefaultOptions()
	}
	return &Compactor{options: options}
}

// Compact runs the algorithm against element using activeCtx and
// activeProperty (the compacted name of the property element was found
// under, "" at the document root).
func (c *Compactor) Compact(activeCtx *ActiveContext, activeProperty string, element interface{}) (interface{}, error) {
	if elementList, isList := element.([]interface{}); isList {
		result := make([]interface{}, 0, len(elementList))
		for _, item := range elementList {
			compacted, err := c.Compact(activeCtx, activeProperty, item)
			if err != nil {
				return nil, err
			}
			if compacted != nil {
				result = append(result, compacted)
			}
		}
		container := activeCtx.GetContainer(activeProperty)
		if c.options.CompactArrays && len(result) == 1 && !hasContainerValue(container, "@list") && !hasContainerValue(container, "@set") {
			return result[0], nil
		}
		return result, nil
	}

	elem, isMap := element.(map[string]interface{})
	if !isMap {
		return element, nil
	}

	_, containsValue := elem["@value"]
	_, containsID := elem["@id"]
	if containsValue || containsID {
		compactedValue, err := activeCtx.CompactValue(activeProperty, elem)
		if err != nil {
			return nil, err
		}
		_, isMap := compactedValue.(map[string]interface{})
		_, isList := compactedValue.([]interface{})
		if !isMap && !isList {
			return compactedValue, nil
		}
	}

	insideReverse := activeProperty == "@reverse"
	result := make(map[string]interface{})

	for _, expandedProperty := range GetOrderedKeys(elem) {
		expandedValue := elem[expandedProperty]

		if expandedProperty == "@id" || expandedProperty == "@type" {
			var compactedValue interface{}
			var err error

			if expandedValueStr, isString := expandedValue.(string); isString {
				compactedValue, err = activeCtx.CompactIri(expandedValueStr, nil, expandedProperty == "@type", false)
				if err != nil {
					return nil, err
				}
			} else {
				types := make([]interface{}, 0)
				for _, expandedTypeVal := range expandedValue.([]interface{}) {
					compactedType, err := activeCtx.CompactIri(expandedTypeVal.(string), nil, true, false)
					if err != nil {
						return nil, err
					}
					types = append(types, compactedType)
				}
				if len(types) == 1 {
					compactedValue = types[0]
				} else {
					compactedValue = types
				}
			}

			alias, err := activeCtx.CompactIri(expandedProperty, nil, true, false)
			if err != nil {
				return nil, err
			}
			result[alias] = compactedValue
			continue
		}

		if expandedProperty == "@reverse" {
			compactedObject, err := c.Compact(activeCtx, "@reverse", expandedValue)
			if err != nil {
				return nil, err
			}
			compactedValue, _ := compactedObject.(map[string]interface{})
			for _, property := range GetKeys(compactedValue) {
				value := compactedValue[property]
				if !activeCtx.IsReverseProperty(property) {
					continue
				}
				valueList, isList := value.([]interface{})
				if (activeCtx.HasContainerMapping(property, "@set") || !c.options.CompactArrays) && !isList {
					result[property] = []interface{}{value}
				}
				if _, present := result[property]; !present {
					result[property] = value
				} else {
					propertyValueList, isPropertyList := result[property].([]interface{})
					if !isPropertyList {
						propertyValueList = []interface{}{result[property]}
					}
					if isList {
						propertyValueList = append(propertyValueList, valueList...)
					} else {
						propertyValueList = append(propertyValueList, value)
					}
					result[property] = propertyValueList
				}
				delete(compactedValue, property)
			}
			if len(compactedValue) > 0 {
				alias, err := activeCtx.CompactIri("@reverse", nil, true, false)
				if err != nil {
					return nil, err
				}
				result[alias] = compactedValue
			}
			continue
		}

		if expandedProperty == "@index" && activeCtx.HasContainerMapping(activeProperty, "@index") {
			continue
		} else if expandedProperty == "@index" || expandedProperty == "@value" || expandedProperty == "@language" {
			alias, err := activeCtx.CompactIri(expandedProperty, nil, true, false)
			if err != nil {
				return nil, err
			}
			result[alias] = expandedValue
			continue
		}

		// expandedValue is always an array post-expansion.
		expandedValueList, _ := expandedValue.([]interface{})
		if len(expandedValueList) == 0 {
			itemActiveProperty, err := activeCtx.CompactIri(expandedProperty, expandedValue, true, insideReverse)
			if err != nil {
				return nil, err
			}
			itemActivePropertyVal, present := result[itemActiveProperty]
			if !present {
				result[itemActiveProperty] = make([]interface{}, 0)
			} else if _, isList := itemActivePropertyVal.([]interface{}); !isList {
				result[itemActiveProperty] = []interface{}{itemActivePropertyVal}
			}
		}

		for _, expandedItem := range expandedValueList {
			itemActiveProperty, err := activeCtx.CompactIri(expandedProperty, expandedItem, true, insideReverse)
			if err != nil {
				return nil, err
			}
			container := activeCtx.GetContainer(itemActiveProperty)

			if IsGraphObject(expandedItem) {
				if err := c.compactGraphItem(activeCtx, itemActiveProperty, expandedItem.(map[string]interface{}), container, result); err != nil {
					return nil, err
				}
				continue
			}

			expandedItemMap, isMap := expandedItem.(map[string]interface{})
			list, containsList := expandedItemMap["@list"]
			isList := isMap && containsList

			var elementToCompact interface{}
			if isList {
				elementToCompact = list
			} else {
				elementToCompact = expandedItem
			}
			compactedItem, err := c.Compact(activeCtx, itemActiveProperty, elementToCompact)
			if err != nil {
				return nil, err
			}

			if isList {
				if _, isCompactedList := compactedItem.([]interface{}); !isCompactedList {
					compactedItem = []interface{}{compactedItem}
				}
				if !hasContainerValue(container, "@list") {
					wrapper := make(map[string]interface{})
					listAlias, err := activeCtx.CompactIri("@list", nil, true, false)
					if err != nil {
						return nil, err
					}
					wrapper[listAlias] = compactedItem
					compactedItem = wrapper

					if indexVal, containsIndex := expandedItemMap["@index"]; containsIndex {
						indexAlias, err := activeCtx.CompactIri("@index", nil, true, false)
						if err != nil {
							return nil, err
						}
						wrapper[indexAlias] = indexVal
					}
				} else if _, present := result[itemActiveProperty]; present {
					return nil, NewError(ErrCompactionToListOfLists,
						"there cannot be two list objects associated with an active property that has a container mapping")
				}
			}

			if hasContainerValue(container, "@language") || hasContainerValue(container, "@index") {
				var mapObject map[string]interface{}
				if v, present := result[itemActiveProperty]; present {
					mapObject, _ = v.(map[string]interface{})
				} else {
					mapObject = make(map[string]interface{})
					result[itemActiveProperty] = mapObject
				}

				compactedItemMap, isMap := compactedItem.(map[string]interface{})
				compactedItemValue, containsValue := compactedItemMap["@value"]
				mapKeyKeyword := "@index"
				if hasContainerValue(container, "@language") {
					mapKeyKeyword = "@language"
					if isMap && containsValue {
						compactedItem = compactedItemValue
					}
				}

				mapKey, _ := expandedItemMap[mapKeyKeyword].(string)
				mapValue, hasMapKey := mapObject[mapKey]
				if !hasMapKey {
					mapObject[mapKey] = compactedItem
				} else {
					mapValueList, isList := mapValue.([]interface{})
					if !isList {
						mapValueList = []interface{}{mapValue}
					}
					mapObject[mapKey] = append(mapValueList, compactedItem)
				}
			} else {
				_, isList := compactedItem.([]interface{})
				wrap := (!c.options.CompactArrays || hasContainerValue(container, "@set") || hasContainerValue(container, "@list") ||
					expandedProperty == "@list" || expandedProperty == "@graph") && !isList
				if wrap {
					compactedItem = []interface{}{compactedItem}
				}
				itemActivePropertyVal, present := result[itemActiveProperty]
				if !present {
					result[itemActiveProperty] = compactedItem
				} else {
					itemActivePropertyValueList, isList := itemActivePropertyVal.([]interface{})
					if !isList {
						itemActivePropertyValueList = []interface{}{itemActivePropertyVal}
					}
					if compactedItemList, isList := compactedItem.([]interface{}); isList {
						itemActivePropertyValueList = append(itemActivePropertyValueList, compactedItemList...)
					} else {
						itemActivePropertyValueList = append(itemActivePropertyValueList, compactedItem)
					}
					result[itemActiveProperty] = itemActivePropertyValueList
				}
			}
		}
	}

	return result, nil
}

// compactGraphItem compacts a graph object (an item whose only entries are
// @graph and optionally @id/@index) into result under itemActiveProperty,
// shaping the result according to the @graph container variant in effect:
// a {@graph,@id} container keys by the compacted @id (or @none), a
// {@graph,@index} container keys by @index for simple graphs, a plain
// @graph container wraps multi-member simple graphs in @included, and
// anything else falls back to an explicit {@graph:...} object.
func (c *Compactor) compactGraphItem(activeCtx *ActiveContext, itemActiveProperty string, node map[string]interface{}, container []interface{}, result map[string]interface{}) error {
	compactedItem, err := c.Compact(activeCtx, itemActiveProperty, node["@graph"])
	if err != nil {
		return err
	}

	idVal, hasID := node["@id"]
	indexVal, hasIndex := node["@index"]
	isSimple := !hasID
	asArray := !c.options.CompactArrays || hasContainerValue(container, "@set") || itemActiveProperty == "@graph"

	switch {
	case hasContainerValue(container, "@graph") && hasContainerValue(container, "@id"):
		mapObject, _ := result[itemActiveProperty].(map[string]interface{})
		if mapObject == nil {
			mapObject = make(map[string]interface{})
			result[itemActiveProperty] = mapObject
		}

		var mapKey string
		if hasID {
			mapKey, err = activeCtx.CompactIri(idVal.(string), nil, false, false)
		} else {
			mapKey, err = activeCtx.CompactIri("@none", nil, true, false)
		}
		if err != nil {
			return err
		}
		addMapValue(mapObject, mapKey, compactedItem, asArray)

	case hasContainerValue(container, "@graph") && hasContainerValue(container, "@index") && isSimple:
		mapObject, _ := result[itemActiveProperty].(map[string]interface{})
		if mapObject == nil {
			mapObject = make(map[string]interface{})
			result[itemActiveProperty] = mapObject
		}

		mapKey := "@none"
		if hasIndex {
			mapKey, _ = indexVal.(string)
		}
		addMapValue(mapObject, mapKey, compactedItem, asArray)

	case hasContainerValue(container, "@graph") && isSimple:
		// The value cannot be represented as a map object: if compacting
		// produced more than one member, multiple objects would read back
		// as distinct named graphs, so wrap them under @included instead.
		if items, isList := compactedItem.([]interface{}); isList && len(items) > 1 {
			includedAlias, err := activeCtx.CompactIri("@included", nil, true, false)
			if err != nil {
				return err
			}
			compactedItem = map[string]interface{}{includedAlias: items}
		}
		addMapValue(result, itemActiveProperty, compactedItem, asArray)

	default:
		graphAlias, err := activeCtx.CompactIri("@graph", nil, true, false)
		if err != nil {
			return err
		}
		wrapper := map[string]interface{}{graphAlias: compactedItem}

		if hasID {
			idAlias, err := activeCtx.CompactIri("@id", nil, false, false)
			if err != nil {
				return err
			}
			compactedID, err := activeCtx.CompactIri(idVal.(string), nil, false, false)
			if err != nil {
				return err
			}
			wrapper[idAlias] = compactedID
		}
		if hasIndex {
			indexAlias, err := activeCtx.CompactIri("@index", nil, true, false)
			if err != nil {
				return err
			}
			wrapper[indexAlias] = indexVal
		}

		addMapValue(result, itemActiveProperty, wrapper, asArray)
	}

	return nil
}

// addMapValue adds value to dest under key, folding it into an existing
// entry as an array rather than overwriting it, and forcing a single-entry
// array when asArray requires one.
func addMapValue(dest map[string]interface{}, key string, value interface{}, asArray bool) {
	existing, present := dest[key]
	if !present {
		if asArray {
			if list, isList := value.([]interface{}); isList {
				dest[key] = list
			} else {
				dest[key] = []interface{}{value}
			}
		} else {
			dest[key] = value
		}
		return
	}

	existingList, isList := existing.([]interface{})
	if !isList {
		existingList = []interface{}{existing}
	}
	if valueList, isList := value.([]interface{}); isList {
		existingList = append(existingList, valueList...)
	} else {
		existingList = append(existingList, value)
	}
	dest[key] = existingList
}

func hasContainerValue(container []interface{}, val string) bool {
	for _, c := range container {
		if c == val {
			return true
		}
	}
	return false
}
