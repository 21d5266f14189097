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

// ExpandValue implements Value Expansion: given the active property and a
// scalar from the input document, it returns the value object the
// property's type/language coercion implies.
func (c *ActiveContext) ExpandValue(activeProperty string, value interface{}) (interface{}, error) {
	result := make(map[string]interface{})
	td := c.GetTermDefinition(activeProperty)

	if td != nil && td["@type"] == "@id" {
		if strVal, isString := value.(string); isString {
			expanded, err := c.ExpandIri(strVal, true, false, nil, nil)
			if err != nil {
				return nil, err
			}
			result["@id"] = expanded
		} else {
			result["@value"] = value
		}
		return result, nil
	}

	if td != nil && td["@type"] == "@vocab" {
		if strVal, isString := value.(string); isString {
			expanded, err := c.ExpandIri(strVal, true, true, nil, nil)
			if err != nil {
				return nil, err
			}
			result["@id"] = expanded
		} else {
			result["@value"] = value
		}
		return result, nil
	}

	result["@value"] = value

	if typeVal, has := td["@type"]; td != nil && has && typeVal != "@id" && typeVal != "@vocab" && typeVal != "@none" {
		result["@type"] = typeVal
	} else if _, isString := value.(string); isString {
		if langVal, has := td["@language"]; has {
			if langVal != nil {
				result["@language"] = langVal
			}
		} else if def, has := c.values["@language"]; has {
			result["@language"] = def
		}
		if dirVal, has := td["@direction"]; has {
			if dirVal != nil {
				result["@direction"] = dirVal
			}
		} else if def := c.values["@direction"]; def != nil {
			result["@direction"] = def
		}
	}

	return result, nil
}

// CompactValue implements Value Compaction: given a value object (or a
// node reference treated as one), it returns the most compact equivalent
// representation permitted by the active property's term definition.
func (c *ActiveContext) CompactValue(activeProperty string, value map[string]interface{}) (interface{}, error) {
	var result interface{} = value

	language := c.GetLanguageMapping(activeProperty)
	direction := c.GetDirectionMapping(activeProperty)

	isIndexContainer := c.HasContainerMapping(activeProperty, "@index")
	_, hasIndex := value["@index"]
	idVal, hasID := value["@id"]
	typeVal, hasType := value["@type"]

	idOrIndexOnly := true
	for k := range value {
		if k != "@id" && k != "@index" {
			idOrIndexOnly = false
			break
		}
	}

	propType := c.GetTermDefinition(activeProperty)["@type"]
	languageVal := value["@language"]
	directionVal := value["@direction"]
	var err error

	switch {
	case hasID && idOrIndexOnly:
		switch propType {
		case "@id":
			result, err = c.CompactIri(idVal.(string), nil, false, false)
		case "@vocab":
			result, err = c.CompactIri(idVal.(string), nil, true, false)
		default:
			var compactedID, compactedValue string
			compactedID, err = c.CompactIri("@id", nil, true, false)
			if err == nil {
				compactedValue, err = c.CompactIri(idVal.(string), nil, false, false)
			}
			result = map[string]interface{}{compactedID: compactedValue}
		}
		if err != nil {
			return nil, err
		}
	case hasID:
		// a node object with members beyond @id/@index is not compacted here
		return value, nil
	case hasType && typeVal == propType:
		result = value["@value"]
	case propType == "@none" || (hasType && typeVal != propType):
		result = value
	default:
		_, valueIsString := value["@value"].(string)
		if !valueIsString && (!hasIndex || isIndexContainer) {
			result = value["@value"]
		} else if languageVal == language && directionVal == direction {
			if !hasIndex || isIndexContainer {
				result = value["@value"]
				return result, nil
			}
		}
	}

	if resultMap, isMap := result.(map[string]interface{}); isMap && resultMap["@type"] != nil && value["@type"] != "@json" {
		newMap := make(map[string]interface{}, len(resultMap))
		for k, v := range resultMap {
			newMap[k] = v
		}
		if tt, isArray := newMap["@type"].([]interface{}); isArray {
			newTT := make([]interface{}, len(tt))
			for i, t := range tt {
				newTT[i], err = c.CompactIri(t.(string), nil, true, false)
				if err != nil {
					return nil, err
				}
			}
			newMap["@type"] = newTT
		} else {
			newMap["@type"], err = c.CompactIri(newMap["@type"].(string), nil, true, false)
			if err != nil {
				return nil, err
			}
		}
		result = newMap
	}

	if resultMap, isMap := result.(map[string]interface{}); isMap {
		newMap := make(map[string]interface{}, len(resultMap))
		for k, v := range resultMap {
			if k == "@index" && !(hasIndex && !isIndexContainer) {
				continue
			}
			alias, err := c.CompactIri(k, nil, true, false)
			if err != nil {
				return nil, err
			}
			newMap[alias] = v
		}
		result = newMap
	}

	return result, nil
}
