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
	"fmt"
	"strings"
)

// CreateTermDefinition implements the Create Term Definition algorithm: it
// resolves context[term] and installs the resulting definition into
// c.termDefinitions, recursing into prefix or @reverse dependencies as
// needed and tracking cycles via defined.
func (c *ActiveContext) CreateTermDefinition(context map[string]interface{}, term string, defined map[string]bool, overrideProtected bool) error {
	if isDefined, inDefined := defined[term]; inDefined {
		if isDefined {
			return nil
		}
		return NewError(ErrCyclicIriMapping, term)
	}

	defined[term] = false

	value := context[term]
	valueMap, isMap := value.(map[string]interface{})
	idVal, hasID := valueMap["@id"]
	if value == nil || (isMap && hasID && idVal == nil) {
		c.termDefinitions[term] = nil
		defined[term] = true
		return nil
	}

	simpleTerm := false
	if _, isString := value.(string); isString {
		valueMap = map[string]interface{}{"@id": value}
		simpleTerm = true
		isMap = true
	}
	if !isMap {
		return NewError(ErrInvalidTermDefinition, value)
	}

	if IsKeyword(term) {
		onlyContainerOrProtected := true
		for k := range valueMap {
			if k != "@container" && k != "@protected" {
				onlyContainerOrProtected = false
				break
			}
		}
		isSetContainer := valueMap["@container"] == "@set" || valueMap["@container"] == nil
		if !(c.processingMode1_1() && term == "@type" && onlyContainerOrProtected && isSetContainer) {
			return NewError(ErrKeywordRedefinition, term)
		}
	} else if ignoredKeywordPattern.MatchString(term) {
		c.options.warn(Warning{Kind: KeywordLikeTerm, Term: term})
		return nil
	} else if term == "" {
		c.options.warn(Warning{Kind: EmptyTerm, Term: term})
	}

	previous := c.termDefinitions[term]
	delete(c.termDefinitions, term)

	val := valueMap
	definition := make(map[string]interface{})

	validKeys := map[string]bool{
		"@container": true,
		"@id":        true,
		"@language":  true,
		"@reverse":   true,
		"@type":      true,
	}
	if c.processingMode1_1() {
		validKeys["@context"] = true
		validKeys["@direction"] = true
		validKeys["@index"] = true
		validKeys["@nest"] = true
		validKeys["@prefix"] = true
		validKeys["@protected"] = true
	}
	for k := range val {
		if !validKeys[k] {
			return NewError(ErrInvalidTermDefinition, fmt.Sprintf("term definition for %s must not contain %s", term, k))
		}
	}

	colonIndex := strings.Index(term, ":")
	termHasColon := colonIndex > 0

	definition["@reverse"] = false

	if reverseVal, hasReverse := val["@reverse"]; hasReverse {
		if _, hasID := val["@id"]; hasID {
			return NewError(ErrInvalidReverseProperty, "an @reverse term definition must not contain @id")
		}
		if _, hasNest := val["@nest"]; hasNest {
			return NewError(ErrInvalidReverseProperty, "an @reverse term definition must not contain @nest")
		}
		reverseStr, isString := reverseVal.(string)
		if !isString {
			return NewError(ErrInvalidIriMapping, fmt.Sprintf("expected string for @reverse value, got %v", reverseVal))
		}
		id, err := c.ExpandIri(reverseStr, false, true, context, defined)
		if err != nil {
			return err
		}
		if !IsAbsoluteIRI(id) {
			return NewError(ErrInvalidIriMapping, fmt.Sprintf("@reverse value must be an absolute IRI or blank node, got %s", id))
		}
		if ignoredKeywordPattern.MatchString(reverseStr) {
			c.options.warn(Warning{Kind: KeywordLikeValue, Term: term, Value: reverseStr})
			return nil
		}
		definition["@id"] = id
		definition["@reverse"] = true
	} else if idVal, hasID := val["@id"]; hasID {
		idStr, isString := idVal.(string)
		if !isString {
			return NewError(ErrInvalidIriMapping, "expected value of @id to be a string")
		}
		if term != idStr {
			if !IsKeyword(idStr) && ignoredKeywordPattern.MatchString(idStr) {
				c.options.warn(Warning{Kind: KeywordLikeValue, Term: term, Value: idStr})
				return nil
			}
			expanded, err := c.ExpandIri(idStr, false, true, context, defined)
			if err != nil {
				return err
			}
			if IsKeyword(expanded) || IsAbsoluteIRI(expanded) {
				if expanded == "@context" {
					return NewError(ErrInvalidKeywordAlias, "cannot alias @context")
				}
				definition["@id"] = expanded

				if iriLikeTermPattern.MatchString(term) {
					defined[term] = true
					termIRI, err := c.ExpandIri(term, false, true, context, defined)
					if err != nil {
						return err
					}
					if termIRI != expanded {
						return NewError(ErrInvalidIriMapping, fmt.Sprintf("term %s expands to %s, not %s", term, expanded, termIRI))
					}
					delete(defined, term)
				}

				termHasSuffix := false
				if len(expanded) > 0 {
					switch expanded[len(expanded)-1] {
					case ':', '/', '?', '#', '[', ']', '@':
						termHasSuffix = true
					}
				}
				definition["_prefix"] = !termHasColon && termHasSuffix && (simpleTerm || c.processingMode1_0())
			} else {
				return NewError(ErrInvalidIriMapping, "resulting IRI mapping should be a keyword, absolute IRI, or blank node")
			}
		}
	}

	if _, hasID := definition["@id"]; !hasID {
		if termHasColon {
			prefix := term[:colonIndex]
			if _, hasPrefixInContext := context[prefix]; hasPrefixInContext {
				if err := c.CreateTermDefinition(context, prefix, defined, overrideProtected); err != nil {
					return err
				}
			}
			if prefixDef, has := c.termDefinitions[prefix]; has {
				prefixMap := prefixDef.(map[string]interface{})
				suffix := term[colonIndex+1:]
				definition["@id"] = prefixMap["@id"].(string) + suffix
			} else {
				definition["@id"] = term
			}
		} else if vocab, hasVocab := c.values["@vocab"]; hasVocab {
			definition["@id"] = vocab.(string) + term
		} else if term != "@type" {
			return NewError(ErrInvalidIriMapping, "relative term definition without vocab mapping")
		}
	}

	protectedVal, protectedFound := valueMap["@protected"]
	if (protectedFound && protectedVal.(bool)) || (defined["@protected"] && !(protectedFound && !protectedVal.(bool))) {
		c.protected[term] = true
		definition["protected"] = true
	}

	defined[term] = true

	if typeVal, present := val["@type"]; present {
		typeStr, isString := typeVal.(string)
		if !isString {
			return NewError(ErrInvalidTypeMapping, typeVal)
		}
		if (typeStr == "@json" || typeStr == "@none") && c.processingMode1_0() {
			return NewError(ErrInvalidTypeMapping, fmt.Sprintf("unknown mapping for @type: %s on term %s", typeStr, term))
		}
		if typeStr != "@id" && typeStr != "@vocab" && typeStr != "@json" && typeStr != "@none" {
			expanded, err := c.ExpandIri(typeStr, false, true, context, defined)
			if err != nil {
				if code, ok := CodeOf(err); !ok || code != ErrInvalidIriMapping {
					return err
				}
				return NewError(ErrInvalidTypeMapping, typeStr)
			}
			typeStr = expanded
			if !IsAbsoluteIRI(typeStr) {
				return NewError(ErrInvalidTypeMapping, "an @context @type value must be an absolute IRI")
			}
			if strings.HasPrefix(typeStr, "_:") {
				return NewError(ErrInvalidTypeMapping, "an @context @type value must not be a blank node identifier")
			}
		}
		definition["@type"] = typeStr
	}

	if containerVal, hasContainer := val["@container"]; hasContainer {
		var container []interface{}
		containerSet := make(map[string]bool)
		if arr, isArray := containerVal.([]interface{}); isArray {
			container = arr
			for _, v := range arr {
				containerSet[v.(string)] = true
			}
		} else {
			container = []interface{}{containerVal}
			containerSet[containerVal.(string)] = true
		}

		validContainers := map[string]bool{"@list": true, "@set": true, "@index": true, "@language": true}
		if c.processingMode1_1() {
			validContainers["@graph"] = true
			validContainers["@id"] = true
			validContainers["@type"] = true

			if containerSet["@list"] && len(container) != 1 {
				return NewError(ErrInvalidContainerMapping, "@container with @list must have no other values")
			}
			if containerSet["@graph"] {
				allowed := map[string]bool{"@graph": true, "@id": true, "@index": true, "@set": true}
				for key := range containerSet {
					if !allowed[key] {
						return NewError(ErrInvalidContainerMapping, "@container with @graph allows only @id, @index, and @set")
					}
				}
			} else {
				maxLen := 1
				if containerSet["@set"] {
					maxLen = 2
				}
				if len(container) > maxLen {
					return NewError(ErrInvalidContainerMapping, "@set can only be combined with one other container")
				}
			}
			if containerSet["@type"] {
				if _, has := definition["@type"]; !has {
					definition["@type"] = "@id"
				}
				if definition["@type"] != "@id" && definition["@type"] != "@vocab" {
					return NewError(ErrInvalidTypeMapping, "@container: @type requires @type to be @id or @vocab")
				}
			}
		} else if _, isString := containerVal.(string); !isString {
			return NewError(ErrInvalidContainerMapping, "@container must be a string in 1.0 mode")
		}

		for _, v := range container {
			if !validContainers[v.(string)] {
				return NewError(ErrInvalidContainerMapping, fmt.Sprintf("invalid @container value: %v", v))
			}
		}
		if containerSet["@set"] && containerSet["@list"] {
			return NewError(ErrInvalidContainerMapping, "@set not allowed with @list")
		}
		if reverseVal, _ := definition["@reverse"].(bool); reverseVal {
			for key := range containerSet {
				if key != "@index" && key != "@set" {
					return NewError(ErrInvalidReverseProperty, "@reverse term's @container must be @index or @set")
				}
			}
		}

		definition["@container"] = container
		if term == "@type" {
			definition["@id"] = "@type"
		}
	}

	if indexVal, hasIndex := val["@index"]; hasIndex {
		_, hasContainerSource := val["@container"]
		_, hasContainerDef := definition["@container"]
		if !hasContainerSource || !hasContainerDef {
			return NewError(ErrInvalidTermDefinition, fmt.Sprintf("@index without @index in @container on term %s", term))
		}
		indexStr, isString := indexVal.(string)
		if !isString || strings.HasPrefix(indexStr, "@") {
			return NewError(ErrInvalidTermDefinition, fmt.Sprintf("@index must expand to an IRI on term %s", term))
		}
		definition["@index"] = indexVal
	}

	if ctxVal, hasCtx := val["@context"]; hasCtx {
		definition["@context"] = ctxVal
	}

	_, hasType := val["@type"]
	if langVal, hasLanguage := val["@language"]; hasLanguage && !hasType {
		switch {
		case langVal == nil:
			definition["@language"] = nil
		case IsString(langVal):
			definition["@language"] = strings.ToLower(langVal.(string))
		default:
			return NewError(ErrInvalidLanguageMapping, "@language must be a string or null")
		}
	}

	if prefixVal, hasPrefix := val["@prefix"]; hasPrefix {
		if invalidPrefixPattern.MatchString(term) {
			return NewError(ErrInvalidTermDefinition, "@prefix used on a compact or relative IRI term")
		}
		prefix, isBool := prefixVal.(bool)
		if !isBool {
			return NewError(ErrInvalidPrefixValue, "@prefix must be a boolean")
		}
		if id, hasID := definition["@id"]; hasID && IsKeyword(id) {
			return NewError(ErrInvalidTermDefinition, "keywords may not be used as prefixes")
		}
		definition["_prefix"] = prefix
	}

	if dirVal, hasDir := val["@direction"]; hasDir {
		switch {
		case dirVal == nil:
			definition["@direction"] = nil
		case dirVal == "ltr" || dirVal == "rtl":
			definition["@direction"] = dirVal
		default:
			return NewError(ErrInvalidBaseDirection, fmt.Sprintf("direction must be null, 'ltr', or 'rtl' on term %s", term))
		}
	}

	if nestVal, hasNest := val["@nest"]; hasNest {
		nest, isString := nestVal.(string)
		if !isString || (nest != "@nest" && strings.HasPrefix(nest, "@")) {
			return NewError(ErrInvalidNestValue, "@nest value must be a string that is not a keyword other than @nest")
		}
		definition["@nest"] = nest
	}

	if id := definition["@id"]; id == "@context" || id == "@preserve" {
		return NewError(ErrInvalidKeywordAlias, "@context and @preserve cannot be aliased")
	}

	if previous != nil {
		prevMap := previous.(map[string]interface{})
		if protectedVal, found := prevMap["protected"]; found && protectedVal.(bool) && !overrideProtected {
			c.protected[term] = true
			definition["protected"] = true
			if !DeepEqual(previous, definition, false) {
				return NewError(ErrProtectedTermRedefinition, term)
			}
		}
	}

	c.termDefinitions[term] = definition
	return nil
}
