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
	"sort"
	"strings"
)

// shortestLeast sorts strings by length first, then lexicographically —
// the ordering the Inverse Context Creation algorithm requires so the
// most specific, shortest term wins a compaction tie.
type shortestLeast []string

func (s shortestLeast) Len() int      { return len(s) }
func (s shortestLeast) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s shortestLeast) Less(i, j int) bool {
	if len(s[i]) != len(s[j]) {
		return len(s[i]) < len(s[j])
	}
	return s[i] < s[j]
}

// GetInverse lazily builds and caches the inverse context used by
// CompactIri and SelectTerm to pick the best term for a given IRI, type,
// language, and container combination.
func (c *ActiveContext) GetInverse() map[string]interface{} {
	if c.inverse != nil {
		return c.inverse
	}

	c.inverse = make(map[string]interface{})

	defaultLanguage := "@none"
	if lang, has := c.values["@language"]; has {
		defaultLanguage = lang.(string)
	}

	terms := GetKeys(c.termDefinitions)
	sort.Sort(shortestLeast(terms))

	for _, term := range terms {
		defVal := c.termDefinitions[term]
		if defVal == nil {
			continue
		}
		definition := defVal.(map[string]interface{})

		var containerJoin string
		if containerVal, present := definition["@container"]; !present {
			containerJoin = "@none"
		} else {
			container := containerVal.([]interface{})
			strs := make([]string, 0, len(container))
			for _, v := range container {
				strs = append(strs, v.(string))
			}
			sort.Strings(strs)
			containerJoin = strings.Join(strs, "")
		}

		iri := definition["@id"].(string)

		containerMap, present := c.inverse[iri].(map[string]interface{})
		if !present {
			containerMap = make(map[string]interface{})
			c.inverse[iri] = containerMap
		}

		typeLanguageMap, present := containerMap[containerJoin].(map[string]interface{})
		if !present {
			typeLanguageMap = map[string]interface{}{
				"@language": make(map[string]interface{}),
				"@type":     make(map[string]interface{}),
				"@any":      map[string]interface{}{"@none": term},
			}
			containerMap[containerJoin] = typeLanguageMap
		}

		langVal, hasLang := definition["@language"]
		dirVal, hasDir := definition["@direction"]
		typeVal, hasType := definition["@type"]

		switch {
		case func() bool { b, _ := definition["@reverse"].(bool); return b }():
			typeMap := typeLanguageMap["@type"].(map[string]interface{})
			if _, has := typeMap["@reverse"]; !has {
				typeMap["@reverse"] = term
			}
		case hasType && typeVal == "@none":
			typeMap := typeLanguageMap["@type"].(map[string]interface{})
			if _, has := typeMap["@any"]; !has {
				typeMap["@any"] = term
			}
			languageMap := typeLanguageMap["@language"].(map[string]interface{})
			if _, has := languageMap["@any"]; !has {
				languageMap["@any"] = term
			}
			anyMap := typeLanguageMap["@any"].(map[string]interface{})
			if _, has := anyMap["@any"]; !has {
				anyMap["@any"] = term
			}
		case hasType:
			typeMap := typeLanguageMap["@type"].(map[string]interface{})
			if _, has := typeMap[typeVal.(string)]; !has {
				typeMap[typeVal.(string)] = term
			}
		case hasLang && hasDir:
			languageMap := typeLanguageMap["@language"].(map[string]interface{})
			langDir := "@null"
			switch {
			case langVal != nil && dirVal != nil:
				langDir = fmt.Sprintf("%s_%s", langVal, dirVal)
			case langVal != nil:
				langDir = langVal.(string)
			case dirVal != nil:
				langDir = "_" + dirVal.(string)
			}
			if _, has := languageMap[langDir]; !has {
				languageMap[langDir] = term
			}
		case hasLang:
			languageMap := typeLanguageMap["@language"].(map[string]interface{})
			language := "@null"
			if langVal != nil {
				language = langVal.(string)
			}
			if _, has := languageMap[language]; !has {
				languageMap[language] = term
			}
		case hasDir:
			languageMap := typeLanguageMap["@language"].(map[string]interface{})
			dir := "@none"
			if dirVal != nil {
				dir = "_" + dirVal.(string)
			}
			if _, has := languageMap[dir]; !has {
				languageMap[dir] = term
			}
		default:
			if defDir, found := c.values["@direction"]; found {
				languageMap := typeLanguageMap["@language"].(map[string]interface{})
				typeMap := typeLanguageMap["@type"].(map[string]interface{})
				langDir := "_" + defDir.(string)
				if hasLang {
					langDir = fmt.Sprintf("%s_%s", langVal, defDir)
				}
				if _, has := languageMap[langDir]; !has {
					languageMap[langDir] = term
				}
				if _, has := languageMap["@none"]; !has {
					languageMap["@none"] = term
				}
				if _, has := typeMap["@none"]; !has {
					typeMap["@none"] = term
				}
			} else {
				languageMap := typeLanguageMap["@language"].(map[string]interface{})
				if _, has := languageMap[defaultLanguage]; !has {
					languageMap[defaultLanguage] = term
				}
				if _, has := languageMap["@none"]; !has {
					languageMap["@none"] = term
				}
				typeMap := typeLanguageMap["@type"].(map[string]interface{})
				if _, has := typeMap["@none"]; !has {
					typeMap["@none"] = term
				}
			}
		}
	}

	return c.inverse
}

// SelectTerm returns the best term for iri given the candidate containers
// (most to least preferred), the type/language discriminator key to
// consult, and the preferred values for that key, or "" if none matches.
func (c *ActiveContext) SelectTerm(iri string, containers []string, typeLanguage string, preferredValues []string) string {
	inv := c.GetInverse()
	containerMap, _ := inv[iri].(map[string]interface{})
	if containerMap == nil {
		return ""
	}
	for _, container := range containers {
		tlMapVal, has := containerMap[container]
		if !has {
			continue
		}
		typeLanguageMap := tlMapVal.(map[string]interface{})
		valueMap, _ := typeLanguageMap[typeLanguage].(map[string]interface{})
		for _, item := range preferredValues {
			if termVal, has := valueMap[item]; has {
				return termVal.(string)
			}
		}
	}
	return ""
}

// CompactIri implements IRI Compaction: it picks the shortest unambiguous
// term, CURIE, relative IRI, or keyword alias for iri given the
// surrounding value (used to pick among container/type/language
// candidates) and whether a @vocab-relative or reverse-property
// compaction is being attempted.
func (c *ActiveContext) CompactIri(iri string, value interface{}, relativeToVocab, reverse bool) (string, error) {
	if iri == "" {
		return "", nil
	}

	inverseCtx := c.GetInverse()

	if IsKeyword(iri) {
		if entry, found := inverseCtx[iri]; found {
			if m, ok := entry.(map[string]interface{}); ok {
				if none, ok := m["@none"].(map[string]interface{}); ok {
					if typeMap, ok := none["@type"].(map[string]interface{}); ok {
						if alias, ok := typeMap["@none"].(string); ok {
							return alias, nil
						}
					}
				}
			}
		}
		relativeToVocab = true
	}

	if relativeToVocab {
		if _, has := inverseCtx[iri]; has {
			var defaultLanguage string
			langVal, hasLang := c.values["@language"]
			if dir, hasDir := c.values["@direction"]; hasDir {
				defaultLanguage = fmt.Sprintf("%v_%v", langVal, dir)
			} else if hasLang {
				defaultLanguage = langVal.(string)
			} else {
				defaultLanguage = "@none"
			}

			containers := make([]string, 0)
			valueMap, isObject := value.(map[string]interface{})
			if isObject {
				_, hasIndex := valueMap["@index"]
				_, hasGraph := valueMap["@graph"]
				if hasIndex && !hasGraph {
					containers = append(containers, "@index", "@index@set")
				}
				if pv, hasPreserve := valueMap["@preserve"]; hasPreserve {
					if arr, ok := pv.([]interface{}); ok && len(arr) > 0 {
						value = arr[0]
						valueMap, isObject = value.(map[string]interface{})
					}
				}
			}

			typeLanguage := "@language"
			typeLanguageValue := "@null"

			if IsGraphObject(value) {
				_, hasIndex := valueMap["@index"]
				_, hasID := valueMap["@id"]
				if hasIndex {
					containers = append(containers, "@graph@index", "@graph@index@set", "@index", "@index@set")
				}
				if hasID {
					containers = append(containers, "@graph@id", "@graph@id@set")
				}
				containers = append(containers, "@graph", "@graph@set", "@set")
				if !hasIndex {
					containers = append(containers, "@graph@index", "@graph@index@set", "@index", "@index@set")
				}
				if !hasID {
					containers = append(containers, "@graph@id", "@graph@id@set")
				}
			} else if reverse {
				typeLanguage = "@type"
				typeLanguageValue = "@reverse"
				containers = append(containers, "@set")
			} else if listVal, hasList := valueMap["@list"]; hasList {
				if _, hasIndex := valueMap["@index"]; !hasIndex {
					containers = append(containers, "@list")
				}
				list, _ := listVal.([]interface{})

				var commonType, commonLanguage string
				if len(list) == 0 {
					commonLanguage = defaultLanguage
					commonType = "@id"
				}
				for _, item := range list {
					itemLanguage, itemType := "@none", "@none"
					if IsValueObject(item) {
						itemMap := item.(map[string]interface{})
						dirVal, hasDir := itemMap["@direction"]
						langVal, hasLang := itemMap["@language"]
						switch {
						case hasDir && hasLang:
							itemLanguage = fmt.Sprintf("%v_%v", langVal, dirVal)
						case hasDir:
							itemLanguage = fmt.Sprintf("_%v", dirVal)
						case hasLang:
							itemLanguage = langVal.(string)
						default:
							if typeVal, hasType := itemMap["@type"]; hasType {
								itemType = typeVal.(string)
							} else {
								itemLanguage = "@null"
							}
						}
					} else {
						itemType = "@id"
					}

					if commonLanguage == "" {
						commonLanguage = itemLanguage
					} else if commonLanguage != itemLanguage && IsValueObject(item) {
						commonLanguage = "@none"
					}
					if commonType == "" {
						commonType = itemType
					} else if commonType != itemType {
						commonType = "@none"
					}
					if commonLanguage == "@none" && commonType == "@none" {
						break
					}
				}
				if commonLanguage == "" {
					commonLanguage = "@none"
				}
				if commonType == "" {
					commonType = "@none"
				}
				if commonType != "@none" {
					typeLanguage = "@type"
					typeLanguageValue = commonType
				} else {
					typeLanguageValue = commonLanguage
				}
			} else {
				if IsValueObject(value) {
					langVal, hasLang := valueMap["@language"]
					_, hasIndex := valueMap["@index"]
					switch {
					case hasLang && !hasIndex:
						containers = append(containers, "@language", "@language@set")
						if dir, hasDir := valueMap["@direction"]; hasDir {
							typeLanguageValue = fmt.Sprintf("%v_%v", langVal, dir)
						} else {
							typeLanguageValue = langVal.(string)
						}
					default:
						if dir, hasDir := valueMap["@direction"]; hasDir && !hasIndex {
							typeLanguageValue = fmt.Sprintf("_%v", dir)
						} else if typeVal, hasType := valueMap["@type"]; hasType {
							typeLanguage = "@type"
							typeLanguageValue = typeVal.(string)
						}
					}
				} else {
					typeLanguage = "@type"
					typeLanguageValue = "@id"
				}
				containers = append(containers, "@set")
			}

			containers = append(containers, "@none")

			if isObject {
				if _, hasIndex := valueMap["@index"]; !hasIndex {
					containers = append(containers, "@index", "@index@set")
				}
			}
			if IsValueObject(value) && len(value.(map[string]interface{})) == 1 {
				containers = append(containers, "@language", "@language@set")
			}

			if typeLanguageValue == "" {
				typeLanguageValue = "@null"
			}

			preferredValues := make([]string, 0)

			idVal, hasID := valueMap["@id"]
			if (typeLanguageValue == "@reverse" || typeLanguageValue == "@id") && isObject && hasID {
				if typeLanguageValue == "@reverse" {
					preferredValues = append(preferredValues, "@reverse")
				}
				result, err := c.CompactIri(idVal.(string), nil, true, false)
				if err != nil {
					return "", err
				}
				matched := false
				if td, has := c.termDefinitions[result]; has {
					if tdMap, ok := td.(map[string]interface{}); ok {
						matched = tdMap["@id"] == idVal
					}
				}
				if matched {
					preferredValues = append(preferredValues, "@vocab", "@id", "@none")
				} else {
					preferredValues = append(preferredValues, "@id", "@vocab", "@none")
				}
			} else {
				if listVal, hasList := valueMap["@list"]; hasList && listVal == nil {
					typeLanguage = "@any"
				}
				preferredValues = append(preferredValues, typeLanguageValue, "@none")
			}
			preferredValues = append(preferredValues, "@any")

			for _, pv := range append([]string{}, preferredValues...) {
				if idx := strings.LastIndex(pv, "_"); idx != -1 {
					preferredValues = append(preferredValues, pv[idx:])
				}
			}

			if term := c.SelectTerm(iri, containers, typeLanguage, preferredValues); term != "" {
				return term, nil
			}
		}

		if vocabVal, has := c.values["@vocab"]; has {
			vocab := vocabVal.(string)
			if strings.HasPrefix(iri, vocab) && iri != vocab {
				suffix := iri[len(vocab):]
				if _, hasSuffix := c.termDefinitions[suffix]; !hasSuffix {
					return suffix, nil
				}
			}
		}
	}

	compactIRI := ""
	for term, defVal := range c.termDefinitions {
		if defVal == nil || strings.Contains(term, ":") {
			continue
		}
		definition := defVal.(map[string]interface{})
		id, _ := definition["@id"].(string)
		if iri == id || !strings.HasPrefix(iri, id) {
			continue
		}
		candidate := term + ":" + iri[len(id):]
		candidateVal, hasCandidate := c.termDefinitions[candidate]
		isPrefix, _ := definition["_prefix"].(bool)
		if (compactIRI == "" || lessShortestLeast(candidate, compactIRI)) && isPrefix &&
			(!hasCandidate || (func() bool {
				if candidateMap, ok := candidateVal.(map[string]interface{}); ok {
					return iri == candidateMap["@id"] && value == nil
				}
				return false
			}())) {
			compactIRI = candidate
		}
	}
	if compactIRI != "" {
		return compactIRI, nil
	}

	for term, defVal := range c.termDefinitions {
		if defVal == nil {
			continue
		}
		definition := defVal.(map[string]interface{})
		isPrefix, _ := definition["_prefix"].(bool)
		if isPrefix && strings.HasPrefix(iri, term+":") {
			return "", NewError(ErrIriConfusedWithPrefix, fmt.Sprintf("absolute IRI %s confused with prefix %s", iri, term))
		}
	}

	if !relativeToVocab && c.options.CompactToRelative {
		base, _ := c.values["@base"].(string)
		return RemoveBase(base, iri), nil
	}
	return iri, nil
}

func lessShortestLeast(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
