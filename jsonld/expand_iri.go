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

import "strings"

// ExpandIri resolves value — a term, a compact IRI prefix:suffix, a
// relative IRI, or an already-absolute IRI — to its full IRI form.
//
// relative allows resolution against @base when nothing else applies;
// vocab allows resolution against @vocab and term definitions. context
// and defined are non-nil only while processing a local context, letting
// ExpandIri lazily trigger CreateTermDefinition for a term it depends on
// that hasn't been resolved yet.
func (c *ActiveContext) ExpandIri(value string, relative, vocab bool, context map[string]interface{}, defined map[string]bool) (string, error) {
	if IsKeyword(value) {
		return value, nil
	}
	if ignoredKeywordPattern.MatchString(value) {
		return "", nil
	}

	if context != nil {
		if _, inContext := context[value]; inContext && !defined[value] {
			if err := c.CreateTermDefinition(context, value, defined, false); err != nil {
				return "", err
			}
		}
	}

	if termDef, hasTermDef := c.termDefinitions[value]; vocab && hasTermDef {
		if tdMap, isMap := termDef.(map[string]interface{}); isMap && tdMap != nil {
			return tdMap["@id"].(string), nil
		}
		return "", nil
	}

	colonIdx := strings.Index(value, ":")
	if colonIdx > 0 {
		prefix := value[:colonIdx]
		suffix := value[colonIdx+1:]

		if prefix == "_" || strings.HasPrefix(suffix, "//") {
			return value, nil
		}

		if context != nil {
			if _, inContext := context[prefix]; inContext && !defined[prefix] {
				if err := c.CreateTermDefinition(context, prefix, defined, false); err != nil {
					return "", err
				}
			}
		}

		if prefixDef, has := c.termDefinitions[prefix]; has {
			prefixMap := prefixDef.(map[string]interface{})
			if id, _ := prefixMap["@id"].(string); id != "" {
				if isPrefix, _ := prefixMap["_prefix"].(bool); isPrefix {
					return id + suffix, nil
				}
			}
		} else if IsAbsoluteIRI(value) {
			return value, nil
		}
	}

	if vocabVal, hasVocab := c.values["@vocab"]; vocab && hasVocab {
		return vocabVal.(string) + value, nil
	}
	if relative {
		base, _ := c.values["@base"].(string)
		return Resolve(base, value), nil
	}
	if context != nil && IsRelativeIRI(value) {
		return "", NewError(ErrInvalidIriMapping, "not an absolute IRI: "+value)
	}
	return value, nil
}
