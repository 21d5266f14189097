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
	"regexp"
	"strings"
)

var (
	ignoredKeywordPattern = regexp.MustCompile(`^@[a-zA-Z]+$`)
	invalidPrefixPattern  = regexp.MustCompile(`[:/]`)
	iriLikeTermPattern    = regexp.MustCompile(`(?::[^:])|/`)

	// entries handled directly by process rather than fed through
	// CreateTermDefinition.
	nonTermDefKeys = map[string]bool{
		"@base":      true,
		"@direction": true,
		"@import":    true,
		"@language":  true,
		"@protected": true,
		"@version":   true,
		"@vocab":     true,
	}
)

// maxRemoteContexts bounds the remote-contexts stack depth, guarding
// against cyclic or pathological context graphs that don't close on an
// exact URI match.
const maxRemoteContexts = 32

// ActiveContext is the mutable state threaded through Expansion and
// Compaction: the accumulated term definitions, @base/@vocab/@language/
// @direction defaults, and bookkeeping for protected terms and
// non-propagating scoped contexts.
//
// An ActiveContext is never mutated after Process returns it — every
// operation that would change it produces a new value built by copying
// the receiver first. This makes the type safe to fan out to sibling
// node objects during expansion without them observing each other's
// context changes.
type ActiveContext struct {
	values          map[string]interface{}
	options         *Options
	termDefinitions map[string]interface{}
	inverse         map[string]interface{}
	protected       map[string]bool
	previous        *ActiveContext
}

// NewActiveContext creates the initial active context an Expand/Compact
// call starts from, seeded with values (typically nil) and options.
func NewActiveContext(values map[string]interface{}, options *Options) *ActiveContext {
	if options == nil {
		options = DefaultOptions()
	}

	ctx := &ActiveContext{
		values:          make(map[string]interface{}),
		options:         options,
		termDefinitions: make(map[string]interface{}),
		protected:       make(map[string]bool),
	}

	ctx.values["@base"] = options.BaseIRI
	for k, v := range values {
		ctx.values[k] = v
	}
	ctx.values["processingMode"] = string(options.ProcessingMode)

	return ctx
}

// Clone returns a full copy of ctx, including a recursive copy of any
// previous (non-propagating) context. The inverse context is not copied —
// it's a derived cache and is recomputed lazily on first use.
func (c *ActiveContext) Clone() *ActiveContext {
	clone := NewActiveContext(c.values, c.options)

	for k, v := range c.termDefinitions {
		clone.termDefinitions[k] = v
	}
	for k, v := range c.protected {
		clone.protected[k] = v
	}

	if c.previous != nil {
		clone.previous = c.previous.Clone()
	}

	return clone
}

// RevertToPreviousContext returns the context an entry's type-scoped
// context should be rebuilt from, undoing any non-propagating context
// introduced since. If none was recorded, ctx itself is returned.
func (c *ActiveContext) RevertToPreviousContext() *ActiveContext {
	if c.previous == nil {
		return c
	}
	return c.previous.Clone()
}

// processingMode1_1 reports whether ctx is operating at processing mode
// version or later (1.1 semantics unlock scoped contexts, @direction,
// @protected, and more lenient @import handling).
func (c *ActiveContext) processingMode1_1() bool {
	mode, hasMode := c.values["processingMode"]
	return hasMode && mode.(string) >= string(ProcessingMode1_1)
}

func (c *ActiveContext) processingMode1_0() bool {
	mode, hasMode := c.values["processingMode"]
	return !hasMode || mode.(string) == string(ProcessingMode1_0)
}

// Process folds localContext onto ctx, implementing the Context
// Processing algorithm (IRI resolution of remote contexts, @import
// inlining, @base/@vocab/@language/@direction/@propagate handling, and a
// CreateTermDefinition call per local term) and returns the resulting
// active context. ctx itself is left untouched.
func (c *ActiveContext) Process(localContext interface{}) (*ActiveContext, error) {
	return c.process(localContext, nil, false, c.options.Propagate, false, c.options.OverrideProtected)
}

// ProcessWithFlags folds localContext onto ctx exactly like Process, but
// lets the caller force the propagate/overrideProtected flags instead of
// inheriting them from ctx's Options. Expansion needs this for the two
// scoped-context applications the algorithm pins to fixed flags regardless
// of how the top-level call was configured: a type-scoped context is always
// applied with propagate=false, and a property-scoped context is always
// applied with overrideProtected=true.
func (c *ActiveContext) ProcessWithFlags(localContext interface{}, propagate, overrideProtected bool) (*ActiveContext, error) {
	return c.process(localContext, nil, false, propagate, false, overrideProtected)
}

func (c *ActiveContext) process(localContext interface{}, remoteContexts []string, parsingRemote, propagate, protected, overrideProtected bool) (*ActiveContext, error) {
	contexts := Arrayify(localContext)

	if len(contexts) == 0 {
		return c, nil
	}

	if firstMap, isMap := contexts[0].(map[string]interface{}); isMap {
		if propagateVal, found := firstMap["@propagate"]; found {
			if b, isBool := propagateVal.(bool); isBool {
				propagate = b
			}
		}
	}

	result := c.Clone()

	if !propagate && result.previous == nil {
		result.previous = c
	}

	for _, entry := range contexts {
		if entry == nil {
			if !overrideProtected && len(result.protected) != 0 {
				return nil, NewError(ErrInvalidContextNullification, "cannot nullify a context with protected terms without override")
			}
			empty := NewActiveContext(nil, c.options)
			if !propagate {
				empty.previous = result
			}
			result = empty
			continue
		}

		var contextMap map[string]interface{}

		switch v := entry.(type) {
		case *ActiveContext:
			result = v
			continue
		case string:
			uri := Resolve(result.values["@base"].(string), v)
			for _, seen := range remoteContexts {
				if seen == uri {
					return nil, NewError(ErrInvalidRemoteContext, fmt.Sprintf("cyclic context inclusion: %s", uri))
				}
			}
			if len(remoteContexts) >= maxRemoteContexts {
				return nil, NewError(ErrContextOverflow, fmt.Sprintf("more than %d remote contexts chained", maxRemoteContexts))
			}
			remoteContexts = append(remoteContexts, uri)

			if c.options.Loader == nil {
				return nil, NewError(ErrLoadingRemoteContextFailed, fmt.Sprintf("no document loader configured to fetch %s", uri))
			}
			rd, err := c.options.Loader.LoadDocument(uri)
			if err != nil {
				return nil, NewError(ErrLoadingRemoteContextFailed, fmt.Sprintf("%s: %v", uri, err))
			}
			remoteDoc, isMap := rd.Document.(map[string]interface{})
			nested, hasContext := remoteDoc["@context"]
			if !isMap || !hasContext {
				return nil, NewError(ErrInvalidRemoteContext, uri)
			}

			next, err := result.process(nested, append([]string{}, remoteContexts...), true, true, false, overrideProtected)
			if err != nil {
				return nil, err
			}
			result = next
			continue
		case map[string]interface{}:
			contextMap = v
		default:
			return nil, NewError(ErrInvalidLocalContext, entry)
		}

		if nested := contextMap["@context"]; nested != nil {
			nestedMap, isMap := nested.(map[string]interface{})
			if !isMap {
				return nil, NewError(ErrInvalidLocalContext, nested)
			}
			contextMap = nestedMap
		}

		pm, hasPM := c.values["processingMode"]
		if versionVal, hasVersion := contextMap["@version"]; hasVersion {
			if versionVal != 1.1 {
				return nil, NewError(ErrInvalidVersionValue, versionVal)
			}
			if hasPM && pm.(string) == string(ProcessingMode1_0) {
				return nil, NewError(ErrProcessingModeConflict, fmt.Sprintf("@version 1.1 incompatible with %s", pm))
			}
			result.values["processingMode"] = string(ProcessingMode1_1)
			result.values["@version"] = versionVal
		} else if !hasPM {
			result.values["processingMode"] = string(ProcessingMode1_0)
		} else {
			result.values["processingMode"] = pm
		}

		if importVal, hasImport := contextMap["@import"]; hasImport {
			if result.processingMode1_0() {
				return nil, NewError(ErrInvalidImportValue, "@import requires 1.1 processing mode")
			}
			importStr, isString := importVal.(string)
			if !isString {
				return nil, NewError(ErrInvalidImportValue, importVal)
			}
			uri := Resolve(result.values["@base"].(string), importStr)
			if c.options.Loader == nil {
				return nil, NewError(ErrLoadingRemoteContextFailed, fmt.Sprintf("no document loader configured to fetch %s", uri))
			}
			rd, err := c.options.Loader.LoadDocument(uri)
			if err != nil {
				return nil, NewError(ErrLoadingRemoteContextFailed, fmt.Sprintf("%s: %v", uri, err))
			}
			importedDoc, isMap := rd.Document.(map[string]interface{})
			importedContext, hasContext := importedDoc["@context"]
			if !isMap || !hasContext {
				return nil, NewError(ErrInvalidRemoteContext, uri)
			}
			importedMap, isMap := importedContext.(map[string]interface{})
			if !isMap {
				return nil, NewError(ErrInvalidRemoteContext, fmt.Sprintf("%s must be an object", importStr))
			}
			if _, found := importedMap["@import"]; found {
				return nil, NewError(ErrInvalidImportValue, fmt.Sprintf("%s must not itself contain @import", importStr))
			}
			for k, v := range contextMap {
				importedMap[k] = v
			}
			contextMap = importedMap
		}

		if baseVal, present := contextMap["@base"]; !parsingRemote && present {
			switch {
			case baseVal == nil:
				delete(result.values, "@base")
			case IsString(baseVal):
				baseStr := baseVal.(string)
				if IsAbsoluteIRI(baseStr) {
					result.values["@base"] = baseStr
				} else {
					current, _ := result.values["@base"].(string)
					if !IsAbsoluteIRI(current) {
						return nil, NewError(ErrInvalidBaseIri, current)
					}
					result.values["@base"] = Resolve(current, baseStr)
				}
			default:
				return nil, NewError(ErrInvalidBaseIri, "the value of @base must be a string or null")
			}
		}

		if langVal, present := contextMap["@language"]; present {
			switch {
			case langVal == nil:
				delete(result.values, "@language")
			case IsString(langVal):
				result.values["@language"] = strings.ToLower(langVal.(string))
			default:
				return nil, NewError(ErrInvalidDefaultLanguage, langVal)
			}
		}

		if dirVal, present := contextMap["@direction"]; present {
			switch {
			case dirVal == nil:
				delete(result.values, "@direction")
			case dirVal == "ltr" || dirVal == "rtl":
				result.values["@direction"] = dirVal
			default:
				return nil, NewError(ErrInvalidBaseDirection, dirVal)
			}
		}

		defined := make(map[string]bool)

		if propagateVal, present := contextMap["@propagate"]; present {
			if c.processingMode1_0() {
				return nil, NewError(ErrInvalidPropagateValue, "@propagate requires 1.1 processing mode")
			}
			if _, isBool := propagateVal.(bool); !isBool {
				return nil, NewError(ErrInvalidPropagateValue, propagateVal)
			}
			defined["@propagate"] = true
		}

		if vocabVal, present := contextMap["@vocab"]; present {
			switch {
			case vocabVal == nil:
				delete(result.values, "@vocab")
			case IsString(vocabVal):
				vocabStr := vocabVal.(string)
				if !IsAbsoluteIRI(vocabStr) && c.processingMode1_0() {
					return nil, NewError(ErrInvalidVocabMapping, "@vocab must be an absolute IRI in 1.0 mode")
				}
				expanded, err := result.ExpandIri(vocabStr, true, true, nil, nil)
				if err != nil {
					return nil, err
				}
				result.values["@vocab"] = expanded
			default:
				return nil, NewError(ErrInvalidVocabMapping, vocabVal)
			}
		}

		if protectedVal, present := contextMap["@protected"]; present {
			b, _ := protectedVal.(bool)
			defined["@protected"] = b
		} else if protected {
			defined["@protected"] = true
		}

		for key := range contextMap {
			if nonTermDefKeys[key] {
				continue
			}
			if err := result.CreateTermDefinition(contextMap, key, defined, overrideProtected); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// GetTermDefinition returns the term definition for key, or nil if key has
// no definition (or is explicitly mapped to null).
func (c *ActiveContext) GetTermDefinition(key string) map[string]interface{} {
	v, _ := c.termDefinitions[key].(map[string]interface{})
	return v
}

// HasContainerMapping reports whether property's term definition includes
// val among its @container values.
func (c *ActiveContext) HasContainerMapping(property, val string) bool {
	td := c.GetTermDefinition(property)
	if td == nil {
		return false
	}
	container, _ := td["@container"].([]interface{})
	for _, c := range container {
		if c == val {
			return true
		}
	}
	return false
}

// GetContainer returns the raw @container value list for property, or an
// empty slice if it has none.
func (c *ActiveContext) GetContainer(property string) []interface{} {
	td := c.GetTermDefinition(property)
	if td == nil {
		return nil
	}
	container, _ := td["@container"].([]interface{})
	return container
}

// IsReverseProperty reports whether property's term definition marks it
// as a reverse property (defined via @reverse rather than @id).
func (c *ActiveContext) IsReverseProperty(property string) bool {
	td := c.GetTermDefinition(property)
	if td == nil {
		return false
	}
	b, _ := td["@reverse"].(bool)
	return b
}

// GetTypeMapping returns property's @type mapping, falling back to the
// context's default @type (rarely set) when property has none.
func (c *ActiveContext) GetTypeMapping(property string) string {
	result := ""
	if def, has := c.values["@type"]; has {
		result, _ = def.(string)
	}
	if td := c.GetTermDefinition(property); td != nil {
		if v, found := td["@type"]; found && v != nil {
			return v.(string)
		}
	}
	return result
}

// GetLanguageMapping returns property's @language mapping, falling back to
// the context's default @language.
func (c *ActiveContext) GetLanguageMapping(property string) interface{} {
	if td := c.GetTermDefinition(property); td != nil {
		if v, found := td["@language"]; found {
			return v
		}
	}
	if v, has := c.values["@language"]; has {
		return v
	}
	return nil
}

// GetDirectionMapping returns property's @direction mapping, falling back
// to the context's default @direction.
func (c *ActiveContext) GetDirectionMapping(property string) interface{} {
	if td := c.GetTermDefinition(property); td != nil {
		if v, found := td["@direction"]; found {
			return v
		}
	}
	if v, has := c.values["@direction"]; has {
		return v
	}
	return nil
}

// Serialize renders ctx back into an @context document — the inverse of
// Process — compacting @id/@type/@reverse mappings through CompactIri and
// dropping @base when it equals Options.BaseIRI.
func (c *ActiveContext) Serialize() (map[string]interface{}, error) {
	out := make(map[string]interface{})

	if baseVal, hasBase := c.values["@base"]; hasBase && baseVal != c.options.BaseIRI {
		out["@base"] = baseVal
	}
	if versionVal, hasVersion := c.values["@version"]; hasVersion {
		out["@version"] = versionVal
	}
	if langVal, hasLang := c.values["@language"]; hasLang {
		out["@language"] = langVal
	}
	if dirVal, hasDir := c.values["@direction"]; hasDir {
		out["@direction"] = dirVal
	}
	if vocabVal, hasVocab := c.values["@vocab"]; hasVocab {
		out["@vocab"] = vocabVal
	}

	for term, definitionVal := range c.termDefinitions {
		definition, _ := definitionVal.(map[string]interface{})
		langVal, hasLang := definition["@language"]
		containerVal, hasContainer := definition["@container"]
		typeMappingVal, hasType := definition["@type"]
		reverseVal, hasReverse := definition["@reverse"]

		if !hasLang && !hasContainer && !hasType && (!hasReverse || reverseVal == false) {
			id, hasID := definition["@id"]
			switch {
			case !hasID:
				out[term] = nil
			case IsKeyword(id):
				out[term] = id
			default:
				cid, err := c.CompactIri(id.(string), nil, false, false)
				if err != nil {
					return nil, err
				}
				out[term] = cid
			}
			continue
		}

		defn := make(map[string]interface{})
		cid, err := c.CompactIri(definition["@id"].(string), nil, false, false)
		if err != nil {
			return nil, err
		}
		reverseProperty, _ := reverseVal.(bool)
		if !(term == cid && !reverseProperty) {
			if reverseProperty {
				defn["@reverse"] = cid
			} else {
				defn["@id"] = cid
			}
		}
		if hasType {
			typeMapping := typeMappingVal.(string)
			if IsKeyword(typeMapping) {
				defn["@type"] = typeMapping
			} else {
				defn["@type"], err = c.CompactIri(typeMapping, nil, true, false)
				if err != nil {
					return nil, err
				}
			}
		}
		if hasContainer {
			if cv, isArray := containerVal.([]interface{}); isArray && len(cv) == 1 {
				defn["@container"] = cv[0]
			} else {
				defn["@container"] = containerVal
			}
		}
		if hasLang {
			if langVal == false {
				defn["@language"] = nil
			} else {
				defn["@language"] = langVal
			}
		}
		out[term] = defn
	}

	result := make(map[string]interface{})
	if len(out) != 0 {
		result["@context"] = out
	}
	return result, nil
}

// GetPrefixes returns the term definitions usable as CURIE prefixes (no
// colon in the term, a non-keyword @id). When onlyCommonPrefixes is true,
// only IRIs ending in '/' or '#' are included.
func (c *ActiveContext) GetPrefixes(onlyCommonPrefixes bool) map[string]string {
	prefixes := make(map[string]string)
	for term, tdVal := range c.termDefinitions {
		if strings.Contains(term, ":") || tdVal == nil {
			continue
		}
		td := tdVal.(map[string]interface{})
		id, _ := td["@id"].(string)
		if id == "" || strings.HasPrefix(term, "@") || strings.HasPrefix(id, "@") {
			continue
		}
		if !onlyCommonPrefixes || strings.HasSuffix(id, "/") || strings.HasSuffix(id, "#") {
			prefixes[term] = id
		}
	}
	return prefixes
}
