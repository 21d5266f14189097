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

// Processor is the top-level entry point most callers use: Expand and
// Compact, wired against a shared Options (base IRI, document loader,
// processing mode, leniency policy).
type Processor struct {
	options *Options
}

// NewProcessor creates a Processor using options, or DefaultOptions() if
// options is nil.
func NewProcessor(options *Options) *Processor {
	if options == nil {
		options = DefaultOptions()
	}
	return &Processor{options: options}
}

// Expand runs the Expansion algorithm on input, which may be a parsed
// JSON-LD document, or a string IRI to dereference first.
func (p *Processor) Expand(input interface{}) ([]interface{}, error) {
	return p.expand(input)
}

func (p *Processor) expand(input interface{}) ([]interface{}, error) {
	options := p.options
	if iri, isString := input.(string); isString && strings.Contains(iri, ":") {
		if options.Loader == nil {
			return nil, NewError(ErrLoadingDocumentFailed, "no document loader configured to fetch "+iri)
		}
		rd, err := options.Loader.LoadDocument(iri)
		if err != nil {
			return nil, NewError(ErrLoadingDocumentFailed, err.Error())
		}
		input = rd.Document
		if options.BaseIRI == "" {
			options = options.Copy()
			options.BaseIRI = rd.DocumentURL
		}
	}

	activeCtx := NewActiveContext(nil, options)

	expanded, err := NewExpander(options).Expand(activeCtx, "", input, false)
	if err != nil {
		return nil, err
	}

	expandedMap, isMap := expanded.(map[string]interface{})
	if isMap && len(expandedMap) == 0 {
		expanded = nil
	}

	graph, hasGraph := expandedMap["@graph"]
	if isMap && hasGraph && len(expandedMap) == 1 {
		expanded = graph
	} else if expanded == nil {
		expanded = make([]interface{}, 0)
	}

	if expandedList, isList := expanded.([]interface{}); isList {
		return expandedList, nil
	}
	return []interface{}{expanded}, nil
}

// Compact runs Expand followed by the Compaction algorithm, using context
// (an @context value, or a document whose @context member is extracted)
// as the target shape.
func (p *Processor) Compact(input, context interface{}) (map[string]interface{}, error) {
	expanded, err := p.expand(input)
	if err != nil {
		return nil, err
	}

	if contextMap, isMap := context.(map[string]interface{}); isMap {
		if inner, hasCtx := contextMap["@context"]; hasCtx {
			context = inner
		}
	}

	activeCtx := NewActiveContext(nil, p.options)
	activeCtx, err = activeCtx.Process(context)
	if err != nil {
		return nil, err
	}

	var expandedDoc interface{} = expanded
	compacted, err := NewCompactor(p.options).Compact(activeCtx, "", expandedDoc)
	if err != nil {
		return nil, err
	}

	if compactedList, isList := compacted.([]interface{}); isList {
		if len(compactedList) == 0 {
			compacted = make(map[string]interface{})
		} else {
			alias, err := activeCtx.CompactIri("@graph", nil, true, false)
			if err != nil {
				return nil, err
			}
			compacted = map[string]interface{}{alias: compacted}
		}
	}

	contextMap, _ := context.(map[string]interface{})
	contextList, _ := context.([]interface{})
	contextIsNotEmpty := len(contextMap) > 0 || len(contextList) > 0 || IsString(context)
	if compactedMap, isMap := compacted.(map[string]interface{}); contextIsNotEmpty && isMap {
		compactedMap["@context"] = context
		return compactedMap, nil
	}

	return compacted.(map[string]interface{}), nil
}
