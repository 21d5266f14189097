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

// keywords is the fixed set of reserved JSON-LD 1.1 tokens. A Term that is
// not one of these, and not an Id, is an ordinary string that still needs
// resolving against an active context.
var keywords = map[string]bool{
	"@base":      true,
	"@container": true,
	"@context":   true,
	"@direction": true,
	"@graph":     true,
	"@id":        true,
	"@import":    true,
	"@included":  true,
	"@index":     true,
	"@json":      true,
	"@language":  true,
	"@list":      true,
	"@nest":      true,
	"@none":      true,
	"@prefix":    true,
	"@protected": true,
	"@propagate": true,
	"@reverse":   true,
	"@set":       true,
	"@type":      true,
	"@value":     true,
	"@version":   true,
	"@vocab":     true,
	"@any":       true,

	// used outside the processing core proper (framing, preservation) but
	// still reserved so user contexts can't redefine them
	"@default":     true,
	"@embed":       true,
	"@explicit":    true,
	"@first":       true,
	"@omitDefault": true,
	"@preserve":    true,
	"@requireAll":  true,
}

// IsKeyword reports whether s is one of the fixed JSON-LD keywords.
func IsKeyword(s string) bool {
	return keywords[s]
}

// looksLikeKeyword matches strings of the form "@[A-Za-z]+" without
// being an actual keyword — these are reserved for future versions of the
// spec and must be ignored with a warning rather than treated as terms.
func looksLikeKeyword(s string) bool {
	if len(s) < 2 || s[0] != '@' {
		return false
	}
	for _, r := range s[1:] {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			return false
		}
	}
	return true
}

// Term is either a keyword, an absolute IRI / blank node Id, or the empty
// value (null). It is the currency the Expander and Compactor exchange once
// a context has resolved a surface key or value.
type Term struct {
	keyword string
	id      string
	isNull  bool
}

// NullTerm is the distinguished "no term" result IRI expansion can return
// (e.g. for an entry that must be dropped).
var NullTerm = Term{isNull: true}

func keywordTerm(kw string) Term { return Term{keyword: kw} }
func idTerm(iri string) Term     { return Term{id: iri} }

// String renders the term back to its wire form.
func (t Term) String() string {
	if t.isNull {
		return ""
	}
	if t.keyword != "" {
		return t.keyword
	}
	return t.id
}

// IsKeyword reports whether the term resolved to a JSON-LD keyword.
func (t Term) IsKeyword() bool { return t.keyword != "" }

// IsNull reports whether IRI expansion produced no usable term at all.
func (t Term) IsNull() bool { return t.isNull }

// Id is a resolved identifier: either a validated absolute IRI / blank node
// label, or an invalid string kept verbatim for lenient processing.
type Id struct {
	value string
	valid bool
}

// NewId wraps a string, classifying it as valid iff it is an absolute IRI
// or a blank node identifier ("_:label").
func NewId(value string) Id {
	return Id{value: value, valid: IsAbsoluteIRI(value)}
}

// String returns the underlying string form, valid or not.
func (id Id) String() string { return id.value }

// Valid reports whether the identifier is an absolute IRI or blank node id.
func (id Id) Valid() bool { return id.valid }

// IsBlankNode reports whether the identifier is a locally-scoped blank node.
func (id Id) IsBlankNode() bool { return strings.HasPrefix(id.value, "_:") }
