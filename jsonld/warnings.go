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

// WarningKind classifies a non-fatal condition surfaced while processing a
// context or document — one that the algorithm is required to tolerate
// but that a caller will usually want visibility into.
type WarningKind string

const (
	// KeywordLikeTerm flags a term definition whose term looks like a
	// keyword ("@id"-shaped but not a real one) and so is ignored.
	KeywordLikeTerm WarningKind = "keyword-like-term"
	// KeywordLikeValue flags an @id/@vocab/@type mapping that looks like
	// a keyword and so is ignored.
	KeywordLikeValue WarningKind = "keyword-like-value"
	// MalformedLanguageTag flags an @language value that doesn't parse
	// as a well-formed BCP47 tag.
	MalformedLanguageTag WarningKind = "malformed-language-tag"
	// EmptyTerm flags the empty string used as a term, which is never
	// resolvable and is always dropped.
	EmptyTerm WarningKind = "empty-term"
	// BlankNodeIDProperty flags a property whose expansion produced a
	// blank node identifier instead of an IRI.
	BlankNodeIDProperty WarningKind = "blank-node-id-property"
)

// Warning is a single non-fatal finding, carrying enough context (the term
// or value involved, and policy.Vocab or the base IRI in play) to explain
// itself without the caller re-deriving it from the document.
type Warning struct {
	Kind    WarningKind
	Term    string
	Value   interface{}
	Context string
}

// WarningSink receives Warnings as Expand/Compact encounter them. The zero
// value discards everything; use NewLogWarningSink to route them through
// structured logging, or CollectingWarningSink (see logging.go) to gather them
// for inspection after a call completes.
type WarningSink interface {
	Warn(w Warning)
}

// discardSink is the default when no sink is wired into an Options.
type discardSink struct{}

func (discardSink) Warn(Warning) {}
