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

// ProcessingMode selects which edition of the algorithms to run. 1.0 mode
// rejects several 1.1-only constructs (scoped contexts, @protected, @direction)
// that would otherwise be silently accepted.
type ProcessingMode string

const (
	ProcessingMode1_0 ProcessingMode = "json-ld-1.0" //nolint:stylecheck
	ProcessingMode1_1 ProcessingMode = "json-ld-1.1" //nolint:stylecheck
)

// InvalidPolicy controls how an operation reacts to data that is invalid by
// the letter of the spec but still processable.
type InvalidPolicy string

const (
	// PolicyReject aborts the operation and returns the error (default).
	PolicyReject InvalidPolicy = "reject"
	// PolicyWarn records a Warning and continues with a best-effort result.
	PolicyWarn InvalidPolicy = "warn"
)

// Policy groups the leniency knobs a caller can record on Options. Expand,
// Compact and context processing do not read any of these fields.
type Policy struct {
	// Invalid records how soft errors such as malformed language tags are
	// to be treated; no operation consults it.
	Invalid InvalidPolicy
	// AllowUndefinedTerms records whether terms with no definition are
	// tolerated. Expansion drops such terms, without a Warning, whether or
	// not it is set; it never fails on them.
	AllowUndefinedTerms bool
	// Vocab holds a fallback vocabulary IRI; it is not applied to documents
	// that don't declare their own @vocab.
	Vocab string
}

// Options is the full configuration surface for Expand, Compact, and the
// context-processing entry point. The zero value is usable but will not
// resolve relative IRIs (BaseIRI is empty) or load remote contexts
// (Loader is nil, so any @context URL reference fails).
type Options struct {
	ProcessingMode ProcessingMode
	BaseIRI        string
	Loader         DocumentLoader
	Vocabulary     Vocabulary

	// Ordered is not consulted: Expand and Compact always visit map keys
	// in lexicographic order, so output is reproducible whether or not it
	// is set, and the original property order is never kept.
	Ordered bool

	// CompactArrays collapses single-element arrays to their bare value
	// during compaction, per the CompactArrays flag of the JSON-LD API.
	CompactArrays bool
	// CompactToRelative rewrites document-relative IRIs (such as @id
	// values) relative to the active base IRI during compaction; when
	// unset they are left absolute.
	CompactToRelative bool

	// OverrideProtected allows a local context to redefine a @protected
	// term instead of raising ErrProtectedTermRedefinition. Process and
	// type-scoped context application read it; property-scoped contexts
	// always allow the redefinition regardless of this field.
	OverrideProtected bool
	// Propagate controls whether a context applied by Process stays in
	// effect inside nested node objects (true) or is replaced by the
	// previous context when expansion enters one (false).
	Propagate bool

	Policy Policy

	// Warnings receives non-fatal findings (keyword-like terms, malformed
	// language tags, and the like). A nil value discards them.
	Warnings WarningSink
}

// warn routes w through o.Warnings if one is configured.
func (o *Options) warn(w Warning) {
	if o.Warnings != nil {
		o.Warnings.Warn(w)
	}
}

// DefaultOptions returns the Options a caller gets by not specifying any,
// matching the JSON-LD API's own defaults: 1.1 processing, arrays
// compacted, contexts propagated to nested nodes, Policy.Invalid set to
// PolicyReject.
func DefaultOptions() *Options {
	return &Options{
		ProcessingMode:    ProcessingMode1_1,
		CompactArrays:     true,
		CompactToRelative: true,
		Propagate:         true,
		Loader:            NewDefaultDocumentLoader(nil),
		Vocabulary:        NewMemoryVocabulary(),
		Policy: Policy{
			Invalid: PolicyReject,
		},
		Warnings: discardSink{},
	}
}

// Copy returns a shallow copy of o suitable for passing down into a
// recursive call that needs to flip one field (e.g. OverrideProtected)
// without mutating the caller's Options.
func (o *Options) Copy() *Options {
	c := *o
	return &c
}
