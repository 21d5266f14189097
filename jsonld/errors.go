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
	"errors"
	"fmt"
)

// ErrorCode identifies a distinct JSON-LD processing failure. Consumers
// switch on this rather than parsing error strings.
type ErrorCode string

// The fixed set of error kinds the core can raise. Any structural failure
// aborts the current Expand/Compact/Process call outright — there is no
// partial recovery, and the caller's active context is left untouched
// because every context mutation returns a fresh value.
const (
	ErrIriConfusedWithPrefix      ErrorCode = "iri confused with prefix"
	ErrInvalidNestValue           ErrorCode = "invalid @nest value"
	ErrCyclicIriMapping           ErrorCode = "cyclic IRI mapping"
	ErrInvalidTermDefinition      ErrorCode = "invalid term definition"
	ErrInvalidTypeMapping         ErrorCode = "invalid type mapping"
	ErrInvalidReverseProperty     ErrorCode = "invalid reverse property"
	ErrInvalidIriMapping          ErrorCode = "invalid IRI mapping"
	ErrInvalidKeywordAlias        ErrorCode = "invalid keyword alias"
	ErrKeywordRedefinition        ErrorCode = "keyword redefinition"
	ErrInvalidContainerMapping    ErrorCode = "invalid container mapping"
	ErrInvalidScopedContext       ErrorCode = "invalid scoped context"
	ErrInvalidContextNullification ErrorCode = "invalid context nullification"
	ErrProtectedTermRedefinition  ErrorCode = "protected term redefinition"
	ErrInvalidLocalContext        ErrorCode = "invalid local context"
	ErrInvalidPropagateValue      ErrorCode = "invalid @propagate value"
	ErrInvalidVersionValue        ErrorCode = "invalid @version value"
	ErrInvalidImportValue         ErrorCode = "invalid @import value"
	ErrInvalidRemoteContext       ErrorCode = "invalid remote context"
	ErrInvalidBaseIri             ErrorCode = "invalid base IRI"
	ErrInvalidVocabMapping        ErrorCode = "invalid vocab mapping"
	ErrInvalidDefaultLanguage     ErrorCode = "invalid default language"
	ErrInvalidBaseDirection       ErrorCode = "invalid base direction"
	ErrLoadingDocumentFailed      ErrorCode = "loading document failed"
	ErrLoadingRemoteContextFailed ErrorCode = "loading remote context failed"
	ErrContextOverflow            ErrorCode = "context overflow"
	ErrInvalidPrefixValue         ErrorCode = "invalid @prefix value"
	ErrInvalidProtectedValue      ErrorCode = "invalid @protected value"
	ErrInvalidLanguageMapping     ErrorCode = "invalid language mapping"
	ErrInvalidLanguageMapValue    ErrorCode = "invalid language map value"
	ErrInvalidIdValue             ErrorCode = "invalid @id value"
	ErrInvalidIndexValue          ErrorCode = "invalid @index value"
	ErrInvalidReverseValue        ErrorCode = "invalid @reverse value"
	ErrInvalidReversePropertyMap  ErrorCode = "invalid reverse property map"
	ErrInvalidReversePropertyValue ErrorCode = "invalid reverse property value"
	ErrInvalidIncludedValue       ErrorCode = "invalid @included value"
	ErrInvalidSetOrListObject     ErrorCode = "invalid set or list object"
	ErrInvalidTypeValue           ErrorCode = "invalid @type value"
	ErrCollidingKeywords          ErrorCode = "colliding keywords"
	ErrInvalidValueObject         ErrorCode = "invalid value object"
	ErrKeyExpansionFailed         ErrorCode = "key expansion failed"

	// processing-mode and other conflicts that don't fit the spec's own
	// error table but are needed to report them precisely
	ErrProcessingModeConflict ErrorCode = "processing mode conflict"
	ErrInvalidValueObjectValue ErrorCode = "invalid value object value"
	ErrInvalidLanguageTaggedString ErrorCode = "invalid language-tagged string"
	ErrInvalidLanguageTaggedValue  ErrorCode = "invalid language-tagged value"
	ErrInvalidTypedValue           ErrorCode = "invalid typed value"
	ErrListOfLists                 ErrorCode = "list of lists"
	ErrCompactionToListOfLists     ErrorCode = "compaction to list of lists"
)

// Error is the concrete error type returned by every core operation.
// Details carries whatever value was being processed when the failure was
// detected (a term, an IRI, a source fragment) for diagnostic purposes.
type Error struct {
	Code    ErrorCode
	Details interface{}
}

func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Details)
	}
	return string(e.Code)
}

// NewError constructs an *Error carrying the given code and detail value.
func NewError(code ErrorCode, details interface{}) *Error {
	return &Error{Code: code, Details: details}
}

// CodeOf extracts the ErrorCode from err if it is (or wraps) a *Error.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
