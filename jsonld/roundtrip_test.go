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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderedExpansionIsPermutationInvariant checks that, with
// Options.Ordered set, two documents differing only in the insertion
// order of their map keys expand to byte-for-byte identical results.
func TestOrderedExpansionIsPermutationInvariant(t *testing.T) {
	context := map[string]interface{}{
		"name": "http://schema.org/name",
		"age": map[string]interface{}{
			"@id":   "http://schema.org/age",
			"@type": "http://www.w3.org/2001/XMLSchema#integer",
		},
		"knows": map[string]interface{}{
			"@id":   "http://schema.org/knows",
			"@type": "@id",
		},
	}

	docA := map[string]interface{}{
		"@context": context,
		"@id":      "http://example.com/alice",
		"name":     "Alice",
		"age":      "30",
		"knows":    "http://example.com/bob",
	}
	docB := map[string]interface{}{
		"knows":    "http://example.com/bob",
		"age":      "30",
		"@id":      "http://example.com/alice",
		"name":     "Alice",
		"@context": context,
	}

	opts := DefaultOptions()
	opts.Ordered = true
	proc := NewProcessor(opts)

	expandedA, err := proc.Expand(docA)
	require.NoError(t, err)
	expandedB, err := proc.Expand(docB)
	require.NoError(t, err)

	bytesA, err := MarshalCompact(expandedA)
	require.NoError(t, err)
	bytesB, err := MarshalCompact(expandedB)
	require.NoError(t, err)

	assert.Equal(t, string(bytesA), string(bytesB))
}

// TestProtectedTermSurvivesScopedContextReentry checks that a protected
// term keeps working across repeated Process calls that reintroduce the
// exact same definition, the pattern a node object with a repeated local
// @context relies on.
func TestProtectedTermSurvivesScopedContextReentry(t *testing.T) {
	opts := DefaultOptions()
	base := NewActiveContext(nil, opts)

	protectedDef := map[string]interface{}{
		"@id":        "http://schema.org/name",
		"@protected": true,
	}

	ctx, err := base.Process(map[string]interface{}{"name": protectedDef})
	require.NoError(t, err)

	ctx, err = ctx.Process(map[string]interface{}{"name": protectedDef})
	require.NoError(t, err)

	def := ctx.GetTermDefinition("name")
	require.NotNil(t, def)
	assert.Equal(t, "http://schema.org/name", def["@id"])
}

// TestCompactIriExpandIriRoundTrip checks that compacting an expanded IRI
// and expanding it back through the same context recovers the original
// absolute IRI, for both term-based and @vocab-relative forms.
func TestCompactIriExpandIriRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	ctx, err := NewActiveContext(nil, opts).Process(map[string]interface{}{
		"@vocab":      "http://schema.org/",
		"name":        "http://schema.org/name",
		"description": "http://schema.org/description",
	})
	require.NoError(t, err)

	for _, iri := range []string{"http://schema.org/name", "http://schema.org/description"} {
		compacted, err := ctx.CompactIri(iri, nil, true, false)
		require.NoError(t, err)

		expanded, err := ctx.ExpandIri(compacted, false, true, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, iri, expanded)
	}
}
