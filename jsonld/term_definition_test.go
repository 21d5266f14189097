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

func TestCreateTermDefinitionRejectsKeywordRedefinition(t *testing.T) {
	opts := DefaultOptions()
	ctx := NewActiveContext(nil, opts)

	_, err := ctx.Process(map[string]interface{}{
		"@type": "http://example.com/type",
	})
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKeywordRedefinition, code)
}

func TestCreateTermDefinitionKeywordLikeTermIsIgnoredWithWarning(t *testing.T) {
	sink := &CollectingWarningSink{}
	opts := DefaultOptions()
	opts.Warnings = sink
	ctx := NewActiveContext(nil, opts)

	result, err := ctx.Process(map[string]interface{}{
		"@foo": "http://example.com/foo",
	})
	require.NoError(t, err)

	assert.Nil(t, result.GetTermDefinition("@foo"))
	require.Len(t, sink.Warnings, 1)
	assert.Equal(t, KeywordLikeTerm, sink.Warnings[0].Kind)
}

func TestCreateTermDefinitionRelativeTermWithoutVocabFails(t *testing.T) {
	opts := DefaultOptions()
	ctx := NewActiveContext(nil, opts)

	_, err := ctx.Process(map[string]interface{}{
		"name": map[string]interface{}{},
	})
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidIriMapping, code)
}

func TestCreateTermDefinitionResolvesPrefixedCompactIRI(t *testing.T) {
	opts := DefaultOptions()
	ctx := NewActiveContext(nil, opts)

	result, err := ctx.Process(map[string]interface{}{
		"schema": "http://schema.org/",
		"name":   "schema:name",
	})
	require.NoError(t, err)

	def := result.GetTermDefinition("name")
	require.NotNil(t, def)
	assert.Equal(t, "http://schema.org/name", def["@id"])
}

func TestCreateTermDefinitionReverseProperty(t *testing.T) {
	opts := DefaultOptions()
	ctx := NewActiveContext(nil, opts)

	result, err := ctx.Process(map[string]interface{}{
		"children": map[string]interface{}{
			"@reverse": "http://schema.org/parent",
		},
	})
	require.NoError(t, err)

	assert.True(t, result.IsReverseProperty("children"))
}

func TestCreateTermDefinitionVocabExpansion(t *testing.T) {
	opts := DefaultOptions()
	ctx := NewActiveContext(nil, opts)

	result, err := ctx.Process(map[string]interface{}{
		"@vocab": "http://schema.org/",
		"name":   map[string]interface{}{},
	})
	require.NoError(t, err)

	def := result.GetTermDefinition("name")
	require.NotNil(t, def)
	assert.Equal(t, "http://schema.org/name", def["@id"])
}
