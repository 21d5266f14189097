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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSimpleTermDefinition(t *testing.T) {
	opts := DefaultOptions()
	base := NewActiveContext(nil, opts)

	ctx, err := base.Process(map[string]interface{}{
		"name": "http://schema.org/name",
	})
	require.NoError(t, err)

	def := ctx.GetTermDefinition("name")
	require.NotNil(t, def)
	assert.Equal(t, "http://schema.org/name", def["@id"])
}

func TestProcessTypeCoercion(t *testing.T) {
	opts := DefaultOptions()
	base := NewActiveContext(nil, opts)

	ctx, err := base.Process(map[string]interface{}{
		"age": map[string]interface{}{
			"@id":   "http://schema.org/age",
			"@type": "http://www.w3.org/2001/XMLSchema#integer",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", ctx.GetTypeMapping("age"))
}

func TestProcessLanguageContainer(t *testing.T) {
	opts := DefaultOptions()
	base := NewActiveContext(nil, opts)

	ctx, err := base.Process(map[string]interface{}{
		"label": map[string]interface{}{
			"@id":        "http://schema.org/label",
			"@container": "@language",
		},
	})
	require.NoError(t, err)

	assert.True(t, ctx.HasContainerMapping("label", "@language"))
}

func TestProcessListVsSetContainer(t *testing.T) {
	opts := DefaultOptions()
	base := NewActiveContext(nil, opts)

	ctx, err := base.Process(map[string]interface{}{
		"items": map[string]interface{}{
			"@id":        "http://schema.org/items",
			"@container": "@list",
		},
		"tags": map[string]interface{}{
			"@id":        "http://schema.org/tags",
			"@container": "@set",
		},
	})
	require.NoError(t, err)

	assert.True(t, ctx.HasContainerMapping("items", "@list"))
	assert.True(t, ctx.HasContainerMapping("tags", "@set"))
	assert.False(t, ctx.HasContainerMapping("items", "@set"))
}

func TestProtectedTermCannotBeRedefined(t *testing.T) {
	opts := DefaultOptions()
	base := NewActiveContext(nil, opts)

	ctx, err := base.Process(map[string]interface{}{
		"name": map[string]interface{}{
			"@id":        "http://schema.org/name",
			"@protected": true,
		},
	})
	require.NoError(t, err)

	_, err = ctx.Process(map[string]interface{}{
		"name": "http://example.com/other-name",
	})
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrProtectedTermRedefinition, code)
}

func TestProtectedTermRedefinitionWithIdenticalValueIsAllowed(t *testing.T) {
	opts := DefaultOptions()
	base := NewActiveContext(nil, opts)

	ctx, err := base.Process(map[string]interface{}{
		"name": map[string]interface{}{
			"@id":        "http://schema.org/name",
			"@protected": true,
		},
	})
	require.NoError(t, err)

	_, err = ctx.Process(map[string]interface{}{
		"name": map[string]interface{}{
			"@id":        "http://schema.org/name",
			"@protected": true,
		},
	})
	assert.NoError(t, err)
}

func TestScopedContextAppliesOnlyWithinItsTerm(t *testing.T) {
	opts := DefaultOptions()
	base := NewActiveContext(nil, opts)

	ctx, err := base.Process(map[string]interface{}{
		"Person": map[string]interface{}{
			"@id": "http://schema.org/Person",
			"@context": map[string]interface{}{
				"name": "http://schema.org/givenName",
			},
		},
	})
	require.NoError(t, err)

	// The outer context has no "name" term until the scoped context for
	// Person is processed.
	assert.Nil(t, ctx.GetTermDefinition("name"))

	def := ctx.GetTermDefinition("Person")
	require.NotNil(t, def)
	scoped, hasScoped := def["@context"]
	require.True(t, hasScoped)
	assert.NotNil(t, scoped)
}

func TestRemoteContextCycleIsRejected(t *testing.T) {
	loader := NewPreloadingDocumentLoader(nil)
	loader.Preload("http://example.com/a", map[string]interface{}{
		"@context": "http://example.com/a",
	})

	opts := DefaultOptions()
	opts.Loader = loader
	base := NewActiveContext(nil, opts)

	_, err := base.Process("http://example.com/a")
	require.Error(t, err)
}

func TestRemoteContextDepthCapIsEnforced(t *testing.T) {
	loader := NewPreloadingDocumentLoader(nil)
	const chainLength = maxRemoteContexts + 4
	for i := 0; i < chainLength; i++ {
		next := fmt.Sprintf("http://example.com/ctx-%d", i+1)
		loader.Preload(fmt.Sprintf("http://example.com/ctx-%d", i), map[string]interface{}{
			"@context": next,
		})
	}
	loader.Preload(fmt.Sprintf("http://example.com/ctx-%d", chainLength), map[string]interface{}{
		"@context": map[string]interface{}{"name": "http://schema.org/name"},
	})

	opts := DefaultOptions()
	opts.Loader = loader
	base := NewActiveContext(nil, opts)

	_, err := base.Process("http://example.com/ctx-0")
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrContextOverflow, code)
}

func TestSerializeRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	base := NewActiveContext(nil, opts)

	ctx, err := base.Process(map[string]interface{}{
		"name": "http://schema.org/name",
		"age": map[string]interface{}{
			"@id":   "http://schema.org/age",
			"@type": "http://www.w3.org/2001/XMLSchema#integer",
		},
	})
	require.NoError(t, err)

	serialized, err := ctx.Serialize()
	require.NoError(t, err)

	serializedCtx, hasCtx := serialized["@context"]
	require.True(t, hasCtx)

	roundTripped, err := NewActiveContext(nil, opts).Process(serializedCtx)
	require.NoError(t, err)

	assert.Equal(t, "http://schema.org/name", roundTripped.GetTermDefinition("name")["@id"])
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", roundTripped.GetTypeMapping("age"))
}
