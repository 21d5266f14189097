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

func TestCompactSimpleNode(t *testing.T) {
	opts := DefaultOptions()
	proc := NewProcessor(opts)

	ctxDoc := map[string]interface{}{
		"name": "http://schema.org/name",
	}

	compacted, err := proc.Compact(map[string]interface{}{
		"@context": ctxDoc,
		"@id":      "http://example.com/alice",
		"name":     "Alice",
	}, ctxDoc)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/alice", compacted["@id"])
	assert.Equal(t, "Alice", compacted["name"])
}

func TestCompactListContainer(t *testing.T) {
	opts := DefaultOptions()
	proc := NewProcessor(opts)

	ctxDoc := map[string]interface{}{
		"items": map[string]interface{}{
			"@id":        "http://schema.org/items",
			"@container": "@list",
		},
	}

	compacted, err := proc.Compact(map[string]interface{}{
		"@context": ctxDoc,
		"items":    []interface{}{"a", "b", "c"},
	}, ctxDoc)
	require.NoError(t, err)

	items, isList := compacted["items"].([]interface{})
	require.True(t, isList)
	assert.Equal(t, []interface{}{"a", "b", "c"}, items)
}

func TestCompactLanguageMapContainer(t *testing.T) {
	opts := DefaultOptions()
	proc := NewProcessor(opts)

	ctxDoc := map[string]interface{}{
		"label": map[string]interface{}{
			"@id":        "http://schema.org/label",
			"@container": "@language",
		},
	}

	compacted, err := proc.Compact(map[string]interface{}{
		"@context": ctxDoc,
		"label": []interface{}{
			map[string]interface{}{"@value": "Hello", "@language": "en"},
			map[string]interface{}{"@value": "Bonjour", "@language": "fr"},
		},
	}, ctxDoc)
	require.NoError(t, err)

	labelMap, isMap := compacted["label"].(map[string]interface{})
	require.True(t, isMap)
	assert.Equal(t, "Hello", labelMap["en"])
	assert.Equal(t, "Bonjour", labelMap["fr"])
}

func TestExpandThenCompactRoundTrip(t *testing.T) {
	ctxDoc := map[string]interface{}{
		"@vocab": "http://schema.org/",
	}

	original := map[string]interface{}{
		"@context": ctxDoc,
		"@id":      "http://example.com/alice",
		"name":     "Alice",
		"age":      "30",
	}

	opts := DefaultOptions()
	proc := NewProcessor(opts)

	expanded, err := proc.Expand(original)
	require.NoError(t, err)

	compacted, err := proc.Compact(expanded, ctxDoc)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/alice", compacted["@id"])
	assert.Equal(t, "Alice", compacted["name"])
}

func TestCompactGraphContainerWrapsUnderGraphKey(t *testing.T) {
	opts := DefaultOptions()
	proc := NewProcessor(opts)

	ctxDoc := map[string]interface{}{
		"@vocab": "http://schema.org/",
		"dataset": map[string]interface{}{
			"@id":        "http://example.com/dataset",
			"@container": "@graph",
		},
	}

	compacted, err := proc.Compact(map[string]interface{}{
		"@context": ctxDoc,
		"dataset": map[string]interface{}{
			"@id":  "http://example.com/alice",
			"name": "Alice",
		},
	}, ctxDoc)
	require.NoError(t, err)

	dataset, isMap := compacted["dataset"].(map[string]interface{})
	require.True(t, isMap)
	assert.Equal(t, "http://example.com/alice", dataset["@id"])
	assert.Equal(t, "Alice", dataset["name"])
}

func TestCompactGraphIdContainerKeysByCompactedId(t *testing.T) {
	opts := DefaultOptions()
	proc := NewProcessor(opts)

	ctxDoc := map[string]interface{}{
		"@vocab": "http://schema.org/",
		"dataset": map[string]interface{}{
			"@id":        "http://example.com/dataset",
			"@container": []interface{}{"@graph", "@id"},
		},
	}

	compacted, err := proc.Compact(map[string]interface{}{
		"@context": ctxDoc,
		"dataset": map[string]interface{}{
			"http://example.com/g1": map[string]interface{}{
				"name": "Alice",
			},
		},
	}, ctxDoc)
	require.NoError(t, err)

	dataset, isMap := compacted["dataset"].(map[string]interface{})
	require.True(t, isMap)
	entry, isMap := dataset["http://example.com/g1"].(map[string]interface{})
	require.True(t, isMap)
	assert.Equal(t, "Alice", entry["name"])
}

func TestCompactIriPrefersTermOverVocabIRI(t *testing.T) {
	opts := DefaultOptions()
	ctx, err := NewActiveContext(nil, opts).Process(map[string]interface{}{
		"name": "http://schema.org/name",
	})
	require.NoError(t, err)

	compacted, err := ctx.CompactIri("http://schema.org/name", "Alice", true, false)
	require.NoError(t, err)
	assert.Equal(t, "name", compacted)
}
