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

func expandDoc(t *testing.T, opts *Options, doc interface{}) []interface{} {
	t.Helper()
	if opts == nil {
		opts = DefaultOptions()
	}
	result, err := NewProcessor(opts).Expand(doc)
	require.NoError(t, err)
	return result
}

func TestExpandSimpleNode(t *testing.T) {
	expanded := expandDoc(t, nil, map[string]interface{}{
		"@context": map[string]interface{}{
			"name": "http://schema.org/name",
		},
		"@id":  "http://example.com/alice",
		"name": "Alice",
	})

	require.Len(t, expanded, 1)
	node, ok := AsNode(expanded[0])
	require.True(t, ok)
	assert.Equal(t, "http://example.com/alice", node.Id().String())

	values := node.Property("http://schema.org/name")
	require.Len(t, values, 1)
	v, ok := AsValue(values[0])
	require.True(t, ok)
	assert.Equal(t, "Alice", v.Scalar())
}

func TestExpandTypeCoercionProducesTypedValue(t *testing.T) {
	expanded := expandDoc(t, nil, map[string]interface{}{
		"@context": map[string]interface{}{
			"age": map[string]interface{}{
				"@id":   "http://schema.org/age",
				"@type": "http://www.w3.org/2001/XMLSchema#integer",
			},
		},
		"age": "42",
	})

	require.Len(t, expanded, 1)
	node, ok := AsNode(expanded[0])
	require.True(t, ok)

	values := node.Property("http://schema.org/age")
	require.Len(t, values, 1)
	v, ok := AsValue(values[0])
	require.True(t, ok)
	assert.Equal(t, "42", v.Scalar())
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", v.Type())
}

func TestExpandListContainer(t *testing.T) {
	expanded := expandDoc(t, nil, map[string]interface{}{
		"@context": map[string]interface{}{
			"items": map[string]interface{}{
				"@id":        "http://schema.org/items",
				"@container": "@list",
			},
		},
		"items": []interface{}{"a", "b", "c"},
	})

	require.Len(t, expanded, 1)
	node, ok := AsNode(expanded[0])
	require.True(t, ok)

	values := node.Property("http://schema.org/items")
	require.Len(t, values, 1)
	l, ok := AsList(values[0])
	require.True(t, ok)
	assert.Len(t, l.Items(), 3)
}

func TestExpandRejectsListOfLists(t *testing.T) {
	opts := DefaultOptions()
	expander := NewExpander(opts)
	activeCtx := NewActiveContext(nil, opts)

	_, err := expander.Expand(activeCtx, "http://schema.org/items", map[string]interface{}{
		"@list": []interface{}{
			map[string]interface{}{"@list": []interface{}{"a"}},
		},
	}, false)
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrListOfLists, code)
}

func TestExpandIncludedRequiresNodeObjects(t *testing.T) {
	opts := DefaultOptions()
	expander := NewExpander(opts)
	activeCtx, err := NewActiveContext(nil, opts).Process(map[string]interface{}{
		"name": "http://schema.org/name",
	})
	require.NoError(t, err)

	_, err = expander.Expand(activeCtx, "", map[string]interface{}{
		"name":      "Alice",
		"@included": "not a node object",
	}, false)
	require.Error(t, err)

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidIncludedValue, code)
}

func TestExpandIncludedAcceptsNodeObjects(t *testing.T) {
	expanded := expandDoc(t, nil, map[string]interface{}{
		"@context": map[string]interface{}{
			"name": "http://schema.org/name",
		},
		"name": "Alice",
		"@included": map[string]interface{}{
			"name": "Bob",
		},
	})

	require.Len(t, expanded, 1)
	node, ok := AsNode(expanded[0])
	require.True(t, ok)

	included := node.Property("@included")
	require.Len(t, included, 1)
	includedNode, ok := AsNode(included[0])
	require.True(t, ok)
	v, ok := AsValue(includedNode.Property("http://schema.org/name")[0])
	require.True(t, ok)
	assert.Equal(t, "Bob", v.Scalar())
}

func TestExpandKeepsTopLevelNodesWithProperties(t *testing.T) {
	expanded := expandDoc(t, nil, map[string]interface{}{
		"@context": map[string]interface{}{
			"name": "http://schema.org/name",
		},
		"@graph": []interface{}{
			map[string]interface{}{"name": "Alice"},
			map[string]interface{}{"http://schema.org/unused": "orphan"},
		},
	})

	// Both members have no @id but each has a real property, so neither
	// is free-floating under 1.1 rules at the top level (only nodes with
	// no properties at all are dropped).
	assert.Len(t, expanded, 2)
}

// TestTypeScopedContextDoesNotLeakIntoPropertyValues checks that a
// type-scoped context's terms are visible only on the node object that
// introduced them, not on a nested node reached through an ordinary
// property of that object. Type-scoped contexts apply with
// propagate=false, so the active context snapshot taken before @type
// processing must be restored before expanding such a nested value.
func TestTypeScopedContextDoesNotLeakIntoPropertyValues(t *testing.T) {
	ctx := map[string]interface{}{
		"@vocab": "http://schema.org/",
		"Person": map[string]interface{}{
			"@id": "http://schema.org/Person",
			"@context": map[string]interface{}{
				"nick": "http://schema.org/alternateName",
			},
		},
	}

	expanded := expandDoc(t, nil, map[string]interface{}{
		"@context": ctx,
		"@type":    "Person",
		"nick":     "A",
		"knows":    map[string]interface{}{"nick": "B"},
	})

	require.Len(t, expanded, 1)
	outer := expanded[0].(map[string]interface{})
	assert.NotNil(t, outer["http://schema.org/alternateName"])

	knows, isSlice := outer["http://schema.org/knows"].([]interface{})
	require.True(t, isSlice)
	require.Len(t, knows, 1)
	inner := knows[0].(map[string]interface{})

	// The type-scoped "nick" term must not have leaked into the nested
	// node; "nick" there falls back to plain @vocab expansion.
	assert.Nil(t, inner["http://schema.org/alternateName"])
	assert.NotNil(t, inner["http://schema.org/nick"])
}

// TestPropertyScopedContextOverridesProtectedTerm checks that a
// property-scoped @context can redefine a term that was declared
// @protected in an enclosing context. Property-scoped context
// application always forces overrideProtected=true, unlike ordinary
// context processing.
func TestPropertyScopedContextOverridesProtectedTerm(t *testing.T) {
	ctx := map[string]interface{}{
		"@vocab": "http://schema.org/",
		"name":   map[string]interface{}{"@id": "http://schema.org/name", "@protected": true},
		"detail": map[string]interface{}{
			"@id": "http://schema.org/detail",
			"@context": map[string]interface{}{
				"name": "http://schema.org/title",
			},
		},
	}

	expanded := expandDoc(t, nil, map[string]interface{}{
		"@context": ctx,
		"name":     "Acme",
		"detail":   map[string]interface{}{"name": "CEO"},
	})

	require.Len(t, expanded, 1)
	outer := expanded[0].(map[string]interface{})
	outerName := outer["http://schema.org/name"].([]interface{})
	assert.Equal(t, "Acme", outerName[0].(map[string]interface{})["@value"])

	detail := outer["http://schema.org/detail"].([]interface{})[0].(map[string]interface{})
	assert.Nil(t, detail["http://schema.org/name"])
	title := detail["http://schema.org/title"].([]interface{})
	assert.Equal(t, "CEO", title[0].(map[string]interface{})["@value"])
}

func TestExpandIsIdempotent(t *testing.T) {
	doc := map[string]interface{}{
		"@context": map[string]interface{}{
			"name": "http://schema.org/name",
			"age": map[string]interface{}{
				"@id":   "http://schema.org/age",
				"@type": "http://www.w3.org/2001/XMLSchema#integer",
			},
		},
		"@id":  "http://example.com/alice",
		"name": "Alice",
		"age":  "30",
	}

	once := expandDoc(t, nil, doc)

	var reexpanded interface{} = once
	opts := DefaultOptions()
	twice, err := NewProcessor(opts).Expand(reexpanded)
	require.NoError(t, err)

	assert.True(t, DeepEqual(once, twice, false))
}
