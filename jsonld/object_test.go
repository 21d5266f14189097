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

func TestAsNodeRejectsValueAndListObjects(t *testing.T) {
	_, ok := AsNode(map[string]interface{}{"@value": "x"})
	assert.False(t, ok)

	_, ok = AsNode(map[string]interface{}{"@list": []interface{}{"x"}})
	assert.False(t, ok)

	_, ok = AsNode("not a map")
	assert.False(t, ok)

	node, ok := AsNode(map[string]interface{}{
		"@id":                    "http://example.com/alice",
		"@type":                  []interface{}{"http://schema.org/Person"},
		"http://schema.org/name": []interface{}{map[string]interface{}{"@value": "Alice"}},
	})
	require.True(t, ok)
	assert.Equal(t, "http://example.com/alice", node.Id().String())
	assert.Equal(t, []string{"http://schema.org/Person"}, node.Types())
	assert.Len(t, node.Property("http://schema.org/name"), 1)
	assert.Nil(t, node.Property("http://schema.org/missing"))
}

func TestAsValueAndAsList(t *testing.T) {
	v, ok := AsValue(map[string]interface{}{
		"@value":    "hello",
		"@language": "en",
	})
	require.True(t, ok)
	assert.Equal(t, "hello", v.Scalar())
	assert.Equal(t, "en", v.Language())
	assert.Equal(t, "", v.Type())

	_, ok = AsValue(map[string]interface{}{"@id": "http://example.com/x"})
	assert.False(t, ok)

	l, ok := AsList(map[string]interface{}{
		"@list": []interface{}{"a", "b"},
	})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"a", "b"}, l.Items())

	_, ok = AsList(map[string]interface{}{"@id": "http://example.com/x"})
	assert.False(t, ok)
}

func TestIdValidity(t *testing.T) {
	assert.True(t, NewId("http://example.com/alice").Valid())
	assert.True(t, NewId("_:b0").IsBlankNode())
	assert.False(t, Id{}.Valid())
}
