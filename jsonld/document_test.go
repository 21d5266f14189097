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

func TestIsValueListGraphObjectClassifiers(t *testing.T) {
	assert.True(t, IsValueObject(map[string]interface{}{"@value": "x"}))
	assert.False(t, IsValueObject(map[string]interface{}{"@id": "x"}))

	assert.True(t, IsListObject(map[string]interface{}{"@list": []interface{}{}}))
	assert.False(t, IsListObject(map[string]interface{}{"@value": "x"}))

	assert.True(t, IsGraphObject(map[string]interface{}{"@graph": []interface{}{}}))
	assert.False(t, IsGraphObject(map[string]interface{}{"@value": "x"}))
}

func TestCompareValuesScalarsAndValueObjects(t *testing.T) {
	assert.True(t, CompareValues("a", "a"))
	assert.False(t, CompareValues("a", "b"))

	assert.True(t, CompareValues(
		map[string]interface{}{"@value": "a", "@language": "en"},
		map[string]interface{}{"@value": "a", "@language": "en"},
	))
	assert.False(t, CompareValues(
		map[string]interface{}{"@value": "a", "@language": "en"},
		map[string]interface{}{"@value": "a", "@language": "fr"},
	))
}

func TestAddValueDeduplicatesByDefault(t *testing.T) {
	subject := map[string]interface{}{}

	AddValue(subject, "http://schema.org/name", "Alice", true, false, false, false)
	AddValue(subject, "http://schema.org/name", "Alice", true, false, false, false)

	values, isArray := subject["http://schema.org/name"].([]interface{})
	require.True(t, isArray)
	assert.Len(t, values, 1)
}

func TestAddValueAllowDuplicateKeepsBoth(t *testing.T) {
	subject := map[string]interface{}{}

	AddValue(subject, "http://schema.org/name", "Alice", true, false, true, false)
	AddValue(subject, "http://schema.org/name", "Alice", true, false, true, false)

	values, isArray := subject["http://schema.org/name"].([]interface{})
	require.True(t, isArray)
	assert.Len(t, values, 2)
}

func TestDeepEqualIgnoresListOrderWhenNotRequested(t *testing.T) {
	a := []interface{}{"x", "y"}
	b := []interface{}{"y", "x"}

	assert.True(t, DeepEqual(a, b, false))
	assert.False(t, DeepEqual(a, b, true))
}

func TestGetOrderedKeysIsSorted(t *testing.T) {
	m := map[string]interface{}{"c": 1, "a": 2, "b": 3}
	assert.Equal(t, []string{"a", "b", "c"}, GetOrderedKeys(m))
}

func TestMarshalCompactFormatsNumbersCanonically(t *testing.T) {
	out, err := MarshalCompact(map[string]interface{}{"@value": 3.14})
	require.NoError(t, err)
	assert.Contains(t, string(out), "3.14")

	whole, err := MarshalCompact(map[string]interface{}{"@value": 1.0})
	require.NoError(t, err)
	assert.Contains(t, string(whole), `"@value": 1`)
	assert.NotContains(t, string(whole), "1.0")
}
