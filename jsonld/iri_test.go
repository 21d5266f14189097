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
)

func TestResolveRelativeReference(t *testing.T) {
	cases := []struct {
		base, ref, want string
	}{
		{"http://example.com/a/b", "c", "http://example.com/a/c"},
		{"http://example.com/a/b", "/c", "http://example.com/c"},
		{"http://example.com/a/b/", "../c", "http://example.com/a/c"},
		{"http://example.com/a/b", "http://other.com/x", "http://other.com/x"},
		{"http://example.com/a/b", "#frag", "http://example.com/a/b#frag"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Resolve(c.base, c.ref), "base=%s ref=%s", c.base, c.ref)
	}
}

func TestIsAbsoluteAndRelativeIRI(t *testing.T) {
	assert.True(t, IsAbsoluteIRI("http://example.com/"))
	assert.True(t, IsAbsoluteIRI("urn:isbn:0451450523"))
	assert.False(t, IsAbsoluteIRI("relative/path"))

	assert.True(t, IsRelativeIRI("relative/path"))
	assert.False(t, IsRelativeIRI("http://example.com/"))
}

func TestRemoveBaseRoundTripsWithResolve(t *testing.T) {
	base := "http://example.com/a/"
	iri := "http://example.com/a/b/c"

	relative := RemoveBase(base, iri)
	assert.Equal(t, iri, Resolve(base, relative))
}
