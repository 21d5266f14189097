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

func TestDiscardSinkDropsWarnings(t *testing.T) {
	opts := DefaultOptions()
	// default Warnings is a discardSink; should not panic when invoked.
	opts.warn(Warning{Kind: EmptyTerm})
}

func TestCollectingWarningSinkAccumulates(t *testing.T) {
	sink := &CollectingWarningSink{}
	opts := DefaultOptions()
	opts.Warnings = sink

	opts.warn(Warning{Kind: KeywordLikeValue, Term: "x", Value: "@foo"})
	opts.warn(Warning{Kind: MalformedLanguageTag, Term: "y"})

	require.Len(t, sink.Warnings, 2)
	assert.Equal(t, KeywordLikeValue, sink.Warnings[0].Kind)
	assert.Equal(t, MalformedLanguageTag, sink.Warnings[1].Kind)
}

func TestNilWarningsFieldIsSafeToCall(t *testing.T) {
	opts := &Options{}
	assert.NotPanics(t, func() {
		opts.warn(Warning{Kind: EmptyTerm})
	})
}
