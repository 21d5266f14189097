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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pquerna/cachecontrol"
	"github.com/sirupsen/logrus"
)

const acceptHeader = "application/ld+json, application/json;q=0.9, application/javascript;q=0.5, text/javascript;q=0.5, text/plain;q=0.2, */*;q=0.1"

// RemoteDocument is the result of dereferencing an IRI: the parsed JSON
// tree plus the URL it was ultimately served from (after redirects) and,
// when the server pointed at an out-of-band context via a Link header,
// that context's URL.
type RemoteDocument struct {
	DocumentURL string
	Document    interface{}
	ContextURL  string
}

// DocumentLoader is the Loader contract: given an IRI, return the parsed
// document it identifies. Implementations are free to serve from memory,
// disk, or the network.
type DocumentLoader interface {
	LoadDocument(iri string) (*RemoteDocument, error)
}

// decodeDocument parses r as a single JSON value, wrapping any syntax
// error as a LoadingDocumentFailed so callers never need to look at the
// underlying encoding/json type.
func decodeDocument(r io.Reader) (interface{}, error) {
	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, NewError(ErrLoadingDocumentFailed, err.Error())
	}
	return doc, nil
}

// HTTPDocumentLoader fetches documents over HTTP(S) and transparently
// reads local files for any other scheme, honoring RFC 7234 cache-control
// response headers so a caller issuing the same context IRI repeatedly
// doesn't refetch until it actually expires.
type HTTPDocumentLoader struct {
	client *http.Client
	cache  map[string]cachedDocument
	log    *logrus.Entry
}

type cachedDocument struct {
	doc          *RemoteDocument
	expires      time.Time
	neverExpires bool
}

// NewHTTPDocumentLoader builds a loader using client, or http.DefaultClient
// if client is nil.
func NewHTTPDocumentLoader(client *http.Client) *HTTPDocumentLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDocumentLoader{
		client: client,
		cache:  make(map[string]cachedDocument),
		log:    logrus.WithField("component", "jsonld.loader"),
	}
}

// NewDefaultDocumentLoader is an alias kept for call sites that just want
// "the loader you get when you don't configure one."
func NewDefaultDocumentLoader(client *http.Client) *HTTPDocumentLoader {
	return NewHTTPDocumentLoader(client)
}

// LoadDocument resolves iri, consulting and updating the cache as directed
// by the response's cache-control headers.
func (l *HTTPDocumentLoader) LoadDocument(iri string) (*RemoteDocument, error) {
	if entry, ok := l.cache[iri]; ok && (entry.neverExpires || entry.expires.After(time.Now())) {
		l.log.WithField("iri", iri).Debug("serving context from cache")
		return entry.doc, nil
	}

	parsed, err := url.Parse(iri)
	if err != nil {
		return nil, NewError(ErrLoadingDocumentFailed, fmt.Sprintf("malformed IRI: %s", iri))
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return l.loadFile(iri)
	}
	return l.loadHTTP(iri)
}

func (l *HTTPDocumentLoader) loadFile(iri string) (*RemoteDocument, error) {
	f, err := os.Open(iri)
	if err != nil {
		return nil, NewError(ErrLoadingDocumentFailed, err.Error())
	}
	defer f.Close()

	doc, err := decodeDocument(f)
	if err != nil {
		return nil, err
	}
	remote := &RemoteDocument{DocumentURL: iri, Document: doc}
	l.cache[iri] = cachedDocument{doc: remote, neverExpires: true}
	return remote, nil
}

func (l *HTTPDocumentLoader) loadHTTP(iri string) (*RemoteDocument, error) {
	req, err := http.NewRequest(http.MethodGet, iri, http.NoBody)
	if err != nil {
		return nil, NewError(ErrLoadingDocumentFailed, err.Error())
	}
	req.Header.Set("Accept", acceptHeader)

	res, err := l.client.Do(req)
	if err != nil {
		return nil, NewError(ErrLoadingDocumentFailed, err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, NewError(ErrLoadingDocumentFailed, fmt.Sprintf("%s: HTTP %d", iri, res.StatusCode))
	}

	doc, err := decodeDocument(res.Body)
	if err != nil {
		return nil, err
	}

	remote := &RemoteDocument{DocumentURL: res.Request.URL.String(), Document: doc}

	reasons, expires, ccErr := cachecontrol.CachableResponse(req, res, cachecontrol.Options{})
	if ccErr == nil && len(reasons) == 0 {
		l.cache[iri] = cachedDocument{doc: remote, expires: expires}
	} else if ccErr != nil {
		l.log.WithError(ccErr).WithField("iri", iri).Debug("cache-control header unparseable, not caching")
	}

	return remote, nil
}

// PreloadingDocumentLoader wraps another loader with a static IRI->document
// map consulted first — useful for tests that want context documents
// served without a network round trip.
type PreloadingDocumentLoader struct {
	preloaded map[string]*RemoteDocument
	next      DocumentLoader
}

// NewPreloadingDocumentLoader wraps next, falling back to it for any IRI
// not present in the preload set.
func NewPreloadingDocumentLoader(next DocumentLoader) *PreloadingDocumentLoader {
	return &PreloadingDocumentLoader{preloaded: make(map[string]*RemoteDocument), next: next}
}

// Preload registers doc as the resolved content for iri.
func (l *PreloadingDocumentLoader) Preload(iri string, doc interface{}) {
	l.preloaded[iri] = &RemoteDocument{DocumentURL: iri, Document: doc}
}

// LoadDocument returns the preloaded document for iri, or delegates to the
// wrapped loader.
func (l *PreloadingDocumentLoader) LoadDocument(iri string) (*RemoteDocument, error) {
	if doc, ok := l.preloaded[iri]; ok {
		return doc, nil
	}
	if l.next == nil {
		return nil, NewError(ErrLoadingDocumentFailed, fmt.Sprintf("no preloaded document for %s", iri))
	}
	return l.next.LoadDocument(iri)
}
