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
	"net/url"
	"regexp"
	"strings"
)

// parsedURL splits a URL into the components IRI expansion and
// RemoveBase need, mirroring the fields the WHATWG URL parser exposes.
type parsedURL struct {
	href      string
	protocol  string
	host      string
	auth      string
	path      string
	query     string
	hash      string

	pathname       string
	normalizedPath string
	authority      string
}

var urlPattern = regexp.MustCompile(`^(?:([^:/?#]+):)?(?://((?:(([^:@]*)(?::([^:@]*))?)?@)?([^:/?#]*)(?::(\d*))?))?((((?:[^?#/]*/)*)([^?#]*))(?:\?([^#]*))?(?:#(.*))?)`)

func parseURL(raw string) *parsedURL {
	p := &parsedURL{href: raw}

	matches := urlPattern.FindStringSubmatch(raw)
	if matches == nil {
		return p
	}

	p.protocol = matches[1]
	p.host = matches[2]
	p.auth = matches[3]
	p.path = matches[8]
	pathname := matches[8]
	p.query = matches[12]
	p.hash = matches[13]

	if p.host != "" && p.path == "" {
		p.path = "/"
		pathname = "/"
	}

	p.pathname = pathname
	parseAuthority(p)
	p.normalizedPath = removeDotSegments(p.pathname, p.authority != "")

	if p.query != "" {
		p.path += "?" + p.query
	}
	if p.protocol != "" {
		p.protocol += ":"
	}
	if p.hash != "" {
		p.hash = "#" + p.hash
	}
	return p
}

func parseAuthority(p *parsedURL) {
	if !strings.Contains(p.href, ":") && strings.HasPrefix(p.href, "//") && p.host == "" {
		rest := p.pathname[2:]
		if idx := strings.Index(rest, "/"); idx == -1 {
			p.authority = rest
			p.pathname = ""
		} else {
			p.authority = rest[0:idx]
			p.pathname = rest[idx:]
		}
		return
	}
	p.authority = p.host
	if p.auth != "" {
		p.authority = p.auth + "@" + p.authority
	}
}

// removeDotSegments implements RFC 3986 §5.2.4.
func removeDotSegments(path string, hasAuthority bool) string {
	var out []byte
	if strings.HasPrefix(path, "/") {
		out = append(out, '/')
	}

	segments := strings.Split(path, "/")
	kept := make([]string, 0, len(segments))
	for i, seg := range segments {
		if seg == "." || (seg == "" && len(segments)-i > 1) {
			continue
		}
		if seg == ".." {
			if hasAuthority || (len(kept) > 0 && kept[len(kept)-1] != "..") {
				if len(kept) > 0 {
					kept = kept[:len(kept)-1]
				}
			} else {
				kept = append(kept, "..")
			}
			continue
		}
		kept = append(kept, seg)
	}

	if len(kept) > 0 {
		out = append(out, kept[0]...)
		for _, seg := range kept[1:] {
			out = append(out, '/')
			out = append(out, seg...)
		}
	}
	return string(out)
}

// Resolve resolves pathToResolve against baseIRI per RFC 3986, as required
// by IRI Expansion when a term definition or @base is itself relative.
func Resolve(baseIRI, pathToResolve string) string {
	if baseIRI == "" {
		return pathToResolve
	}
	if strings.TrimSpace(pathToResolve) == "" {
		return baseIRI
	}

	base, err := url.Parse(baseIRI)
	if err != nil {
		return pathToResolve
	}

	if strings.HasPrefix(pathToResolve, "?") {
		base.Fragment = ""
		base.RawQuery = pathToResolve[1:]
		return base.String()
	}

	rel, err := url.Parse(pathToResolve)
	if err != nil {
		return pathToResolve
	}
	resolved := base.ResolveReference(rel)
	if resolved.Path != "" {
		resolved.Path = removeDotSegments(resolved.Path, true)
	}
	return resolved.String()
}

// RemoveBase returns iri relative to base when iri is below base, otherwise
// iri unchanged. Used by Compaction's compactIri when CompactToRelative is set.
func RemoveBase(base, iri string) string {
	if base == "" {
		return iri
	}

	baseURL := parseURL(base)

	root := ""
	if baseURL.href != "" {
		root = baseURL.protocol + "//" + baseURL.authority
	} else if !strings.HasPrefix(iri, "//") {
		root = "//"
	}

	if !strings.HasPrefix(iri, root) {
		return iri
	}

	rel := parseURL(iri[len(root):])

	baseSegments := strings.Split(baseURL.normalizedPath, "/")
	iriSegments := strings.Split(rel.normalizedPath, "/")

	last := 1
	if rel.hash != "" || rel.query != "" {
		last = 0
	}

	for len(baseSegments) > 0 && len(iriSegments) > last && baseSegments[0] == iriSegments[0] {
		baseSegments = baseSegments[1:]
		iriSegments = iriSegments[1:]
	}

	rval := ""
	if len(baseSegments) > 0 {
		if !strings.HasSuffix(baseURL.normalizedPath, "/") || baseSegments[0] == "" {
			baseSegments = baseSegments[:len(baseSegments)-1]
		}
		for range baseSegments {
			rval += "../"
		}
	}

	if len(iriSegments) > 0 {
		rval += iriSegments[0]
	}
	for _, seg := range iriSegments[1:] {
		rval += "/" + seg
	}

	if rel.query != "" {
		rval += "?" + rel.query
	}
	if rel.hash != "" {
		rval += rel.hash
	}

	if rval == "" {
		rval = "./"
	}
	return rval
}

// IsAbsoluteIRI reports whether value is an absolute IRI or a blank node
// identifier — the two forms a Term's Id may validly hold.
func IsAbsoluteIRI(value string) bool {
	if strings.HasPrefix(value, "_:") {
		return true
	}
	u, err := url.Parse(value)
	return err == nil && u.IsAbs()
}

// IsRelativeIRI reports whether value is neither a keyword nor an
// absolute IRI — i.e. it still needs @vocab/@base resolution.
func IsRelativeIRI(value string) bool {
	return !IsKeyword(value) && !IsAbsoluteIRI(value)
}
