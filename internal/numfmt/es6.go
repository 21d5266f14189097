// Copyright 2006-2019 WebPKI.org (http://webpki.org).
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package numfmt renders IEEE-754 double precision numbers using the
// EcmaScript 6 number-to-string grammar, which is the formatting the
// JSON-LD value-compaction and canonicalization rules expect: shortest
// round-tripping representation, no superfluous exponent padding, no "-0".
package numfmt

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const invalidBitPattern uint64 = 0x7ff0000000000000

// FormatDouble renders f the way a conforming JSON-LD serializer must:
// deterministically and without the platform/locale variance that
// strconv's default verbs allow.
func FormatDouble(f float64) (string, error) {
	bits := math.Float64bits(f)

	if (bits & invalidBitPattern) == invalidBitPattern {
		return "null", errors.New("invalid JSON number: " + strconv.FormatUint(bits, 16))
	}

	if f == 0 {
		// collapses -0 to 0 per the ES6-JSON/JCS rule
		return "0", nil
	}

	sign := ""
	if f < 0 {
		f = -f
		sign = "-"
	}

	var format byte = 'e'
	if f < 1e+21 && f >= 1e-6 {
		format = 'f'
	}

	formatted := strconv.FormatFloat(f, format, -1, 64)

	if exp := strings.IndexByte(formatted, 'e'); exp > 0 {
		// strconv's -1 precision occasionally disagrees with the 'g' form by
		// a rounding ULP; prefer the 'g' rendering when it agrees in length.
		if g := strconv.FormatFloat(f, 'g', 17, 64); len(g) == len(formatted) {
			formatted = g
		}
		// "1e+09" -> "1e+9": ES6 never zero-pads the exponent.
		if formatted[exp+2] == '0' {
			formatted = formatted[:exp+2] + formatted[exp+3:]
		}
	} else if strings.IndexByte(formatted, '.') < 0 && len(formatted) >= 12 {
		i := len(formatted)
		for formatted[i-1] == '0' {
			i--
		}
		if i != len(formatted) {
			fixed := strconv.FormatFloat(f, 'f', 0, 64)
			if fixed[i] >= '5' {
				formatted = fixed[:i-1] + string(fixed[i-1]+1) + formatted[i:]
			}
		}
	}
	return sign + formatted, nil
}
