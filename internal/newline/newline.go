// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package newline implements line ending conversion as a
// [transform.Transformer].
package newline

import (
	"golang.org/x/text/transform"
)

// Converter converts CR, LF and CRLF line endings to a single line ending.
// It operates on bytes and is safe for UTF-8 input since CR and LF never
// occur inside a multi-byte sequence.
type Converter struct {
	transform.NopResetter

	eol []byte
}

// ToLF returns a Converter that converts line endings to LF.
func ToLF() *Converter {
	return &Converter{eol: []byte("\n")}
}

// ToCRLF returns a Converter that converts line endings to CRLF.
func ToCRLF() *Converter {
	return &Converter{eol: []byte("\r\n")}
}

// Transform implements [transform.Transformer.Transform].
func (c *Converter) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		b := src[nSrc]
		if b != '\r' && b != '\n' {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = b
			nDst++
			nSrc++
			continue
		}

		size := 1
		if b == '\r' {
			if nSrc+1 == len(src) && !atEOF {
				// A CR at the end of the buffer may be the first half of a
				// CRLF pair.
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nSrc+1 < len(src) && src[nSrc+1] == '\n' {
				size = 2
			}
		}

		if nDst+len(c.eol) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], c.eol)
		nSrc += size
	}

	return nDst, nSrc, nil
}
