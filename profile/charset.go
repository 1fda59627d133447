// Copyright 2026 Ian Lewis
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

package profile

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Canonical encoding names.
const (
	UTF8     = "utf-8"
	UTF16LE  = "utf-16le"
	UTF16BE  = "utf-16be"
	ShiftJIS = "shift_jis"
	EUCJP    = "euc-jp"
)

// UTF-16 encoders ignore the BOM. The byte-order-mark is written as a U+FEFF
// rune so that it is encoded the same way as the rest of the text.
var charsets = map[string]encoding.Encoding{
	UTF8:     unicode.UTF8,
	UTF16LE:  unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	UTF16BE:  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	ShiftJIS: japanese.ShiftJIS,
	EUCJP:    japanese.EUCJP,
}

var aliases = map[string]string{
	"utf8":      UTF8,
	"utf16le":   UTF16LE,
	"utf16be":   UTF16BE,
	"sjis":      ShiftJIS,
	"shift-jis": ShiftJIS,
	"cp932":     ShiftJIS,
	"eucjp":     EUCJP,
	"euc_jp":    EUCJP,
}

func canonicalEncoding(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if a, ok := aliases[n]; ok {
		n = a
	}
	if _, ok := charsets[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return n, nil
}

func isUnicode(name string) bool {
	switch name {
	case UTF8, UTF16LE, UTF16BE:
		return true
	default:
		return false
	}
}

// Charset returns the encoding for the profile's charset name.
func (p Profile) Charset() (encoding.Encoding, error) {
	n, err := canonicalEncoding(p.Encoding)
	if err != nil {
		return nil, err
	}
	return charsets[n], nil
}
