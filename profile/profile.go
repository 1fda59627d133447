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

// Package profile maps IME types to the charset and byte-order-mark policy
// their user dictionary import expects.
//
// A [Table] is immutable once built. Construct one at startup with
// [Default], [NewTable] or [Load] and pass it to the components that need it.
package profile

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ianlewis/go-imedict/errdefs"
)

var (
	// ErrUnknownIMEType indicates an IME type name that is not one of the
	// supported variants.
	ErrUnknownIMEType = fmt.Errorf("%w: unknown IME type", errdefs.ErrConfig)

	// ErrNoProfile indicates that a Table has no profile for an IME type.
	ErrNoProfile = fmt.Errorf("%w: no profile for IME type", errdefs.ErrConfig)

	// ErrUnknownEncoding indicates an unsupported charset name.
	ErrUnknownEncoding = fmt.Errorf("%w: unknown encoding", errdefs.ErrConfig)

	// ErrUnknownNewline indicates an unsupported newline policy.
	ErrUnknownNewline = fmt.Errorf("%w: unknown newline", errdefs.ErrConfig)

	// ErrBOMUnsupported indicates a profile that requests a byte-order-mark
	// for a charset that cannot encode one.
	ErrBOMUnsupported = fmt.Errorf("%w: byte-order-mark not supported", errdefs.ErrConfig)
)

// IMEType identifies the IME product a dictionary targets.
type IMEType string

const (
	// MSIME is Microsoft IME.
	MSIME IMEType = "msime"

	// Google is Google Japanese Input and Mozc.
	Google IMEType = "google"

	// ATOK is JustSystems ATOK.
	ATOK IMEType = "atok"

	// Kotoeri is the macOS Japanese input method.
	Kotoeri IMEType = "kotoeri"

	// SKK is the SKK input method. SKK jisyo files are traditionally EUC-JP.
	SKK IMEType = "skk"
)

// IMETypes returns all supported IME types in sorted order.
func IMETypes() []IMEType {
	return slices.Sorted(maps.Keys(builtin))
}

// ParseIMEType parses an IME type name. Names are case-insensitive.
func ParseIMEType(s string) (IMEType, error) {
	t := IMEType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := builtin[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownIMEType, s)
	}
	return t, nil
}

// Newline policies for a Profile.
const (
	// NewlineKeep writes line endings as they appear in the text.
	NewlineKeep = ""

	// NewlineLF converts all line endings to LF.
	NewlineLF = "lf"

	// NewlineCRLF converts all line endings to CRLF.
	NewlineCRLF = "crlf"
)

// Profile is the output policy for an IME type.
type Profile struct {
	// Encoding is the charset name. See [Charset] for supported names.
	Encoding string

	// BOM is true if a byte-order-mark is written before the text.
	BOM bool

	// Newline is the line ending policy. The zero value keeps line endings
	// unchanged.
	Newline string
}

func (p Profile) validate() (Profile, error) {
	name, err := canonicalEncoding(p.Encoding)
	if err != nil {
		return Profile{}, err
	}
	p.Encoding = name

	if p.BOM && !isUnicode(name) {
		return Profile{}, fmt.Errorf("%w: %s", ErrBOMUnsupported, name)
	}

	p.Newline = strings.ToLower(p.Newline)
	switch p.Newline {
	case NewlineKeep, NewlineLF, NewlineCRLF:
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownNewline, p.Newline)
	}
	return p, nil
}

var builtin = map[IMEType]Profile{
	MSIME:   {Encoding: UTF16LE, BOM: true},
	Google:  {Encoding: UTF8, BOM: false},
	ATOK:    {Encoding: UTF16LE, BOM: true},
	Kotoeri: {Encoding: UTF8, BOM: true},
	SKK:     {Encoding: EUCJP, BOM: false},
}

// Table is an immutable mapping of IME types to profiles.
type Table struct {
	profiles map[IMEType]Profile
}

// NewTable returns a new Table containing a copy of profiles. Every profile is
// validated and encoding names are canonicalized.
func NewTable(profiles map[IMEType]Profile) (*Table, error) {
	t := &Table{
		profiles: make(map[IMEType]Profile, len(profiles)),
	}
	for imeType, p := range profiles {
		v, err := p.validate()
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", imeType, err)
		}
		t.profiles[imeType] = v
	}
	return t, nil
}

// Default returns the built-in table with one profile per IME type.
func Default() *Table {
	t, err := NewTable(builtin)
	if err != nil {
		// The built-in table is static.
		panic(err)
	}
	return t
}

// Lookup returns the profile for the IME type.
func (t *Table) Lookup(imeType IMEType) (Profile, error) {
	if t == nil {
		return Profile{}, fmt.Errorf("%w: %q", ErrNoProfile, imeType)
	}
	p, ok := t.profiles[imeType]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrNoProfile, imeType)
	}
	return p, nil
}

// Types returns the IME types in the table in sorted order.
func (t *Table) Types() []IMEType {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.profiles))
}

// With returns a new Table with the given profiles added to or replacing
// those in t. The receiver is not modified.
func (t *Table) With(overrides map[IMEType]Profile) (*Table, error) {
	merged := map[IMEType]Profile{}
	if t != nil {
		maps.Copy(merged, t.profiles)
	}
	maps.Copy(merged, overrides)
	return NewTable(merged)
}
