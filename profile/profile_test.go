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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-imedict/errdefs"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	table := Default()

	// Every IME type has exactly one profile.
	if diff := cmp.Diff(IMETypes(), table.Types()); diff != "" {
		t.Fatalf("Types (-want, +got):\n%s", diff)
	}

	tests := []struct {
		imeType  IMEType
		expected Profile
	}{
		{MSIME, Profile{Encoding: UTF16LE, BOM: true}},
		{Google, Profile{Encoding: UTF8}},
		{ATOK, Profile{Encoding: UTF16LE, BOM: true}},
		{Kotoeri, Profile{Encoding: UTF8, BOM: true}},
		{SKK, Profile{Encoding: EUCJP}},
	}

	for _, test := range tests {
		t.Run(string(test.imeType), func(t *testing.T) {
			t.Parallel()

			p, err := table.Lookup(test.imeType)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if diff := cmp.Diff(test.expected, p); diff != "" {
				t.Fatalf("Lookup (-want, +got):\n%s", diff)
			}
			if _, err := p.Charset(); err != nil {
				t.Fatalf("Charset: %v", err)
			}
		})
	}
}

func TestTable_Lookup_unknown(t *testing.T) {
	t.Parallel()

	var nilTable *Table
	for name, table := range map[string]*Table{
		"default": Default(),
		"empty":   {},
		"nil":     nilTable,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := table.Lookup("wnn")
			if !errors.Is(err, ErrNoProfile) {
				t.Fatalf("Lookup: want %v, got %v", ErrNoProfile, err)
			}
			if !errdefs.IsConfig(err) {
				t.Fatalf("Lookup: want config error, got %v", err)
			}
		})
	}
}

func TestParseIMEType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected IMEType
		err      error
	}{
		{
			name:     "lower",
			input:    "msime",
			expected: MSIME,
		},
		{
			name:     "mixed case and space",
			input:    " Google ",
			expected: Google,
		},
		{
			name:  "unknown",
			input: "egbridge",
			err:   ErrUnknownIMEType,
		},
		{
			name:  "empty",
			input: "",
			err:   ErrUnknownIMEType,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseIMEType(test.input)
			if !errors.Is(err, test.err) {
				t.Fatalf("ParseIMEType: want err %v, got %v", test.err, err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("ParseIMEType (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestNewTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		profiles map[IMEType]Profile
		expected map[IMEType]Profile
		err      error
	}{
		{
			name: "aliases are canonicalized",
			profiles: map[IMEType]Profile{
				MSIME: {Encoding: "UTF16LE", BOM: true, Newline: "CRLF"},
				SKK:   {Encoding: "sjis"},
			},
			expected: map[IMEType]Profile{
				MSIME: {Encoding: UTF16LE, BOM: true, Newline: NewlineCRLF},
				SKK:   {Encoding: ShiftJIS},
			},
		},
		{
			name: "unknown encoding",
			profiles: map[IMEType]Profile{
				Google: {Encoding: "ebcdic"},
			},
			err: ErrUnknownEncoding,
		},
		{
			name: "unknown newline",
			profiles: map[IMEType]Profile{
				Google: {Encoding: UTF8, Newline: "cr"},
			},
			err: ErrUnknownNewline,
		},
		{
			name: "bom with legacy charset",
			profiles: map[IMEType]Profile{
				SKK: {Encoding: EUCJP, BOM: true},
			},
			err: ErrBOMUnsupported,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			table, err := NewTable(test.profiles)
			if !errors.Is(err, test.err) {
				t.Fatalf("NewTable: want err %v, got %v", test.err, err)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(test.expected, table.profiles); diff != "" {
				t.Fatalf("NewTable (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestTable_With(t *testing.T) {
	t.Parallel()

	base := Default()
	table, err := base.With(map[IMEType]Profile{
		SKK: {Encoding: UTF8},
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}

	got, err := table.Lookup(SKK)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if diff := cmp.Diff(Profile{Encoding: UTF8}, got); diff != "" {
		t.Fatalf("Lookup (-want, +got):\n%s", diff)
	}

	// The receiver is not modified.
	orig, err := base.Lookup(SKK)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if diff := cmp.Diff(Profile{Encoding: EUCJP}, orig); diff != "" {
		t.Fatalf("Lookup (-want, +got):\n%s", diff)
	}
}
