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
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-imedict/errdefs"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		format   Format
		expected map[IMEType]Profile
		err      error
	}{
		{
			name: "yaml override",
			data: `
msime:
  encoding: utf-16le
  bom: true
  newline: crlf
`,
			format: FormatYAML,
			expected: map[IMEType]Profile{
				MSIME: {Encoding: UTF16LE, BOM: true, Newline: NewlineCRLF},
				SKK:   {Encoding: EUCJP},
			},
		},
		{
			name:   "empty yaml",
			data:   "",
			format: FormatYAML,
			expected: map[IMEType]Profile{
				MSIME: {Encoding: UTF16LE, BOM: true},
				SKK:   {Encoding: EUCJP},
			},
		},
		{
			name: "jsonc with comments",
			data: `{
  // SKK dictionaries converted to UTF-8.
  "skk": {"encoding": "utf-8", "bom": false},
}`,
			format: FormatJSON,
			expected: map[IMEType]Profile{
				MSIME: {Encoding: UTF16LE, BOM: true},
				SKK:   {Encoding: UTF8},
			},
		},
		{
			name:   "unknown ime type",
			data:   "wnn:\n  encoding: euc-jp\n",
			format: FormatYAML,
			err:    ErrUnknownIMEType,
		},
		{
			name:   "keys differing in case",
			data:   `{"msime": {"encoding": "utf-8"}, "MSIME": {"encoding": "utf-16le", "bom": true}}`,
			format: FormatJSON,
			err:    ErrDuplicateIMEType,
		},
		{
			name:   "yaml keys differing in case",
			data:   "google:\n  encoding: utf-8\nGoogle:\n  encoding: utf-8\n",
			format: FormatYAML,
			err:    ErrDuplicateIMEType,
		},
		{
			name:   "duplicate ime type is a config error",
			data:   `{"atok": {"encoding": "utf-8"}, " ATOK ": {"encoding": "utf-8"}}`,
			format: FormatJSON,
			err:    errdefs.ErrConfig,
		},
		{
			name:   "unknown encoding",
			data:   `{"google": {"encoding": "koi8-r"}}`,
			format: FormatJSON,
			err:    ErrUnknownEncoding,
		},
		{
			name:   "unknown field",
			data:   "google:\n  encoding: utf-8\n  charset: utf-8\n",
			format: FormatYAML,
			err:    errdefs.ErrConfig,
		},
		{
			name:   "bad json",
			data:   `{"google": `,
			format: FormatJSON,
			err:    errdefs.ErrConfig,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			table, err := Parse([]byte(test.data), test.format)
			if !errors.Is(err, test.err) {
				t.Fatalf("Parse: want err %v, got %v", test.err, err)
			}
			if err != nil {
				return
			}
			for imeType, want := range test.expected {
				got, err := table.Lookup(imeType)
				if err != nil {
					t.Fatalf("Lookup(%q): %v", imeType, err)
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatalf("Lookup(%q) (-want, +got):\n%s", imeType, diff)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("yaml file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "profiles.yml")
		if err := os.WriteFile(path, []byte("atok:\n  encoding: utf-8\n  bom: true\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		table, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		got, err := table.Lookup(ATOK)
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		if diff := cmp.Diff(Profile{Encoding: UTF8, BOM: true}, got); diff != "" {
			t.Fatalf("Lookup (-want, +got):\n%s", diff)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(dir, "missing.json"))
		if !errdefs.IsIO(err) {
			t.Fatalf("Load: want io error, got %v", err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("Load: want %v, got %v", fs.ErrNotExist, err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(dir, "profiles.toml"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("Load: want %v, got %v", ErrUnsupportedFormat, err)
		}
	})
}
