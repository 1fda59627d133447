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

package dictfile

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"

	"github.com/ianlewis/go-imedict/errdefs"
	"github.com/ianlewis/go-imedict/profile"
)

const testDict = "あいさつ\t挨拶\t名詞\nかお\t顔\t名詞\n"

func readFile(t *testing.T, path string) []byte {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func expectNotExist(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat(%q): want not exist, got %v", path, err)
	}
}

func TestWriter_WriteFile_bom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		imeType profile.IMEType
		prefix  []byte
	}{
		{
			imeType: profile.MSIME,
			// BOM + "あ" in UTF-16LE.
			prefix: []byte{0xff, 0xfe, 0x42, 0x30},
		},
		{
			imeType: profile.ATOK,
			prefix:  []byte{0xff, 0xfe, 0x42, 0x30},
		},
		{
			imeType: profile.Kotoeri,
			// BOM + "あ" in UTF-8.
			prefix: []byte{0xef, 0xbb, 0xbf, 0xe3, 0x81, 0x82},
		},
		{
			imeType: profile.Google,
			// "あ" in UTF-8 with no BOM.
			prefix: []byte{0xe3, 0x81, 0x82},
		},
		{
			imeType: profile.SKK,
			// "あ" in EUC-JP.
			prefix: []byte{0xa4, 0xa2},
		},
	}

	w := NewWriter(profile.Default(), nil)
	dir := t.TempDir()

	for _, test := range tests {
		t.Run(string(test.imeType), func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, string(test.imeType)+".txt")
			if err := w.WriteFile(testDict, path, test.imeType); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			b := readFile(t, path)
			if !bytes.HasPrefix(b, test.prefix) {
				t.Fatalf("WriteFile: want prefix % x, got % x", test.prefix, b[:min(len(b), len(test.prefix))])
			}
		})
	}
}

func TestWriter_WriteFile_roundTrip(t *testing.T) {
	t.Parallel()

	table := profile.Default()
	w := NewWriter(table, nil)
	dir := t.TempDir()

	for _, imeType := range table.Types() {
		t.Run(string(imeType), func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, string(imeType)+".txt")
			if err := w.WriteFile(testDict, path, imeType); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			p, err := table.Lookup(imeType)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			got, err := Decode(readFile(t, path), p)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(testDict, got); diff != "" {
				t.Fatalf("Decode (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestWriter_WriteFile_replace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "user.txt")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 1024), 0o600); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(profile.Default(), nil)
	if err := w.WriteFile("a\tb\n", path, profile.Google); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if diff := cmp.Diff("a\tb\n", string(readFile(t, path))); diff != "" {
		t.Fatalf("WriteFile (-want, +got):\n%s", diff)
	}
}

func TestWriter_WriteFile_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		imeType profile.IMEType
		dir     string
		err     error
	}{
		{
			name:    "unknown ime type",
			text:    testDict,
			imeType: "wnn",
			err:     errdefs.ErrConfig,
		},
		{
			name:    "unrepresentable rune",
			text:    "えもじ\t😀\t名詞\n",
			imeType: profile.SKK,
			err:     errdefs.ErrEncoding,
		},
		{
			name:    "invalid utf-8",
			text:    "abc\xffdef",
			imeType: profile.Google,
			err:     errdefs.ErrEncoding,
		},
		{
			name:    "missing directory",
			text:    testDict,
			imeType: profile.Google,
			dir:     "missing",
			err:     errdefs.ErrIO,
		},
	}

	w := NewWriter(profile.Default(), nil)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, test.dir, "user.txt")

			err := w.WriteFile(test.text, path, test.imeType)
			if !errors.Is(err, test.err) {
				t.Fatalf("WriteFile: want err %v, got %v", test.err, err)
			}
			expectNotExist(t, path)

			// No temp files are left behind either.
			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Fatalf("ReadDir: want empty, got %d entries", len(entries))
			}
		})
	}
}

func TestEncode_crlf(t *testing.T) {
	t.Parallel()

	table, err := profile.NewTable(map[profile.IMEType]profile.Profile{
		profile.MSIME: {Encoding: profile.UTF16LE, BOM: true, Newline: profile.NewlineCRLF},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	w := NewWriter(table, nil)
	b, err := w.Encode("a\nb\n", profile.MSIME)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	expected := []byte{
		0xff, 0xfe,
		'a', 0, '\r', 0, '\n', 0,
		'b', 0, '\r', 0, '\n', 0,
	}
	if diff := cmp.Diff(expected, b); diff != "" {
		t.Fatalf("Encode (-want, +got):\n%s", diff)
	}

	// Other profiles are not in the injected table.
	if _, err := w.Encode("a", profile.Google); !errors.Is(err, profile.ErrNoProfile) {
		t.Fatalf("Encode: want %v, got %v", profile.ErrNoProfile, err)
	}
}

func TestEncode_shiftJIS(t *testing.T) {
	t.Parallel()

	p := profile.Profile{Encoding: profile.ShiftJIS}

	b, err := Encode("顔", p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if diff := cmp.Diff([]byte{0x8a, 0xe7}, b); diff != "" {
		t.Fatalf("Encode (-want, +got):\n%s", diff)
	}

	got, err := Decode(b, p)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff("顔", got); diff != "" {
		t.Fatalf("Decode (-want, +got):\n%s", diff)
	}
}

func TestWriter_WriteFile_dictzip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "SKK-JISYO.user.dz")
	w := NewWriter(profile.Default(), &Options{DictZip: true})
	if err := w.WriteFile(testDict, path, profile.Kotoeri); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// dictzip files are valid gzip files.
	z, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	b, err := io.ReadAll(z)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	want, err := w.Encode(testDict, profile.Kotoeri)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Fatalf("contents (-want, +got):\n%s", diff)
	}
}
