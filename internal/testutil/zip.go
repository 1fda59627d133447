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

package testutil

import (
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
)

// ZipEntry is an entry read from a zip archive.
type ZipEntry struct {
	Name string
	Data string
}

// ReadZip opens the zip archive at path and returns its entries in archive
// order.
func ReadZip(t *testing.T, path string) []ZipEntry {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening archive %q: %v", path, err)
	}
	defer r.Close()

	entries := []ZipEntry{}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening entry %q: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading entry %q: %v", f.Name, err)
		}
		entries = append(entries, ZipEntry{
			Name: f.Name,
			Data: string(b),
		})
	}
	return entries
}
