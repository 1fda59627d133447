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
	"os"
	"path/filepath"
	"testing"
)

// TreeFile is a file in a test directory tree.
type TreeFile struct {
	// Name is the slash-separated path relative to the tree root.
	Name string

	// Data is the file contents.
	Data string
}

// MakeTree creates the given files under a new temporary directory and
// returns the directory's path. Parent directories are created as needed.
func MakeTree(t *testing.T, files []TreeFile) string {
	t.Helper()

	dir := t.TempDir()
	WriteTree(t, dir, files)
	return dir
}

// WriteTree creates the given files under dir.
func WriteTree(t *testing.T, dir string, files []TreeFile) {
	t.Helper()

	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(f.Data), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}
