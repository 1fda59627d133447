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

// Package atomicfile writes files by writing to a temporary file in the
// destination directory and renaming it into place, so that a reader never
// sees a partially written file under the destination name.
package atomicfile

import (
	"fmt"
	"io"
	"os"

	"github.com/ianlewis/go-imedict/errdefs"
)

// pendingFile is the platform's temporary file.
type pendingFile interface {
	io.WriteSeeker

	// Name returns the temporary file's path.
	Name() string

	// replace flushes and closes the file and renames it to the destination.
	replace() error

	// cleanup closes and removes the file.
	cleanup()
}

// File is a temporary file that replaces its destination on Commit.
type File struct {
	p    pendingFile
	dest string
	done bool
}

// Create creates a temporary file in the same directory as dest. The
// destination gets the mode perm when committed. The caller must call either
// Commit or Abort.
func Create(dest string, perm os.FileMode) (*File, error) {
	p, err := newPendingFile(dest, perm)
	if err != nil {
		return nil, fmt.Errorf("%w: creating temp file for %q: %w", errdefs.ErrIO, dest, err)
	}
	return &File{
		p:    p,
		dest: dest,
	}, nil
}

// Name returns the path of the temporary file.
func (f *File) Name() string {
	return f.p.Name()
}

// Write implements [io.Writer].
func (f *File) Write(b []byte) (int, error) {
	n, err := f.p.Write(b)
	if err != nil {
		return n, fmt.Errorf("%w: writing %q: %w", errdefs.ErrIO, f.p.Name(), err)
	}
	return n, nil
}

// Seek implements [io.Seeker].
func (f *File) Seek(offset int64, whence int) (int64, error) {
	n, err := f.p.Seek(offset, whence)
	if err != nil {
		return n, fmt.Errorf("%w: seeking %q: %w", errdefs.ErrIO, f.p.Name(), err)
	}
	return n, nil
}

// Commit flushes the temporary file to disk and renames it to the
// destination, replacing any existing file. The temporary file is removed if
// Commit fails.
func (f *File) Commit() error {
	if f.done {
		return nil
	}
	f.done = true

	if err := f.p.replace(); err != nil {
		f.p.cleanup()
		return fmt.Errorf("%w: replacing %q: %w", errdefs.ErrIO, f.dest, err)
	}
	return nil
}

// Abort closes and removes the temporary file. It does nothing if the file
// has already been committed or aborted.
func (f *File) Abort() {
	if f.done {
		return
	}
	f.done = true
	f.p.cleanup()
}
