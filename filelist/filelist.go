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

// Package filelist lists the regular files under a directory.
//
// A [Scanner] walks the tree lazily, reading each directory only when the
// walk reaches it, and yields a [File] for every regular file in lexical,
// depth-first order.
package filelist

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/ianlewis/go-imedict/errdefs"
)

// File is a file found by a Scanner.
type File struct {
	// Path is the absolute path of the file.
	Path string

	// Name is the slash-separated path of the file relative to the scanned
	// root.
	Name string
}

// Options are options for a Scanner.
type Options struct {
	// ExcludeNames are base names of files and directories to skip.
	ExcludeNames []string
}

// DefaultOptions is the default options for a Scanner.
var DefaultOptions = &Options{}

// frame is a directory being walked.
type frame struct {
	dir     string
	name    string
	entries []fs.DirEntry
}

// Scanner scans a directory tree from start to end. A Scanner is single-pass.
type Scanner struct {
	stack   []*frame
	exclude map[string]struct{}

	// single is set when the root is a regular file.
	single *File

	file File
	err  error
	done bool
}

// NewScanner returns a new Scanner that lists the regular files under root.
// If root is a regular file, the Scanner yields only that file named by its
// base name.
func NewScanner(root string, opts *Options) (*Scanner, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %q: %w", errdefs.ErrIO, root, err)
	}

	s := &Scanner{
		exclude: make(map[string]struct{}, len(opts.ExcludeNames)),
	}
	for _, n := range opts.ExcludeNames {
		s.exclude[n] = struct{}{}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %q: %w", errdefs.ErrIO, root, err)
	}
	if info.Mode().IsRegular() {
		s.single = &File{
			Path: abs,
			Name: filepath.Base(abs),
		}
		return s, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: listing %q: not a directory or regular file", errdefs.ErrIO, root)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %q: %w", errdefs.ErrIO, root, err)
	}
	s.stack = append(s.stack, &frame{
		dir:     abs,
		entries: entries,
	})
	return s, nil
}

// Scan advances the Scanner to the next file. It returns false when the scan
// stops, either by reaching the end of the tree or on an error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	if s.single != nil {
		s.file = *s.single
		s.single = nil
		s.done = true
		return true
	}

	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		if len(top.entries) == 0 {
			s.stack = s.stack[:len(s.stack)-1]
			continue
		}
		e := top.entries[0]
		top.entries = top.entries[1:]

		if _, skip := s.exclude[e.Name()]; skip {
			continue
		}

		p := filepath.Join(top.dir, e.Name())
		name := path.Join(top.name, e.Name())

		if e.IsDir() {
			entries, err := os.ReadDir(p)
			if err != nil {
				s.fail(fmt.Errorf("%w: listing %q: %w", errdefs.ErrIO, p, err))
				return false
			}
			s.stack = append(s.stack, &frame{
				dir:     p,
				name:    name,
				entries: entries,
			})
			continue
		}

		mode := e.Type()
		if mode&fs.ModeSymlink != 0 {
			// Follow links to regular files. Links to directories are not
			// followed.
			info, err := os.Stat(p)
			if err != nil {
				s.fail(fmt.Errorf("%w: resolving %q: %w", errdefs.ErrIO, p, err))
				return false
			}
			mode = info.Mode()
		}
		if !mode.IsRegular() {
			continue
		}

		s.file = File{
			Path: p,
			Name: name,
		}
		return true
	}

	s.done = true
	return false
}

func (s *Scanner) fail(err error) {
	s.err = err
	s.done = true
	s.stack = nil
}

// File returns the current file.
func (s *Scanner) File() File {
	return s.file
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.err
}

// Close releases the Scanner's state. Scan returns false after Close.
func (s *Scanner) Close() error {
	s.done = true
	s.stack = nil
	s.single = nil
	return nil
}
