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

// Package archive bundles the files under a directory into a zip archive.
//
// Entries are added in the order the file listing yields them and the
// archive is written to a temporary file that is renamed into place only
// after the archive is finalized.
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-imedict/errdefs"
	"github.com/ianlewis/go-imedict/filelist"
	"github.com/ianlewis/go-imedict/internal/atomicfile"
)

// Ext is the extension appended to the archive base path.
const Ext = ".zip"

var (
	// ErrDuplicateName indicates that two files map to the same entry name.
	ErrDuplicateName = fmt.Errorf("%w: duplicate entry name", errdefs.ErrConfig)

	// ErrInvalidName indicates an entry name that is empty, absolute or
	// escapes the archive root.
	ErrInvalidName = fmt.Errorf("%w: invalid entry name", errdefs.ErrConfig)
)

// Iterator is a single-pass sequence of files to archive.
type Iterator interface {
	// Scan advances to the next file. It returns false at the end of the
	// sequence or on error.
	Scan() bool

	// File returns the current file.
	File() filelist.File

	// Err returns the error that stopped the sequence, if any.
	Err() error
}

// ListFunc lists the files under root.
type ListFunc func(root string) (Iterator, error)

// ListFiles lists the files under root with a [filelist.Scanner].
func ListFiles(root string) (Iterator, error) {
	s, err := filelist.NewScanner(root, nil)
	if err != nil {
		//nolint:wrapcheck // already an io error.
		return nil, err
	}
	return s, nil
}

// Options are options for a Builder.
type Options struct {
	// List lists the files to archive. Defaults to ListFiles.
	List ListFunc

	// Workers is the number of files read concurrently. Values less than two
	// read files one at a time. Entries are always added in listing order.
	Workers int

	// ModTime is the modification time recorded for every entry. If zero,
	// each entry uses its source file's modification time. Setting ModTime
	// makes archives of identical trees byte-identical.
	ModTime time.Time

	// Perm is the file mode of the archive.
	Perm os.FileMode

	// Logger receives build logs. Logging is disabled if nil.
	Logger *slog.Logger
}

// DefaultOptions is the default options for a Builder.
var DefaultOptions = &Options{
	List: ListFiles,
	Perm: 0o644,
}

// Builder builds zip archives. A Builder holds no state between builds and may
// be used concurrently.
type Builder struct {
	list    ListFunc
	workers int
	modTime time.Time
	perm    os.FileMode
	logger  *slog.Logger
}

// NewBuilder returns a new Builder.
func NewBuilder(opts *Options) *Builder {
	if opts == nil {
		opts = DefaultOptions
	}

	b := &Builder{
		list:    opts.List,
		workers: opts.Workers,
		modTime: opts.ModTime,
		perm:    opts.Perm,
		logger:  opts.Logger,
	}
	if b.list == nil {
		b.list = DefaultOptions.List
	}
	if b.perm == 0 {
		b.perm = DefaultOptions.Perm
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	return b
}

// Build archives the files under sourcePath to archivePathWithoutExtension
// with [Ext] appended. Any existing archive at that path is replaced. The
// build stops at the first file that cannot be read, and no archive is
// written.
func (b *Builder) Build(sourcePath, archivePathWithoutExtension string) error {
	dest := archivePathWithoutExtension + Ext

	it, err := b.list(sourcePath)
	if err != nil {
		if !errdefs.IsIO(err) && !errdefs.IsConfig(err) {
			err = fmt.Errorf("%w: listing %q: %w", errdefs.ErrIO, sourcePath, err)
		}
		return err
	}
	if c, ok := it.(interface{ Close() error }); ok {
		defer c.Close()
	}

	f, err := atomicfile.Create(dest, b.perm)
	if err != nil {
		//nolint:wrapcheck // already an io error.
		return err
	}

	skip, err := outputPaths(f.Name(), dest)
	if err != nil {
		f.Abort()
		return err
	}

	zw := newZipWriter(f, b.modTime, b.logger)
	if b.workers > 1 {
		err = b.addParallel(it, zw, skip)
	} else {
		err = b.addSequential(it, zw, skip)
	}
	if err == nil {
		err = zw.close()
	}
	if err != nil {
		f.Abort()
		return err
	}

	if err := f.Commit(); err != nil {
		//nolint:wrapcheck // already an io error.
		return err
	}

	b.logger.Info("built archive", "path", dest, "entries", zw.count)
	return nil
}

// outputPaths returns the set of absolute paths the build writes to so that
// they are not archived when the archive is inside the source tree.
func outputPaths(paths ...string) (map[string]struct{}, error) {
	skip := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("%w: resolving %q: %w", errdefs.ErrIO, p, err)
		}
		skip[abs] = struct{}{}
	}
	return skip, nil
}

// skipped reports whether file is one of the build's outputs. Relative paths
// from a custom ListFunc are resolved against the working directory, as
// outputPaths does.
func skipped(skip map[string]struct{}, file filelist.File) bool {
	abs, err := filepath.Abs(file.Path)
	if err != nil {
		// outputPaths already resolved against the same working directory.
		return false
	}
	_, ok := skip[abs]
	return ok
}

func iterErr(it Iterator) error {
	err := it.Err()
	if err == nil {
		return nil
	}
	if errdefs.IsIO(err) {
		return err
	}
	return fmt.Errorf("%w: listing files: %w", errdefs.ErrIO, err)
}

func (b *Builder) addSequential(it Iterator, zw *zipWriter, skip map[string]struct{}) error {
	for it.Scan() {
		file := it.File()
		if skipped(skip, file) {
			continue
		}
		if err := zw.addFile(file); err != nil {
			return err
		}
	}
	return iterErr(it)
}

// addParallel reads up to b.workers files concurrently and then adds them to
// the archive in listing order.
func (b *Builder) addParallel(it Iterator, zw *zipWriter, skip map[string]struct{}) error {
	window := make([]filelist.File, 0, b.workers)
	contents := make([]*content, b.workers)

	more := true
	for more {
		window = window[:0]
		for len(window) < b.workers {
			if more = it.Scan(); !more {
				break
			}
			file := it.File()
			if skipped(skip, file) {
				continue
			}
			window = append(window, file)
		}
		if len(window) == 0 {
			break
		}

		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(b.workers)
		for i, file := range window {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				c, err := readContent(file)
				if err != nil {
					return err
				}
				contents[i] = c
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, file := range window {
			if err := zw.addContent(file, contents[i]); err != nil {
				return err
			}
			contents[i] = nil
		}
	}
	return iterErr(it)
}
