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

package archive

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/ianlewis/go-imedict/errdefs"
	"github.com/ianlewis/go-imedict/filelist"
)

// content is a file read into memory ahead of being added to the archive.
type content struct {
	data    []byte
	mode    fs.FileMode
	modTime time.Time
}

func readContent(file filelist.File) (*content, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", errdefs.ErrIO, file.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", errdefs.ErrIO, file.Path, err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", errdefs.ErrIO, file.Path, err)
	}

	return &content{
		data:    data,
		mode:    info.Mode(),
		modTime: info.ModTime(),
	}, nil
}

// zipWriter adds entries to a zip archive in order. Once closed, no more
// entries can be added.
type zipWriter struct {
	zw      *zip.Writer
	names   map[string]struct{}
	modTime time.Time
	logger  *slog.Logger
	count   int
	closed  bool
}

func newZipWriter(w io.Writer, modTime time.Time, logger *slog.Logger) *zipWriter {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	return &zipWriter{
		zw:      zw,
		names:   map[string]struct{}{},
		modTime: modTime,
		logger:  logger,
	}
}

// validName reports whether name is a clean, relative, slash-separated path
// that stays inside the archive root.
func validName(name string) bool {
	switch {
	case name == "", name == ".", name == "..":
		return false
	case strings.HasPrefix(name, "/"), strings.HasPrefix(name, "../"):
		return false
	case strings.Contains(name, `\`):
		return false
	}
	return path.Clean(name) == name
}

func (w *zipWriter) create(name string, mode fs.FileMode, modTime time.Time) (io.Writer, error) {
	if w.closed {
		return nil, fmt.Errorf("%w: archive already finalized", errdefs.ErrIO)
	}
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, ok := w.names[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	w.names[name] = struct{}{}

	if !w.modTime.IsZero() {
		modTime = w.modTime
	}
	hdr := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modTime.UTC(),
	}
	hdr.SetMode(mode.Perm())

	out, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return nil, fmt.Errorf("%w: adding %q: %w", errdefs.ErrIO, name, err)
	}
	return out, nil
}

// addFile streams a file from disk into a new entry.
func (w *zipWriter) addFile(file filelist.File) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("%w: opening %q: %w", errdefs.ErrIO, file.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: reading %q: %w", errdefs.ErrIO, file.Path, err)
	}

	out, err := w.create(file.Name, info.Mode(), info.ModTime())
	if err != nil {
		return err
	}
	n, err := io.Copy(out, f)
	if err != nil {
		return fmt.Errorf("%w: archiving %q: %w", errdefs.ErrIO, file.Path, err)
	}

	w.count++
	w.logger.Debug("added entry", "name", file.Name, "bytes", n)
	return nil
}

// addContent adds a new entry with content that was read ahead.
func (w *zipWriter) addContent(file filelist.File, c *content) error {
	out, err := w.create(file.Name, c.mode, c.modTime)
	if err != nil {
		return err
	}
	if _, err := out.Write(c.data); err != nil {
		return fmt.Errorf("%w: archiving %q: %w", errdefs.ErrIO, file.Path, err)
	}

	w.count++
	w.logger.Debug("added entry", "name", file.Name, "bytes", len(c.data))
	return nil
}

// close writes the central directory.
func (w *zipWriter) close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.zw.Close(); err != nil {
		return fmt.Errorf("%w: finalizing archive: %w", errdefs.ErrIO, err)
	}
	return nil
}
