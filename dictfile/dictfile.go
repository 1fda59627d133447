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

// Package dictfile writes IME user dictionary files.
//
// The dictionary text is transcoded to the charset of the target IME's
// profile, optionally prefixed with a byte-order-mark, and written to disk
// atomically.
package dictfile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-imedict/errdefs"
	"github.com/ianlewis/go-imedict/internal/atomicfile"
	"github.com/ianlewis/go-imedict/internal/newline"
	"github.com/ianlewis/go-imedict/profile"
)

const bom = "\ufeff"

// Options are options for a Writer.
type Options struct {
	// Perm is the file mode of written files.
	Perm os.FileMode

	// DictZip compresses the encoded data with the dictzip format. The output
	// path is used as given.
	DictZip bool

	// Logger receives debug logs. Logging is disabled if nil.
	Logger *slog.Logger
}

// DefaultOptions is the default options for a Writer.
var DefaultOptions = &Options{
	Perm: 0o644,
}

// Writer writes dictionary files using the profiles in a profile table.
type Writer struct {
	profiles *profile.Table
	perm     os.FileMode
	dictzip  bool
	logger   *slog.Logger
}

// NewWriter returns a new Writer that resolves IME types using profiles.
func NewWriter(profiles *profile.Table, opts *Options) *Writer {
	if opts == nil {
		opts = DefaultOptions
	}

	w := &Writer{
		profiles: profiles,
		perm:     opts.Perm,
		dictzip:  opts.DictZip,
		logger:   opts.Logger,
	}
	if w.perm == 0 {
		w.perm = DefaultOptions.Perm
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}
	return w
}

// Encode returns text encoded for the IME type's profile.
func (w *Writer) Encode(text string, imeType profile.IMEType) ([]byte, error) {
	p, err := w.profiles.Lookup(imeType)
	if err != nil {
		//nolint:wrapcheck // already a config error.
		return nil, err
	}
	return Encode(text, p)
}

// WriteFile writes text to filePath encoded for the IME type's profile. Any
// existing file at filePath is replaced. If the IME type has no profile or the
// text cannot be encoded, no file is written.
func (w *Writer) WriteFile(text, filePath string, imeType profile.IMEType) error {
	b, err := w.Encode(text, imeType)
	if err != nil {
		return err
	}

	f, err := atomicfile.Create(filePath, w.perm)
	if err != nil {
		//nolint:wrapcheck // already an io error.
		return err
	}

	var out io.Writer = f
	var z *dictzip.Writer
	if w.dictzip {
		z, err = dictzip.NewWriter(f)
		if err != nil {
			f.Abort()
			return fmt.Errorf("%w: creating dictzip writer: %w", errdefs.ErrIO, err)
		}
		out = z
	}

	if _, err := out.Write(b); err != nil {
		f.Abort()
		return fmt.Errorf("%w: writing %q: %w", errdefs.ErrIO, filePath, err)
	}
	if z != nil {
		if err := z.Close(); err != nil {
			f.Abort()
			return fmt.Errorf("%w: closing dictzip writer: %w", errdefs.ErrIO, err)
		}
	}
	if err := f.Commit(); err != nil {
		//nolint:wrapcheck // already an io error.
		return err
	}

	w.logger.Debug("wrote dictionary file",
		"path", filePath,
		"ime", string(imeType),
		"bytes", len(b),
		"dictzip", w.dictzip,
	)
	return nil
}

// Encode returns text encoded according to the profile. If the profile
// requires a byte-order-mark, the U+FEFF rune is encoded before the text.
func Encode(text string, p profile.Profile) ([]byte, error) {
	enc, err := p.Charset()
	if err != nil {
		//nolint:wrapcheck // already a config error.
		return nil, err
	}

	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: invalid utf-8 at byte %d", errdefs.ErrEncoding, invalidOffset(text))
	}

	var ts []transform.Transformer
	switch p.Newline {
	case profile.NewlineLF:
		ts = append(ts, newline.ToLF())
	case profile.NewlineCRLF:
		ts = append(ts, newline.ToCRLF())
	}
	ts = append(ts, enc.NewEncoder())

	src := text
	if p.BOM {
		src = bom + text
	}

	b, _, err := transform.Bytes(transform.Chain(ts...), []byte(src))
	if err != nil {
		if r, i, ok := unencodable(enc, text); ok {
			return nil, fmt.Errorf("%w: %s cannot encode %q at byte %d: %w", errdefs.ErrEncoding, p.Encoding, r, i, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", errdefs.ErrEncoding, p.Encoding, err)
	}
	return b, nil
}

// Decode decodes b according to the profile's charset. A leading
// byte-order-mark is removed if present. Line endings are not converted back.
func Decode(b []byte, p profile.Profile) (string, error) {
	enc, err := p.Charset()
	if err != nil {
		//nolint:wrapcheck // already a config error.
		return "", err
	}

	s, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", errdefs.ErrEncoding, p.Encoding, err)
	}
	return strings.TrimPrefix(string(s), bom), nil
}

// unencodable returns the first rune in text that enc cannot encode along with
// its byte offset.
func unencodable(enc encoding.Encoding, text string) (rune, int, bool) {
	e := enc.NewEncoder()
	for i, r := range text {
		if _, err := e.String(string(r)); err != nil {
			return r, i, true
		}
		e.Reset()
	}
	return 0, 0, false
}

// invalidOffset returns the byte offset of the first invalid utf-8 sequence.
func invalidOffset(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return len(s)
}
