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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-imedict/errdefs"
)

var (
	// ErrUnsupportedFormat indicates a profile file with an unknown extension.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported profile file format", errdefs.ErrConfig)

	// ErrDuplicateIMEType indicates a profile file with two keys naming the
	// same IME type, such as "msime" and "MSIME".
	ErrDuplicateIMEType = fmt.Errorf("%w: duplicate IME type", errdefs.ErrConfig)
)

// Format is a profile file format.
type Format int

const (
	// FormatYAML is YAML.
	FormatYAML Format = iota

	// FormatJSON is JSON. Comments and trailing commas are allowed.
	FormatJSON
)

// fileProfile is the on-disk representation of a Profile.
type fileProfile struct {
	Encoding string `json:"encoding" yaml:"encoding"`
	BOM      bool   `json:"bom"      yaml:"bom"`
	Newline  string `json:"newline"  yaml:"newline"`
}

// FormatFromPath returns the profile file format based on the path's
// extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Load reads a profile file and returns the built-in table with the file's
// entries applied on top. An entry replaces the built-in profile for its IME
// type as a whole.
//
// A YAML file looks like this:
//
//	msime:
//	  encoding: utf-16le
//	  bom: true
//	  newline: crlf
func Load(path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", errdefs.ErrIO, path, err)
	}

	t, err := Parse(b, format)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return t, nil
}

// Parse parses profile file data and returns the built-in table with the
// parsed entries applied on top.
func Parse(b []byte, format Format) (*Table, error) {
	raw := map[string]fileProfile{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: parsing yaml: %w", errdefs.ErrConfig, err)
		}
	case FormatJSON:
		stripped := jsonc.ToJSON(b)
		if len(bytes.TrimSpace(stripped)) > 0 {
			dec := json.NewDecoder(bytes.NewReader(stripped))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("%w: parsing json: %w", errdefs.ErrConfig, err)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}

	overrides := make(map[IMEType]Profile, len(raw))
	keys := make(map[IMEType]string, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		imeType, err := ParseIMEType(name)
		if err != nil {
			return nil, err
		}
		if prev, ok := keys[imeType]; ok {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateIMEType, prev, name)
		}
		keys[imeType] = name

		fp := raw[name]
		overrides[imeType] = Profile{
			Encoding: fp.Encoding,
			BOM:      fp.BOM,
			Newline:  fp.Newline,
		}
	}

	//nolint:wrapcheck // errors from With are already categorized.
	return Default().With(overrides)
}
