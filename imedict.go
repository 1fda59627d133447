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

package imedict

import (
	"log/slog"

	"github.com/ianlewis/go-imedict/archive"
	"github.com/ianlewis/go-imedict/dictfile"
	"github.com/ianlewis/go-imedict/profile"
)

// IMEType identifies the IME product a dictionary targets.
type IMEType = profile.IMEType

// GeneratorOptions are options for a Generator.
type GeneratorOptions struct {
	// Profiles is the profile table. Defaults to [profile.Default].
	Profiles *profile.Table

	// Writer are the options for the dictionary file writer.
	Writer *dictfile.Options

	// Logger receives the build completion log. Defaults to [slog.Default].
	Logger *slog.Logger
}

// Generator writes dictionary files and logs their completion.
type Generator struct {
	writer *dictfile.Writer
	logger *slog.Logger
}

// NewGenerator returns a new Generator.
func NewGenerator(opts *GeneratorOptions) *Generator {
	if opts == nil {
		opts = &GeneratorOptions{}
	}

	profiles := opts.Profiles
	if profiles == nil {
		profiles = profile.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		writer: dictfile.NewWriter(profiles, opts.Writer),
		logger: logger,
	}
}

// Generate writes data to path encoded for the IME type.
func (g *Generator) Generate(data, path string, imeType IMEType) error {
	if err := g.writer.WriteFile(data, path, imeType); err != nil {
		//nolint:wrapcheck // errors are categorized by dictfile.
		return err
	}
	g.logger.Info("build complete", "path", path)
	return nil
}

// GenerateDictionaryFile writes data to path encoded for the IME type using
// the built-in profiles.
func GenerateDictionaryFile(data, path string, imeType IMEType) error {
	return NewGenerator(nil).Generate(data, path, imeType)
}

// CompressFile archives the files under filePath to archivePath with ".zip"
// appended.
func CompressFile(filePath, archivePath string) error {
	b := archive.NewBuilder(&archive.Options{
		Logger: slog.Default(),
	})
	//nolint:wrapcheck // errors are categorized by archive.
	return b.Build(filePath, archivePath)
}
