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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-imedict"
	"github.com/ianlewis/go-imedict/dictfile"
	"github.com/ianlewis/go-imedict/profile"
)

func imeTypeNames() string {
	var names []string
	for _, t := range profile.IMETypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

var writeCommand = &cli.Command{
	Name:      "write",
	Usage:     "write a dictionary file encoded for an IME",
	ArgsUsage: "INPUT OUTPUT",
	Description: strings.Join([]string{
		"Reads UTF-8 dictionary text from INPUT and writes it to OUTPUT using the",
		"encoding and byte-order-mark of the IME's profile. INPUT may be '-' to",
		"read from stdin.",
	}, "\n"),
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "ime",
			Usage:   "target IME `TYPE` (" + imeTypeNames() + ")",
			Aliases: []string{"i"},
		},
		profilesFlag,
		&cli.BoolFlag{
			Name:  "dictzip",
			Usage: "compress the output with dictzip",
		},
	},
	OnUsageError: usageError,
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			return fmt.Errorf("%w: expected INPUT and OUTPUT arguments, got %d", ErrFlagParse, c.NArg())
		}

		if c.String("ime") == "" {
			return fmt.Errorf("%w: --ime is required", ErrFlagParse)
		}
		imeType, err := profile.ParseIMEType(c.String("ime"))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		}

		profiles, err := loadProfiles(c)
		if err != nil {
			return err
		}

		data, err := readInput(c, c.Args().Get(0))
		if err != nil {
			return err
		}

		g := imedict.NewGenerator(&imedict.GeneratorOptions{
			Profiles: profiles,
			Writer: &dictfile.Options{
				DictZip: c.Bool("dictzip"),
				Logger:  slog.Default(),
			},
		})
		//nolint:wrapcheck // errors are categorized by imedict.
		return g.Generate(string(data), c.Args().Get(1), imeType)
	},
}

func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return b, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return b, nil
}
