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
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-imedict/archive"
	"github.com/ianlewis/go-imedict/filelist"
)

var archiveCommand = &cli.Command{
	Name:      "archive",
	Usage:     "bundle a directory into a zip archive",
	ArgsUsage: "SOURCE ARCHIVE_BASE",
	Description: "Archives the files under SOURCE to ARCHIVE_BASE.zip. Entries\n" +
		"are stored in lexical, depth-first order.",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "workers",
			Usage: "read up to `N` files concurrently",
			Value: 1,
		},
		&cli.StringFlag{
			Name:  "mtime",
			Usage: "record `TIME` (RFC 3339) as the modification time of every entry",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "skip files and directories with base `NAME`",
		},
	},
	OnUsageError: usageError,
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			return fmt.Errorf("%w: expected SOURCE and ARCHIVE_BASE arguments, got %d", ErrFlagParse, c.NArg())
		}

		opts := &archive.Options{
			Workers: c.Int("workers"),
			Logger:  slog.Default(),
		}

		if s := c.String("mtime"); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return fmt.Errorf("%w: --mtime: %w", ErrFlagParse, err)
			}
			opts.ModTime = t
		}

		if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
			opts.List = func(root string) (archive.Iterator, error) {
				s, err := filelist.NewScanner(root, &filelist.Options{
					ExcludeNames: exclude,
				})
				if err != nil {
					//nolint:wrapcheck // already an io error.
					return nil, err
				}
				return s, nil
			}
		}

		//nolint:wrapcheck // errors are categorized by archive.
		return archive.NewBuilder(opts).Build(c.Args().Get(0), c.Args().Get(1))
	},
}
