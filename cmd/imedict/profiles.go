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
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

var profilesCommand = &cli.Command{
	Name:         "profiles",
	Usage:        "list IME profiles",
	Flags:        []cli.Flag{profilesFlag},
	OnUsageError: usageError,
	Action: func(c *cli.Context) error {
		profiles, err := loadProfiles(c)
		if err != nil {
			return err
		}

		tbl := table.New("IME", "Encoding", "BOM", "Newline").WithWriter(c.App.Writer)
		for _, imeType := range profiles.Types() {
			p, err := profiles.Lookup(imeType)
			if err != nil {
				//nolint:wrapcheck // already a config error.
				return err
			}
			newline := p.Newline
			if newline == "" {
				newline = "-"
			}
			tbl.AddRow(imeType, p.Encoding, p.BOM, newline)
		}
		tbl.Print()
		return nil
	},
}
