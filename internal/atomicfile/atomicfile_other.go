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

//go:build !windows

package atomicfile

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

type renamePending struct {
	*renameio.PendingFile
	dir string
}

func newPendingFile(dest string, perm os.FileMode) (pendingFile, error) {
	//nolint:wrapcheck // wrapped by Create.
	pf, err := renameio.NewPendingFile(dest, renameio.WithPermissions(perm))
	if err != nil {
		return nil, err
	}
	return &renamePending{
		PendingFile: pf,
		dir:         filepath.Dir(dest),
	}, nil
}

func (p *renamePending) replace() error {
	if err := p.CloseAtomicallyReplace(); err != nil {
		//nolint:wrapcheck // wrapped by Commit.
		return err
	}

	// Best effort. The rename is already visible.
	_ = syncDir(p.dir)
	return nil
}

func (p *renamePending) cleanup() {
	_ = p.Cleanup()
}

// syncDir fsyncs the directory so the rename is persisted.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
