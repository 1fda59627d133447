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

//go:build windows

package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

type tempPending struct {
	*os.File
	dest string
	perm os.FileMode
}

func newPendingFile(dest string, perm os.FileMode) (pendingFile, error) {
	//nolint:wrapcheck // wrapped by Create.
	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return nil, err
	}
	return &tempPending{
		File: f,
		dest: dest,
		perm: perm,
	}, nil
}

func (p *tempPending) replace() error {
	if err := p.Sync(); err != nil {
		return fmt.Errorf("syncing: %w", err)
	}
	if err := p.Close(); err != nil {
		return fmt.Errorf("closing: %w", err)
	}
	if err := os.Chmod(p.Name(), p.perm); err != nil {
		return fmt.Errorf("setting mode: %w", err)
	}
	// ReplaceFile uses MoveFileEx with write-through.
	//nolint:wrapcheck // wrapped by Commit.
	return atomic.ReplaceFile(p.Name(), p.dest)
}

func (p *tempPending) cleanup() {
	_ = p.Close()
	_ = os.Remove(p.Name())
}
