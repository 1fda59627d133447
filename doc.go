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

// Package imedict builds distributable IME user dictionaries in pure Go.
//
// A build has two steps:
//  1. The dictionary text is written to a file using the charset and
//     byte-order-mark that the target IME's import expects. See the dictfile
//     and profile packages.
//  2. Optionally, the output files are bundled into a zip archive. See the
//     archive and filelist packages.
//
// Supported IMEs and their default profiles:
//   - msime: Microsoft IME, UTF-16LE with a BOM.
//   - google: Google Japanese Input and Mozc, UTF-8 without a BOM.
//   - atok: ATOK, UTF-16LE with a BOM.
//   - kotoeri: macOS Japanese input, UTF-8 with a BOM.
//   - skk: SKK, EUC-JP.
//
// Errors returned by the module wrap one of the categories in the errdefs
// package.
package imedict
