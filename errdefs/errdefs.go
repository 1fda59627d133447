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

// Package errdefs defines the error categories shared by the imedict
// packages. Errors returned by the module wrap exactly one of these
// categories along with the underlying cause, so callers can test both:
//
//	errors.Is(err, errdefs.ErrIO)
//	errors.Is(err, fs.ErrNotExist)
package errdefs

import (
	"errors"
)

var (
	// ErrConfig indicates a configuration or programming error, such as an
	// IME type with no profile. It is not retriable.
	ErrConfig = errors.New("config error")

	// ErrEncoding indicates that text could not be represented in the target
	// charset. It is not retriable without changing the input.
	ErrEncoding = errors.New("encoding error")

	// ErrIO indicates a filesystem failure. It may succeed when retried
	// after the cause is fixed.
	ErrIO = errors.New("io error")
)

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}

// IsEncoding reports whether err is an encoding error.
func IsEncoding(err error) bool {
	return errors.Is(err, ErrEncoding)
}

// IsIO reports whether err is a filesystem error.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}
