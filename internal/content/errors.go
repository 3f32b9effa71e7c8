// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package content

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthor is returned when a caller tries to modify a post they do
	// not own.
	ErrNotAuthor = errors.New("only the author can do that")

	// ErrSelfFollow is returned when an account tries to follow itself.
	ErrSelfFollow = errors.New("cannot follow yourself")
)
