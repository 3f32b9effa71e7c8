// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package auth

import "errors"

// Sentinel errors for caller-distinguishable outcomes. Everything else that can
// go wrong in this package is wrapped opaquely and must not reach clients with
// details attached.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateAccount is returned when an email address is already registered.
	ErrDuplicateAccount = errors.New("email is already registered")

	// ErrUsernameTaken is returned when a username is already in use.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrInvalidToken is returned for any verification token that fails the
	// signature or expiry check. The cause is deliberately not distinguished.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidCredentials is returned for both unknown-username and
	// wrong-password login failures. The two cases must stay indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrUnauthenticated is returned when an operation requiring a session is
	// attempted without one.
	ErrUnauthenticated = errors.New("not authenticated")
)
