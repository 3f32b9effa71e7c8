// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Username validation constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

// usernameRegex matches usernames that:
// - Start with a letter (a-z, A-Z)
// - Contain only letters, numbers, and underscores
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// emailRegex is a light structural check; control of the inbox is proven by the
// verification token, not by address parsing.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Account represents a registered credential record.
//
// Email and username are each globally unique. Uniqueness is enforced by the
// store's constraints, not pre-checked here, so two concurrent registrations
// race safely: one insert wins, the other observes the constraint violation.
type Account struct {
	ID            ulid.ULID
	Email         string
	Username      string
	PasswordHash  string
	ProfilePicSrc *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewAccount creates a validated Account with a fresh ID.
func NewAccount(email, username, passwordHash string) (*Account, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, oops.Code("AUTH_INVALID_ACCOUNT").Errorf("password hash cannot be empty")
	}

	now := time.Now()
	return &Account{
		ID:           ulid.Make(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidateUsername validates a username against rules.
// Username requirements:
// - Length: MinUsernameLength to MaxUsernameLength characters
// - Must start with a letter
// - Can contain only letters (a-z, A-Z), numbers (0-9), and underscores (_)
func ValidateUsername(username string) error {
	if username == "" {
		return oops.Code("AUTH_INVALID_USERNAME").Errorf("username cannot be empty")
	}
	if len(username) < MinUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("min", MinUsernameLength).
			Errorf("username must be at least %d characters", MinUsernameLength)
	}
	if len(username) > MaxUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("max", MaxUsernameLength).
			Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return oops.Code("AUTH_INVALID_USERNAME").
			Errorf("username must start with a letter and contain only letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail validates the structure of an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email address is malformed")
	}
	return nil
}

// AccountRepository manages account persistence.
type AccountRepository interface {
	// Create stores a new account. A unique-constraint violation on the email
	// column surfaces as ErrDuplicateAccount, on the username column as
	// ErrUsernameTaken.
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Account, error)

	// GetByUsername retrieves an account by username (case-insensitive).
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// ExistsByEmail reports whether an account with the given email exists
	// (case-insensitive).
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateUsername changes an account's username. A unique-constraint
	// violation surfaces as ErrUsernameTaken.
	UpdateUsername(ctx context.Context, id ulid.ULID, username string) error

	// UpdateProfilePic replaces the profile picture source and returns the
	// previous source, if any, so the caller can release the old object.
	UpdateProfilePic(ctx context.Context, id ulid.ULID, src string) (*string, error)
}

// Mailer delivers verification tokens to an inbox. Implementations own
// delivery reliability; the registrar neither waits on nor retries sends.
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
}
