// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

// Package postgres implements the auth repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/quibble/quibble/internal/auth"
)

// Named unique constraints on the accounts table. The database is the
// authoritative guard against duplicates; these names map violations back to
// the caller-facing errors.
const (
	emailConstraint    = "accounts_email_key"
	usernameConstraint = "accounts_username_key"
)

// DB is the subset of pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository implements auth.AccountRepository using PostgreSQL.
type AccountRepository struct {
	db DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create stores a new account. Unique-constraint violations are mapped to
// auth.ErrDuplicateAccount (email) or auth.ErrUsernameTaken (username).
func (r *AccountRepository) Create(ctx context.Context, account *auth.Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (
			id, email, username, password_hash, profile_pic_src,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		account.ID.String(),
		account.Email,
		account.Username,
		account.PasswordHash,
		account.ProfilePicSrc,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			With("username", account.Username).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, username, password_hash, profile_pic_src,
		       created_at, updated_at
		FROM accounts
		WHERE id = $1
	`, id.String())

	account, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_ID_FAILED").
			With("operation", "get account by id").
			With("id", id.String()).
			Wrap(err)
	}
	return account, nil
}

// GetByUsername retrieves an account by username (case-insensitive).
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*auth.Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, username, password_hash, profile_pic_src,
		       created_at, updated_at
		FROM accounts
		WHERE LOWER(username) = LOWER($1)
	`, username)

	account, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_USERNAME_FAILED").
			With("operation", "get account by username").
			With("username", username).
			Wrap(err)
	}
	return account, nil
}

// ExistsByEmail reports whether an account with the email exists (case-insensitive).
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))
	`, email).Scan(&exists)
	if err != nil {
		return false, oops.Code("ACCOUNT_EXISTS_BY_EMAIL_FAILED").
			With("operation", "check email existence").
			Wrap(err)
	}
	return exists, nil
}

// UpdateUsername changes an account's username.
func (r *AccountRepository) UpdateUsername(ctx context.Context, id ulid.ULID, username string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE accounts SET username = $2, updated_at = $3
		WHERE id = $1
	`, id.String(), username, time.Now())
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return oops.Code("ACCOUNT_UPDATE_USERNAME_FAILED").
			With("operation", "update username").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// UpdateProfilePic replaces the profile picture source and returns the old one.
func (r *AccountRepository) UpdateProfilePic(ctx context.Context, id ulid.ULID, src string) (*string, error) {
	var old *string
	err := r.db.QueryRow(ctx, `
		UPDATE accounts SET profile_pic_src = $2, updated_at = $3
		WHERE id = $1
		RETURNING (
			SELECT profile_pic_src FROM accounts WHERE id = $1
		)
	`, id.String(), src, time.Now()).Scan(&old)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_UPDATE_PROFILE_PIC_FAILED").
			With("operation", "update profile picture").
			With("id", id.String()).
			Wrap(err)
	}
	return old, nil
}

// mapUniqueViolation translates a unique-constraint violation into the
// corresponding auth sentinel, or returns nil for any other error.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case emailConstraint:
		return oops.Code("AUTH_DUPLICATE_ACCOUNT").Wrap(auth.ErrDuplicateAccount)
	case usernameConstraint:
		return oops.Code("AUTH_USERNAME_TAKEN").Wrap(auth.ErrUsernameTaken)
	default:
		return nil
	}
}

// scanAccount scans a single row into an Account.
// Callers are responsible for handling pgx.ErrNoRows.
func scanAccount(row pgx.Row) (*auth.Account, error) {
	var (
		idStr         string
		email         string
		username      string
		passwordHash  string
		profilePicSrc *string
		createdAt     time.Time
		updatedAt     time.Time
	)
	if err := row.Scan(&idStr, &email, &username, &passwordHash, &profilePicSrc, &createdAt, &updatedAt); err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with operation context
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("ACCOUNT_CORRUPT_ID").With("id", idStr).Wrap(err)
	}

	return &auth.Account{
		ID:            id,
		Email:         email,
		Username:      username,
		PasswordHash:  passwordHash,
		ProfilePicSrc: profilePicSrc,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}
