// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/quibble/quibble/pkg/errutil"
)

// mailDispatchTimeout bounds the detached send; the signup call itself never
// waits on it.
const mailDispatchTimeout = 30 * time.Second

// Registrar orchestrates account creation: signup issues a verification token
// and dispatches it by email, registration redeems the token into a credential
// record.
type Registrar struct {
	accounts AccountRepository
	hasher   PasswordHasher
	verifier *VerificationCodec
	mailer   Mailer
	logger   *slog.Logger
}

// NewRegistrar creates a new Registrar.
func NewRegistrar(accounts AccountRepository, hasher PasswordHasher, verifier *VerificationCodec, mailer Mailer) (*Registrar, error) {
	return NewRegistrarWithLogger(accounts, hasher, verifier, mailer, slog.Default())
}

// NewRegistrarWithLogger creates a new Registrar with an explicit logger.
func NewRegistrarWithLogger(accounts AccountRepository, hasher PasswordHasher, verifier *VerificationCodec, mailer Mailer, logger *slog.Logger) (*Registrar, error) {
	if accounts == nil {
		return nil, oops.Errorf("accounts repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if verifier == nil {
		return nil, oops.Errorf("verification codec is required")
	}
	if mailer == nil {
		return nil, oops.Errorf("mailer is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Registrar{
		accounts: accounts,
		hasher:   hasher,
		verifier: verifier,
		mailer:   mailer,
		logger:   logger,
	}, nil
}

// Signup issues a verification token for the email and dispatches it.
//
// The email existence pre-check is intentional: the side effect (sending mail)
// must not happen for an already-registered address. The authoritative guard
// against duplicate rows remains the store's unique constraint at Register
// time. Success means the token was issued, not that the mail was delivered.
func (r *Registrar) Signup(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}

	exists, err := r.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "check existing email").
			Wrap(err)
	}
	if exists {
		return oops.Code("AUTH_DUPLICATE_ACCOUNT").Wrap(ErrDuplicateAccount)
	}

	token, err := r.verifier.Issue(email)
	if err != nil {
		return oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "issue verification token").
			Wrap(err)
	}

	// Fire-and-forget: the request must not wait on, retry, or fail with the
	// send. WithoutCancel detaches the send from the request lifetime.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailDispatchTimeout)
	go func() {
		defer cancel()
		if sendErr := r.mailer.SendVerification(sendCtx, email, token); sendErr != nil {
			errutil.LogError(r.logger, "verification email dispatch failed", sendErr)
		}
	}()

	return nil
}

// Register redeems a verification token into a credential record.
//
// The token proves control of the embedded email address; username and
// password come from the request. Uniqueness conflicts are detected by the
// store's constraints and mapped to ErrDuplicateAccount or ErrUsernameTaken.
func (r *Registrar) Register(ctx context.Context, token, username, password string) (*Account, error) {
	email, err := r.verifier.Validate(token)
	if err != nil {
		return nil, err
	}

	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	hash, err := r.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, ErrEmptyPassword) {
			return nil, err
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	account, err := NewAccount(email, username, hash)
	if err != nil {
		return nil, err
	}

	if err := r.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrDuplicateAccount) || errors.Is(err, ErrUsernameTaken) {
			return nil, err
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "insert account").
			Wrap(err)
	}

	return account, nil
}
