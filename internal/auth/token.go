// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// VerificationTokenTTL is the fixed validity window for email verification
// tokens, measured from issuance.
const VerificationTokenTTL = 24 * time.Hour

// signingMethods restricts token parsing to the single algorithm we sign with.
var signingMethods = []string{jwt.SigningMethodHS256.Alg()}

// verificationClaims binds an email address to an issuance window.
type verificationClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// VerificationCodec issues and validates stateless email verification tokens.
// Tokens are HS256-signed and carry no server-side record: validity is
// signature integrity plus the 24-hour expiry, nothing else.
type VerificationCodec struct {
	secret []byte
}

// NewVerificationCodec creates a codec signing with the given secret.
func NewVerificationCodec(secret []byte) (*VerificationCodec, error) {
	if len(secret) == 0 {
		return nil, oops.Code("AUTH_CODEC_INVALID").Errorf("verification secret is required")
	}
	return &VerificationCodec{secret: secret}, nil
}

// Issue signs a token binding the email address, valid for VerificationTokenTTL.
func (c *VerificationCodec) Issue(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, verificationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(VerificationTokenTTL)),
		},
		Email: email,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the bound email address.
// Malformed input, a bad signature, and an expired token all collapse into the
// same ErrInvalidToken so callers cannot tell which check failed.
func (c *VerificationCodec) Validate(tokenString string) (string, error) {
	claims := &verificationClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods(signingMethods))
	if err != nil || !token.Valid || claims.Email == "" {
		return "", oops.Code("AUTH_INVALID_TOKEN").Wrap(ErrInvalidToken)
	}
	return claims.Email, nil
}

// TokenPair bundles a short-lived access token and a longer-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// sessionClaims binds a user identity to an issuance window.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// SessionCodec issues and validates stateless session token pairs. Both tokens
// of a pair are signed with the same secret but carry independent expirations.
type SessionCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewSessionCodec creates a codec with the given secret and per-kind TTLs.
func NewSessionCodec(secret []byte, accessTTL, refreshTTL time.Duration) (*SessionCodec, error) {
	if len(secret) == 0 {
		return nil, oops.Code("AUTH_CODEC_INVALID").Errorf("session secret is required")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, oops.Code("AUTH_CODEC_INVALID").Errorf("token TTLs must be positive")
	}
	return &SessionCodec{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// Issue signs an access/refresh pair bound to the given user ID.
func (c *SessionCodec) Issue(userID string) (*TokenPair, error) {
	access, err := c.sign(userID, c.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := c.sign(userID, c.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateAccess verifies an access token and returns the bound user ID.
// Any structural or temporal failure yields ErrUnauthenticated.
func (c *SessionCodec) ValidateAccess(tokenString string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods(signingMethods))
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", oops.Code("AUTH_UNAUTHENTICATED").Wrap(ErrUnauthenticated)
	}
	return claims.UserID, nil
}

// AccessTTL returns the configured access token lifetime.
func (c *SessionCodec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (c *SessionCodec) RefreshTTL() time.Duration { return c.refreshTTL }

func (c *SessionCodec) sign(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}
