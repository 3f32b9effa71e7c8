// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quibble/quibble/internal/auth"
	"github.com/quibble/quibble/pkg/errutil"
)

// signExpired crafts a token with the given claims that expired an hour ago,
// signed with the given secret.
func signExpired(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	claims["iat"] = time.Now().Add(-2 * time.Hour).Unix()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestNewVerificationCodec(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		codec, err := auth.NewVerificationCodec(nil)
		require.Error(t, err)
		assert.Nil(t, codec)
	})

	t.Run("accepts non-empty secret", func(t *testing.T) {
		codec, err := auth.NewVerificationCodec([]byte("secret"))
		require.NoError(t, err)
		assert.NotNil(t, codec)
	})
}

func TestVerificationCodec_Validate(t *testing.T) {
	secret := []byte("verification-secret")
	codec, err := auth.NewVerificationCodec(secret)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		token, err := codec.Issue("ada@example.com")
		require.NoError(t, err)

		email, err := codec.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", email)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := codec.Validate("not.a.jwt")
		require.ErrorIs(t, err, auth.ErrInvalidToken)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_TOKEN")
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := codec.Issue("ada@example.com")
		require.NoError(t, err)

		tampered := token[:len(token)-4] + "AAAA"
		_, err = codec.Validate(tampered)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := auth.NewVerificationCodec([]byte("different-secret"))
		require.NoError(t, err)
		token, err := other.Issue("ada@example.com")
		require.NoError(t, err)

		_, err = codec.Validate(token)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signExpired(t, secret, jwt.MapClaims{"email": "ada@example.com"})

		_, err := codec.Validate(token)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("valid just inside the expiry window", func(t *testing.T) {
		claims := jwt.MapClaims{
			"email": "ada@example.com",
			"iat":   time.Now().Add(-auth.VerificationTokenTTL + 5*time.Second).Unix(),
			"exp":   time.Now().Add(5 * time.Second).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)

		email, err := codec.Validate(signed)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", email)
	})

	t.Run("invalid just past the expiry window", func(t *testing.T) {
		claims := jwt.MapClaims{
			"email": "ada@example.com",
			"iat":   time.Now().Add(-auth.VerificationTokenTTL - 5*time.Second).Unix(),
			"exp":   time.Now().Add(-5 * time.Second).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)

		_, err = codec.Validate(signed)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing email claim", func(t *testing.T) {
		claims := jwt.MapClaims{
			"iat": time.Now().Unix(),
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString(secret)
		require.NoError(t, err)

		_, err = codec.Validate(signed)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		claims := jwt.MapClaims{
			"email": "ada@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Validate(signed)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("validation failures are uniform", func(t *testing.T) {
		expired := signExpired(t, secret, jwt.MapClaims{"email": "ada@example.com"})

		_, expiredErr := codec.Validate(expired)
		_, malformedErr := codec.Validate("garbage")

		require.Error(t, expiredErr)
		require.Error(t, malformedErr)
		assert.Equal(t, expiredErr.Error(), malformedErr.Error())
	})
}

func TestNewSessionCodec(t *testing.T) {
	tests := []struct {
		name       string
		secret     []byte
		accessTTL  time.Duration
		refreshTTL time.Duration
		wantErr    bool
	}{
		{
			name:       "valid",
			secret:     []byte("secret"),
			accessTTL:  15 * time.Minute,
			refreshTTL: 24 * time.Hour,
		},
		{
			name:       "empty secret",
			secret:     nil,
			accessTTL:  15 * time.Minute,
			refreshTTL: 24 * time.Hour,
			wantErr:    true,
		},
		{
			name:       "zero access TTL",
			secret:     []byte("secret"),
			accessTTL:  0,
			refreshTTL: 24 * time.Hour,
			wantErr:    true,
		},
		{
			name:       "negative refresh TTL",
			secret:     []byte("secret"),
			accessTTL:  15 * time.Minute,
			refreshTTL: -time.Hour,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := auth.NewSessionCodec(tt.secret, tt.accessTTL, tt.refreshTTL)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, codec)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.accessTTL, codec.AccessTTL())
				assert.Equal(t, tt.refreshTTL, codec.RefreshTTL())
			}
		})
	}
}

func TestSessionCodec_Issue(t *testing.T) {
	secret := []byte("session-secret")
	codec, err := auth.NewSessionCodec(secret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	userID := ulid.Make().String()

	t.Run("pair round trips through access validation", func(t *testing.T) {
		pair, err := codec.Issue(userID)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

		got, err := codec.ValidateAccess(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("expired access token", func(t *testing.T) {
		expired := signExpired(t, secret, jwt.MapClaims{"user_id": userID})

		_, err := codec.ValidateAccess(expired)
		require.ErrorIs(t, err, auth.ErrUnauthenticated)
		errutil.AssertErrorCode(t, err, "AUTH_UNAUTHENTICATED")
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := auth.NewSessionCodec([]byte("other-secret"), 15*time.Minute, 24*time.Hour)
		require.NoError(t, err)
		pair, err := other.Issue(userID)
		require.NoError(t, err)

		_, err = codec.ValidateAccess(pair.AccessToken)
		require.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("missing user_id claim", func(t *testing.T) {
		claims := jwt.MapClaims{
			"iat": time.Now().Unix(),
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString(secret)
		require.NoError(t, err)

		_, err = codec.ValidateAccess(signed)
		require.ErrorIs(t, err, auth.ErrUnauthenticated)
	})
}
