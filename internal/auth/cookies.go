// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package auth

import (
	"net/http"
	"time"
)

// Session cookie names. Clients never see token values outside these cookies.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CookieManager translates issued token pairs into outbound cookie directives.
// Pure side-effect component: it performs no validation of its own.
type CookieManager struct {
	accessMaxAge  time.Duration
	refreshMaxAge time.Duration
}

// NewCookieManager creates a CookieManager whose cookie lifetimes match the
// corresponding token expirations.
func NewCookieManager(accessTTL, refreshTTL time.Duration) *CookieManager {
	return &CookieManager{accessMaxAge: accessTTL, refreshMaxAge: refreshTTL}
}

// Set writes both session cookies for the pair.
func (m *CookieManager) Set(w http.ResponseWriter, pair *TokenPair) {
	setCookie(w, AccessTokenCookie, pair.AccessToken, int(m.accessMaxAge.Seconds()))
	setCookie(w, RefreshTokenCookie, pair.RefreshToken, int(m.refreshMaxAge.Seconds()))
}

// Clear expires both session cookies immediately. Idempotent; clearing cookies
// that were never set is harmless.
func (m *CookieManager) Clear(w http.ResponseWriter) {
	clearCookie(w, AccessTokenCookie)
	clearCookie(w, RefreshTokenCookie)
}

func setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
