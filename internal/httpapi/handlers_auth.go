// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package httpapi

import (
	"errors"
	"net/http"

	"github.com/quibble/quibble/internal/auth"
	"github.com/quibble/quibble/internal/observability"
)

type signupRequest struct {
	Email string `json:"email"`
}

type registerRequest struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleSignup issues a verification token and dispatches it by email.
func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	if err := a.registrar.Signup(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateAccount):
			observability.RecordSignup("duplicate")
		default:
			observability.RecordSignup("error")
		}
		a.writeError(w, err)
		return
	}

	observability.RecordSignup("ok")
	writeSuccess(w, http.StatusOK)
}

// handleRegister redeems a verification token into an account.
func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	if _, err := a.registrar.Register(r.Context(), req.Token, req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			observability.RecordRegistration("invalid_token")
		case errors.Is(err, auth.ErrDuplicateAccount), errors.Is(err, auth.ErrUsernameTaken):
			observability.RecordRegistration("conflict")
		default:
			observability.RecordRegistration("error")
		}
		a.writeError(w, err)
		return
	}

	observability.RecordRegistration("ok")
	writeSuccess(w, http.StatusCreated)
}

// handleLogin verifies credentials and sets the session cookies.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	pair, err := a.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			observability.RecordLogin("invalid")
		} else {
			observability.RecordLogin("error")
		}
		a.writeError(w, err)
		return
	}

	observability.RecordLogin("ok")
	a.cookies.Set(w, pair)
	writeSuccess(w, http.StatusOK)
}

// handleLogout clears the session cookies. It needs no valid session: logging
// out twice, or with expired cookies, still succeeds.
func (a *API) handleLogout(w http.ResponseWriter, _ *http.Request) {
	a.cookies.Clear(w)
	writeSuccess(w, http.StatusOK)
}
