// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/samber/oops"

	"github.com/quibble/quibble/internal/auth"
	"github.com/quibble/quibble/internal/content"
	"github.com/quibble/quibble/pkg/errutil"
)

// maxBodyBytes bounds request bodies. Every API payload is small JSON.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // client may disconnect mid-write
	json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int) {
	writeJSON(w, status, successResponse{Success: true})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return oops.Code("BAD_REQUEST").Wrap(err)
	}
	return nil
}

func badRequestf(format string, args ...any) error {
	return oops.Code("BAD_REQUEST").Errorf(format, args...)
}

// validationCodes are oops codes whose message is safe to show clients as a
// 400. Everything unrecognized collapses to an opaque 500.
var validationCodes = map[string]struct{}{
	"AUTH_INVALID_EMAIL":    {},
	"AUTH_INVALID_USERNAME": {},
	"AUTH_INVALID_ACCOUNT":  {},
	"AUTH_EMPTY_PASSWORD":   {},
	"POST_INVALID":          {},
	"BAD_REQUEST":           {},
}

// writeError maps a domain error onto a status code and a client-safe body.
func (a *API) writeError(w http.ResponseWriter, err error) {
	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		errutil.LogError(a.logger, "request failed", err)
	}
	writeJSON(w, status, errorResponse{Error: message})
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrDuplicateAccount),
		errors.Is(err, auth.ErrUsernameTaken):
		return http.StatusConflict, unwrappedMessage(err)
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, unwrappedMessage(err)
	case errors.Is(err, auth.ErrNotFound),
		errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, content.ErrNotAuthor):
		return http.StatusForbidden, content.ErrNotAuthor.Error()
	case errors.Is(err, content.ErrSelfFollow):
		return http.StatusBadRequest, content.ErrSelfFollow.Error()
	}

	if oopsErr, ok := oops.AsOops(err); ok {
		if code, ok := oopsErr.Code().(string); ok {
			if _, isValidation := validationCodes[code]; isValidation {
				return http.StatusBadRequest, unwrappedMessage(err)
			}
		}
	}

	return http.StatusInternalServerError, "internal server error"
}

// unwrappedMessage returns the innermost error message, stripping the oops
// context wrappers that are meant for logs rather than clients.
func unwrappedMessage(err error) string {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}
