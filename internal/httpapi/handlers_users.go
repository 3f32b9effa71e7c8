// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/quibble/quibble/internal/auth"
)

type profileResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	ProfilePicSrc *string   `json:"profile_pic_src"`
	CreatedAt     time.Time `json:"created_at"`
}

type meResponse struct {
	profileResponse
	Email string `json:"email"`
}

type updateUsernameRequest struct {
	Username string `json:"username"`
}

type avatarUploadResponse struct {
	UploadURL string `json:"upload_url"`
	Src       string `json:"src"`
}

func toProfile(account *auth.Account) profileResponse {
	return profileResponse{
		ID:            account.ID.String(),
		Username:      account.Username,
		ProfilePicSrc: account.ProfilePicSrc,
		CreatedAt:     account.CreatedAt,
	}
}

// handleGetProfile returns a public profile. The email never leaves here.
func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	account, err := a.accounts.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfile(account))
}

// handleMe returns the authenticated account, email included.
func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	account := AccountFrom(r.Context())
	writeJSON(w, http.StatusOK, meResponse{
		profileResponse: toProfile(account),
		Email:           account.Email,
	})
}

// handleUpdateUsername renames the authenticated account.
func (a *API) handleUpdateUsername(w http.ResponseWriter, r *http.Request) {
	var req updateUsernameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	if err := auth.ValidateUsername(req.Username); err != nil {
		a.writeError(w, err)
		return
	}

	account := AccountFrom(r.Context())
	if err := a.accounts.UpdateUsername(r.Context(), account.ID, req.Username); err != nil {
		a.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK)
}

// handleAvatarUpload reserves an object key for a new profile picture and
// returns a presigned PUT URL the client uploads to. The account record
// points at the new key immediately; a client that never uploads just shows
// a broken avatar until it retries.
func (a *API) handleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	account := AccountFrom(r.Context())

	upload, err := a.storage.PresignAvatarUpload(r.Context(), account.ID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if _, err := a.accounts.UpdateProfilePic(r.Context(), account.ID, upload.Key); err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, avatarUploadResponse{
		UploadURL: upload.URL,
		Src:       upload.Key,
	})
}

// handleFollow makes the caller follow the named account.
func (a *API) handleFollow(w http.ResponseWriter, r *http.Request) {
	caller := AccountFrom(r.Context())

	target, err := a.accounts.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	if err := a.content.Follow(r.Context(), caller.ID, target.ID); err != nil {
		a.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK)
}

// handleUnfollow removes the follow relation.
func (a *API) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	caller := AccountFrom(r.Context())

	target, err := a.accounts.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	if err := a.content.Unfollow(r.Context(), caller.ID, target.ID); err != nil {
		a.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK)
}
