// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/quibble/quibble/internal/content"
)

type communityResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	MemberCount int       `json:"member_count"`
}

type postResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	MediaSrc    *string   `json:"media_src"`
	AuthorID    string    `json:"author_id"`
	CommunityID *string   `json:"community_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type createPostRequest struct {
	Kind      string  `json:"kind"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	MediaSrc  *string `json:"media_src"`
	Community string  `json:"community"`
}

func toCommunity(c content.Community) communityResponse {
	return communityResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		MemberCount: c.MemberCount,
	}
}

func toPost(p content.Post) postResponse {
	resp := postResponse{
		ID:        p.ID.String(),
		Kind:      string(p.Kind),
		Title:     p.Title,
		Body:      p.Body,
		MediaSrc:  p.MediaSrc,
		AuthorID:  p.AuthorID.String(),
		CreatedAt: p.CreatedAt,
	}
	if p.CommunityID != nil {
		id := p.CommunityID.String()
		resp.CommunityID = &id
	}
	return resp
}

func (a *API) handleListCommunities(w http.ResponseWriter, r *http.Request) {
	communities, err := a.content.ListCommunities(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	resp := make([]communityResponse, 0, len(communities))
	for _, c := range communities {
		resp = append(resp, toCommunity(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleGetCommunity(w http.ResponseWriter, r *http.Request) {
	community, err := a.content.GetCommunity(r.Context(), r.PathValue("name"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommunity(*community))
}

func (a *API) handleJoinCommunity(w http.ResponseWriter, r *http.Request) {
	account := AccountFrom(r.Context())
	if err := a.content.JoinCommunity(r.Context(), r.PathValue("name"), account.ID); err != nil {
		a.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK)
}

func (a *API) handleLeaveCommunity(w http.ResponseWriter, r *http.Request) {
	account := AccountFrom(r.Context())
	if err := a.content.LeaveCommunity(r.Context(), r.PathValue("name"), account.ID); err != nil {
		a.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK)
}

func (a *API) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	account := AccountFrom(r.Context())
	post, err := a.content.CreatePost(
		r.Context(),
		content.PostKind(req.Kind),
		req.Title,
		req.Body,
		req.MediaSrc,
		account.ID,
		req.Community,
	)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPost(*post))
}

func (a *API) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		a.writeError(w, content.ErrNotFound)
		return
	}

	post, err := a.content.GetPost(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPost(*post))
}

func (a *API) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		a.writeError(w, content.ErrNotFound)
		return
	}

	account := AccountFrom(r.Context())
	if err := a.content.DeletePost(r.Context(), id, account.ID); err != nil {
		a.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK)
}

func (a *API) handleFeed(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			a.writeError(w, badRequestf("limit must be an integer"))
			return
		}
		limit = parsed
	}

	account := AccountFrom(r.Context())
	posts, err := a.content.Feed(r.Context(), account.ID, limit)
	if err != nil {
		a.writeError(w, err)
		return
	}

	resp := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPost(p))
	}
	writeJSON(w, http.StatusOK, resp)
}
