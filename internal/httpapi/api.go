// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

// Package httpapi exposes the application over HTTP.
//
// It is a thin dispatch layer: handlers decode JSON, call the domain
// services, and map domain errors onto status codes. No business rules live
// here.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"
	"github.com/samber/oops"

	"github.com/quibble/quibble/internal/auth"
	"github.com/quibble/quibble/internal/content"
	"github.com/quibble/quibble/internal/media"
	"github.com/quibble/quibble/internal/observability"
)

// API bundles the domain services behind the route table.
type API struct {
	registrar *auth.Registrar
	sessions  *auth.Service
	cookies   *auth.CookieManager
	accounts  auth.AccountRepository
	content   *content.Service
	storage   *media.Storage
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewAPI creates the API. metrics may be nil when no observability server is
// running; everything else is required.
func NewAPI(
	registrar *auth.Registrar,
	sessions *auth.Service,
	cookies *auth.CookieManager,
	accounts auth.AccountRepository,
	contentSvc *content.Service,
	storage *media.Storage,
	metrics *observability.Metrics,
	logger *slog.Logger,
) (*API, error) {
	if registrar == nil {
		return nil, oops.Errorf("registrar is required")
	}
	if sessions == nil {
		return nil, oops.Errorf("auth service is required")
	}
	if cookies == nil {
		return nil, oops.Errorf("cookie manager is required")
	}
	if accounts == nil {
		return nil, oops.Errorf("accounts repository is required")
	}
	if contentSvc == nil {
		return nil, oops.Errorf("content service is required")
	}
	if storage == nil {
		return nil, oops.Errorf("media storage is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		registrar: registrar,
		sessions:  sessions,
		cookies:   cookies,
		accounts:  accounts,
		content:   contentSvc,
		storage:   storage,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Handler builds the route table. allowedOrigins feeds the CORS layer;
// credentials are always allowed because the session rides in cookies.
func (a *API) Handler(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	a.route(mux, "POST /api/auth/signup", a.handleSignup)
	a.route(mux, "POST /api/auth/register", a.handleRegister)
	a.route(mux, "POST /api/auth/login", a.handleLogin)
	a.route(mux, "POST /api/auth/logout", a.handleLogout)

	a.route(mux, "GET /api/users/{username}", a.handleGetProfile)
	a.route(mux, "GET /api/me", a.requireAuth(a.handleMe))
	a.route(mux, "PUT /api/me/username", a.requireAuth(a.handleUpdateUsername))
	a.route(mux, "POST /api/me/avatar", a.requireAuth(a.handleAvatarUpload))
	a.route(mux, "POST /api/users/{username}/follow", a.requireAuth(a.handleFollow))
	a.route(mux, "DELETE /api/users/{username}/follow", a.requireAuth(a.handleUnfollow))

	a.route(mux, "GET /api/communities", a.handleListCommunities)
	a.route(mux, "GET /api/communities/{name}", a.handleGetCommunity)
	a.route(mux, "POST /api/communities/{name}/join", a.requireAuth(a.handleJoinCommunity))
	a.route(mux, "DELETE /api/communities/{name}/join", a.requireAuth(a.handleLeaveCommunity))

	a.route(mux, "POST /api/posts", a.requireAuth(a.handleCreatePost))
	a.route(mux, "GET /api/posts/{id}", a.handleGetPost)
	a.route(mux, "DELETE /api/posts/{id}", a.requireAuth(a.handleDeletePost))
	a.route(mux, "GET /api/feed", a.requireAuth(a.handleFeed))

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(mux)
}

// route registers a handler wrapped with per-route instrumentation.
func (a *API) route(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	mux.Handle(pattern, a.instrument(pattern, handler))
}
