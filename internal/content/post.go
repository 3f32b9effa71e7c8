// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package content

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MaxTitleLength bounds post titles.
const MaxTitleLength = 300

// PostKind distinguishes text submissions from media submissions.
type PostKind string

// Post kinds.
const (
	PostKindText  PostKind = "text"
	PostKindMedia PostKind = "media"
)

// Post is a submission by an account, optionally scoped to a community.
type Post struct {
	ID          ulid.ULID
	Kind        PostKind
	Title       string
	Body        string
	MediaSrc    *string
	AuthorID    ulid.ULID
	CommunityID *ulid.ULID
	CreatedAt   time.Time
}

// NewPost creates a validated Post with a fresh ID.
func NewPost(kind PostKind, title, body string, mediaSrc *string, authorID ulid.ULID, communityID *ulid.ULID) (*Post, error) {
	if title == "" {
		return nil, oops.Code("POST_INVALID").Errorf("title cannot be empty")
	}
	if len(title) > MaxTitleLength {
		return nil, oops.Code("POST_INVALID").
			With("max", MaxTitleLength).
			Errorf("title must be at most %d characters", MaxTitleLength)
	}

	switch kind {
	case PostKindText:
		if mediaSrc != nil {
			return nil, oops.Code("POST_INVALID").Errorf("text posts cannot carry media")
		}
	case PostKindMedia:
		if mediaSrc == nil || *mediaSrc == "" {
			return nil, oops.Code("POST_INVALID").Errorf("media posts require a media source")
		}
	default:
		return nil, oops.Code("POST_INVALID").With("kind", string(kind)).Errorf("unknown post kind")
	}

	return &Post{
		ID:          ulid.Make(),
		Kind:        kind,
		Title:       title,
		Body:        body,
		MediaSrc:    mediaSrc,
		AuthorID:    authorID,
		CommunityID: communityID,
		CreatedAt:   time.Now(),
	}, nil
}

// PostRepository manages post persistence.
type PostRepository interface {
	// Create stores a new post.
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Post, error)

	// Delete removes a post by ID.
	Delete(ctx context.Context, id ulid.ULID) error

	// Feed returns the newest posts authored by accounts the viewer follows or
	// submitted to communities the viewer has joined, newest first.
	Feed(ctx context.Context, viewerID ulid.ULID, limit int) ([]Post, error)
}

// FollowRepository manages follow relations between accounts.
type FollowRepository interface {
	// Follow records follower following followed. Following twice is a no-op.
	Follow(ctx context.Context, followerID, followedID ulid.ULID) error

	// Unfollow removes the relation. Unfollowing a non-followed account is a
	// no-op.
	Unfollow(ctx context.Context, followerID, followedID ulid.ULID) error
}
