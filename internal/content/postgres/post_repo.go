// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/quibble/quibble/internal/content"
)

// PostRepository implements content.PostRepository using PostgreSQL.
type PostRepository struct {
	db DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, kind, title, body, media_src, author_id, community_id, created_at`

// Create stores a new post.
func (r *PostRepository) Create(ctx context.Context, post *content.Post) error {
	var communityID *string
	if post.CommunityID != nil {
		s := post.CommunityID.String()
		communityID = &s
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO posts (id, kind, title, body, media_src, author_id, community_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		post.ID.String(),
		string(post.Kind),
		post.Title,
		post.Body,
		post.MediaSrc,
		post.AuthorID.String(),
		communityID,
		post.CreatedAt,
	)
	if err != nil {
		return oops.Code("POST_CREATE_FAILED").
			With("operation", "insert post").
			With("post_id", post.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a post by ID.
func (r *PostRepository) GetByID(ctx context.Context, id ulid.ULID) (*content.Post, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id = $1
	`, id.String())

	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("POST_NOT_FOUND").
			With("post_id", id.String()).
			Wrap(content.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("POST_GET_FAILED").
			With("operation", "get post by id").
			With("post_id", id.String()).
			Wrap(err)
	}
	return post, nil
}

// Delete removes a post by ID.
func (r *PostRepository) Delete(ctx context.Context, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("POST_DELETE_FAILED").
			With("operation", "delete post").
			With("post_id", id.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("POST_NOT_FOUND").
			With("post_id", id.String()).
			Wrap(content.ErrNotFound)
	}
	return nil
}

// Feed returns the newest posts from followed authors and joined communities.
func (r *PostRepository) Feed(ctx context.Context, viewerID ulid.ULID, limit int) ([]content.Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE author_id IN (SELECT followed_id FROM follows WHERE follower_id = $1)
		   OR community_id IN (SELECT community_id FROM community_members WHERE account_id = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, viewerID.String(), limit)
	if err != nil {
		return nil, oops.Code("FEED_FAILED").
			With("operation", "query feed").
			With("viewer_id", viewerID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, oops.Code("FEED_FAILED").
				With("operation", "scan feed row").
				Wrap(err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("FEED_FAILED").
			With("operation", "iterate feed").
			Wrap(err)
	}
	return posts, nil
}

func scanPost(row pgx.Row) (*content.Post, error) {
	var (
		idStr          string
		kind           string
		authorIDStr    string
		communityIDStr *string
		post           content.Post
	)
	err := row.Scan(&idStr, &kind, &post.Title, &post.Body, &post.MediaSrc, &authorIDStr, &communityIDStr, &post.CreatedAt)
	if err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with operation context
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("POST_CORRUPT_ID").With("id", idStr).Wrap(err)
	}
	authorID, err := ulid.Parse(authorIDStr)
	if err != nil {
		return nil, oops.Code("POST_CORRUPT_ID").With("author_id", authorIDStr).Wrap(err)
	}
	if communityIDStr != nil {
		communityID, err := ulid.Parse(*communityIDStr)
		if err != nil {
			return nil, oops.Code("POST_CORRUPT_ID").With("community_id", *communityIDStr).Wrap(err)
		}
		post.CommunityID = &communityID
	}

	post.ID = id
	post.Kind = content.PostKind(kind)
	post.AuthorID = authorID
	return &post, nil
}
