// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// FollowRepository implements content.FollowRepository using PostgreSQL.
type FollowRepository struct {
	db DB
}

// NewFollowRepository creates a new FollowRepository.
func NewFollowRepository(db DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Follow records follower following followed. Following twice is a no-op.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followedID ulid.ULID) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`, followerID.String(), followedID.String())
	if err != nil {
		return oops.Code("FOLLOW_FAILED").
			With("operation", "insert follow").
			With("follower_id", followerID.String()).
			Wrap(err)
	}
	return nil
}

// Unfollow removes the relation. Unfollowing a non-followed account is a no-op.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followedID ulid.ULID) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM follows
		WHERE follower_id = $1 AND followed_id = $2
	`, followerID.String(), followedID.String())
	if err != nil {
		return oops.Code("UNFOLLOW_FAILED").
			With("operation", "delete follow").
			With("follower_id", followerID.String()).
			Wrap(err)
	}
	return nil
}
