// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package content

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Community is a named topic space accounts can join.
type Community struct {
	ID          ulid.ULID
	Name        string
	Title       string
	Description string
	CreatedAt   time.Time
	MemberCount int
}

// CommunityRepository manages community persistence and membership rows.
type CommunityRepository interface {
	// List returns all communities ordered by name.
	List(ctx context.Context) ([]Community, error)

	// GetByName retrieves a community by its unique name.
	GetByName(ctx context.Context, name string) (*Community, error)

	// Join adds the account to the community. Joining twice is a no-op.
	Join(ctx context.Context, communityID, accountID ulid.ULID) error

	// Leave removes the account from the community. Leaving a community the
	// account is not a member of is a no-op.
	Leave(ctx context.Context, communityID, accountID ulid.ULID) error
}
