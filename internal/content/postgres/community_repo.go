// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

// Package postgres implements the content repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/quibble/quibble/internal/content"
)

// DB is the subset of pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CommunityRepository implements content.CommunityRepository using PostgreSQL.
type CommunityRepository struct {
	db DB
}

// NewCommunityRepository creates a new CommunityRepository.
func NewCommunityRepository(db DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

const communityColumns = `
	c.id, c.name, c.title, c.description, c.created_at,
	(SELECT COUNT(*) FROM community_members m WHERE m.community_id = c.id) AS member_count
`

// List returns all communities ordered by name.
func (r *CommunityRepository) List(ctx context.Context) ([]content.Community, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+communityColumns+`
		FROM communities c
		ORDER BY c.name
	`)
	if err != nil {
		return nil, oops.Code("COMMUNITY_LIST_FAILED").
			With("operation", "list communities").
			Wrap(err)
	}
	defer rows.Close()

	var communities []content.Community
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, oops.Code("COMMUNITY_LIST_FAILED").
				With("operation", "scan community row").
				Wrap(err)
		}
		communities = append(communities, *community)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("COMMUNITY_LIST_FAILED").
			With("operation", "iterate communities").
			Wrap(err)
	}
	return communities, nil
}

// GetByName retrieves a community by its unique name.
func (r *CommunityRepository) GetByName(ctx context.Context, name string) (*content.Community, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+communityColumns+`
		FROM communities c
		WHERE c.name = $1
	`, name)

	community, err := scanCommunity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("COMMUNITY_NOT_FOUND").
			With("name", name).
			Wrap(content.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("COMMUNITY_GET_FAILED").
			With("operation", "get community by name").
			With("name", name).
			Wrap(err)
	}
	return community, nil
}

// Join adds the account to the community. Joining twice is a no-op.
func (r *CommunityRepository) Join(ctx context.Context, communityID, accountID ulid.ULID) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO community_members (community_id, account_id)
		VALUES ($1, $2)
		ON CONFLICT (community_id, account_id) DO NOTHING
	`, communityID.String(), accountID.String())
	if err != nil {
		return oops.Code("COMMUNITY_JOIN_FAILED").
			With("operation", "insert membership").
			With("community_id", communityID.String()).
			Wrap(err)
	}
	return nil
}

// Leave removes the account from the community.
func (r *CommunityRepository) Leave(ctx context.Context, communityID, accountID ulid.ULID) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM community_members
		WHERE community_id = $1 AND account_id = $2
	`, communityID.String(), accountID.String())
	if err != nil {
		return oops.Code("COMMUNITY_LEAVE_FAILED").
			With("operation", "delete membership").
			With("community_id", communityID.String()).
			Wrap(err)
	}
	return nil
}

func scanCommunity(row pgx.Row) (*content.Community, error) {
	var (
		idStr       string
		name        string
		title       string
		description string
		community   content.Community
	)
	if err := row.Scan(&idStr, &name, &title, &description, &community.CreatedAt, &community.MemberCount); err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with operation context
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("COMMUNITY_CORRUPT_ID").With("id", idStr).Wrap(err)
	}

	community.ID = id
	community.Name = name
	community.Title = title
	community.Description = description
	return &community, nil
}
