// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quibble/quibble/internal/content"
)

var postRows = []string{"id", "kind", "title", "body", "media_src", "author_id", "community_id", "created_at"}

func testPost(t *testing.T, communityID *ulid.ULID) *content.Post {
	t.Helper()
	post, err := content.NewPost(content.PostKindText, "hello", "first post", nil, ulid.Make(), communityID)
	require.NoError(t, err)
	return post
}

func TestPostRepository_Create(t *testing.T) {
	communityID := ulid.Make()

	tests := []struct {
		name        string
		communityID *ulid.ULID
		setupMock   func(mock pgxmock.PgxPoolIface, post *content.Post)
		wantErr     bool
	}{
		{
			name: "inserts global post",
			setupMock: func(mock pgxmock.PgxPoolIface, post *content.Post) {
				mock.ExpectExec(`INSERT INTO posts`).
					WithArgs(
						post.ID.String(),
						"text",
						post.Title,
						post.Body,
						post.MediaSrc,
						post.AuthorID.String(),
						(*string)(nil),
						post.CreatedAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name:        "inserts community post",
			communityID: &communityID,
			setupMock: func(mock pgxmock.PgxPoolIface, post *content.Post) {
				id := communityID.String()
				mock.ExpectExec(`INSERT INTO posts`).
					WithArgs(
						post.ID.String(),
						"text",
						post.Title,
						post.Body,
						post.MediaSrc,
						post.AuthorID.String(),
						&id,
						post.CreatedAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface, post *content.Post) {
				mock.ExpectExec(`INSERT INTO posts`).
					WithArgs(
						post.ID.String(),
						"text",
						post.Title,
						post.Body,
						post.MediaSrc,
						post.AuthorID.String(),
						(*string)(nil),
						post.CreatedAt,
					).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			post := testPost(t, tt.communityID)
			tt.setupMock(mock, post)

			repo := NewPostRepository(mock)
			err = repo.Create(context.Background(), post)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestPostRepository_GetByID(t *testing.T) {
	id := ulid.Make()
	authorID := ulid.Make()
	communityID := ulid.Make()
	communityIDStr := communityID.String()
	media := "media/cat.png"
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		check     func(t *testing.T, got *content.Post)
		wantErr   error
		errMsg    string
	}{
		{
			name: "text post",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(postRows).
					AddRow(id.String(), "text", "hello", "first post", nil, authorID.String(), nil, now)
				mock.ExpectQuery(`FROM posts`).
					WithArgs(id.String()).
					WillReturnRows(rows)
			},
			check: func(t *testing.T, got *content.Post) {
				assert.Equal(t, content.PostKindText, got.Kind)
				assert.Equal(t, authorID, got.AuthorID)
				assert.Nil(t, got.MediaSrc)
				assert.Nil(t, got.CommunityID)
			},
		},
		{
			name: "media post in community",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(postRows).
					AddRow(id.String(), "media", "cat", "", &media, authorID.String(), &communityIDStr, now)
				mock.ExpectQuery(`FROM posts`).
					WithArgs(id.String()).
					WillReturnRows(rows)
			},
			check: func(t *testing.T, got *content.Post) {
				assert.Equal(t, content.PostKindMedia, got.Kind)
				require.NotNil(t, got.MediaSrc)
				assert.Equal(t, media, *got.MediaSrc)
				require.NotNil(t, got.CommunityID)
				assert.Equal(t, communityID, *got.CommunityID)
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM posts`).
					WithArgs(id.String()).
					WillReturnRows(pgxmock.NewRows(postRows))
			},
			wantErr: content.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM posts`).
					WithArgs(id.String()).
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewPostRepository(mock)
			got, err := repo.GetByID(context.Background(), id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, id, got.ID)
				tt.check(t, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestPostRepository_Delete(t *testing.T) {
	id := ulid.Make()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "deletes post",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(id.String()).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "post missing",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(id.String()).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: content.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewPostRepository(mock)
			err = repo.Delete(context.Background(), id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestPostRepository_Feed(t *testing.T) {
	viewerID := ulid.Make()
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "returns newest posts first",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(postRows).
					AddRow(ulid.Make().String(), "text", "newer", "", nil, ulid.Make().String(), nil, now).
					AddRow(ulid.Make().String(), "text", "older", "", nil, ulid.Make().String(), nil, now.Add(-time.Hour))
				mock.ExpectQuery(`ORDER BY created_at DESC`).
					WithArgs(viewerID.String(), 25).
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "empty feed",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`ORDER BY created_at DESC`).
					WithArgs(viewerID.String(), 25).
					WillReturnRows(pgxmock.NewRows(postRows))
			},
			wantLen: 0,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`ORDER BY created_at DESC`).
					WithArgs(viewerID.String(), 25).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewPostRepository(mock)
			got, err := repo.Feed(context.Background(), viewerID, 25)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, got, tt.wantLen)
				if tt.wantLen == 2 {
					assert.Equal(t, "newer", got[0].Title)
					assert.Equal(t, "older", got[1].Title)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}
