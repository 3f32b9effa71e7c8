// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package content

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Feed size bounds. Requests outside the range are clamped, not rejected.
const (
	DefaultFeedLimit = 25
	MaxFeedLimit     = 100
)

// Service provides validation and authorization in front of the content
// repositories.
type Service struct {
	communities CommunityRepository
	posts       PostRepository
	follows     FollowRepository
}

// NewService creates a new Service.
func NewService(communities CommunityRepository, posts PostRepository, follows FollowRepository) (*Service, error) {
	if communities == nil {
		return nil, oops.Errorf("communities repository is required")
	}
	if posts == nil {
		return nil, oops.Errorf("posts repository is required")
	}
	if follows == nil {
		return nil, oops.Errorf("follows repository is required")
	}
	return &Service{communities: communities, posts: posts, follows: follows}, nil
}

// ListCommunities returns all communities.
func (s *Service) ListCommunities(ctx context.Context) ([]Community, error) {
	return s.communities.List(ctx)
}

// GetCommunity retrieves a community by name.
func (s *Service) GetCommunity(ctx context.Context, name string) (*Community, error) {
	return s.communities.GetByName(ctx, name)
}

// JoinCommunity adds the account to the named community.
func (s *Service) JoinCommunity(ctx context.Context, name string, accountID ulid.ULID) error {
	community, err := s.communities.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.communities.Join(ctx, community.ID, accountID)
}

// LeaveCommunity removes the account from the named community.
func (s *Service) LeaveCommunity(ctx context.Context, name string, accountID ulid.ULID) error {
	community, err := s.communities.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.communities.Leave(ctx, community.ID, accountID)
}

// CreatePost validates and stores a new post. When communityName is non-empty
// the post is scoped to that community.
func (s *Service) CreatePost(ctx context.Context, kind PostKind, title, body string, mediaSrc *string, authorID ulid.ULID, communityName string) (*Post, error) {
	var communityID *ulid.ULID
	if communityName != "" {
		community, err := s.communities.GetByName(ctx, communityName)
		if err != nil {
			return nil, err
		}
		communityID = &community.ID
	}

	post, err := NewPost(kind, title, body, mediaSrc, authorID, communityID)
	if err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, oops.Code("POST_CREATE_FAILED").
			With("operation", "insert post").
			Wrap(err)
	}
	return post, nil
}

// GetPost retrieves a post by ID.
func (s *Service) GetPost(ctx context.Context, id ulid.ULID) (*Post, error) {
	return s.posts.GetByID(ctx, id)
}

// DeletePost removes a post. Only the author may delete it.
func (s *Service) DeletePost(ctx context.Context, id, callerID ulid.ULID) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return oops.Code("POST_FORBIDDEN").Wrap(ErrNotAuthor)
	}
	return s.posts.Delete(ctx, id)
}

// Feed returns the viewer's feed, newest first. The limit is clamped to
// [1, MaxFeedLimit]; zero or negative requests get DefaultFeedLimit.
func (s *Service) Feed(ctx context.Context, viewerID ulid.ULID, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	return s.posts.Feed(ctx, viewerID, limit)
}

// Follow records follower following followed.
func (s *Service) Follow(ctx context.Context, followerID, followedID ulid.ULID) error {
	if followerID == followedID {
		return oops.Code("FOLLOW_SELF").Wrap(ErrSelfFollow)
	}
	return s.follows.Follow(ctx, followerID, followedID)
}

// Unfollow removes the relation.
func (s *Service) Unfollow(ctx context.Context, followerID, followedID ulid.ULID) error {
	if followerID == followedID {
		return oops.Code("FOLLOW_SELF").Wrap(ErrSelfFollow)
	}
	return s.follows.Unfollow(ctx, followerID, followedID)
}
