// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

// Package media issues presigned S3 upload URLs for user media.
//
// Clients upload avatars and post media directly to object storage. The
// server never proxies the bytes. It hands out a short-lived presigned PUT
// URL together with the object key the client must use, and stores only the
// key.
package media

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// UploadTTL is how long a presigned upload URL stays valid.
const UploadTTL = 15 * time.Minute

// Presigner is the subset of s3.PresignClient Storage uses.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Upload is a presigned upload slot. The client PUTs the bytes to URL and
// the server records Key.
type Upload struct {
	Key string
	URL string
}

// Storage issues presigned uploads against a single bucket.
type Storage struct {
	presigner Presigner
	bucket    string
}

// Config holds the object storage connection settings.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// New connects to the configured object store and returns a Storage.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, oops.Errorf("bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, oops.Code("MEDIA_CONFIG_FAILED").
			With("operation", "load aws config").
			Wrap(err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Storage{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
	}, nil
}

// PresignAvatarUpload returns an upload slot for an account's profile
// picture. Each call yields a fresh key so stale CDN caches never serve a
// replaced avatar.
func (s *Storage) PresignAvatarUpload(ctx context.Context, accountID ulid.ULID) (*Upload, error) {
	key := fmt.Sprintf("avatars/%s/%s", accountID.String(), ulid.Make().String())
	return s.presign(ctx, key)
}

// PresignPostMediaUpload returns an upload slot for post media.
func (s *Storage) PresignPostMediaUpload(ctx context.Context, authorID ulid.ULID) (*Upload, error) {
	key := fmt.Sprintf("media/%s/%s", authorID.String(), ulid.Make().String())
	return s.presign(ctx, key)
}

func (s *Storage) presign(ctx context.Context, key string) (*Upload, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(UploadTTL))
	if err != nil {
		return nil, oops.Code("MEDIA_PRESIGN_FAILED").
			With("operation", "presign put").
			With("key", key).
			Wrap(err)
	}
	return &Upload{Key: key, URL: req.URL}, nil
}
