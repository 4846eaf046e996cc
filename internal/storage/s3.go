package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3 struct {
	Client        *s3.Client
	Presigner     *s3.PresignClient
	Bucket        string
	Prefix        string
	PublicBaseURL string
	PresignTTL    time.Duration
}

// S3Config: with an empty PublicBaseURL the bucket is treated as private
// and image URLs are presigned for PresignTTL.
type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
	PresignTTL    time.Duration
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 15 * time.Minute
	}
	client := s3.NewFromConfig(awsCfg)
	return &S3{
		Client:        client,
		Presigner:     s3.NewPresignClient(client),
		Bucket:        cfg.Bucket,
		Prefix:        cfg.Prefix,
		PublicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		PresignTTL:    cfg.PresignTTL,
	}, nil
}

func (s *S3) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	key := uuid.NewString() + safeExt(in.Filename)
	if s.Prefix != "" {
		key = strings.Trim(s.Prefix, "/") + "/" + key
	}

	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.Bucket,
		Key:         &key,
		Body:        r,
		ContentType: &in.ContentType,
	})
	if err != nil {
		return PutResult{}, err
	}

	url, err := s.URL(ctx, key)
	if err != nil {
		return PutResult{}, err
	}
	return PutResult{Key: key, URL: url}, nil
}

func (s *S3) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if s.PublicBaseURL != "" {
		return s.PublicBaseURL + "/" + key, nil
	}
	req, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *S3) String() string { return fmt.Sprintf("s3(%s/%s)", s.Bucket, s.Prefix) }
