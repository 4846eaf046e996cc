package storage

import (
	"context"
	"io"
)

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

// Storage keeps product images. URL turns a stored key into something a
// browser can load; it may be time limited (S3 presigned links).
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	URL(ctx context.Context, key string) (string, error)
}
