package service

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is returned when a key is not in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// StoredObject describes a file written to document storage.
type StoredObject struct {
	Key         string
	URL         string
	Size        int64
	ContentType string
}

// DocumentStorage stores uploaded documents in an object bucket.
type DocumentStorage interface {
	// Put writes the content under key.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (*StoredObject, error)

	// Open returns a reader over a stored object. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object under key. A missing key is ErrObjectNotFound.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the key is stored.
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the canonical URL of key.
	URL(key string) string

	// PublicURL returns a URL readable without authentication, valid for ttl
	// when the bucket can sign URLs.
	PublicURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Close releases the bucket.
	Close() error
}
