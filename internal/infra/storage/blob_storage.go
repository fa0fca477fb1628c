// Package storage keeps uploaded documents in a gocloud blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"cargomatch/config"
	"cargomatch/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets
	"gocloud.dev/gcerrors"
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// NewBlobStorage opens the bucket named by cfg.BucketURL.
func NewBlobStorage(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (service.DocumentStorage, error) {
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket url is required")
	}

	bucket, err := blob.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	return newBlobStorage(bucket, cfg.PublicBaseURL, logger), nil
}

func newBlobStorage(bucket *blob.Bucket, publicBaseURL string, logger *slog.Logger) *blobStorage {
	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Put streams r into the bucket under key.
func (s *blobStorage) Put(ctx context.Context, key string, r io.Reader, contentType string) (*service.StoredObject, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open object writer")
	}

	size, copyErr := io.Copy(w, r)
	closeErr := w.Close()
	if copyErr != nil {
		return nil, errors.Wrap(copyErr, "failed to write object")
	}
	if closeErr != nil {
		return nil, errors.Wrap(closeErr, "failed to commit object")
	}

	s.logger.DebugContext(ctx, "Document stored",
		slog.String("key", key),
		slog.Int64("size", size),
	)

	return &service.StoredObject{
		Key:         key,
		URL:         s.URL(key),
		Size:        size,
		ContentType: contentType,
	}, nil
}

// Open returns a reader over key.
func (s *blobStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, errors.Wrapf(service.ErrObjectNotFound, "key %s", key)
		}

		return nil, errors.Wrap(err, "failed to open object")
	}

	return r, nil
}

// Delete removes key from the bucket.
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return errors.Wrapf(service.ErrObjectNotFound, "key %s", key)
		}

		return errors.Wrap(err, "failed to delete object")
	}

	return nil
}

// Exists reports whether key is stored.
func (s *blobStorage) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return false, errors.Wrap(err, "failed to check object")
	}

	return ok, nil
}

// URL returns the canonical URL of key.
func (s *blobStorage) URL(key string) string {
	if s.publicBaseURL == "" {
		return key
	}

	return s.publicBaseURL + "/" + key
}

// PublicURL signs a read URL when the driver supports it and falls back to the canonical URL.
func (s *blobStorage) PublicURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	ok, err := s.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.Wrapf(service.ErrObjectNotFound, "key %s", key)
	}

	signed, err := s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{Expiry: ttl})
	if err == nil {
		return signed, nil
	}
	if gcerrors.Code(err) != gcerrors.Unimplemented {
		return "", errors.Wrap(err, "failed to sign url")
	}

	return s.URL(key), nil
}

// Close releases the bucket.
func (s *blobStorage) Close() error {
	return errors.WithStack(s.bucket.Close())
}
