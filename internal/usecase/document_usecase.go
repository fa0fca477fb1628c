package usecase

import (
	"context"
	"io"
)

// UploadInput is one uploaded document.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadOutput describes the stored document.
type UploadOutput struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"`
}

// DocumentUsecase stores compliance and booking documents.
type DocumentUsecase interface {
	// Upload stores a PDF under a versioned raw path.
	Upload(ctx context.Context, input *UploadInput) (*UploadOutput, error)

	// MakePublic extracts the object id from a stored document URL and returns
	// a URL readable without authentication.
	MakePublic(ctx context.Context, documentURL string) (string, error)

	// OpenUpload streams a stored upload by file name.
	OpenUpload(ctx context.Context, filename string) (io.ReadCloser, error)
}
