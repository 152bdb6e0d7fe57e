package storage

import (
	"context"
	"io"
)

// Storage defines the interface for image storage backends.
type Storage interface {
	// Upload stores an image under the given folder and returns the result
	// with the assigned key and public URL.
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)

	// Delete removes an image by its key.
	Delete(ctx context.Context, key string) error
}

// UploadInput holds the parameters for uploading an image.
type UploadInput struct {
	Folder      string
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult holds the result of a successful upload.
type UploadResult struct {
	Key string
	URL string
}
