package service

import (
	"context"
	"io"
)

// UploadedFile holds both the public URL (for display) and the storage path
// (for later deletion, e.g. the compensating cleanup when a listing insert
// fails after its images were uploaded).
type UploadedFile struct {
	URL  string
	Path string
}

type FileUploadService interface {
	// UploadImage stores the file under {ownerID}/{timestamp}-{random}.{ext}
	// and refuses to overwrite an existing object.
	UploadImage(ctx context.Context, file io.Reader, contentType, ownerID string) (*UploadedFile, error)
	DeleteFile(ctx context.Context, path string) error
	Close() error
}
