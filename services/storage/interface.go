package storage

import "context"

// StorageService defines the interface for image hosting operations.
type StorageService interface {
	// UploadFile uploads a local file into the destination folder and
	// returns the hosted URL.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a hosted file by its public ID.
	DeleteFile(ctx context.Context, publicID string) error
}
