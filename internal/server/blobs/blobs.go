// Package blobs stores the raw content of file entries outside the metadata
// store. A locator returned by Save is opaque to callers and is later passed
// back to Load or Delete.
package blobs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/google/uuid"
)

// Persister writes immutable blobs and hands back their locator.
type Persister interface {
	Save(ctx context.Context, data []byte) (string, error)
	Load(ctx context.Context, locator string) ([]byte, error)
	Delete(ctx context.Context, locator string) error
}

// newName is a seam for tests.
var newName = func() string { return uuid.NewString() }

// New builds the persister selected by cfg.BlobBackend.
func New(ctx context.Context, cfg *config.Config) (Persister, error) {
	switch cfg.BlobBackend {
	case "filesystem":
		return NewFilesystemPersister(cfg.FolderPath), nil
	case "s3":
		return NewS3Persister(ctx, S3Options{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			KeyPrefix:       cfg.S3KeyPrefix,
			Endpoint:        cfg.S3BaseEndpoint,
			AccessKeyID:     cfg.S3RootUser,
			SecretAccessKey: cfg.S3RootPassword,
		})
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: blob %s: %w", common.ErrStorage, op, err)
}
