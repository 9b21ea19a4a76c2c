package blobs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/filesmanager/internal/common"
)

// FilesystemPersister keeps one file per blob directly under root.
// The root directory is created on the first Save; a failed attempt is
// retried by the next one.
type FilesystemPersister struct {
	root string

	mu    sync.Mutex
	ready bool
}

func NewFilesystemPersister(root string) *FilesystemPersister {
	return &FilesystemPersister{root: root}
}

func (p *FilesystemPersister) ensureRoot() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := os.MkdirAll(p.root, 0o755); err != nil {
		return err
	}
	p.ready = true
	return nil
}

// Save writes data to a fresh file and returns its full path.
func (p *FilesystemPersister) Save(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := p.ensureRoot(); err != nil {
		return "", storageError("mkdir", err)
	}

	path := filepath.Join(p.root, newName())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", storageError("create", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", storageError("write", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", storageError("sync", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", storageError("close", err)
	}

	return path, nil
}

func (p *FilesystemPersister) Load(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(locator)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, storageError("read", err)
	}
	return data, nil
}

// Delete removes the blob. A missing blob is not an error.
func (p *FilesystemPersister) Delete(ctx context.Context, locator string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(locator); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return storageError("delete", err)
	}
	return nil
}
