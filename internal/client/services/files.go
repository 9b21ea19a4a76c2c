package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/filesmanager/internal/client/client"
	"github.com/dmitrijs2005/filesmanager/internal/client/models"
	"github.com/dmitrijs2005/filesmanager/internal/filex"
	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadSize bounds what the CLI sends in a single JSON request.
const MaxUploadSize = 32 << 20

// ErrEmptyUpload is returned for files with no content; the server has no
// way to store them.
var ErrEmptyUpload = errors.New("file is empty")

// readUpload is a seam for tests.
var readUpload = filex.ReadUpload

type FileService interface {
	Mkdir(ctx context.Context, name string, parentID int64, public bool) (*models.Entry, error)
	Upload(ctx context.Context, path string, parentID int64, public bool) (*models.Entry, error)
	Get(ctx context.Context, id int64) (*models.Entry, error)
	List(ctx context.Context, parentID int64, page int) ([]*models.Entry, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

type fileService struct {
	client client.Client
}

func NewFileService(c client.Client) FileService {
	return &fileService{client: c}
}

func (s *fileService) Mkdir(ctx context.Context, name string, parentID int64, public bool) (*models.Entry, error) {
	return s.client.CreateEntry(ctx, &models.NewEntry{
		Name:     name,
		Type:     models.TypeFolder,
		ParentID: &parentID,
		IsPublic: &public,
	})
}

// Upload sends a local file. Content sniffed as an image is uploaded with
// type image, anything else as file.
func (s *fileService) Upload(ctx context.Context, path string, parentID int64, public bool) (*models.Entry, error) {
	data, err := readUpload(path, MaxUploadSize)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyUpload)
	}

	encoded := base64.StdEncoding.EncodeToString(data)

	return s.client.CreateEntry(ctx, &models.NewEntry{
		Name:     filepath.Base(path),
		Type:     detectType(data),
		ParentID: &parentID,
		IsPublic: &public,
		Data:     &encoded,
	})
}

func detectType(data []byte) string {
	if strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		return models.TypeImage
	}
	return models.TypeFile
}

func (s *fileService) Get(ctx context.Context, id int64) (*models.Entry, error) {
	return s.client.GetEntry(ctx, id)
}

func (s *fileService) List(ctx context.Context, parentID int64, page int) ([]*models.Entry, error) {
	return s.client.ListEntries(ctx, parentID, page)
}

// Stats returns the server-wide user and entry counts.
func (s *fileService) Stats(ctx context.Context) (*models.Stats, error) {
	return s.client.Stats(ctx)
}
