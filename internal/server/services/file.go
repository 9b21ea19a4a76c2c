package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobs"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
)

// CreateEntryRequest carries an upload as received from a client. Nil
// pointers mean the field was omitted. A negative ParentID stands for a
// reference that cannot name any entry.
type CreateEntryRequest struct {
	Name     string
	Type     string
	ParentID *int64
	IsPublic *bool
	Data     *string
}

// FileService creates and reads file entries on behalf of their owner.
type FileService struct {
	db                   *sql.DB
	repomanager          repomanager.RepositoryManager
	blobs                blobs.Persister
	cleanupBlobOnFailure bool
	log                  logging.Logger
}

// NewFileService constructs a FileService. With cleanupBlobOnFailure set, a
// blob whose metadata insert failed is deleted again.
func NewFileService(db *sql.DB, m repomanager.RepositoryManager, p blobs.Persister, cleanupBlobOnFailure bool, log logging.Logger) *FileService {
	return &FileService{
		db:                   db,
		repomanager:          m,
		blobs:                p,
		cleanupBlobOnFailure: cleanupBlobOnFailure,
		log:                  log.With("module", "files"),
	}
}

// CreateEntry validates req, persists the blob for files and images, and
// records the entry. Validation stops at the first failing check, in this
// order: name, type, parent, data.
func (s *FileService) CreateEntry(ctx context.Context, owner int64, req CreateEntryRequest) (*models.Entry, error) {
	if req.Name == "" {
		return nil, common.ErrMissingName
	}

	typ := models.EntryType(req.Type)
	if !typ.Valid() {
		return nil, common.ErrMissingType
	}

	repo := s.repomanager.Files(s.db)

	parentID := common.RootParentID
	if req.ParentID != nil && *req.ParentID != common.RootParentID {
		if *req.ParentID < 0 {
			return nil, common.ErrParentNotFound
		}
		parent, err := repo.GetByID(ctx, owner, *req.ParentID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrParentNotFound
			}
			return nil, err
		}
		if !parent.IsFolder() {
			return nil, common.ErrParentNotAFolder
		}
		parentID = parent.ID
	}

	if typ != models.TypeFolder && (req.Data == nil || *req.Data == "") {
		return nil, common.ErrMissingData
	}

	entry := &models.Entry{
		UserID:   owner,
		Name:     req.Name,
		Type:     typ,
		IsPublic: req.IsPublic != nil && *req.IsPublic,
		ParentID: parentID,
	}

	if typ == models.TypeFolder {
		return repo.Create(ctx, entry)
	}

	content, err := base64.StdEncoding.DecodeString(*req.Data)
	if err != nil {
		return nil, common.ErrInvalidData
	}

	locator, err := s.blobs.Save(ctx, content)
	if err != nil {
		return nil, err
	}
	entry.LocalPath = locator

	created, err := repo.Create(ctx, entry)
	if err != nil {
		s.log.Warn(ctx, "entry insert failed after blob write", "locator", locator, "error", err)
		if s.cleanupBlobOnFailure {
			if derr := s.blobs.Delete(context.WithoutCancel(ctx), locator); derr != nil {
				s.log.Error(ctx, "blob cleanup failed", "locator", locator, "error", derr)
			}
		}
		return nil, err
	}
	created.Size = int64(len(content))
	return created, nil
}

// GetEntry returns the entry only if owner owns it.
func (s *FileService) GetEntry(ctx context.Context, owner, id int64) (*models.Entry, error) {
	return s.repomanager.Files(s.db).GetByID(ctx, owner, id)
}

// ListEntries returns one zero-indexed page of owner's entries under
// parentID. Negative pages are read as the first page.
func (s *FileService) ListEntries(ctx context.Context, owner, parentID int64, page int) ([]*models.Entry, error) {
	if page < 0 {
		page = 0
	}
	return s.repomanager.Files(s.db).List(ctx, owner, parentID, common.PageSize, page*common.PageSize)
}
