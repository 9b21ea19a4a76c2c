package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func dbError(err error) error {
	return fmt.Errorf("%w: db error: %w", common.ErrStorage, err)
}

// Create inserts entry and fills in its ID and CreatedAt.
// An empty LocalPath is stored as NULL.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {

	query :=
		`INSERT INTO files (user_id, name, type, is_public, parent_id, local_path)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	localPath := sql.NullString{String: entry.LocalPath, Valid: entry.LocalPath != ""}

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Name, string(entry.Type), entry.IsPublic, entry.ParentID, localPath,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return nil, dbError(err)
	}

	return entry, nil
}

// GetByID returns the entry only when it belongs to userID.
func (r *PostgresRepository) GetByID(ctx context.Context, userID, id int64) (*models.Entry, error) {
	query :=
		`SELECT id, user_id, name, type, is_public, parent_id, local_path, created_at FROM files
		 WHERE id = $1 AND user_id = $2
		 `

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbError(err)
	}

	return entry, nil
}

// List returns one page of the owner's entries under parentID, ordered by id.
// The result is never nil.
func (r *PostgresRepository) List(ctx context.Context, userID, parentID int64, limit, offset int) ([]*models.Entry, error) {
	query :=
		`SELECT id, user_id, name, type, is_public, parent_id, local_path, created_at FROM files
		 WHERE user_id = $1 AND parent_id = $2
		 ORDER BY id
		 LIMIT $3 OFFSET $4
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, parentID, limit, offset)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, dbError(err)
		}
		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, dbError(err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.Entry, error) {
	var (
		entry     models.Entry
		typ       string
		localPath sql.NullString
	)

	err := s.Scan(&entry.ID, &entry.UserID, &entry.Name, &typ, &entry.IsPublic, &entry.ParentID, &localPath, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	entry.Type = models.EntryType(typ)
	entry.LocalPath = localPath.String
	return &entry, nil
}
