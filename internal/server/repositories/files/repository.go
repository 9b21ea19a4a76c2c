package files

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	GetByID(ctx context.Context, userID, id int64) (*models.Entry, error)
	List(ctx context.Context, userID, parentID int64, limit, offset int) ([]*models.Entry, error)
	Count(ctx context.Context) (int64, error)
}
