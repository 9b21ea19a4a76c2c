package client

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/client/models"
)

type Client interface {
	SetToken(token string)
	Status(ctx context.Context) (*models.Status, error)
	Stats(ctx context.Context) (*models.Stats, error)
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	CreateEntry(ctx context.Context, e *models.NewEntry) (*models.Entry, error)
	GetEntry(ctx context.Context, id int64) (*models.Entry, error)
	ListEntries(ctx context.Context, parentID int64, page int) ([]*models.Entry, error)
}
