package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
)

// Status reports whether the backing stores answer.
type Status struct {
	CacheAlive bool
	StoreAlive bool
}

// Healthy is true when every backing store is alive.
func (s Status) Healthy() bool {
	return s.CacheAlive && s.StoreAlive
}

// Stats holds global record counts.
type Stats struct {
	Users int64
	Files int64
}

// AppService answers operational questions about the server.
type AppService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    SessionStore
}

func NewAppService(db *sql.DB, m repomanager.RepositoryManager, sessions SessionStore) *AppService {
	return &AppService{db: db, repomanager: m, sessions: sessions}
}

// Status pings the session cache and the database.
func (s *AppService) Status(ctx context.Context) Status {
	return Status{
		CacheAlive: s.sessions.Ping(ctx) == nil,
		StoreAlive: s.repomanager.Ping(ctx, s.db) == nil,
	}
}

// Stats counts users and file entries.
func (s *AppService) Stats(ctx context.Context) (Stats, error) {
	users, err := s.repomanager.Users(s.db).Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	files, err := s.repomanager.Files(s.db).Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Users: users, Files: files}, nil
}
