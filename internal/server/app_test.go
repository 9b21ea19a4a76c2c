package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubManager struct {
	migrateErr error
	migrated   bool
}

func (m *stubManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}
func (m *stubManager) Ping(context.Context, *sql.DB) error { return nil }
func (m *stubManager) Users(dbx.DBTX) users.Repository     { return nil }
func (m *stubManager) Files(dbx.DBTX) files.Repository     { return nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	c.CacheBackend = "memory"
	c.FolderPath = t.TempDir()
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

func stubDeps(t *testing.T, m *stubManager) {
	t.Helper()

	origOpen, origManager := openDB, newRepositoryManager
	t.Cleanup(func() { openDB, newRepositoryManager = origOpen, origManager })

	db, _, err := sqlmock.New()
	require.NoError(t, err)

	openDB = func(string) (*sql.DB, error) { return db, nil }
	newRepositoryManager = func() repomanager.RepositoryManager { return m }
}

func TestNewApp_RunsMigrations(t *testing.T) {
	m := &stubManager{}
	stubDeps(t, m)

	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	assert.True(t, m.migrated)
	assert.NotNil(t, app.httpServer)
	assert.NotNil(t, app.grpcServer)

	app.close(context.Background())
}

func TestNewApp_Failures(t *testing.T) {
	t.Run("migrations", func(t *testing.T) {
		stubDeps(t, &stubManager{migrateErr: errors.New("boom")})

		_, err := NewApp(context.Background(), testConfig(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "migrations error")
	})

	t.Run("cache backend", func(t *testing.T) {
		stubDeps(t, &stubManager{})
		c := testConfig(t)
		c.CacheBackend = "redis"

		_, err := NewApp(context.Background(), c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache init error")
	})

	t.Run("db open", func(t *testing.T) {
		stubDeps(t, &stubManager{})
		openDB = func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") }

		_, err := NewApp(context.Background(), testConfig(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db init error")
	})
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	stubDeps(t, &stubManager{})

	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestRun_ReportsServerFailure(t *testing.T) {
	stubDeps(t, &stubManager{})
	c := testConfig(t)
	c.HTTPAddr = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http")
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after server failure")
	}
}
