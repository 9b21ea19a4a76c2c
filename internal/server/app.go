// Package server wires the files manager together: it opens the database and
// the session cache, picks the blob backend, and runs the HTTP API and the
// gRPC health endpoint until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobs"
	"github.com/dmitrijs2005/filesmanager/internal/server/cache"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/dmitrijs2005/filesmanager/internal/server/credentials"
	"github.com/dmitrijs2005/filesmanager/internal/server/httpapi"
	"github.com/dmitrijs2005/filesmanager/internal/server/metrics"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/dmitrijs2005/filesmanager/internal/server/sessions"

	gs "github.com/dmitrijs2005/filesmanager/internal/server/grpc"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	openDB               = func(dsn string) (*sql.DB, error) { return sql.Open("pgx", dsn) }
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	newBlobPersister     = blobs.New
	notifySignals        = signal.Notify
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	logWriter io.WriteCloser
	db        *sql.DB
	cache     cache.Cache

	httpServer *httpapi.Server
	grpcServer *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	w := logging.NewWriter(logging.Options{File: c.LogFile})
	logger := logging.New(logging.Options{Level: c.LogLevel, Format: c.LogFormat}, w)

	app := &App{config: c, logger: logger, logWriter: w}

	if err := app.init(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}

	return app, nil
}

func (app *App) init(ctx context.Context) error {
	c := app.config

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	app.cache, err = cache.New(c.CacheBackend, c.CacheOptions)
	if err != nil {
		return fmt.Errorf("cache init error: %w", err)
	}

	hasher, err := credentials.New(c.PasswordHash)
	if err != nil {
		return err
	}

	persister, err := newBlobPersister(ctx, c)
	if err != nil {
		return fmt.Errorf("blob storage init error: %w", err)
	}

	store := sessions.NewStore(app.cache, c.SessionTTL)

	us := services.NewUserService(db, rm, hasher, store)
	fs := services.NewFileService(db, rm, persister, c.BlobCleanupOnFailure, app.logger)
	as := services.NewAppService(db, rm, store)

	app.httpServer = httpapi.NewServer(c.HTTPAddr, app.logger, us, fs, as, metrics.New(), c.ShutdownTimeout)
	app.grpcServer = gs.NewHealthServer(c.GRPCAddr, app.logger, as, c.HealthCheckInterval)

	app.logger.Info(ctx, "initialized",
		"cache_backend", c.CacheBackend,
		"blob_backend", c.BlobBackend,
		"password_hash", c.PasswordHash)

	return nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	notifySignals(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()
}

// Run blocks until ctx is canceled, a signal arrives or one of the servers
// fails. Resources are released before it returns.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	run := func(name string, f func(context.Context) error) {
		defer wg.Done()
		if err := f(ctx); err != nil {
			app.logger.Error(ctx, "server failed", "server", name, "error", err)
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			mu.Unlock()
			cancelFunc()
		}
	}

	wg.Add(2)
	go run("http", app.httpServer.Run)
	go run("grpc", app.grpcServer.Run)

	wg.Wait()

	app.close(ctx)

	return errors.Join(errs...)
}

func (app *App) close(ctx context.Context) {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error(ctx, "cache close error", "error", err)
		}
	}
	app.logger.Info(ctx, "Stopped")
	_ = app.logWriter.Close()
}
