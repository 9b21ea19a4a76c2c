// Package httpapi exposes the files manager over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/metrics"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/gorilla/mux"
)

type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, authorization string) (string, error)
	Me(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

type FileService interface {
	CreateEntry(ctx context.Context, owner int64, req services.CreateEntryRequest) (*models.Entry, error)
	GetEntry(ctx context.Context, owner, id int64) (*models.Entry, error)
	ListEntries(ctx context.Context, owner, parentID int64, page int) ([]*models.Entry, error)
}

type AppService interface {
	Status(ctx context.Context) services.Status
	Stats(ctx context.Context) (services.Stats, error)
}

type Server struct {
	address         string
	logger          logging.Logger
	users           UserService
	files           FileService
	app             AppService
	metrics         *metrics.Metrics
	shutdownTimeout time.Duration
}

func NewServer(address string, l logging.Logger, us UserService, fs FileService, as AppService, m *metrics.Metrics, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		logger:          l.With("module", "http_server"),
		users:           us,
		files:           fs,
		app:             as,
		metrics:         m,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.accessLog)

	r.HandleFunc("/status", s.getStatus).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.getStats).Methods(http.MethodGet)
	r.HandleFunc("/users", s.postUser).Methods(http.MethodPost)
	r.HandleFunc("/users", s.getConnect).Methods(http.MethodGet)
	r.HandleFunc("/connect", s.getConnect).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	authed := r.NewRoute().Subrouter()
	authed.Use(s.authenticate)
	authed.HandleFunc("/disconnect", s.getDisconnect).Methods(http.MethodGet)
	authed.HandleFunc("/users/me", s.getMe).Methods(http.MethodGet)
	authed.HandleFunc("/files", s.postFile).Methods(http.MethodPost)
	authed.HandleFunc("/files", s.listFiles).Methods(http.MethodGet)
	authed.HandleFunc("/files/{id}", s.getFile).Methods(http.MethodGet)

	r.NotFoundHandler = s.accessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	}))
	r.MethodNotAllowedHandler = s.accessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	}))

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}
