package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/client/client"
	"github.com/dmitrijs2005/filesmanager/internal/client/config"
	"github.com/dmitrijs2005/filesmanager/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// folder is one step of the current path.
type folder struct {
	id   int64
	name string
}

type App struct {
	config      *config.Config
	db          *sql.DB
	authService services.AuthService
	fileService services.FileService
	reader      *bufio.Reader
	out         io.Writer

	mu    sync.Mutex
	mode  Mode
	email string
	path  []folder
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, err := client.InitDatabase(ctx, c.StatePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	as := services.NewAuthService(apiClient, db, c.ServerURL)
	fs := services.NewFileService(apiClient)

	return newApp(c, db, as, fs, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, as services.AuthService, fs services.FileService, in io.Reader, out io.Writer) *App {
	return &App{
		config:      c,
		db:          db,
		authService: as,
		fileService: fs,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// Run restores the previous session, starts the connectivity watcher and
// blocks in the REPL until the user leaves.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.db.Close()

	fmt.Fprintln(a.out, "Files manager CLI (type 'help' for commands)")

	a.restore(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) restore(ctx context.Context) {
	email, err := a.authService.Restore(ctx)
	if err != nil {
		log.Printf("Session not restored: %s", describe(err))
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
	if email != "" {
		a.setUser(email)
		fmt.Fprintf(a.out, "Welcome back, %s\n", email)
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) setUser(email string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.email = email
	a.path = nil
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.email != ""
}

// currentFolder is the id uploads and listings default to.
func (a *App) currentFolder() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.path) == 0 {
		return 0
	}
	return a.path[len(a.path)-1].id
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	var parts []string
	if a.email != "" {
		names := make([]string, 0, len(a.path))
		for _, f := range a.path {
			names = append(names, f.name)
		}
		parts = append(parts, a.email+":/"+strings.Join(names, "/"))
	}
	if a.mode != "" {
		parts = append(parts, string(a.mode))
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
