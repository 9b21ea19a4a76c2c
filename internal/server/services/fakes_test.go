package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/cache"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
	"github.com/dmitrijs2005/filesmanager/internal/server/sessions"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newSessions(t *testing.T) *sessions.Store {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryOptions{})
	t.Cleanup(func() { _ = c.Close() })
	return sessions.NewStore(c, time.Hour)
}

// --- users ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	byID   map[int64]*models.User
	nextID int64

	getErr    error
	createErr error
	countErr  error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[int64]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, email, digest string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return nil, common.ErrAlreadyExists
		}
	}
	f.nextID++
	u := &models.User{ID: f.nextID, Email: email, Password: digest, CreatedAt: time.Now()}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.byID)), nil
}

// --- files ---

type fakeFilesRepo struct {
	mu      sync.Mutex
	entries map[int64]*models.Entry
	nextID  int64

	createErr error
	getErr    error
	countErr  error

	lastLimit, lastOffset int
}

func newFakeFilesRepo() *fakeFilesRepo {
	return &fakeFilesRepo{entries: map[int64]*models.Entry{}}
}

func (f *fakeFilesRepo) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	cp := *e
	f.entries[e.ID] = &cp
	return e, nil
}

func (f *fakeFilesRepo) GetByID(ctx context.Context, userID, id int64) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.entries[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeFilesRepo) List(ctx context.Context, userID, parentID int64, limit, offset int) ([]*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit, f.lastOffset = limit, offset

	var all []*models.Entry
	for _, e := range f.entries {
		if e.UserID == userID && e.ParentID == parentID {
			cp := *e
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	out := make([]*models.Entry, 0)
	for i := offset; i < len(all) && i < offset+limit; i++ {
		out = append(out, all[i])
	}
	return out, nil
}

func (f *fakeFilesRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.entries)), nil
}

// --- repo manager ---

type fakeRepoManager struct {
	u       *fakeUsersRepo
	f       *fakeFilesRepo
	pingErr error
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), f: newFakeFilesRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Ping(context.Context, *sql.DB) error          { return m.pingErr }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Files(db dbx.DBTX) files.Repository           { return m.f }

// --- blobs ---

type fakePersister struct {
	mu      sync.Mutex
	saved   map[string][]byte
	n       int
	saveErr error
	deleted []string
}

func newFakePersister() *fakePersister {
	return &fakePersister{saved: map[string][]byte{}}
}

func (p *fakePersister) Save(ctx context.Context, data []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return "", p.saveErr
	}
	p.n++
	loc := "/tmp/files_manager/blob-" + string(rune('a'+p.n-1))
	p.saved[loc] = data
	return loc, nil
}

func (p *fakePersister) Load(ctx context.Context, loc string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.saved[loc]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d, nil
}

func (p *fakePersister) Delete(ctx context.Context, loc string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.saved, loc)
	p.deleted = append(p.deleted, loc)
	return nil
}
