package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/filesmanager/internal/client/client"
	"github.com/dmitrijs2005/filesmanager/internal/client/models"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "files.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient is an in-memory client.Client.
type fakeClient struct {
	token    string
	password map[string]string
	tokens   map[string]string

	statusErr error
	status    models.Status
	meErr     error

	created []*models.NewEntry
	entries map[int64]*models.Entry
	listed  [2]int64
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		password: map[string]string{},
		tokens:   map[string]string{},
		entries:  map[int64]*models.Entry{},
		status:   models.Status{CacheAlive: true, StoreAlive: true},
	}
}

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Status(context.Context) (*models.Status, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	st := f.status
	return &st, nil
}

func (f *fakeClient) Stats(context.Context) (*models.Stats, error) {
	return &models.Stats{Users: int64(len(f.password)), Files: int64(len(f.entries))}, nil
}

func (f *fakeClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	if _, ok := f.password[email]; ok {
		return nil, &client.APIError{StatusCode: 400, Message: "Already exist"}
	}
	f.password[email] = password
	return &models.User{ID: int64(len(f.password)), Email: email}, nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	if p, ok := f.password[email]; !ok || p != password {
		return "", &client.APIError{StatusCode: 401, Message: "Unauthorized"}
	}
	tok := "tok-" + email
	f.tokens[tok] = email
	f.token = tok
	return tok, nil
}

func (f *fakeClient) Logout(context.Context) error {
	if _, ok := f.tokens[f.token]; !ok {
		return &client.APIError{StatusCode: 401, Message: "Unauthorized"}
	}
	delete(f.tokens, f.token)
	f.token = ""
	return nil
}

func (f *fakeClient) Me(context.Context) (*models.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	email, ok := f.tokens[f.token]
	if !ok {
		return nil, &client.APIError{StatusCode: 401, Message: "Unauthorized"}
	}
	return &models.User{ID: 1, Email: email}, nil
}

func (f *fakeClient) CreateEntry(ctx context.Context, e *models.NewEntry) (*models.Entry, error) {
	f.created = append(f.created, e)
	out := &models.Entry{ID: int64(len(f.entries) + 1), UserID: 1, Name: e.Name, Type: e.Type}
	if e.ParentID != nil {
		out.ParentID = *e.ParentID
	}
	if e.IsPublic != nil {
		out.IsPublic = *e.IsPublic
	}
	f.entries[out.ID] = out
	return out, nil
}

func (f *fakeClient) GetEntry(ctx context.Context, id int64) (*models.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, &client.APIError{StatusCode: 404, Message: "Not found"}
	}
	return e, nil
}

func (f *fakeClient) ListEntries(ctx context.Context, parentID int64, page int) ([]*models.Entry, error) {
	f.listed = [2]int64{parentID, int64(page)}
	out := make([]*models.Entry, 0)
	for _, e := range f.entries {
		if e.ParentID == parentID {
			out = append(out, e)
		}
	}
	return out, nil
}
