package files

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQ = `(?s)^INSERT\s+INTO\s+files\s*\(user_id,\s*name,\s*type,\s*is_public,\s*parent_id,\s*local_path\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,\s*created_at\s*$`
	getQ    = `(?s)^SELECT\s+id,\s*user_id,\s*name,\s*type,\s*is_public,\s*parent_id,\s*local_path,\s*created_at\s+FROM\s+files\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`
	listQ   = `(?s)^SELECT\s+id,.*FROM\s+files\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+parent_id\s*=\s*\$2\s+ORDER\s+BY\s+id\s+LIMIT\s+\$3\s+OFFSET\s+\$4\s*$`
	countQ  = `^SELECT COUNT\(\*\) FROM files$`
)

var entryCols = []string{"id", "user_id", "name", "type", "is_public", "parent_id", "local_path", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate_FolderStoresNullPath(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(insertQ).
		WithArgs(int64(1), "docs", "folder", false, int64(0), sql.NullString{}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), now))

	got, err := repo.Create(context.Background(), &models.Entry{UserID: 1, Name: "docs", Type: models.TypeFolder})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_FileStoresPath(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WithArgs(int64(1), "a.txt", "file", true, int64(10), sql.NullString{String: "/tmp/x/uuid", Valid: true}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), time.Now()))

	got, err := repo.Create(context.Background(), &models.Entry{
		UserID: 1, Name: "a.txt", Type: models.TypeFile, IsPublic: true, ParentID: 10, LocalPath: "/tmp/x/uuid",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Entry{UserID: 1, Name: "docs", Type: models.TypeFolder})
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(getQ).
		WithArgs(int64(11), int64(1)).
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow(int64(11), int64(1), "a.txt", "file", true, int64(10), "/tmp/x/uuid", time.Now()))

	got, err := repo.GetByID(context.Background(), 1, 11)
	require.NoError(t, err)
	assert.Equal(t, models.TypeFile, got.Type)
	assert.Equal(t, "/tmp/x/uuid", got.LocalPath)
	assert.True(t, got.IsPublic)
	assert.Equal(t, int64(10), got.ParentID)
}

func TestGetByID_NullPathAndNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(getQ).
		WithArgs(int64(10), int64(1)).
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow(int64(10), int64(1), "docs", "folder", false, int64(0), nil, time.Now()))
	mock.ExpectQuery(getQ).
		WithArgs(int64(10), int64(2)).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, got.IsFolder())
	assert.Empty(t, got.LocalPath)

	_, err = repo.GetByID(context.Background(), 2, 10)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows(entryCols).
		AddRow(int64(3), int64(1), "a", "file", false, int64(10), "/p/a", time.Now()).
		AddRow(int64(4), int64(1), "b", "folder", false, int64(10), nil, time.Now())
	mock.ExpectQuery(listQ).
		WithArgs(int64(1), int64(10), 20, 40).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), 1, 10, 20, 40)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).
		WithArgs(int64(1), int64(0), 20, 0).
		WillReturnRows(sqlmock.NewRows(entryCols))

	got, err := repo.List(context.Background(), 1, 0, 20, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).WillReturnError(errors.New("db down"))
	_, err := repo.List(context.Background(), 1, 0, 20, 0)
	assert.ErrorIs(t, err, common.ErrStorage)

	mock.ExpectQuery(listQ).WillReturnRows(sqlmock.NewRows(entryCols).
		AddRow(int64(3), int64(1), "a", "file", false, int64(0), "/p/a", time.Now()).
		RowError(0, errors.New("broken row")))
	_, err = repo.List(context.Background(), 1, 0, 20, 0)
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(countQ).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(9)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
}
