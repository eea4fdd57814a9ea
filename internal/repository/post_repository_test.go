package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"blog-service/internal/model"
	repo "blog-service/internal/repository"
)

func TestPostgresPostRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresPostRepository(sqlxDB)

	id := uuid.New()
	creatorID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("Hello World", "Some content", "images/x.png", creatorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	created, err := r.Create(context.Background(), &model.Post{
		Title:     "Hello World",
		Content:   "Some content",
		ImageURL:  "images/x.png",
		CreatorID: creatorID,
	})
	require.NoError(t, err)
	require.Equal(t, id, created.ID)
	require.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_List_AppliesLimitAndOffset(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresPostRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "image_url", "creator_id", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Second", "content two", "images/b.png", uuid.New(), time.Now(), time.Now()).
		AddRow(uuid.New(), "First", "content one", "images/a.png", uuid.New(), time.Now(), time.Now())

	mock.ExpectQuery(`ORDER BY created_at DESC\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(2, 2).
		WillReturnRows(rows)

	posts, err := r.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "Second", posts[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresPostRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := r.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresPostRepository(sqlxDB)

	id := uuid.New()
	updatedAt := time.Now()

	mock.ExpectQuery(`UPDATE posts`).
		WithArgs("New Title", "New content", "images/new.png", id).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updatedAt))

	post := &model.Post{ID: id, Title: "New Title", Content: "New content", ImageURL: "images/new.png"}
	updated, err := r.Update(context.Background(), post)
	require.NoError(t, err)
	require.Equal(t, updatedAt, updated.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresPostRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Delete(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_ListByCreator(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresPostRepository(sqlxDB)

	creatorID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "image_url", "creator_id", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Mine", "my content", "images/m.png", creatorID, time.Now(), time.Now())

	mock.ExpectQuery(`WHERE creator_id = \$1`).
		WithArgs(creatorID).
		WillReturnRows(rows)

	posts, err := r.ListByCreator(context.Background(), creatorID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, creatorID, posts[0].CreatorID)
	require.NoError(t, mock.ExpectationsWereMet())
}
