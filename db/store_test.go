package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"blog-app/blog"
	"blog-app/models"
	"blog-app/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	os.Exit(m.Run())
}

const (
	postID = "123e4567-e89b-12d3-a456-426614174000"
	userID = "abc12345-e89b-12d3-a456-426614174000"
)

func TestFindUserByUsername_Found(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}).
			AddRow(userID, "alice", "hash", time.Now()))

	user, err := NewStore(gormDB).FindUserByUsername(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}))

	_, err := NewStore(gormDB).FindUserByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestFindPost_DatabaseError(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE id = \$1`).
		WillReturnError(errors.New("connection refused"))

	_, err := NewStore(gormDB).FindPost(context.Background(), postID)

	require.Error(t, err)
	assert.False(t, errors.Is(err, blog.ErrNotFound))
}

func TestCreateUser_Success(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID))
	mock.ExpectCommit()

	user := &models.User{Username: "alice", Password: "hash"}
	err := NewStore(gormDB).CreateUser(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users" (.+) RETURNING "id"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := NewStore(gormDB).CreateUser(context.Background(), &models.User{Username: "alice", Password: "hash"})

	assert.ErrorIs(t, err, blog.ErrDuplicateUsername)
}

func TestToggleLike_Add(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID))
	mock.ExpectExec(`DELETE FROM "likes" WHERE post_id = \$1 AND user_id = \$2`).
		WithArgs(postID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "likes" (.+) ON CONFLICT DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("like123"))
	mock.ExpectCommit()

	liked, err := NewStore(gormDB).ToggleLike(context.Background(), postID, userID)

	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLike_Remove(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID))
	mock.ExpectExec(`DELETE FROM "likes" WHERE post_id = \$1 AND user_id = \$2`).
		WithArgs(postID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, err := NewStore(gormDB).ToggleLike(context.Background(), postID, userID)

	require.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLike_PostNotFound(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := NewStore(gormDB).ToggleLike(context.Background(), "00000000-0000-0000-0000-000000000000", userID)

	assert.ErrorIs(t, err, blog.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateComment_PostNotFound(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := NewStore(gormDB).CreateComment(context.Background(), &models.Comment{PostID: postID, UserID: userID, Content: "hi"})

	assert.ErrorIs(t, err, blog.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePost_CascadesInOneTransaction(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE post_id = \$1`).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "likes" WHERE post_id = \$1`).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "posts" WHERE id = \$1`).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewStore(gormDB).DeletePost(context.Background(), postID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePost_MissingRollsBack(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "likes"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "posts"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := NewStore(gormDB).DeletePost(context.Background(), postID)

	assert.ErrorIs(t, err, blog.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMalformedPostID_IsNotFoundWithoutQuery(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()
	store := NewStore(gormDB)
	ctx := context.Background()

	_, err := store.FindPost(ctx, "nope")
	assert.ErrorIs(t, err, blog.ErrNotFound)

	_, err = store.ToggleLike(ctx, "nope", userID)
	assert.ErrorIs(t, err, blog.ErrNotFound)

	err = store.CreateComment(ctx, &models.Comment{PostID: "nope", UserID: userID, Content: "hi"})
	assert.ErrorIs(t, err, blog.ErrNotFound)

	assert.ErrorIs(t, store.DeletePost(ctx, "nope"), blog.ErrNotFound)

	_, err = store.FindUserByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, blog.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
