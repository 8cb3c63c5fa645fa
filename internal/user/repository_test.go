package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	phone := "+15550100"
	u := &User{
		ID:       "user-a",
		FullName: "Sara Ahmed",
		Email:    "sara@campus.edu",
		Phone:    &phone,
	}

	createdAt := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("user-a", "Sara Ahmed", "sara@campus.edu", &phone, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, createdAt, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "full_name", "email", "phone", "avatar_url", "college_id", "created_at",
	}).AddRow("user-a", "Sara Ahmed", "sara@campus.edu", nil, nil, "C-1042", createdAt)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("user-a").
		WillReturnRows(rows)

	u, err := repo.GetByID(context.Background(), "user-a")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Sara Ahmed", u.FullName)
	assert.Nil(t, u.Phone)
	require.NotNil(t, u.CollegeID)
	assert.Equal(t, "C-1042", *u.CollegeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody@campus.edu").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	u, err := repo.GetByEmail(context.Background(), "nobody@campus.edu")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Now()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "full_name", "email", "phone", "avatar_url", "college_id", "created_at",
		}).
			AddRow("user-b", "Omar Ali", "omar@campus.edu", nil, nil, nil, createdAt).
			AddRow("user-a", "Sara Ahmed", "sara@campus.edu", nil, nil, nil, createdAt))

	users, total, err := repo.List(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, "user-b", users[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
