package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	note := "cash after the ride"
	s := &Settlement{
		ID:         "set-1",
		RideID:     "ride-1",
		FromUserID: "user-b",
		ToUserID:   "user-a",
		Amount:     decimal.RequireFromString("30"),
		Note:       &note,
	}

	createdAt := time.Now()
	mock.ExpectQuery("INSERT INTO settlements").
		WithArgs("set-1", "ride-1", "user-b", "user-a", s.Amount, &note).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, createdAt, s.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListByRideID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	createdAt := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "ride_id", "from_user_id", "to_user_id", "amount", "note",
		"created_at", "full_name", "full_name",
	}).
		AddRow("set-1", "ride-1", "user-b", "user-a", "30.00", "", createdAt, "Omar Ali", "Sara Ahmed").
		AddRow("set-2", "ride-1", "user-c", "user-a", "15.50", "venmo", createdAt, "Lina Khan", "Sara Ahmed")

	mock.ExpectQuery("SELECT (.+) FROM settlements s").
		WithArgs("ride-1").
		WillReturnRows(rows)

	settlements, err := repo.ListByRideID(context.Background(), "ride-1")
	require.NoError(t, err)
	require.Len(t, settlements, 2)
	assert.Equal(t, "user-b", settlements[0].FromUserID)
	assert.Equal(t, "Sara Ahmed", settlements[0].ToName)
	assert.True(t, settlements[1].Amount.Equal(decimal.RequireFromString("15.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
