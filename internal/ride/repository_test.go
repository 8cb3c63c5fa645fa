package ride

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestTakeSeat(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE rides SET available_seats = available_seats - 1").
		WithArgs("ride-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.TakeSeat(context.Background(), "ride-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTakeSeatFullRide(t *testing.T) {
	repo, mock := newMockRepo(t)

	// available_seats > 0 guard matched no row
	mock.ExpectExec("UPDATE rides SET available_seats = available_seats - 1").
		WithArgs("ride-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.TakeSeat(context.Background(), "ride-1")
	assert.ErrorIs(t, err, ErrRideFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseSeat(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE rides SET available_seats = available_seats \+ 1`).
		WithArgs("ride-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.ReleaseSeat(context.Background(), "ride-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	departure := time.Now().Add(24 * time.Hour)
	createdAt := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "organizer_id", "origin", "destination", "departure_time",
		"transport_mode", "total_seats", "available_seats", "price_per_seat",
		"currency", "description", "status", "created_at",
	}).AddRow("ride-1", "user-a", "Dorms", "Campus", departure,
		string(TransportModeCar), 4, 2, "5.00", "USD", nil, string(StatusPlanned), createdAt)

	mock.ExpectQuery("SELECT (.+) FROM rides").
		WithArgs("ride-1").
		WillReturnRows(rows)

	r, err := repo.GetByID(context.Background(), "ride-1")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "ride-1", r.ID)
	assert.Equal(t, StatusPlanned, r.Status)
	assert.Equal(t, 2, r.AvailableSeats)
	assert.True(t, r.PricePerSeat.Equal(decimal.RequireFromString("5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM rides").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.NoError(t, mock.ExpectationsWereMet())
}
