package expense

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuspool/ridepool/internal/expense/split"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreateWithSplits(t *testing.T) {
	repo, mock := newMockRepo(t)

	weight := decimal.RequireFromString("2")
	exp := &Expense{
		ID:          "exp-1",
		RideID:      "ride-1",
		PayerID:     "user-a",
		Description: "Fuel for the trip",
		Amount:      decimal.RequireFromString("45.50"),
		Currency:    "USD",
		Category:    CategoryFuel,
		SplitPolicy: split.PolicyShares,
	}
	splits := []*Split{
		{ID: "sp-1", ExpenseID: "exp-1", UserID: "user-a", AmountOwed: decimal.RequireFromString("30.33"), Weight: &weight},
		{ID: "sp-2", ExpenseID: "exp-1", UserID: "user-b", AmountOwed: decimal.RequireFromString("15.17")},
	}

	createdAt := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO expenses").
		WithArgs("exp-1", "ride-1", "user-a", "Fuel for the trip", exp.Amount, "USD", CategoryFuel, split.PolicyShares).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))
	mock.ExpectExec("INSERT INTO expense_splits").
		WithArgs("sp-1", "exp-1", "user-a", splits[0].AmountOwed, &weight).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO expense_splits").
		WithArgs("sp-2", "exp-1", "user-b", splits[1].AmountOwed, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateWithSplits(context.Background(), exp, splits)
	require.NoError(t, err)
	assert.Equal(t, createdAt, exp.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithSplitsRollsBackOnSplitFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	exp := &Expense{
		ID:          "exp-1",
		RideID:      "ride-1",
		PayerID:     "user-a",
		Amount:      decimal.RequireFromString("20"),
		Currency:    "USD",
		Category:    CategoryFood,
		SplitPolicy: split.PolicyEqual,
	}
	splits := []*Split{
		{ID: "sp-1", ExpenseID: "exp-1", UserID: "user-a", AmountOwed: decimal.RequireFromString("20")},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO expenses").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("INSERT INTO expense_splits").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.CreateWithSplits(context.Background(), exp, splits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create split")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "ride_id", "payer_id", "description", "amount", "currency",
		"category", "split_policy", "created_at", "full_name",
	}).AddRow("exp-1", "ride-1", "user-a", "Parking", "8.00", "USD",
		string(CategoryParking), string(split.PolicyEqual), createdAt, "Sara Ahmed")

	mock.ExpectQuery("SELECT (.+) FROM expenses e").
		WithArgs("exp-1").
		WillReturnRows(rows)

	exp, err := repo.GetByID(context.Background(), "exp-1")
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Equal(t, "exp-1", exp.ID)
	assert.Equal(t, CategoryParking, exp.Category)
	assert.True(t, exp.Amount.Equal(decimal.RequireFromString("8")))
	assert.Equal(t, "Sara Ahmed", exp.PayerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM expenses e").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	exp, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, exp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithSplitsByRideID(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Now()
	expenseRows := sqlmock.NewRows([]string{
		"id", "ride_id", "payer_id", "description", "amount", "currency",
		"category", "split_policy", "created_at", "full_name",
	}).
		AddRow("exp-1", "ride-1", "user-a", "Fuel", "60.00", "USD",
			string(CategoryFuel), string(split.PolicyEqual), createdAt, "Sara Ahmed").
		AddRow("exp-2", "ride-1", "user-b", "Toll", "12.00", "USD",
			string(CategoryToll), string(split.PolicyEqual), createdAt, "Omar Ali")

	splitRows := sqlmock.NewRows([]string{
		"id", "expense_id", "user_id", "amount_owed", "weight", "full_name",
	}).
		AddRow("sp-1", "exp-1", "user-b", "30.00", nil, "Omar Ali").
		AddRow("sp-2", "exp-1", "user-a", "30.00", nil, "Sara Ahmed").
		AddRow("sp-3", "exp-2", "user-a", "6.00", nil, "Sara Ahmed").
		AddRow("sp-4", "exp-2", "user-b", "6.00", nil, "Omar Ali")

	mock.ExpectQuery("SELECT (.+) FROM expenses e").
		WithArgs("ride-1").
		WillReturnRows(expenseRows)
	mock.ExpectQuery("SELECT (.+) FROM expense_splits s").
		WithArgs("ride-1").
		WillReturnRows(splitRows)

	result, err := repo.ListWithSplitsByRideID(context.Background(), "ride-1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Len(t, result[0].Splits, 2)
	assert.Len(t, result[1].Splits, 2)
	assert.Equal(t, "exp-1", result[0].Splits[0].ExpenseID)
	assert.ElementsMatch(t,
		[]string{"user-a", "user-b"},
		result[0].ParticipantIDs(),
	)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM expenses").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrExpenseNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
