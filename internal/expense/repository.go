package expense

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithSplits inserts an expense and all its splits in one transaction,
// so a ride's expense list never contains a half-written expense.
func (r *Repository) CreateWithSplits(ctx context.Context, expense *Expense, splits []*Split) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expenseQuery := `
		INSERT INTO expenses (id, ride_id, payer_id, description, amount, currency, category, split_policy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, expenseQuery,
		expense.ID,
		expense.RideID,
		expense.PayerID,
		expense.Description,
		expense.Amount,
		expense.Currency,
		expense.Category,
		expense.SplitPolicy,
	).Scan(&expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	splitQuery := `
		INSERT INTO expense_splits (id, expense_id, user_id, amount_owed, weight)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, s := range splits {
		if _, err := tx.ExecContext(ctx, splitQuery, s.ID, s.ExpenseID, s.UserID, s.AmountOwed, s.Weight); err != nil {
			return fmt.Errorf("failed to create split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense: %w", err)
	}
	return nil
}

// GetByID retrieves an expense by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Expense, error) {
	query := `
		SELECT e.id, e.ride_id, e.payer_id, e.description, e.amount, e.currency,
			e.category, e.split_policy, e.created_at, u.full_name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.RideID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.Currency,
		&expense.Category,
		&expense.SplitPolicy,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplitsByExpenseID retrieves all splits of an expense
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID string) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.amount_owed, s.weight, u.full_name
		FROM expense_splits s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY u.full_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	return scanSplits(rows)
}

// ListByRideID retrieves expenses for a ride with pagination, newest first
func (r *Repository) ListByRideID(ctx context.Context, rideID string, limit, offset int) ([]*Expense, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses WHERE ride_id = $1`, rideID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.ride_id, e.payer_id, e.description, e.amount, e.currency,
			e.category, e.split_policy, e.created_at, u.full_name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.ride_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, rideID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		err := rows.Scan(
			&expense.ID,
			&expense.RideID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.Currency,
			&expense.Category,
			&expense.SplitPolicy,
			&expense.CreatedAt,
			&expense.PayerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, rows.Err()
}

// ListWithSplitsByRideID retrieves the complete expense list for a ride,
// splits included. Balance computation folds over this full snapshot.
func (r *Repository) ListWithSplitsByRideID(ctx context.Context, rideID string) ([]*ExpenseWithSplits, error) {
	expenseQuery := `
		SELECT e.id, e.ride_id, e.payer_id, e.description, e.amount, e.currency,
			e.category, e.split_policy, e.created_at, u.full_name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.ride_id = $1
		ORDER BY e.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, expenseQuery, rideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var result []*ExpenseWithSplits
	byID := make(map[string]*ExpenseWithSplits)
	for rows.Next() {
		expense := &Expense{}
		err := rows.Scan(
			&expense.ID,
			&expense.RideID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.Currency,
			&expense.Category,
			&expense.SplitPolicy,
			&expense.CreatedAt,
			&expense.PayerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		ews := &ExpenseWithSplits{Expense: expense}
		result = append(result, ews)
		byID[expense.ID] = ews
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	splitQuery := `
		SELECT s.id, s.expense_id, s.user_id, s.amount_owed, s.weight, u.full_name
		FROM expense_splits s
		JOIN users u ON s.user_id = u.id
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.ride_id = $1
		ORDER BY s.expense_id, u.full_name ASC
	`

	splitRows, err := r.db.QueryContext(ctx, splitQuery, rideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer splitRows.Close()

	splits, err := scanSplits(splitRows)
	if err != nil {
		return nil, err
	}
	for _, s := range splits {
		if ews, ok := byID[s.ExpenseID]; ok {
			ews.Splits = append(ews.Splits, s)
		}
	}

	return result, nil
}

// Delete removes an expense; splits go with it via ON DELETE CASCADE
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func scanSplits(rows *sql.Rows) ([]*Split, error) {
	var splits []*Split
	for rows.Next() {
		s := &Split{}
		err := rows.Scan(&s.ID, &s.ExpenseID, &s.UserID, &s.AmountOwed, &s.Weight, &s.UserName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}
	return splits, rows.Err()
}
