package settlement

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a recorded settlement into the database
func (r *Repository) Create(ctx context.Context, s *Settlement) error {
	query := `
		INSERT INTO settlements (id, ride_id, from_user_id, to_user_id, amount, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		s.ID,
		s.RideID,
		s.FromUserID,
		s.ToUserID,
		s.Amount,
		s.Note,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create settlement: %w", err)
	}

	return nil
}

// ListByRideID retrieves all recorded settlements for a ride, oldest first
func (r *Repository) ListByRideID(ctx context.Context, rideID string) ([]*Settlement, error) {
	query := `
		SELECT s.id, s.ride_id, s.from_user_id, s.to_user_id, s.amount, s.note, s.created_at,
			uf.full_name, ut.full_name
		FROM settlements s
		JOIN users uf ON s.from_user_id = uf.id
		JOIN users ut ON s.to_user_id = ut.id
		WHERE s.ride_id = $1
		ORDER BY s.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, rideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		err := rows.Scan(
			&s.ID,
			&s.RideID,
			&s.FromUserID,
			&s.ToUserID,
			&s.Amount,
			&s.Note,
			&s.CreatedAt,
			&s.FromName,
			&s.ToName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, rows.Err()
}
