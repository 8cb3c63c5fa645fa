package ride

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles ride and participant data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new ride repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new ride into the database
func (r *Repository) Create(ctx context.Context, ride *Ride) error {
	query := `
		INSERT INTO rides (id, organizer_id, origin, destination, departure_time, transport_mode,
			total_seats, available_seats, price_per_seat, currency, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		ride.ID,
		ride.OrganizerID,
		ride.Origin,
		ride.Destination,
		ride.DepartureTime,
		ride.TransportMode,
		ride.TotalSeats,
		ride.AvailableSeats,
		ride.PricePerSeat,
		ride.Currency,
		ride.Description,
		ride.Status,
	).Scan(&ride.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	return nil
}

// GetByID retrieves a ride by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Ride, error) {
	query := `
		SELECT id, organizer_id, origin, destination, departure_time, transport_mode,
			total_seats, available_seats, price_per_seat, currency, description, status, created_at
		FROM rides
		WHERE id = $1
	`

	ride := &Ride{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ride.ID,
		&ride.OrganizerID,
		&ride.Origin,
		&ride.Destination,
		&ride.DepartureTime,
		&ride.TransportMode,
		&ride.TotalSeats,
		&ride.AvailableSeats,
		&ride.PricePerSeat,
		&ride.Currency,
		&ride.Description,
		&ride.Status,
		&ride.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	return ride, nil
}

// List retrieves rides with pagination, newest departure first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Ride, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rides`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rides: %w", err)
	}

	query := `
		SELECT id, organizer_id, origin, destination, departure_time, transport_mode,
			total_seats, available_seats, price_per_seat, currency, description, status, created_at
		FROM rides
		ORDER BY departure_time DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rides: %w", err)
	}
	defer rows.Close()

	var rides []*Ride
	for rows.Next() {
		ride := &Ride{}
		err := rows.Scan(
			&ride.ID,
			&ride.OrganizerID,
			&ride.Origin,
			&ride.Destination,
			&ride.DepartureTime,
			&ride.TransportMode,
			&ride.TotalSeats,
			&ride.AvailableSeats,
			&ride.PricePerSeat,
			&ride.Currency,
			&ride.Description,
			&ride.Status,
			&ride.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ride: %w", err)
		}
		rides = append(rides, ride)
	}

	return rides, total, rows.Err()
}

// UpdateStatus changes a ride's lifecycle status
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE rides SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update ride status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update ride status: %w", err)
	}
	if affected == 0 {
		return ErrRideNotFound
	}
	return nil
}

// AddParticipant inserts a participant row for a ride
func (r *Repository) AddParticipant(ctx context.Context, p *Participant) error {
	query := `
		INSERT INTO ride_participants (id, ride_id, user_id, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING joined_at
	`

	err := r.db.QueryRowContext(ctx, query, p.ID, p.RideID, p.UserID, p.Role, p.Status).Scan(&p.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a single participant row for a ride and user
func (r *Repository) GetParticipant(ctx context.Context, rideID, userID string) (*Participant, error) {
	query := `
		SELECT rp.id, rp.ride_id, rp.user_id, rp.role, rp.status, rp.joined_at, u.full_name
		FROM ride_participants rp
		JOIN users u ON rp.user_id = u.id
		WHERE rp.ride_id = $1 AND rp.user_id = $2
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, rideID, userID).Scan(
		&p.ID,
		&p.RideID,
		&p.UserID,
		&p.Role,
		&p.Status,
		&p.JoinedAt,
		&p.FullName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return p, nil
}

// ListParticipants retrieves all participants of a ride
func (r *Repository) ListParticipants(ctx context.Context, rideID string) ([]*Participant, error) {
	query := `
		SELECT rp.id, rp.ride_id, rp.user_id, rp.role, rp.status, rp.joined_at, u.full_name
		FROM ride_participants rp
		JOIN users u ON rp.user_id = u.id
		WHERE rp.ride_id = $1
		ORDER BY rp.joined_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, rideID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		p := &Participant{}
		err := rows.Scan(&p.ID, &p.RideID, &p.UserID, &p.Role, &p.Status, &p.JoinedAt, &p.FullName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// UpdateParticipantStatus changes a participant's membership status
func (r *Repository) UpdateParticipantStatus(ctx context.Context, rideID, userID string, status ParticipantStatus) error {
	query := `UPDATE ride_participants SET status = $1 WHERE ride_id = $2 AND user_id = $3`

	result, err := r.db.ExecContext(ctx, query, status, rideID, userID)
	if err != nil {
		return fmt.Errorf("failed to update participant status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update participant status: %w", err)
	}
	if affected == 0 {
		return ErrNotParticipant
	}
	return nil
}

// TakeSeat atomically claims one seat on a ride, failing when none are left
func (r *Repository) TakeSeat(ctx context.Context, rideID string) error {
	query := `
		UPDATE rides SET available_seats = available_seats - 1
		WHERE id = $1 AND available_seats > 0
	`

	result, err := r.db.ExecContext(ctx, query, rideID)
	if err != nil {
		return fmt.Errorf("failed to take seat: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to take seat: %w", err)
	}
	if affected == 0 {
		return ErrRideFull
	}
	return nil
}

// ReleaseSeat returns one seat to a ride, capped at the ride's total
func (r *Repository) ReleaseSeat(ctx context.Context, rideID string) error {
	query := `
		UPDATE rides SET available_seats = available_seats + 1
		WHERE id = $1 AND available_seats < total_seats
	`

	if _, err := r.db.ExecContext(ctx, query, rideID); err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}
	return nil
}
