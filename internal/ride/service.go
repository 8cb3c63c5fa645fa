package ride

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campuspool/ridepool/internal/notification"
	"github.com/campuspool/ridepool/pkg/logger"
)

// Common errors
var (
	ErrRideNotFound        = errors.New("ride not found")
	ErrRideFull            = errors.New("ride has no available seats")
	ErrRideNotJoinable     = errors.New("ride is not open for joining")
	ErrAlreadyJoined       = errors.New("user has already joined this ride")
	ErrNotParticipant      = errors.New("user is not a participant of this ride")
	ErrNotOrganizer        = errors.New("only the organizer can perform this action")
	ErrOrganizerCantLeave  = errors.New("the organizer cannot leave their own ride")
	ErrInvalidDeparture    = errors.New("invalid departure time")
	ErrInvalidSeatCount    = errors.New("total seats must be at least 1")
	ErrInvalidStatusChange = errors.New("invalid status change")
)

// Service handles ride business logic
type Service struct {
	repo          *Repository
	notifications *notification.Service
}

// NewService creates a new ride service
func NewService(repo *Repository, notifications *notification.Service) *Service {
	return &Service{repo: repo, notifications: notifications}
}

// Create creates a new ride and joins the organizer to it
func (s *Service) Create(ctx context.Context, organizerID string, req *CreateRideRequest) (*Ride, error) {
	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		return nil, ErrInvalidDeparture
	}
	if req.TotalSeats < 1 {
		return nil, ErrInvalidSeatCount
	}

	mode := TransportMode(req.TransportMode)
	switch mode {
	case TransportModeCar, TransportModeBike, TransportModeTaxi, TransportModeOther:
	case "":
		mode = TransportModeCar
	default:
		mode = TransportModeOther
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	ride := &Ride{
		ID:             uuid.New().String(),
		OrganizerID:    organizerID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureTime:  departure,
		TransportMode:  mode,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		PricePerSeat:   decimal.NewFromFloat(req.PricePerSeat),
		Currency:       currency,
		Description:    req.Description,
		Status:         StatusPlanned,
	}
	if err := s.repo.Create(ctx, ride); err != nil {
		return nil, err
	}

	// The organizer occupies a seat like everyone else
	organizer := &Participant{
		ID:     uuid.New().String(),
		RideID: ride.ID,
		UserID: organizerID,
		Role:   RoleOrganizer,
		Status: ParticipantStatusJoined,
	}
	if err := s.repo.AddParticipant(ctx, organizer); err != nil {
		return nil, err
	}
	if err := s.repo.TakeSeat(ctx, ride.ID); err != nil {
		return nil, err
	}
	ride.AvailableSeats--

	return ride, nil
}

// GetByID retrieves a ride with its participants
func (s *Service) GetByID(ctx context.Context, id string) (*Ride, []*Participant, error) {
	ride, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if ride == nil {
		return nil, nil, ErrRideNotFound
	}

	participants, err := s.repo.ListParticipants(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return ride, participants, nil
}

// List retrieves rides with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Ride, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Join adds a user to a ride as a passenger
func (s *Service) Join(ctx context.Context, rideID, userID string) (*Participant, error) {
	ride, err := s.repo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, ErrRideNotFound
	}
	if ride.Status != StatusPlanned {
		return nil, ErrRideNotJoinable
	}

	existing, err := s.repo.GetParticipant(ctx, rideID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == ParticipantStatusJoined {
		return nil, ErrAlreadyJoined
	}

	if err := s.repo.TakeSeat(ctx, rideID); err != nil {
		return nil, err
	}

	// Rejoining after leaving reuses the existing row
	if existing != nil {
		if err := s.repo.UpdateParticipantStatus(ctx, rideID, userID, ParticipantStatusJoined); err != nil {
			return nil, err
		}
		existing.Status = ParticipantStatusJoined
		s.notifyJoined(ctx, ride, existing.FullName)
		return existing, nil
	}

	p := &Participant{
		ID:     uuid.New().String(),
		RideID: rideID,
		UserID: userID,
		Role:   RolePassenger,
		Status: ParticipantStatusJoined,
	}
	if err := s.repo.AddParticipant(ctx, p); err != nil {
		return nil, err
	}

	// The insert doesn't carry the user's name; fetch the joined row for it
	if joined, err := s.repo.GetParticipant(ctx, rideID, userID); err == nil && joined != nil {
		p.FullName = joined.FullName
	}
	s.notifyJoined(ctx, ride, p.FullName)
	return p, nil
}

// notifyJoined tells the organizer someone joined. Best effort: a failed
// notification never fails the join.
func (s *Service) notifyJoined(ctx context.Context, ride *Ride, riderName string) {
	if riderName == "" {
		riderName = "A rider"
	}
	if _, err := s.notifications.NotifyRideJoined(ctx, ride.OrganizerID, riderName, ride.ID); err != nil {
		logger.Get().Warnw("failed to notify organizer of join", "ride_id", ride.ID, "error", err)
	}
}

// Leave removes a passenger from a ride and frees their seat
func (s *Service) Leave(ctx context.Context, rideID, userID string) error {
	p, err := s.repo.GetParticipant(ctx, rideID, userID)
	if err != nil {
		return err
	}
	if p == nil || p.Status != ParticipantStatusJoined {
		return ErrNotParticipant
	}
	if p.Role == RoleOrganizer {
		return ErrOrganizerCantLeave
	}

	if err := s.repo.UpdateParticipantStatus(ctx, rideID, userID, ParticipantStatusLeft); err != nil {
		return err
	}
	return s.repo.ReleaseSeat(ctx, rideID)
}

// UpdateStatus changes the ride's lifecycle status; organizer only
func (s *Service) UpdateStatus(ctx context.Context, rideID, userID string, status Status) (*Ride, error) {
	ride, err := s.repo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, ErrRideNotFound
	}
	if ride.OrganizerID != userID {
		return nil, ErrNotOrganizer
	}

	switch status {
	case StatusPlanned, StatusOngoing, StatusCompleted, StatusCancelled:
	default:
		return nil, ErrInvalidStatusChange
	}
	// Completed and cancelled rides stay that way
	if ride.Status == StatusCompleted || ride.Status == StatusCancelled {
		return nil, ErrInvalidStatusChange
	}

	if err := s.repo.UpdateStatus(ctx, rideID, status); err != nil {
		return nil, err
	}
	ride.Status = status
	return ride, nil
}

// JoinedParticipants returns the participants currently in the ride.
// This is the authoritative participant list the expense and settlement
// features compute against.
func (s *Service) JoinedParticipants(ctx context.Context, rideID string) ([]*Participant, error) {
	ride, err := s.repo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, ErrRideNotFound
	}

	all, err := s.repo.ListParticipants(ctx, rideID)
	if err != nil {
		return nil, err
	}

	joined := make([]*Participant, 0, len(all))
	for _, p := range all {
		if p.Status == ParticipantStatusJoined {
			joined = append(joined, p)
		}
	}
	return joined, nil
}
