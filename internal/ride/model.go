package ride

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransportMode represents how the ride travels
type TransportMode string

const (
	TransportModeCar   TransportMode = "CAR"
	TransportModeBike  TransportMode = "BIKE"
	TransportModeTaxi  TransportMode = "TAXI"
	TransportModeOther TransportMode = "OTHER"
)

// Status represents the lifecycle state of a ride
type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ParticipantRole represents the role of a ride participant
type ParticipantRole string

const (
	RoleOrganizer ParticipantRole = "ORGANIZER"
	RolePassenger ParticipantRole = "PASSENGER"
)

// ParticipantStatus represents the membership state of a ride participant
type ParticipantStatus string

const (
	ParticipantStatusJoined  ParticipantStatus = "JOINED"
	ParticipantStatusLeft    ParticipantStatus = "LEFT"
	ParticipantStatusRemoved ParticipantStatus = "REMOVED"
)

// Ride represents a pooled ride in the system
type Ride struct {
	ID             string          `json:"id"`
	OrganizerID    string          `json:"organizer_id"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	DepartureTime  time.Time       `json:"departure_time"`
	TransportMode  TransportMode   `json:"transport_mode"`
	TotalSeats     int             `json:"total_seats"`
	AvailableSeats int             `json:"available_seats"`
	PricePerSeat   decimal.Decimal `json:"price_per_seat"`
	Currency       string          `json:"currency"`
	Description    *string         `json:"description,omitempty"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Participant represents a user's membership in a ride
type Participant struct {
	ID       string            `json:"id"`
	RideID   string            `json:"ride_id"`
	UserID   string            `json:"user_id"`
	Role     ParticipantRole   `json:"role"`
	Status   ParticipantStatus `json:"status"`
	JoinedAt time.Time         `json:"joined_at"`

	// Populated via JOIN
	FullName string `json:"full_name,omitempty"`
}
