package ride

// CreateRideRequest represents the request to create a new ride
type CreateRideRequest struct {
	Origin        string  `json:"origin" validate:"required,min=1,max=200"`
	Destination   string  `json:"destination" validate:"required,min=1,max=200"`
	DepartureTime string  `json:"departure_time" validate:"required"` // RFC 3339
	TransportMode string  `json:"transport_mode"`
	TotalSeats    int     `json:"total_seats" validate:"required,min=1"`
	PricePerSeat  float64 `json:"price_per_seat"`
	Currency      string  `json:"currency"`
	Description   *string `json:"description,omitempty"`
}

// UpdateStatusRequest represents the request to change a ride's status
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

// RideResponse represents the response for a ride
type RideResponse struct {
	ID             string                 `json:"id"`
	OrganizerID    string                 `json:"organizer_id"`
	Origin         string                 `json:"origin"`
	Destination    string                 `json:"destination"`
	DepartureTime  string                 `json:"departure_time"`
	TransportMode  TransportMode          `json:"transport_mode"`
	TotalSeats     int                    `json:"total_seats"`
	AvailableSeats int                    `json:"available_seats"`
	PricePerSeat   float64                `json:"price_per_seat"`
	Currency       string                 `json:"currency"`
	Description    *string                `json:"description,omitempty"`
	Status         Status                 `json:"status"`
	CreatedAt      string                 `json:"created_at"`
	Participants   []*ParticipantResponse `json:"participants,omitempty"`
}

// ParticipantResponse represents a participant in a ride response
type ParticipantResponse struct {
	ID       string            `json:"id"`
	UserID   string            `json:"user_id"`
	FullName string            `json:"full_name,omitempty"`
	Role     ParticipantRole   `json:"role"`
	Status   ParticipantStatus `json:"status"`
	JoinedAt string            `json:"joined_at"`
}

// ToResponse converts a Ride model to a RideResponse DTO
func (r *Ride) ToResponse() *RideResponse {
	return &RideResponse{
		ID:             r.ID,
		OrganizerID:    r.OrganizerID,
		Origin:         r.Origin,
		Destination:    r.Destination,
		DepartureTime:  r.DepartureTime.Format("2006-01-02T15:04:05Z"),
		TransportMode:  r.TransportMode,
		TotalSeats:     r.TotalSeats,
		AvailableSeats: r.AvailableSeats,
		PricePerSeat:   r.PricePerSeat.InexactFloat64(),
		Currency:       r.Currency,
		Description:    r.Description,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Participant model to a ParticipantResponse DTO
func (p *Participant) ToResponse() *ParticipantResponse {
	return &ParticipantResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		FullName: p.FullName,
		Role:     p.Role,
		Status:   p.Status,
		JoinedAt: p.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}
