package settlement

// RecordSettlementRequest represents the request to record a payment
type RecordSettlementRequest struct {
	RideID   string  `json:"ride_id" validate:"required"`
	ToUserID string  `json:"to_user_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Note     *string `json:"note,omitempty"`
}

// SettlementResponse represents the response for a recorded settlement
type SettlementResponse struct {
	ID         string  `json:"id"`
	RideID     string  `json:"ride_id"`
	FromUserID string  `json:"from_user_id"`
	FromName   string  `json:"from_name,omitempty"`
	ToUserID   string  `json:"to_user_id"`
	ToName     string  `json:"to_name,omitempty"`
	Amount     float64 `json:"amount"`
	Note       *string `json:"note,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// BalanceResponse represents one participant's net position in a ride
type BalanceResponse struct {
	UserID   string  `json:"user_id"`
	FullName string  `json:"full_name"`
	Balance  float64 `json:"balance"`
	Message  string  `json:"message"` // e.g., "is owed $60.00" or "owes $30.00"
}

// TransferResponse represents one suggested payment in a settlement plan
type TransferResponse struct {
	FromUserID string  `json:"from_user_id"`
	FromName   string  `json:"from_name"`
	ToUserID   string  `json:"to_user_id"`
	ToName     string  `json:"to_name"`
	Amount     float64 `json:"amount"`
	Message    string  `json:"message"` // e.g., "Sara pays Omar $30.00"
}

// SummaryResponse represents the full expense summary for a ride
type SummaryResponse struct {
	RideID     string              `json:"ride_id"`
	TotalSpent float64             `json:"total_spent"`
	Balances   []*BalanceResponse  `json:"balances"`
	Plan       []*TransferResponse `json:"plan"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:         s.ID,
		RideID:     s.RideID,
		FromUserID: s.FromUserID,
		FromName:   s.FromName,
		ToUserID:   s.ToUserID,
		ToName:     s.ToName,
		Amount:     s.Amount.InexactFloat64(),
		Note:       s.Note,
		CreatedAt:  s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
