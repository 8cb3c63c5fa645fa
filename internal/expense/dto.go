package expense

// CreateExpenseRequest represents the request to record a new expense
type CreateExpenseRequest struct {
	RideID         string             `json:"ride_id" validate:"required"`
	Description    string             `json:"description" validate:"required,min=1,max=200"`
	Amount         float64            `json:"amount" validate:"required,gt=0"`
	Currency       string             `json:"currency"`
	Category       string             `json:"category"`
	SplitPolicy    string             `json:"split_policy" validate:"required"`
	ParticipantIDs []string           `json:"participant_ids" validate:"required,min=1"`
	Weights        map[string]float64 `json:"weights,omitempty"`
}

// SplitResponse represents one participant's share in an expense response
type SplitResponse struct {
	UserID     string   `json:"user_id"`
	UserName   string   `json:"user_name,omitempty"`
	AmountOwed float64  `json:"amount_owed"`
	Weight     *float64 `json:"weight,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          string           `json:"id"`
	RideID      string           `json:"ride_id"`
	PayerID     string           `json:"payer_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Currency    string           `json:"currency"`
	Category    Category         `json:"category"`
	SplitPolicy string           `json:"split_policy"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		RideID:      e.RideID,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Description: e.Description,
		Amount:      e.Amount.InexactFloat64(),
		Currency:    e.Currency,
		Category:    e.Category,
		SplitPolicy: string(e.SplitPolicy),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	resp := &SplitResponse{
		UserID:     s.UserID,
		UserName:   s.UserName,
		AmountOwed: s.AmountOwed.InexactFloat64(),
	}
	if s.Weight != nil {
		w := s.Weight.InexactFloat64()
		resp.Weight = &w
	}
	return resp
}
