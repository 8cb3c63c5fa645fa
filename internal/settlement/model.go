package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement represents a peer-to-peer payment that actually happened,
// recorded so later balance queries account for it
type Settlement struct {
	ID         string          `json:"id"`
	RideID     string          `json:"ride_id"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       *string         `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`

	// Populated via JOIN
	FromName string `json:"from_name,omitempty"`
	ToName   string `json:"to_name,omitempty"`
}

// BalanceMap holds each participant's net position across a ride's expenses.
// Positive means the participant is owed money, negative means they owe.
type BalanceMap map[string]decimal.Decimal

// Transfer is a suggested payment from the planner: one debtor pays one
// creditor the given amount. Transfers are transient, recomputed on demand,
// and never persisted.
type Transfer struct {
	FromID string          `json:"from_id"`
	ToID   string          `json:"to_id"`
	Amount decimal.Decimal `json:"amount"`
}
