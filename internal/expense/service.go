package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campuspool/ridepool/internal/expense/split"
	"github.com/campuspool/ridepool/internal/notification"
	"github.com/campuspool/ridepool/internal/ride"
	"github.com/campuspool/ridepool/pkg/logger"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotRideMember   = errors.New("payer and all participants must be joined ride members")
	ErrNotPayer        = errors.New("only the payer can delete an expense")
	ErrInvalidCategory = errors.New("invalid expense category")
)

var validCategories = map[Category]bool{
	CategoryFuel:          true,
	CategoryToll:          true,
	CategoryParking:       true,
	CategoryFood:          true,
	CategoryAccommodation: true,
	CategoryShopping:      true,
	CategoryEntertainment: true,
	CategoryOther:         true,
}

// Service handles expense business logic
type Service struct {
	repo          *Repository
	rideService   *ride.Service
	splitFactory  *split.Factory
	notifications *notification.Service
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, rideService *ride.Service, splitFactory *split.Factory, notifications *notification.Service) *Service {
	return &Service{
		repo:          repo,
		rideService:   rideService,
		splitFactory:  splitFactory,
		notifications: notifications,
	}
}

// Create records a new expense. The split is computed and validated here, at
// creation time: an expense whose weights don't add up is rejected with the
// mismatch details and never enters the ride's expense list.
func (s *Service) Create(ctx context.Context, payerID string, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	category := Category(req.Category)
	if category == "" {
		category = CategoryOther
	}
	if !validCategories[category] {
		return nil, ErrInvalidCategory
	}

	// The ride supplies the authoritative member list
	members, err := s.rideService.JoinedParticipants(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	joined := make(map[string]string, len(members))
	for _, m := range members {
		joined[m.UserID] = m.FullName
	}
	if _, ok := joined[payerID]; !ok {
		return nil, ErrNotRideMember
	}
	for _, id := range req.ParticipantIDs {
		if _, ok := joined[id]; !ok {
			return nil, ErrNotRideMember
		}
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitPolicy)
	if err != nil {
		return nil, err
	}

	amount := decimal.NewFromFloat(req.Amount)
	weights := make(map[string]decimal.Decimal, len(req.Weights))
	for id, w := range req.Weights {
		weights[id] = decimal.NewFromFloat(w)
	}

	shares, err := strategy.Compute(amount, req.ParticipantIDs, weights)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	expense := &Expense{
		ID:          uuid.New().String(),
		RideID:      req.RideID,
		PayerID:     payerID,
		Description: req.Description,
		Amount:      amount,
		Currency:    currency,
		Category:    category,
		SplitPolicy: strategy.Policy(),
		PayerName:   joined[payerID],
	}

	splits := make([]*Split, 0, len(shares))
	for _, participantID := range req.ParticipantIDs {
		sp := &Split{
			ID:         uuid.New().String(),
			ExpenseID:  expense.ID,
			UserID:     participantID,
			AmountOwed: shares[participantID],
			UserName:   joined[participantID],
		}
		if w, ok := weights[participantID]; ok {
			sp.Weight = &w
		}
		splits = append(splits, sp)
	}

	if err := s.repo.CreateWithSplits(ctx, expense, splits); err != nil {
		return nil, err
	}

	// Best effort: a failed notification never fails the expense
	for _, sp := range splits {
		if sp.UserID == payerID {
			continue
		}
		if _, err := s.notifications.NotifyExpenseAdded(ctx, sp.UserID, expense.PayerName, sp.AmountOwed, expense.ID); err != nil {
			logger.Get().Warnw("failed to notify participant of expense", "expense_id", expense.ID, "user_id", sp.UserID, "error", err)
		}
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// GetByID retrieves an expense with its splits
func (s *Service) GetByID(ctx context.Context, id string) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// ListByRideID retrieves expenses for a ride
func (s *Service) ListByRideID(ctx context.Context, rideID string, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRideID(ctx, rideID, perPage, offset)
}

// ListWithSplitsByRideID returns the full expense snapshot for balance computation
func (s *Service) ListWithSplitsByRideID(ctx context.Context, rideID string) ([]*ExpenseWithSplits, error) {
	return s.repo.ListWithSplitsByRideID(ctx, rideID)
}

// Delete removes an expense; only its payer may do so
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}
	if expense.PayerID != userID {
		return ErrNotPayer
	}

	return s.repo.Delete(ctx, id)
}
