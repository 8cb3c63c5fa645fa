package settlement

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campuspool/ridepool/internal/expense"
	"github.com/campuspool/ridepool/internal/notification"
	"github.com/campuspool/ridepool/internal/ride"
	"github.com/campuspool/ridepool/pkg/logger"
)

// Common errors
var (
	ErrCannotSettleSelf = errors.New("cannot record a settlement with yourself")
	ErrInvalidAmount    = errors.New("settlement amount must be greater than zero")
	ErrNotRideMember    = errors.New("both parties must be joined ride members")
)

// Service handles settlement business logic
type Service struct {
	repo           *Repository
	rideService    *ride.Service
	expenseService *expense.Service
	notifications  *notification.Service
}

// NewService creates a new settlement service
func NewService(repo *Repository, rideService *ride.Service, expenseService *expense.Service, notifications *notification.Service) *Service {
	return &Service{
		repo:           repo,
		rideService:    rideService,
		expenseService: expenseService,
		notifications:  notifications,
	}
}

// Record stores a payment that happened outside the app so the ride's
// balances reflect it
func (s *Service) Record(ctx context.Context, fromUserID string, req *RecordSettlementRequest) (*Settlement, error) {
	if fromUserID == req.ToUserID {
		return nil, ErrCannotSettleSelf
	}

	amount := decimal.NewFromFloat(req.Amount)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	members, err := s.rideService.JoinedParticipants(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.UserID] = m.FullName
	}
	if _, ok := names[fromUserID]; !ok {
		return nil, ErrNotRideMember
	}
	if _, ok := names[req.ToUserID]; !ok {
		return nil, ErrNotRideMember
	}

	settlement := &Settlement{
		ID:         uuid.New().String(),
		RideID:     req.RideID,
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		Amount:     amount.Round(2),
		Note:       req.Note,
		FromName:   names[fromUserID],
		ToName:     names[req.ToUserID],
	}
	if err := s.repo.Create(ctx, settlement); err != nil {
		return nil, err
	}

	if _, err := s.notifications.NotifySettlementRecorded(ctx, settlement.ToUserID, settlement.FromName, settlement.Amount, settlement.ID); err != nil {
		logger.Get().Warnw("failed to notify settlement receiver", "settlement_id", settlement.ID, "error", err)
	}

	return settlement, nil
}

// ListByRideID retrieves recorded settlements for a ride
func (s *Service) ListByRideID(ctx context.Context, rideID string) ([]*Settlement, error) {
	if _, err := s.rideService.JoinedParticipants(ctx, rideID); err != nil {
		return nil, err
	}
	return s.repo.ListByRideID(ctx, rideID)
}

// Summary computes the full expense picture for a ride: total spent, every
// participant's net balance, and the suggested transfer plan. Balances are
// recomputed from scratch on each call; nothing here is cached or persisted.
func (s *Service) Summary(ctx context.Context, rideID string) (*SummaryResponse, error) {
	members, err := s.rideService.JoinedParticipants(ctx, rideID)
	if err != nil {
		return nil, err
	}

	participantIDs := make([]string, len(members))
	names := make(map[string]string, len(members))
	for i, m := range members {
		participantIDs[i] = m.UserID
		names[m.UserID] = m.FullName
	}

	expenses, err := s.expenseService.ListWithSplitsByRideID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	recorded, err := s.repo.ListByRideID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	balances := ApplySettlements(ComputeBalances(participantIDs, expenses), recorded)
	plan := PlanTransfers(balances)

	totalSpent := decimal.Zero
	for _, e := range expenses {
		totalSpent = totalSpent.Add(e.Expense.Amount)
	}

	balanceResponses := make([]*BalanceResponse, 0, len(balances))
	for id, balance := range balances {
		balanceResponses = append(balanceResponses, &BalanceResponse{
			UserID:   id,
			FullName: names[id],
			Balance:  balance.Round(2).InexactFloat64(),
			Message:  DescribeBalance(balance),
		})
	}
	// Largest creditor first, ID ties broken alphabetically
	sort.Slice(balanceResponses, func(i, j int) bool {
		if balanceResponses[i].Balance != balanceResponses[j].Balance {
			return balanceResponses[i].Balance > balanceResponses[j].Balance
		}
		return balanceResponses[i].UserID < balanceResponses[j].UserID
	})

	transferResponses := make([]*TransferResponse, len(plan))
	for i, t := range plan {
		transferResponses[i] = &TransferResponse{
			FromUserID: t.FromID,
			FromName:   names[t.FromID],
			ToUserID:   t.ToID,
			ToName:     names[t.ToID],
			Amount:     t.Amount.Round(2).InexactFloat64(),
			Message:    DescribeTransfer(names[t.FromID], names[t.ToID], t.Amount),
		}
	}

	return &SummaryResponse{
		RideID:     rideID,
		TotalSpent: totalSpent.Round(2).InexactFloat64(),
		Balances:   balanceResponses,
		Plan:       transferResponses,
	}, nil
}
