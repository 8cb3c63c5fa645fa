package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new notification
func (s *Service) Create(ctx context.Context, recipientID, message string, entityType, entityID *string) (*Notification, error) {
	n := &Notification{
		ID:                uuid.New().String(),
		RecipientID:       recipientID,
		Message:           message,
		RelatedEntityType: entityType,
		RelatedEntityID:   entityID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListByRecipientID retrieves notifications for a user
func (s *Service) ListByRecipientID(ctx context.Context, recipientID string, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
}

// MarkAsRead marks a notification as read
func (s *Service) MarkAsRead(ctx context.Context, id, userID string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *Service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// Helper methods for creating specific notification types

// NotifyExpenseAdded notifies a participant that they owe a share of a new expense
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID, payerName string, share decimal.Decimal, expenseID string) (*Notification, error) {
	message := fmt.Sprintf("%s added an expense; your share is $%s", payerName, share.StringFixed(2))
	entityType := "EXPENSE"
	return s.Create(ctx, recipientID, message, &entityType, &expenseID)
}

// NotifySettlementRecorded notifies the receiver that a payment was recorded
func (s *Service) NotifySettlementRecorded(ctx context.Context, recipientID, payerName string, amount decimal.Decimal, settlementID string) (*Notification, error) {
	message := fmt.Sprintf("%s recorded a payment of $%s to you", payerName, amount.StringFixed(2))
	entityType := "SETTLEMENT"
	return s.Create(ctx, recipientID, message, &entityType, &settlementID)
}

// NotifyRideJoined notifies the organizer that someone joined their ride
func (s *Service) NotifyRideJoined(ctx context.Context, organizerID, riderName, rideID string) (*Notification, error) {
	message := riderName + " joined your ride"
	entityType := "RIDE"
	return s.Create(ctx, organizerID, message, &entityType, &rideID)
}
