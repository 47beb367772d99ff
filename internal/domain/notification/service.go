package notification

import (
	"context"
	"fmt"
	"log"

	"fintrack/internal/shared/messages"
)

// Service contains the business logic for device registration and
// push delivery. The messenger may be nil, in which case sends are
// silently skipped.
type Service struct {
	repo      Repository
	messenger Messenger
	texts     *messages.Messages
}

func NewService(repo Repository, messenger Messenger, texts *messages.Messages) *Service {
	return &Service{repo: repo, messenger: messenger, texts: texts}
}

// RegisterDevice registers a device token for the authenticated user.
// If the token already belongs to another user, it is reassigned.
func (s *Service) RegisterDevice(ctx context.Context, userID string, params RegisterParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpsertToken(ctx, userID, params)
}

// NotifyMonthClosed pushes a notification to all of the user's active
// devices after a monthly archive has been created. Delivery failures
// are logged, never propagated.
func (s *Service) NotifyMonthClosed(ctx context.Context, userID string, month, year int) {
	if s.messenger == nil || s.texts == nil {
		return
	}

	tokens, err := s.repo.ActiveTokensByUserID(ctx, userID)
	if err != nil {
		log.Printf("Error loading device tokens for user %s: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	text := s.texts.MonthClosed
	data := map[string]string{
		"route": "archives",
		"month": fmt.Sprintf("%d", month),
		"year":  fmt.Sprintf("%d", year),
	}

	if err := s.messenger.SendMulticast(ctx, tokens, text.Title, text.Body, data); err != nil {
		log.Printf("Error sending month-closed notification to user %s: %v", userID, err)
	}
}
