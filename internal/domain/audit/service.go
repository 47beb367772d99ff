package audit

import (
	"context"
	"encoding/json"
	"log"
)

// Recorder receives post-commit change notifications. Recording is
// best-effort: it runs after the ledger change has committed and must
// never fail the operation that triggered it.
type Recorder interface {
	Record(ctx context.Context, userID, entityType string, entityID int64, action Action, before, after any)
}

// Service persists audit entries through a Repository. Failures are
// logged and swallowed.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, userID, entityType string, entityID int64, action Action, before, after any) {
	params := InsertParams{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	}

	var err error
	if params.PayloadBefore, err = marshalPayload(before); err != nil {
		log.Printf("Audit: failed to marshal before payload for %s %d: %v", entityType, entityID, err)
	}
	if params.PayloadAfter, err = marshalPayload(after); err != nil {
		log.Printf("Audit: failed to marshal after payload for %s %d: %v", entityType, entityID, err)
	}

	if err := s.repo.Insert(ctx, params); err != nil {
		log.Printf("Audit: failed to record %s of %s %d for user %s: %v", action, entityType, entityID, userID, err)
	}
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, userID, limit, offset)
}

func marshalPayload(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
