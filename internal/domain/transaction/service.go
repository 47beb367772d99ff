package transaction

import (
	"context"

	"fintrack/internal/domain/audit"
)

// Service wraps the repository with validation and audit notifications.
// Deletion delegates the aggregate reversal to the repository, which runs
// it in the same database transaction as the row removal.
type Service struct {
	repo  Repository
	audit audit.Recorder
}

func NewService(repo Repository, recorder audit.Recorder) *Service {
	return &Service{repo: repo, audit: recorder}
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	txn, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "transaction", txn.ID, audit.ActionCreate, nil, txn)
	return txn, nil
}

func (s *Service) GetByID(ctx context.Context, userID string, id int64) (*Transaction, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]*Transaction, error) {
	return s.repo.List(ctx, userID, filter)
}

func (s *Service) Update(ctx context.Context, userID string, id int64, params UpdateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	before, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	txn, err := s.repo.Update(ctx, userID, id, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "transaction", txn.ID, audit.ActionUpdate, before, txn)
	return txn, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	s.audit.Record(ctx, userID, "transaction", id, audit.ActionDelete, deleted, nil)
	return nil
}

func (s *Service) Summary(ctx context.Context, userID string, month, year int) (*Summary, error) {
	return s.repo.Summary(ctx, userID, month, year)
}
