package debt

import (
	"context"

	"fintrack/internal/domain/audit"
)

type Service struct {
	repo  Repository
	audit audit.Recorder
}

func NewService(repo Repository, recorder audit.Recorder) *Service {
	return &Service{repo: repo, audit: recorder}
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Debt, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "debt", d.ID, audit.ActionCreate, nil, d)
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, userID string, id int64) (*Debt, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Debt, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID string, id int64, params UpdateParams) (*Debt, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	before, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	d, err := s.repo.Update(ctx, userID, id, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "debt", d.ID, audit.ActionUpdate, before, d)
	return d, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	before, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.audit.Record(ctx, userID, "debt", id, audit.ActionDelete, before, nil)
	return nil
}

func (s *Service) ListPayments(ctx context.Context, userID string, debtID int64) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, userID, debtID)
}
