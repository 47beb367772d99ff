package category

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

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "category", c.ID, audit.ActionCreate, nil, c)
	return c, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Category, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID string, id int64, params UpdateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.Update(ctx, userID, id, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "category", c.ID, audit.ActionUpdate, nil, c)
	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.audit.Record(ctx, userID, "category", id, audit.ActionDelete, nil, nil)
	return nil
}
