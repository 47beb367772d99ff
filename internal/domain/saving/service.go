package saving

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

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Goal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	g, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "saving_goal", g.ID, audit.ActionCreate, nil, g)
	return g, nil
}

func (s *Service) GetByID(ctx context.Context, userID string, id int64) (*Goal, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID string, id int64, params UpdateParams) (*Goal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	before, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	g, err := s.repo.Update(ctx, userID, id, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "saving_goal", g.ID, audit.ActionUpdate, before, g)
	return g, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	before, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.audit.Record(ctx, userID, "saving_goal", id, audit.ActionDelete, before, nil)
	return nil
}

func (s *Service) ListContributions(ctx context.Context, userID string, goalID int64) ([]*Contribution, error) {
	return s.repo.ListContributions(ctx, userID, goalID)
}
