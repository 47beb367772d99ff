package archive

import (
	"context"

	"fintrack/internal/domain/audit"
	"fintrack/internal/domain/shared"
)

// Closer owns the period-closing lifecycle: explicit close, regeneration,
// deletion and the unattended close used by the monthly scheduler.
type Closer struct {
	repo  Repository
	audit audit.Recorder
}

func NewCloser(repo Repository, recorder audit.Recorder) *Closer {
	return &Closer{repo: repo, audit: recorder}
}

func (c *Closer) CloseMonth(ctx context.Context, userID string, month, year int) (*Archive, error) {
	if !ValidMonth(month) {
		return nil, shared.InvalidArgument("invalid month")
	}

	arch, err := c.repo.CloseMonth(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, userID, "monthly_archive", arch.ID, audit.ActionCreate, nil, arch)
	return arch, nil
}

// CloseForUser closes the given period on behalf of the scheduler. An
// already-closed period is a silent no-op: it returns (nil, nil) so a
// re-triggered batch does not surface duplicate-close errors.
func (c *Closer) CloseForUser(ctx context.Context, userID string, month, year int) (*Archive, error) {
	arch, err := c.CloseMonth(ctx, userID, month, year)
	if err != nil {
		if shared.IsCode(err, shared.CodeAlreadyExists) {
			return nil, nil
		}
		return nil, err
	}
	return arch, nil
}

func (c *Closer) Regenerate(ctx context.Context, userID string, id int64) (*Archive, error) {
	arch, err := c.repo.Regenerate(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, userID, "monthly_archive", arch.ID, audit.ActionUpdate, nil, arch)
	return arch, nil
}

func (c *Closer) Delete(ctx context.Context, userID string, id int64) error {
	arch, err := c.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	c.audit.Record(ctx, userID, "monthly_archive", id, audit.ActionDelete, nil, map[string]any{
		"month": arch.Month,
		"year":  arch.Year,
	})
	return nil
}

func (c *Closer) List(ctx context.Context, userID string) ([]*Archive, error) {
	return c.repo.List(ctx, userID)
}
