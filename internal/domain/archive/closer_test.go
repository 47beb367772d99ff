package archive

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/audit"
	"fintrack/internal/domain/shared"
)

// MockRepository implements Repository for testing
type MockRepository struct {
	CloseMonthFunc func(ctx context.Context, userID string, month, year int) (*Archive, error)
	RegenerateFunc func(ctx context.Context, userID string, id int64) (*Archive, error)
	DeleteFunc     func(ctx context.Context, userID string, id int64) (*Archive, error)
	ListFunc       func(ctx context.Context, userID string) ([]*Archive, error)
}

func (m *MockRepository) CloseMonth(ctx context.Context, userID string, month, year int) (*Archive, error) {
	if m.CloseMonthFunc != nil {
		return m.CloseMonthFunc(ctx, userID, month, year)
	}
	return nil, nil
}

func (m *MockRepository) Regenerate(ctx context.Context, userID string, id int64) (*Archive, error) {
	if m.RegenerateFunc != nil {
		return m.RegenerateFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, userID string, id int64) (*Archive, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context, userID string) ([]*Archive, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

// MockRecorder captures audit notifications
type MockRecorder struct {
	Actions []audit.Action
}

func (m *MockRecorder) Record(ctx context.Context, userID, entityType string, entityID int64, action audit.Action, before, after any) {
	m.Actions = append(m.Actions, action)
}

func TestCloseMonth_RejectsInvalidMonth(t *testing.T) {
	repoCalled := false
	closer := NewCloser(&MockRepository{
		CloseMonthFunc: func(ctx context.Context, userID string, month, year int) (*Archive, error) {
			repoCalled = true
			return &Archive{}, nil
		},
	}, &MockRecorder{})

	for _, month := range []int{0, 13, -3} {
		_, err := closer.CloseMonth(context.Background(), "user-1", month, 2024)
		if shared.CodeOf(err) != shared.CodeInvalidArgument {
			t.Errorf("month %d: error code = %s, want %s", month, shared.CodeOf(err), shared.CodeInvalidArgument)
		}
	}
	if repoCalled {
		t.Error("repository called despite invalid month")
	}
}

func TestCloseMonth_AuditsCreate(t *testing.T) {
	recorder := &MockRecorder{}
	closer := NewCloser(&MockRepository{
		CloseMonthFunc: func(ctx context.Context, userID string, month, year int) (*Archive, error) {
			return &Archive{ID: 11, UserID: userID, Month: month, Year: year,
				CarryoverOut: decimal.NewFromInt(150)}, nil
		},
	}, recorder)

	arch, err := closer.CloseMonth(context.Background(), "user-1", 3, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arch.ID != 11 {
		t.Errorf("archive id = %d, want 11", arch.ID)
	}
	if len(recorder.Actions) != 1 || recorder.Actions[0] != audit.ActionCreate {
		t.Errorf("audit actions = %v, want [create]", recorder.Actions)
	}
}

func TestCloseForUser_AlreadyClosedIsSilent(t *testing.T) {
	recorder := &MockRecorder{}
	closer := NewCloser(&MockRepository{
		CloseMonthFunc: func(ctx context.Context, userID string, month, year int) (*Archive, error) {
			return nil, shared.AlreadyExists("month already closed")
		},
	}, recorder)

	arch, err := closer.CloseForUser(context.Background(), "user-1", 3, 2024)
	if err != nil {
		t.Fatalf("already-closed period should be a no-op, got error: %v", err)
	}
	if arch != nil {
		t.Errorf("expected nil archive for no-op close, got %+v", arch)
	}
	if len(recorder.Actions) != 0 {
		t.Errorf("audit recorded for no-op close: %v", recorder.Actions)
	}
}

func TestCloseForUser_OtherErrorsPropagate(t *testing.T) {
	closer := NewCloser(&MockRepository{
		CloseMonthFunc: func(ctx context.Context, userID string, month, year int) (*Archive, error) {
			return nil, shared.Internal("store failure")
		},
	}, &MockRecorder{})

	_, err := closer.CloseForUser(context.Background(), "user-1", 3, 2024)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestDelete_AuditsWithPeriod(t *testing.T) {
	recorder := &MockRecorder{}
	closer := NewCloser(&MockRepository{
		DeleteFunc: func(ctx context.Context, userID string, id int64) (*Archive, error) {
			return &Archive{ID: id, Month: 3, Year: 2024}, nil
		},
	}, recorder)

	if err := closer.Delete(context.Background(), "user-1", 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recorder.Actions) != 1 || recorder.Actions[0] != audit.ActionDelete {
		t.Errorf("audit actions = %v, want [delete]", recorder.Actions)
	}
}

func TestDelete_NotFound(t *testing.T) {
	closer := NewCloser(&MockRepository{
		DeleteFunc: func(ctx context.Context, userID string, id int64) (*Archive, error) {
			return nil, shared.NotFound("archive not found")
		},
	}, &MockRecorder{})

	err := closer.Delete(context.Background(), "user-1", 99)
	if shared.CodeOf(err) != shared.CodeNotFound {
		t.Errorf("error code = %s, want %s", shared.CodeOf(err), shared.CodeNotFound)
	}
}
