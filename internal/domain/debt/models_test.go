package debt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/shared"
)

func newDebt(total, paid string, status Status) *Debt {
	return &Debt{
		ID:          1,
		UserID:      "user-1",
		Name:        "Car loan",
		TotalAmount: decimal.RequireFromString(total),
		PaidAmount:  decimal.RequireFromString(paid),
		Status:      status,
		DateTaken:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplyPayment_Sequence(t *testing.T) {
	d := newDebt("1000", "0", StatusActive)

	newPaid, status, err := d.ApplyPayment(decimal.RequireFromString("400"))
	if err != nil {
		t.Fatalf("first payment: unexpected error: %v", err)
	}
	if !newPaid.Equal(decimal.RequireFromString("400")) {
		t.Errorf("paid amount = %s, want 400", newPaid)
	}
	if status != StatusActive {
		t.Errorf("status = %s, want active", status)
	}

	d.PaidAmount = newPaid
	newPaid, status, err = d.ApplyPayment(decimal.RequireFromString("600"))
	if err != nil {
		t.Fatalf("second payment: unexpected error: %v", err)
	}
	if !newPaid.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("paid amount = %s, want 1000", newPaid)
	}
	if status != StatusPaid {
		t.Errorf("status = %s, want paid", status)
	}

	d.PaidAmount = newPaid
	d.Status = status
	if _, _, err := d.ApplyPayment(decimal.NewFromInt(1)); err == nil {
		t.Fatal("payment on paid debt: expected error, got nil")
	} else if shared.CodeOf(err) != shared.CodeInvalidArgument {
		t.Errorf("error code = %s, want %s", shared.CodeOf(err), shared.CodeInvalidArgument)
	}
}

func TestApplyPayment_Overshoot(t *testing.T) {
	d := newDebt("1000", "700", StatusActive)

	_, _, err := d.ApplyPayment(decimal.RequireFromString("300.01"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if shared.CodeOf(err) != shared.CodeInvalidArgument {
		t.Errorf("error code = %s, want %s", shared.CodeOf(err), shared.CodeInvalidArgument)
	}

	// Exact payoff is allowed and flips the status.
	newPaid, status, err := d.ApplyPayment(decimal.RequireFromString("300"))
	if err != nil {
		t.Fatalf("exact payoff: unexpected error: %v", err)
	}
	if !newPaid.Equal(d.TotalAmount) || status != StatusPaid {
		t.Errorf("got paid=%s status=%s, want paid=1000 status=paid", newPaid, status)
	}
}

func TestApplyPayment_InactiveDebt(t *testing.T) {
	for _, status := range []Status{StatusPaid, StatusCancelled} {
		d := newDebt("1000", "0", status)
		if _, _, err := d.ApplyPayment(decimal.NewFromInt(100)); err == nil {
			t.Errorf("status %s: expected error, got nil", status)
		}
	}
}

func TestReversePayment_KeepsStatus(t *testing.T) {
	d := newDebt("1000", "1000", StatusPaid)

	newPaid := d.ReversePayment(decimal.RequireFromString("400"))
	if !newPaid.Equal(decimal.RequireFromString("600")) {
		t.Errorf("paid amount = %s, want 600", newPaid)
	}
	// Reversal never recomputes the status; the debt stays paid.
	if d.Status != StatusPaid {
		t.Errorf("status = %s, want paid", d.Status)
	}
}

func TestCreateParamsValidate(t *testing.T) {
	valid := CreateParams{
		Name:        "Mortgage",
		TotalAmount: decimal.NewFromInt(50000),
		DateTaken:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	bad := valid
	bad.TotalAmount = decimal.Zero
	if err := bad.Validate(); err == nil {
		t.Error("zero total amount accepted")
	}

	bad = valid
	bad.Name = ""
	if err := bad.Validate(); err == nil {
		t.Error("empty name accepted")
	}
}
