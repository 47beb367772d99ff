package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/shared"
)

func TestCreateParams_Validate(t *testing.T) {
	categoryID := int64(2)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		params   CreateParams
		wantCode string
	}{
		{
			name:   "Valid Expense",
			params: CreateParams{Kind: KindExpense, CategoryID: &categoryID, Amount: decimal.RequireFromString("45.90"), Date: date},
		},
		{
			name:   "Valid Carryover",
			params: CreateParams{Kind: KindCarryover, Amount: decimal.RequireFromString("600"), Date: date},
		},
		{
			name:     "Unknown Kind",
			params:   CreateParams{Kind: Kind("transfer"), Amount: decimal.NewFromInt(10), Date: date},
			wantCode: shared.CodeInvalidArgument,
		},
		{
			name:     "Zero Amount",
			params:   CreateParams{Kind: KindIncome, Amount: decimal.Zero, Date: date},
			wantCode: shared.CodeInvalidArgument,
		},
		{
			name:     "Negative Amount",
			params:   CreateParams{Kind: KindIncome, Amount: decimal.NewFromInt(-5), Date: date},
			wantCode: shared.CodeInvalidArgument,
		},
		{
			name:     "Carryover With Category",
			params:   CreateParams{Kind: KindCarryover, CategoryID: &categoryID, Amount: decimal.NewFromInt(100), Date: date},
			wantCode: shared.CodeInvalidArgument,
		},
		{
			name:     "Missing Date",
			params:   CreateParams{Kind: KindExpense, Amount: decimal.NewFromInt(10)},
			wantCode: shared.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if shared.CodeOf(err) != tt.wantCode {
				t.Errorf("error code = %s, want %s", shared.CodeOf(err), tt.wantCode)
			}
		})
	}
}

func TestUpdateParams_Validate(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	if err := (UpdateParams{Amount: &negative}).Validate(); shared.CodeOf(err) != shared.CodeInvalidArgument {
		t.Errorf("error code = %s, want %s", shared.CodeOf(err), shared.CodeInvalidArgument)
	}

	positive := decimal.NewFromInt(10)
	if err := (UpdateParams{Amount: &positive}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
