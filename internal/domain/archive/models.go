package archive

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarryoverDescription is the description written on every carryover
// transaction created by the period closer.
const CarryoverDescription = "Carryover from previous month"

// Archive is the snapshot of a closed month. CarryoverTransactionID is
// the explicit back-reference to the carryover transaction this close
// produced in the following month, nil when the balance was not positive.
type Archive struct {
	ID                     int64           `json:"id"`
	UserID                 string          `json:"userId"`
	Month                  int             `json:"month"`
	Year                   int             `json:"year"`
	TotalIncome            decimal.Decimal `json:"totalIncome"`
	TotalExpenses          decimal.Decimal `json:"totalExpenses"`
	TotalSavings           decimal.Decimal `json:"totalSavings"`
	DebtsRemaining         decimal.Decimal `json:"debtsRemaining"`
	CarryoverIn            decimal.Decimal `json:"carryoverIn"`
	CarryoverOut           decimal.Decimal `json:"carryoverOut"`
	CarryoverTransactionID *int64          `json:"carryoverTransactionId,omitempty"`
	CreatedAt              time.Time       `json:"createdAt"`
}

// Totals holds the aggregates computed for one period before closing.
type Totals struct {
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	TotalSavings   decimal.Decimal
	DebtsRemaining decimal.Decimal
	CarryoverIn    decimal.Decimal
}

// Balance is income minus expenses for the period.
func (t Totals) Balance() decimal.Decimal {
	return t.TotalIncome.Sub(t.TotalExpenses)
}

// CarryoverOut is the amount propagated into the next period. A negative
// balance is absorbed, never carried forward.
func (t Totals) CarryoverOut() decimal.Decimal {
	if balance := t.Balance(); balance.IsPositive() {
		return balance
	}
	return decimal.Zero
}

// ValidMonth reports whether m is a calendar month.
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

// NextPeriod returns the period following (month, year).
func NextPeriod(month, year int) (int, int) {
	if month == 12 {
		return 1, year + 1
	}
	return month + 1, year
}

// PreviousPeriod returns the calendar month preceding now, the period the
// auto-close job targets.
func PreviousPeriod(now time.Time) (int, int) {
	if now.Month() == time.January {
		return 12, now.Year() - 1
	}
	return int(now.Month()) - 1, now.Year()
}

// CarryoverDate is the date a carryover transaction is booked on: the
// first day of the given period.
func CarryoverDate(month, year int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
