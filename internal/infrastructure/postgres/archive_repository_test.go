package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain/shared"
)

var archiveRows = []string{
	"id", "user_id", "month", "year", "total_income", "total_expenses", "total_savings",
	"debts_remaining", "carryover_in", "carryover_out", "carryover_transaction_id", "created_at",
}

func expectTotals(mock sqlmock.Sqlmock, income, expenses, carryoverIn, savings, debts string) {
	mock.ExpectQuery(`SELECT\s+COALESCE\(SUM\(amount\) FILTER`).
		WillReturnRows(sqlmock.NewRows([]string{"income", "expenses"}).
			AddRow(income, expenses))
	carryoverRows := sqlmock.NewRows([]string{"amount"})
	if carryoverIn != "0" {
		carryoverRows.AddRow(carryoverIn)
	}
	mock.ExpectQuery(`(?s)SELECT amount FROM transactions\s+WHERE user_id = \$1\s+AND type = 'carryover'`).
		WillReturnRows(carryoverRows)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(st\.amount\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"savings"}).AddRow(savings))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount - paid_amount\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"remaining"}).AddRow(debts))
}

func TestCloseMonth_PositiveBalanceCreatesCarryover(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	expectTotals(mock, "1000", "400", "0", "100", "250")
	mock.ExpectQuery(`INSERT INTO monthly_archives`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, now))
	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs("user-1", "carryover", decimalArg("600"), "Carryover from previous month",
			time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(`UPDATE monthly_archives SET carryover_transaction_id = \$1 WHERE id = \$2`).
		WithArgs(int64(42), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	a, err := repo.CloseMonth(context.Background(), "user-1", 3, 2025)
	if err != nil {
		t.Fatalf("CloseMonth failed: %v", err)
	}
	if !a.CarryoverOut.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected carryover out 600, got %s", a.CarryoverOut)
	}
	if a.CarryoverTransactionID == nil || *a.CarryoverTransactionID != 42 {
		t.Errorf("expected carryover transaction id 42, got %v", a.CarryoverTransactionID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCloseMonth_NegativeBalanceSkipsCarryover(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	expectTotals(mock, "300", "400", "0", "0", "0")
	mock.ExpectQuery(`INSERT INTO monthly_archives`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, now))
	mock.ExpectCommit()

	a, err := repo.CloseMonth(context.Background(), "user-1", 3, 2025)
	if err != nil {
		t.Fatalf("CloseMonth failed: %v", err)
	}
	if !a.CarryoverOut.IsZero() {
		t.Errorf("expected zero carryover out, got %s", a.CarryoverOut)
	}
	if a.CarryoverTransactionID != nil {
		t.Errorf("expected no carryover transaction, got %v", *a.CarryoverTransactionID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCloseMonth_AlreadyClosed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)

	mock.ExpectBegin()
	expectTotals(mock, "1000", "400", "0", "0", "0")
	mock.ExpectQuery(`INSERT INTO monthly_archives`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.CloseMonth(context.Background(), "user-1", 3, 2025)
	if !shared.IsCode(err, shared.CodeAlreadyExists) {
		t.Fatalf("expected ALREADY_EXISTS, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// Carryover in is the amount of the one carryover transaction dated in
// the period, read directly rather than summed.
func TestCloseMonth_CarryoverInFromSingleRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	expectTotals(mock, "1000", "400", "250", "100", "0")
	mock.ExpectQuery(`INSERT INTO monthly_archives`).
		WithArgs("user-1", 3, 2025, decimalArg("1000"), decimalArg("400"), decimalArg("100"),
			decimalArg("0"), decimalArg("250"), decimalArg("600")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, now))
	mock.ExpectQuery(`INSERT INTO transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(`UPDATE monthly_archives SET carryover_transaction_id = \$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	a, err := repo.CloseMonth(context.Background(), "user-1", 3, 2025)
	if err != nil {
		t.Fatalf("CloseMonth failed: %v", err)
	}
	if !a.CarryoverIn.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected carryover in 250, got %s", a.CarryoverIn)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRegenerate_UpdatesCarryoverInPlace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT .+ FROM monthly_archives WHERE id = \$1 AND user_id = \$2 FOR UPDATE`).
		WithArgs(int64(7), "user-1").
		WillReturnRows(sqlmock.NewRows(archiveRows).
			AddRow(7, "user-1", 3, 2025, "1000", "400", "100", "250", "0", "600", 42, now))
	expectTotals(mock, "1100", "400", "0", "100", "250")
	mock.ExpectExec(`UPDATE transactions SET amount = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(decimalArg("700"), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE monthly_archives`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	a, err := repo.Regenerate(context.Background(), "user-1", 7)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if !a.CarryoverOut.Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected carryover out 700, got %s", a.CarryoverOut)
	}
	if a.CarryoverTransactionID == nil || *a.CarryoverTransactionID != 42 {
		t.Errorf("expected carryover transaction id kept at 42, got %v", a.CarryoverTransactionID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRegenerate_BalanceDropRemovesCarryover(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT .+ FROM monthly_archives WHERE id = \$1 AND user_id = \$2 FOR UPDATE`).
		WithArgs(int64(7), "user-1").
		WillReturnRows(sqlmock.NewRows(archiveRows).
			AddRow(7, "user-1", 3, 2025, "1000", "400", "0", "0", "0", "600", 42, now))
	expectTotals(mock, "300", "400", "0", "0", "0")
	mock.ExpectExec(`DELETE FROM transactions WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE monthly_archives`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	a, err := repo.Regenerate(context.Background(), "user-1", 7)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if a.CarryoverTransactionID != nil {
		t.Errorf("expected carryover transaction removed, got %v", *a.CarryoverTransactionID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDelete_RemovesCarryoverTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT .+ FROM monthly_archives WHERE id = \$1 AND user_id = \$2 FOR UPDATE`).
		WithArgs(int64(7), "user-1").
		WillReturnRows(sqlmock.NewRows(archiveRows).
			AddRow(7, "user-1", 3, 2025, "1000", "400", "0", "0", "0", "600", 42, now))
	mock.ExpectExec(`DELETE FROM transactions WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM monthly_archives WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	a, err := repo.Delete(context.Background(), "user-1", 7)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if a.Month != 3 || a.Year != 2025 {
		t.Errorf("unexpected deleted archive period: %d/%d", a.Month, a.Year)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT .+ FROM monthly_archives WHERE id = \$1 AND user_id = \$2 FOR UPDATE`).
		WithArgs(int64(99), "user-1").
		WillReturnRows(sqlmock.NewRows(archiveRows))
	mock.ExpectRollback()

	_, err := repo.Delete(context.Background(), "user-1", 99)
	if !shared.IsCode(err, shared.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
