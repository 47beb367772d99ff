package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/shared"
)

// startTestDB boots a disposable Postgres container, applies the schema
// and returns a ready connection. Skipped in -short runs because it
// needs a Docker daemon.
func startTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("fintrack_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	if err := RunMigrations(connStr); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db, err := New(connStr)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// Two concurrent payments that together exceed the debt total contend on
// the same row lock. Whichever transaction commits second must see the
// updated paid amount and be rejected, so the debt never overshoots.
func TestAddDebtPayment_ConcurrentOvershoot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db := startTestDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	var debtID int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO debts (user_id, name, total_amount, paid_amount, date_taken)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING id
	`, "user-1", "Car loan", "1000", time.Now()).Scan(&debtID)
	if err != nil {
		t.Fatalf("failed to seed debt: %v", err)
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.AddDebtPayment(ctx, "user-1", ledger.PaymentParams{
				DebtID: debtID,
				Amount: decimal.NewFromInt(600),
				Date:   time.Now(),
			})
		}(i)
	}
	wg.Wait()

	var committed, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			committed++
		case shared.IsCode(err, shared.CodeInvalidArgument):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if committed != 1 || rejected != 1 {
		t.Fatalf("expected one committed and one rejected payment, got %d committed, %d rejected", committed, rejected)
	}

	var paid decimal.Decimal
	if err := db.QueryRowContext(ctx, `SELECT paid_amount FROM debts WHERE id = $1`, debtID).Scan(&paid); err != nil {
		t.Fatalf("failed to read paid amount: %v", err)
	}
	if !paid.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected paid amount 600, got %s", paid)
	}
}
