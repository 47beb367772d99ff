package main

import (
	"log"
	"net/http"

	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/shared/config"
	"fintrack/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler
// with middleware applied.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)
	protect := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(http.HandlerFunc(h))
	}

	mux.Handle("/api/transactions/", protect(deps.TransactionHandler.HandleTransactions))
	mux.Handle("/api/transactions/summary", protect(deps.TransactionHandler.HandleSummary))
	mux.Handle("/api/transactions/{id}", protect(deps.TransactionHandler.HandleTransactionByID))

	mux.Handle("/api/categories/", protect(deps.CategoryHandler.HandleCategories))
	mux.Handle("/api/categories/{id}", protect(deps.CategoryHandler.HandleCategoryByID))

	mux.Handle("/api/debts/", protect(deps.DebtHandler.HandleDebts))
	mux.Handle("/api/debts/{id}", protect(deps.DebtHandler.HandleDebtByID))
	mux.Handle("/api/debts/{id}/payments", protect(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			deps.DebtHandler.HandleDebtPayments(w, r)
			return
		}
		deps.LedgerHandler.HandleDebtPayment(w, r)
	}))

	mux.Handle("/api/savings/", protect(deps.SavingHandler.HandleSavings))
	mux.Handle("/api/savings/{id}", protect(deps.SavingHandler.HandleSavingByID))
	mux.Handle("/api/savings/{id}/contributions", protect(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			deps.SavingHandler.HandleSavingContributions(w, r)
			return
		}
		deps.LedgerHandler.HandleSavingContribution(w, r)
	}))
	mux.Handle("/api/savings/{id}/withdrawals", protect(deps.LedgerHandler.HandleSavingWithdrawal))

	mux.Handle("/api/archives/", protect(deps.ArchiveHandler.HandleArchives))
	mux.Handle("/api/archives/{id}", protect(deps.ArchiveHandler.HandleArchiveByID))
	mux.Handle("/api/archives/{id}/regenerate", protect(deps.ArchiveHandler.HandleRegenerate))

	mux.Handle("/api/audit-log", protect(deps.AuditHandler.HandleAuditLog))

	mux.Handle("/api/notifications/register-device", protect(deps.NotificationHandler.HandleRegisterDevice))

	// Global middleware: telemetry wraps everything so spans cover the
	// full request, logging runs last so it sees the final status.
	handler := middleware.RequestID(middleware.Logging(middleware.Tracing(middleware.Telemetry(middleware.CORS(mux)))))

	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
