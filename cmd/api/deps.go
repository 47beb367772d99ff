package main

import (
	"context"
	"log"

	"fintrack/internal/domain/archive"
	"fintrack/internal/domain/audit"
	"fintrack/internal/domain/category"
	"fintrack/internal/domain/debt"
	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/notification"
	"fintrack/internal/domain/saving"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/infrastructure/firebase"
	"fintrack/internal/infrastructure/postgres"
	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/shared/auth"
	"fintrack/internal/shared/config"
	"fintrack/internal/shared/messages"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	TransactionHandler  *httphandlers.TransactionHandler
	CategoryHandler     *httphandlers.CategoryHandler
	DebtHandler         *httphandlers.DebtHandler
	SavingHandler       *httphandlers.SavingHandler
	LedgerHandler       *httphandlers.LedgerHandler
	ArchiveHandler      *httphandlers.ArchiveHandler
	AuditHandler        *httphandlers.AuditHandler
	NotificationHandler *httphandlers.NotificationHandler

	// Auth
	JWT *auth.JWT

	// For the scheduler job provider
	TransactionRepo     *postgres.TransactionRepository
	Closer              *archive.Closer
	NotificationService *notification.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Repositories
	transactionRepo := postgres.NewTransactionRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	debtRepo := postgres.NewDebtRepository(db)
	savingRepo := postgres.NewSavingRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)
	archiveRepo := postgres.NewArchiveRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	deviceTokenRepo := postgres.NewDeviceTokenRepository(db)

	// Audit recorder shared by every service
	auditService := audit.NewService(auditRepo)

	// Push messaging. The app runs fine without Firebase credentials,
	// month-closed notifications are simply skipped.
	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, deviceTokenRepo.DeactivateToken)
		if err != nil {
			log.Printf("Warning: Failed to initialize Firebase client: %v", err)
		} else {
			messenger = fcmClient
		}
	} else {
		log.Println("Firebase credentials not configured, push notifications disabled")
	}

	texts, err := messages.Load(cfg.Messages.File)
	if err != nil {
		return nil, err
	}

	// Domain services
	transactionService := transaction.NewService(transactionRepo, auditService)
	categoryService := category.NewService(categoryRepo, auditService)
	debtService := debt.NewService(debtRepo, auditService)
	savingService := saving.NewService(savingRepo, auditService)
	ledgerService := ledger.NewService(ledgerRepo, auditService)
	closer := archive.NewCloser(archiveRepo, auditService)
	notificationService := notification.NewService(deviceTokenRepo, messenger, texts)

	jwt := auth.NewJWT(cfg.JWT.Secret)

	return &Dependencies{
		DB:                  db,
		TransactionHandler:  httphandlers.NewTransactionHandler(transactionService),
		CategoryHandler:     httphandlers.NewCategoryHandler(categoryService),
		DebtHandler:         httphandlers.NewDebtHandler(debtService),
		SavingHandler:       httphandlers.NewSavingHandler(savingService),
		LedgerHandler:       httphandlers.NewLedgerHandler(ledgerService),
		ArchiveHandler:      httphandlers.NewArchiveHandler(closer),
		AuditHandler:        httphandlers.NewAuditHandler(auditService),
		NotificationHandler: httphandlers.NewNotificationHandler(notificationService),
		JWT:                 jwt,
		TransactionRepo:     transactionRepo,
		Closer:              closer,
		NotificationService: notificationService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
