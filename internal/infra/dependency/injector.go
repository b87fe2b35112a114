// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pocketledger/backend/config"
	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/usecase/category"
	"github.com/pocketledger/backend/internal/application/usecase/goal"
	"github.com/pocketledger/backend/internal/application/usecase/recurring"
	"github.com/pocketledger/backend/internal/application/usecase/scenario"
	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/application/usecase/wallet"
	"github.com/pocketledger/backend/internal/infra/server/router"
	"github.com/pocketledger/backend/internal/integration/adapters"
	"github.com/pocketledger/backend/internal/integration/email"
	"github.com/pocketledger/backend/internal/integration/email/templates"
	"github.com/pocketledger/backend/internal/integration/entrypoint/controller"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
	"github.com/pocketledger/backend/internal/integration/persistence"
	"github.com/pocketledger/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	DB              *gorm.DB
	Router          *router.Router
	TokenService    adapter.TokenService
	EmailWorker     *email.Worker
	RecurringDaemon *scheduler.RecurringDaemon
	RateLimiter     *middleware.RateLimiter
}

// Options carries the collaborators chosen by the entry point.
type Options struct {
	// Locker guards recurring runs. Redis-backed in multi-instance deployments.
	Locker adapter.JobLocker
	// HealthChecks are reported by GET /health.
	HealthChecks map[string]controller.HealthChecker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	locker := opts.Locker
	if locker == nil {
		locker = adapters.NewMemoryJobLocker()
	}

	// Create repositories
	uow := persistence.NewUnitOfWork(db)
	walletRepo := persistence.NewWalletRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	milestoneRepo := persistence.NewMilestoneRepository(db)
	goalTransactionRepo := persistence.NewGoalTransactionRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	suggester := newMilestoneSuggester(cfg.AI)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	sender, err := newEmailSender(cfg.Email)
	if err != nil {
		return nil, err
	}
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		Retention:    email.DefaultWorkerConfig().Retention,
		StaleAfter:   cfg.Email.StaleClaimAfter,
	})

	// Create recurring runtime
	runner := recurring.NewRunner(
		recurring.NewScheduler(transactionRepo),
		recurring.NewWorker(uow),
		recurring.RunnerConfig{
			Concurrency:  cfg.Recurring.Concurrency,
			MaxAttempts:  cfg.Recurring.MaxAttempts,
			RetryBackoff: cfg.Recurring.RetryBackoff,
		},
	)
	daemon := scheduler.NewRecurringDaemon(runner, locker, scheduler.DaemonConfig{
		Interval: cfg.Recurring.Interval,
		LockTTL:  cfg.Recurring.LockTTL,
	})

	// Create controllers
	walletController := controller.NewWalletController(
		wallet.NewListWalletsUseCase(walletRepo),
		wallet.NewGetWalletUseCase(walletRepo),
		wallet.NewCreateWalletUseCase(walletRepo),
		wallet.NewUpdateWalletUseCase(walletRepo),
		wallet.NewDeleteWalletUseCase(uow),
	)

	categoryController := controller.NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewUpdateCategoryUseCase(categoryRepo),
		category.NewDeleteCategoryUseCase(categoryRepo),
	)

	transactionController := controller.NewTransactionController(
		transaction.NewListTransactionsUseCase(transactionRepo),
		transaction.NewCreateTransactionUseCase(uow),
		transaction.NewUpdateTransactionUseCase(uow),
		transaction.NewDeleteTransactionUseCase(uow),
	)

	goalController := controller.NewGoalController(controller.GoalUseCases{
		List:                 goal.NewListGoalsUseCase(goalRepo, milestoneRepo),
		Create:               goal.NewCreateGoalUseCase(uow, suggester),
		Get:                  goal.NewGetGoalUseCase(goalRepo, milestoneRepo),
		Update:               goal.NewUpdateGoalUseCase(goalRepo),
		Delete:               goal.NewDeleteGoalUseCase(uow),
		AddAmount:            goal.NewAddAmountUseCase(uow, emailService),
		RemoveAmount:         goal.NewRemoveAmountUseCase(uow),
		RegenerateMilestones: goal.NewRegenerateMilestonesUseCase(goalRepo, uow, suggester),
		UpdateMilestone:      goal.NewUpdateMilestoneUseCase(goalRepo, milestoneRepo),
		TransactionHistory:   goal.NewGetTransactionHistoryUseCase(goalRepo, goalTransactionRepo),
	})

	recurringController := controller.NewRecurringController(
		recurring.NewProcessNowUseCase(runner, locker, cfg.Recurring.LockTTL),
	)

	scenarioController := controller.NewScenarioController(scenario.NewCalculateUseCase())

	healthController := controller.NewHealthController(opts.HealthChecks)

	// Create middleware
	rateLimiter := middleware.NewRateLimiter(
		cfg.Recurring.ProcessNowLimit,
		cfg.Recurring.ProcessNowWindow,
		middleware.ByUser,
	)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		walletController,
		categoryController,
		transactionController,
		goalController,
		recurringController,
		scenarioController,
		rateLimiter,
		authMiddleware,
		cfg.Server.CORSOrigins,
	)

	return &Injector{
		Config:          cfg,
		DB:              db,
		Router:          r,
		TokenService:    tokenService,
		EmailWorker:     emailWorker,
		RecurringDaemon: daemon,
		RateLimiter:     rateLimiter,
	}, nil
}

// newMilestoneSuggester picks Gemini when a key is configured, otherwise even spacing.
func newMilestoneSuggester(cfg config.AIConfig) adapter.MilestoneSuggester {
	gemini := adapters.NewGeminiMilestoneService(cfg.GeminiAPIKey, cfg.Model)
	if gemini.IsAvailable() {
		slog.Info("Milestone suggestions served by Gemini")
		return gemini
	}
	slog.Info("Gemini API key not configured, milestones will be spaced evenly")
	return adapters.NewEvenMilestoneSuggester()
}

// newEmailSender picks Resend when a key is configured, otherwise logs the emails.
func newEmailSender(cfg config.EmailConfig) (adapter.EmailSender, error) {
	if cfg.ResendAPIKey == "" {
		slog.Warn("Resend API key not configured, emails will only be logged")
		return email.NewLogSender(), nil
	}
	client := email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail)
	if cfg.ResendBaseURL != "" {
		if err := client.SetBaseURL(cfg.ResendBaseURL); err != nil {
			return nil, err
		}
	}
	return client, nil
}
