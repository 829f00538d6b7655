package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jkaczmarek/FinFlow/internal/audit"
	"github.com/jkaczmarek/FinFlow/internal/auth"
	"github.com/jkaczmarek/FinFlow/internal/banklink"
	"github.com/jkaczmarek/FinFlow/internal/config"
	database "github.com/jkaczmarek/FinFlow/internal/db"
	"github.com/jkaczmarek/FinFlow/internal/finance/application"
	"github.com/jkaczmarek/FinFlow/internal/finance/infrastructure"
	"github.com/jkaczmarek/FinFlow/internal/finance/interfaces"
	"github.com/jkaczmarek/FinFlow/internal/logger"
	"github.com/jkaczmarek/FinFlow/internal/privacy"
	"github.com/jkaczmarek/FinFlow/internal/ratelimit"
)

// deletedTransactionRetention is how long soft-deleted transactions stay
// restorable before the purge job removes them for good.
const deletedTransactionRetention = 30 * 24 * time.Hour

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router             *http.ServeMux
	jwtManager         *auth.JWTManager
	transactionHandler *interfaces.TransactionHandler
	viewHandler        *interfaces.ViewHandler
	accountHandler     *interfaces.AccountHandler
	categoryHandler    *interfaces.CategoryHandler
	budgetHandler      *interfaces.BudgetHandler
	privacyHandler     *privacy.Handler
	bankLinkHandler    *banklink.Handler
}

func NewServer(
	jwtManager *auth.JWTManager,
	transactionHandler *interfaces.TransactionHandler,
	viewHandler *interfaces.ViewHandler,
	accountHandler *interfaces.AccountHandler,
	categoryHandler *interfaces.CategoryHandler,
	budgetHandler *interfaces.BudgetHandler,
	privacyHandler *privacy.Handler,
	bankLinkHandler *banklink.Handler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		jwtManager:         jwtManager,
		transactionHandler: transactionHandler,
		viewHandler:        viewHandler,
		accountHandler:     accountHandler,
		categoryHandler:    categoryHandler,
		budgetHandler:      budgetHandler,
		privacyHandler:     privacyHandler,
		bankLinkHandler:    bankLinkHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	authMiddleware := s.jwtManager.AccessTokenMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()

	// TRANSACTIONS API
	protectedRoutes.Handle("POST /api/protected/finance/transactions",
		authMiddleware(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("PUT /api/protected/finance/transactions/{transactionID}",
		authMiddleware(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/finance/transactions/{transactionID}",
		authMiddleware(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))
	protectedRoutes.Handle("POST /api/protected/finance/transactions/{transactionID}/restore",
		authMiddleware(http.HandlerFunc(s.transactionHandler.RestoreTransaction)))
	protectedRoutes.Handle("POST /api/protected/finance/transactions/bulk-delete",
		authMiddleware(http.HandlerFunc(s.transactionHandler.BulkDeleteTransactions)))

	// TRANSACTIONS VIEW API
	protectedRoutes.Handle("GET /api/protected/finance/transactions/view",
		authMiddleware(http.HandlerFunc(s.viewHandler.GetView)))
	protectedRoutes.Handle("GET /api/protected/finance/transactions/export/csv",
		authMiddleware(http.HandlerFunc(s.viewHandler.ExportCSV)))
	protectedRoutes.Handle("GET /api/protected/finance/transactions/export/html",
		authMiddleware(http.HandlerFunc(s.viewHandler.ExportHTML)))

	// ACCOUNTS, CATEGORIES, BUDGETS API
	protectedRoutes.Handle("GET /api/protected/finance/accounts",
		authMiddleware(http.HandlerFunc(s.accountHandler.GetUserAccounts)))
	protectedRoutes.Handle("GET /api/protected/finance/categories",
		authMiddleware(http.HandlerFunc(s.categoryHandler.GetUserCategories)))
	protectedRoutes.Handle("PATCH /api/protected/finance/categories/{categoryID}",
		authMiddleware(http.HandlerFunc(s.categoryHandler.UpdateCategory)))
	protectedRoutes.Handle("POST /api/protected/finance/budgets",
		authMiddleware(http.HandlerFunc(s.budgetHandler.CreateBudget)))
	protectedRoutes.Handle("GET /api/protected/finance/budgets",
		authMiddleware(http.HandlerFunc(s.budgetHandler.GetUserBudgets)))

	// PRIVACY API
	protectedRoutes.Handle("POST /api/protected/privacy/requests",
		authMiddleware(http.HandlerFunc(s.privacyHandler.CreateRequest)))
	protectedRoutes.Handle("GET /api/protected/privacy/requests",
		authMiddleware(http.HandlerFunc(s.privacyHandler.ListRequests)))

	// BANK LINK API
	protectedRoutes.Handle("POST /api/protected/bank/link",
		authMiddleware(http.HandlerFunc(s.bankLinkHandler.CreateLinkToken)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	appLogger := logger.New("finflow")

	dbService, err := database.NewDBService(cfg.DBConnectionString)
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	auditRecorder := audit.NewRecorder(dbService.DB, appLogger)

	limiterOpts := []ratelimit.Option{}
	if cfg.RedisAddr != "" {
		limiterOpts = append(limiterOpts, ratelimit.WithSharedStore(ratelimit.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)))
	} else {
		appLogger.Info().Msg("redis not configured, rate limiting stays in-process")
	}
	limiter := ratelimit.NewFixedWindowLimiter(appLogger, limiterOpts...)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	accountRepo := infrastructure.NewAccountRepository(dbService.DB)
	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	budgetRepo := infrastructure.NewBudgetRepository(dbService.DB)

	accountService := application.NewAccountService(accountRepo)
	categoryService := application.NewCategoryService(categoryRepo, auditRecorder)
	transactionService := application.NewTransactionService(transactionRepo, accountService, categoryService, auditRecorder)
	viewService := application.NewViewService(transactionRepo, accountRepo, categoryService, auditRecorder, cfg.AuditSampleRate)
	budgetService := application.NewBudgetService(budgetRepo, categoryService, auditRecorder)

	privacyRepo := privacy.NewSQLRepository(dbService.DB)
	privacyService := privacy.NewService(privacyRepo, auditRecorder, appLogger)

	aggregatorClient := banklink.NewHTTPAggregatorClient(cfg.BankAPIURL, cfg.BankClientID, cfg.BankSecret, cfg.BankRedirectURI)
	bankLinkService := banklink.NewService(limiter, aggregatorClient, auditRecorder, appLogger)

	server := NewServer(
		jwtManager,
		interfaces.NewTransactionHandler(transactionService, respondJSON, respondError),
		interfaces.NewViewHandler(viewService, respondJSON, respondError),
		interfaces.NewAccountHandler(accountService, respondJSON, respondError),
		interfaces.NewCategoryHandler(categoryService, respondJSON, respondError),
		interfaces.NewBudgetHandler(budgetService, respondJSON, respondError),
		privacy.NewHandler(privacyService, respondJSON, respondError),
		banklink.NewHandler(bankLinkService, respondJSON, respondError),
	)
	server.RegisterRoutes()

	if err := StartRetentionScheduler(transactionService, privacyService); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	handler := loggingMiddleware(server.router)
	log.Printf("Server starting on port %s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func StartRetentionScheduler(transactionService *application.TransactionService, privacyService *privacy.Service) error {
	c := cron.New()
	_, err := c.AddFunc("@every 24h", func() {
		count, err := transactionService.PurgeDeleted(context.Background(), deletedTransactionRetention)
		if err != nil {
			log.Printf("Error purging deleted transactions: %v", err)
		} else if count > 0 {
			log.Printf("Purged %d deleted transactions past retention.", count)
		}
	})
	if err != nil {
		return err
	}
	_, err = c.AddFunc("@every 1h", func() {
		privacyService.SweepDueDeletes(context.Background())
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
