package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/guidewell/guidewell-server/internal/config"
	"github.com/guidewell/guidewell-server/internal/handler"
	"github.com/guidewell/guidewell-server/internal/integrations/plaid"
	"github.com/guidewell/guidewell-server/internal/middleware"
	"github.com/guidewell/guidewell-server/internal/repository"
	"github.com/guidewell/guidewell-server/internal/service"
	"github.com/guidewell/guidewell-server/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	plaidClient := plaid.NewClient(cfg, logger)
	mailer := email.NewSender(cfg, logger)
	svc, err := service.NewService(repo, plaidClient, mailer, logger, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize service: %v", err)
	}
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/plaid/link/token/create", h.CreateLinkToken).Methods("POST")
	r.HandleFunc("/plaid/item/public_token/exchange", h.ExchangePublicToken).Methods("POST")
	r.HandleFunc("/plaid/accounts", h.GetAccounts).Methods("GET")
	r.HandleFunc("/goals", h.GetGoals).Methods("GET")
	r.HandleFunc("/strategies/presets", h.GetPresets).Methods("GET")
	r.HandleFunc("/strategies/calculate", h.CalculateStrategy).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/accounts/manual", h.CreateManualAccount).Methods("POST")
	authRouter.HandleFunc("/accounts/import", h.ImportStatement).Methods("POST")
	authRouter.HandleFunc("/strategies/email", h.EmailScenarioSummary).Methods("POST")

	// Nightly linked-balance refresh
	c := cron.New()
	if _, err := c.AddFunc(cfg.RefreshSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		svc.RefreshBalances(ctx)
	}); err != nil {
		logger.Fatalf("Failed to schedule balance refresh: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
