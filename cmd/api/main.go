package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/davron17/finflow/internal/analytics"
	"github.com/davron17/finflow/internal/config"
	"github.com/davron17/finflow/internal/forecast"
	"github.com/davron17/finflow/internal/handler"
	"github.com/davron17/finflow/internal/importer"
	"github.com/davron17/finflow/internal/middleware"
	"github.com/davron17/finflow/internal/repository"
	"github.com/davron17/finflow/internal/service"
	"github.com/davron17/finflow/internal/utils/email"
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

	// Initialize layers
	repo := repository.NewRepository(db)
	engine := forecast.NewEngine(forecast.Config{
		MinHistoryDays:         cfg.MinHistoryDays,
		AnomalyGrowthThreshold: cfg.AnomalyGrowthThreshold,
		NewExpenseThreshold:    cfg.NewExpenseThreshold,
		StatisticalTimeout:     cfg.StatisticalTimeout,
	}, logger)
	svc := service.NewService(repo, engine, analytics.NewService(logger),
		importer.NewParser(logger), email.NewSender(cfg, logger), logger, cfg)
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions/import", h.ImportStatement).Methods("POST")
	authRouter.HandleFunc("/forecast", h.Forecast).Methods("POST")
	authRouter.HandleFunc("/analytics/liquidity", h.AnalyzeLiquidity).Methods("POST")
	authRouter.HandleFunc("/analytics/dashboard", h.Dashboard).Methods("POST")
	authRouter.HandleFunc("/analytics/filter-options", h.FilterOptions).Methods("GET")
	authRouter.HandleFunc("/analytics/anomalies", h.Anomalies).Methods("GET")
	authRouter.HandleFunc("/analytics/stress-test", h.StressTest).Methods("GET")

	// Schedule the daily anomaly and cash-gap digest
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.DigestSchedule, func() {
		svc.RunDailyDigest(context.Background())
	}); err != nil {
		logger.Fatalf("Failed to schedule daily digest: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
