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
	"github.com/profile-booster/account-service/internal/config"
	"github.com/profile-booster/account-service/internal/handler"
	"github.com/profile-booster/account-service/internal/middleware"
	"github.com/profile-booster/account-service/internal/repository"
	"github.com/profile-booster/account-service/internal/service"
	"github.com/profile-booster/account-service/internal/token"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	rateLimitWindow   = 15 * time.Minute
	rateLimitRequests = 100
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
	db, err := sql.Open("postgres", cfg.DBConn())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		logger.Fatalf("Failed to ensure schema: %v", err)
	}
	tokens := token.NewManager(cfg.JWTSecret)
	svc := service.NewService(repo, tokens, logger)
	h := handler.NewHandler(svc, logger)
	limiter := middleware.NewRateLimiter(rateLimitRequests, rateLimitWindow)

	// Periodically drop rate-limit buckets whose window has lapsed
	c := cron.New()
	if _, err := c.AddFunc("@every 15m", limiter.Evict); err != nil {
		logger.Fatalf("Failed to schedule bucket eviction: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(limiter.Middleware)
	// Public routes
	r.HandleFunc("/", h.Health).Methods("GET")
	r.HandleFunc("/users", h.Signup).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/users").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(tokens))
	authRouter.HandleFunc("/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/{id:[0-9]+}", h.Update).Methods("PUT")
	authRouter.HandleFunc("/{id:[0-9]+}", h.Delete).Methods("DELETE")

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
