package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/avdeev/task-service/internal/auth"
	"github.com/avdeev/task-service/internal/config"
	"github.com/avdeev/task-service/internal/handler"
	"github.com/avdeev/task-service/internal/middleware"
	"github.com/avdeev/task-service/internal/repository"
	"github.com/avdeev/task-service/internal/scheduler"
	"github.com/avdeev/task-service/internal/service"
	"github.com/avdeev/task-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
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
	if err := repo.EnsureSchema(); err != nil {
		logger.Fatalf("Failed to ensure schema: %v", err)
	}
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:    cfg.JWTSecret,
		Algorithm: cfg.JWTAlgorithm,
		TTL:       cfg.TokenTTL,
	})
	if err != nil {
		logger.Fatalf("Failed to configure token service: %v", err)
	}
	svc := service.NewService(repo, logger, tokens)
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Auth(svc))
	authRouter.HandleFunc("/tasks", h.ListTasks).Methods("GET")
	authRouter.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	authRouter.HandleFunc("/tasks/export", h.ExportTasks).Methods("GET")
	authRouter.HandleFunc("/tasks/{id:[0-9]+}", h.GetTask).Methods("GET")
	authRouter.HandleFunc("/tasks/{id:[0-9]+}", h.UpdateTask).Methods("PUT")
	authRouter.HandleFunc("/tasks/{id:[0-9]+}", h.DeleteTask).Methods("DELETE")

	// Start due-date reminders if configured
	if cfg.RemindersEnabled {
		sender := email.NewSender(cfg, logger)
		reminder := scheduler.NewReminder(repo, sender, logger)
		if err := reminder.Start(); err != nil {
			logger.Fatalf("Failed to start reminder scheduler: %v", err)
		}
		defer reminder.Stop()
	}

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
