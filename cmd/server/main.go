package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qa_platform/internal/api"
	"qa_platform/internal/app/service"
	"qa_platform/internal/common/security"
	"qa_platform/internal/domain/repository"
	"qa_platform/internal/platform/cache"
	"qa_platform/internal/platform/config"
	"qa_platform/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Println("Database connected.")

	// 3. Initialize Redis (optional side-channel; the server runs without it)
	appCache, err := cache.Connect(context.Background(), cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
	} else {
		defer appCache.Close()
		log.Println("Redis connected.")
	}

	// 4. Initialize Token Issuer
	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExp)

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	questionRepo := repository.NewPgQuestionRepository(db)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, tokens)
	questionService := service.NewQuestionService(questionRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, questionService, tokens, cfg.CORSOrigin)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
