package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edu_rewards/internal/api"
	"edu_rewards/internal/app/service"
	"edu_rewards/internal/common/security"
	"edu_rewards/internal/domain/repository"
	"edu_rewards/internal/platform/config"
	"edu_rewards/internal/platform/database"
	"edu_rewards/internal/platform/notify"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	log.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// 4. Initialize Redis (change-notification broadcast)
	notify.ConnectRedis()
	defer notify.CloseRedis()
	notifier := notify.NewRedisNotifier(notify.RDB, config.AppConfig.SubmissionEventChannel)

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	profileRepo := repository.NewPgProfileRepository(database.DB)
	activityRepo := repository.NewPgActivityRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	txRepo := repository.NewPgTransactionRepository(database.DB)
	certRepo := repository.NewPgCertificateRepository(database.DB)
	settingsRepo := repository.NewPgSettingsRepository(database.DB)

	// 6. Initialize Services
	ledgerService := service.NewLedgerService(profileRepo)
	authService := service.NewAuthService(userRepo, ledgerService)
	catalogService := service.NewCatalogService(activityRepo)
	submissionService := service.NewSubmissionService(submissionRepo, activityRepo, notifier)
	approvalService := service.NewApprovalService(submissionService, ledgerService, txRepo, config.AppConfig.TreasuryAccount)
	certificateService := service.NewCertificateService(certRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(
		authService,
		catalogService,
		submissionService,
		approvalService,
		ledgerService,
		certificateService,
		settingsService,
		txRepo,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
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
