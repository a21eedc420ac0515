package api

import (
	"net/http"
	"time"

	"edu_rewards/internal/api/handler"
	"edu_rewards/internal/app/service"
	"edu_rewards/internal/common/security"
	"edu_rewards/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	catalogService *service.CatalogService,
	submissionService *service.SubmissionService,
	approvalService *service.ApprovalService,
	ledgerService *service.LedgerService,
	certificateService *service.CertificateService,
	settingsService *service.SettingsService,
	txRepo repository.TransactionRepository,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token if present and puts claims in context; the
	// Authenticator middleware on protected routes enforces it.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(public chi.Router) {
			authHandler.RegisterRoutes(public)
		})

		activityHandler := handler.NewActivityHandler(catalogService)
		v1.Route("/activities", activityHandler.RegisterRoutes)

		submissionHandler := handler.NewSubmissionHandler(submissionService, approvalService)
		v1.Route("/submissions", submissionHandler.RegisterRoutes)

		ledgerHandler := handler.NewLedgerHandler(ledgerService)
		v1.Route("/ledger", ledgerHandler.RegisterRoutes)

		certificateHandler := handler.NewCertificateHandler(certificateService)
		v1.Route("/certificates", certificateHandler.RegisterRoutes)

		transactionHandler := handler.NewTransactionHandler(txRepo)
		v1.Route("/transactions", transactionHandler.RegisterRoutes)

		settingsHandler := handler.NewSettingsHandler(settingsService)
		v1.Route("/settings", settingsHandler.RegisterRoutes)
	})

	return r
}
