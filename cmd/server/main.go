// Command server runs the room-reservation backend. It wires the in-memory
// stores, the spreadsheet gateway, and the HTTP delivery layer, loads the
// initial remote snapshot, and serves until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomreserve/config"
	_ "roomreserve/docs"
	"roomreserve/internal/adapters/auth"
	"roomreserve/internal/adapters/sheets"
	httpdelivery "roomreserve/internal/delivery/http"
	"roomreserve/internal/delivery/http/controllers"
	"roomreserve/internal/delivery/http/middleware"
	"roomreserve/internal/domain"
	"roomreserve/internal/repository/memory"
	"roomreserve/internal/services"
)

// @title Room Reservation API
// @version 1.0
// @description Backend for the room-reservation wizard and its admin console.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "err", err)
		os.Exit(1)
	}

	passphraseHash := cfg.AdminPassphraseHash
	if passphraseHash == "" {
		passphraseHash, err = auth.HashPassphrase(cfg.AdminPassphrase)
		if err != nil {
			logger.Error("failed to hash admin passphrase", "err", err)
			os.Exit(1)
		}
	}

	// Shared stores, seeded with configured defaults until the first load.
	ledger := memory.NewCapacityLedger(cfg.DefaultRoomLimits)
	roster := memory.NewRosterStore(nil, nil)
	submissions := memory.NewSubmissionLog()

	gateway := sheets.NewClient(cfg.SheetsURL, &http.Client{Timeout: 30 * time.Second})
	syncSvc := services.NewSyncService(gateway, ledger, roster, submissions)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := syncSvc.Refresh(loadCtx); err != nil {
		// The server still starts; an admin refresh can recover once the
		// remote store is reachable again.
		logger.Warn("initial remote load failed, starting with defaults", "err", err)
	} else {
		logger.Info("initial data loaded", "availability", ledger.All(), "submissions", submissions.Len())
	}
	cancelLoad()

	tokens := auth.NewJWTTokens(cfg.JWTSecret)
	verifier := auth.NewBcryptVerifier(passphraseHash)
	adminSvc := services.NewAdminService(
		verifier, tokens, cfg.TokenExpiry,
		ledger, roster, submissions, gateway, syncSvc,
		cfg.DefaultRoomLimits,
	)

	reservationCtrl := controllers.NewReservationController(logger, ledger, roster, func() domain.ReservationWorkflow {
		return services.NewWorkflow(ledger, roster, submissions, gateway)
	})
	adminCtrl := controllers.NewAdminController(logger, adminSvc, ledger)

	mux := httpdelivery.NewRouter(reservationCtrl, adminCtrl, tokens)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
