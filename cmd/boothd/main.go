// Command boothd serves the booth HTTP API: signed URL brokering for the
// conversation agent, report forwarding, and on-demand PDF generation.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/cekatlabs/booth-core/core/booths"
	"github.com/cekatlabs/booth-core/core/reports"
	"github.com/cekatlabs/booth-core/pkg/logx"
	"github.com/cekatlabs/booth-core/server"
)

func main() {
	_ = godotenv.Load()
	logx.Init(logx.FromEnv())

	cfg := loadConfig()

	catalog, err := booths.LoadCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load booth catalog")
	}

	handlers := server.NewHandlers(server.Config{
		ElevenLabsAPIKey:  cfg.ElevenLabsAPIKey,
		ElevenLabsBaseURL: cfg.ElevenLabsBaseURL,
		DefaultAgentID:    cfg.DefaultAgentID,
		ReportWebhookURL:  cfg.ReportWebhookURL,
		ReportSecret:      cfg.ReportSecret,
	}, catalog, reports.NewGenerator(catalog))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("booth api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown did not complete cleanly")
	}
}
