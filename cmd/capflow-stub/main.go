package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"capflow/internal/config"
	"capflow/internal/stubserver"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	stub := stubserver.New()
	sembrar(stub)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.StubPort),
		Handler:      stub.Engine(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("CapFlow stub backend listening on :%d", cfg.StubPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down stub backend…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
}

// sembrar loads a small demo catalog.
func sembrar(s *stubserver.Server) {
	s.SembrarProducto("Válvula reguladora", "componente", decimal.NewFromInt(1200), decimal.NewFromInt(990), true)
	s.SembrarProducto("Panel de control", "equipo", decimal.NewFromInt(58000), decimal.NewFromInt(51500), true)
	s.SembrarProducto("Sensor de presión", "componente", decimal.NewFromInt(3400), decimal.NewFromInt(2900), false)
	s.SembrarMaquina("Torno CNC", "TOR-01", "Planta norte", true)
	s.SembrarMaquina("Fresadora", "FRE-02", "", true)
	s.SembrarMaquina("Prensa hidráulica", "PRE-03", "En mantenimiento", false)
}
