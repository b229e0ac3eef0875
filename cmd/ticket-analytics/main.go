package main

import (
	"fmt"
	"os"

	"ticket-analytics/internal/auth"
	"ticket-analytics/internal/config"
	"ticket-analytics/internal/db"
	httphandler "ticket-analytics/internal/http"
	"ticket-analytics/internal/http/middleware"
	"ticket-analytics/internal/logger"
	"ticket-analytics/internal/repository"
	"ticket-analytics/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment, cfg.LogLevel)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	ticketRepo := repository.NewTicketRepository(database)
	reportService := service.NewReportService(ticketRepo, cfg.Report)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(reportService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.HTTP, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting ticket analytics service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
