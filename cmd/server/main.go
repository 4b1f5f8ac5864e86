package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-ingress/internal/config"
	"github.com/MKhiriev/go-ingress/internal/handler"
	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/MKhiriev/go-ingress/internal/metrics"
	"github.com/MKhiriev/go-ingress/internal/server"
	"github.com/MKhiriev/go-ingress/internal/service"
	"github.com/MKhiriev/go-ingress/internal/telemetry"
	"github.com/MKhiriev/go-ingress/internal/workers"
	"github.com/MKhiriev/go-ingress/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("go-ingress-server", config.DefaultLogLevel)
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log = logger.NewLogger("go-ingress-server", cfg.App.LogLevel)
	log.Debug().Any("config", cfg).Msg("received configs")

	services, err := service.NewServices(*cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if cfg.Telemetry.Enabled {
		version := services.AppInfoService.GetAppVersion(context.Background())
		shutdownTracer, err := telemetry.InitTracer(cfg.App.Name, version, os.Stdout, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error initializing tracer")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdownTracer(ctx); err != nil {
				log.Error().Err(err).Msg("error shutting down tracer")
			}
		}()
	}

	var registry *metrics.Registry
	if cfg.Server.MetricsAddress != "" {
		registry = metrics.NewRegistry()
	}

	handlers, err := handler.NewHandlers(services, *cfg, registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, registry, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	store, err := handlers.HTTP.UploadStore()
	if err != nil {
		log.Fatal().Err(err).Msg("error opening upload directory")
	}
	background := workers.NewWorkers(
		workers.NewTempSweeper(store, cfg.Uploads.SweepInterval, cfg.Uploads.StaleAfter, log),
	)
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	workersDone := make(chan struct{})
	go func() {
		background.Run(workersCtx)
		close(workersDone)
	}()

	if err := srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		exitCode = 1
	}

	stopWorkers()
	<-workersDone
	return exitCode
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
