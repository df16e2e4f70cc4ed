package main

import (
	"context"
	"flag"
	"log/slog"

	"contribcal/internal/components/serviceutil"
	"contribcal/internal/components/telemetry"
	"contribcal/internal/config"
	"contribcal/internal/contributions"
	"contribcal/internal/server"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	configPath := flag.String("config", "config.json5", "Path to the configuration file.")
	flag.Parse()

	telemetry.InitSlog(*verbose)
	ctx := serviceutil.SignalContext()

	cfg, err := config.Load(*configPath)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	otel, err := telemetry.SetupOtel(ctx, "contribcal", cfg.Otlp)
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer func() {
		err := otel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("shutdown telemetry", "err", err)
		}
	}()

	tel := telemetry.SlogAPI{}
	svc, err := cfg.NewService(tel)
	if err != nil {
		serviceutil.Fatal("init contributions", err)
	}

	srv := server.NewServer(svc, server.Options{
		CacheSize:     cfg.Server.CacheSize,
		CacheTtl:      cfg.CacheTtl(),
		DefaultSource: contributions.SourceAPI,
	}, tel)

	serviceutil.StartHttpServer(ctx, cfg.Server.Port, srv.Handler())
}
