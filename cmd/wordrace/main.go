// Command wordrace is the main entry point for the WordRace benchmarking server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrWong99/wordrace/internal/config"
	"github.com/MrWong99/wordrace/internal/health"
	"github.com/MrWong99/wordrace/internal/httpapi"
	"github.com/MrWong99/wordrace/internal/observe"
	"github.com/MrWong99/wordrace/internal/resilience"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "wordrace: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "wordrace: %v\n", err)
		}
		return 1
	}

	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("wordrace starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
		"models", len(cfg.Models),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "wordrace"})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown error", "err", err)
		}
	}()

	printStartupSummary(cfg)

	mux := http.NewServeMux()
	server := httpapi.New(cfg)
	server.Routes(mux, observe.DefaultMetrics())

	healthHandler := health.New(
		health.Checker{
			Name: "model_registry",
			Check: func(ctx context.Context) error {
				if len(cfg.Models) == 0 {
					return fmt.Errorf("no models registered")
				}
				return nil
			},
		},
		health.Checker{
			Name: "model_breakers",
			Check: func(ctx context.Context) error {
				var open []string
				for id, state := range server.Registry().ModelHealth() {
					if state == resilience.StateOpen {
						open = append(open, id)
					}
				}
				if len(open) > 0 {
					return fmt.Errorf("circuit open for models: %v", open)
				}
				return nil
			},
		},
	)
	mux.HandleFunc("GET /healthz", healthHandler.Healthz)
	mux.HandleFunc("GET /readyz", healthHandler.Readyz)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: mux,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server ready — press Ctrl+C to shut down", "listen_addr", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping…")
	case err := <-serveErr:
		if err != nil {
			slog.Error("server error", "err", err)
			return 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

func printStartupSummary(cfg *config.Config) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║         WordRace — startup summary     ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	fmt.Printf("║  Models registered : %-17d ║\n", len(cfg.Models))
	fmt.Printf("║  Wordlist size      : %-16d ║\n", len(cfg.Wordlist.Words))
	fmt.Printf("║  Public max models  : %-16d ║\n", cfg.Race.PublicMaxModels)
	if cfg.Server.ListenAddr != "" {
		fmt.Printf("║  Listen addr        : %-16s ║\n", cfg.Server.ListenAddr)
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogLevelDebug:
		lvl = slog.LevelDebug
	case config.LogLevelWarn:
		lvl = slog.LevelWarn
	case config.LogLevelError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
