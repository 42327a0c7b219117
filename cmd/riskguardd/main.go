package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskguard/riskguard/internal/config"
	"github.com/riskguard/riskguard/internal/guard"
	"github.com/riskguard/riskguard/internal/httpapi"
	"github.com/riskguard/riskguard/internal/observability"
	"github.com/riskguard/riskguard/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	reportStore, err := report.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("report store init failed: %v", err)
	}
	defer reportStore.Close()

	g, err := guard.New(guard.Options{
		WindowSize:    cfg.WindowSize,
		ProbeTimeout:  cfg.ProbeTimeout,
		LatencyBudget: cfg.LatencyBudget,
		Metrics:       metrics,
	})
	if err != nil {
		log.Fatalf("guard init failed: %v", err)
	}

	api := httpapi.New(cfg, g, reportStore, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	reporter := report.NewReporter(g, reportStore, metrics, cfg.ReportInterval)
	go reporter.Run(runCtx)

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	runCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
