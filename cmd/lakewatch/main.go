package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/anchorpoint/lakewatch/internal/adapter/http"
	"github.com/anchorpoint/lakewatch/internal/adapter/storage"
	"github.com/anchorpoint/lakewatch/internal/adapter/usace"
	"github.com/anchorpoint/lakewatch/internal/config"
	"github.com/anchorpoint/lakewatch/internal/domain"
	"github.com/anchorpoint/lakewatch/internal/lakes"
	"github.com/anchorpoint/lakewatch/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := usace.NewClient(usace.Config{
		LakeReportURL:   cfg.LakeReportURL,
		BasinProjectURL: cfg.BasinProjectURL,
		Timeout:         cfg.ScrapeTimeout,
		FlowPolicy:      domain.KcfsThreshold(cfg.FlowKcfsThreshold),
	}, logger, metrics)

	store := storage.NewSnapshotStore(cfg.StoragePath, logger)

	visits, err := storage.NewVisitCounter(cfg.VisitsDBPath, cfg.VisitsStart)
	if err != nil {
		logger.Error("failed to open visit counter", "error", err)
		os.Exit(1)
	}

	svc := lakes.New(client, store, clockwork.NewRealClock(), cfg.CacheTTL, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, visits, cfg.CORSOrigins, cfg.CacheTTL, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := visits.Close(); err != nil {
		logger.Error("visits db close error", "error", err)
	}

	logger.Info("shutdown complete")
}
