package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"golang.org/x/sync/errgroup"

	"visacheck/internal/platform/config"
	"visacheck/internal/platform/httpserver"
	"visacheck/internal/platform/logger"
	"visacheck/internal/platform/metrics"
	ratelimitmetrics "visacheck/internal/ratelimit/metrics"
	ratelimit "visacheck/internal/ratelimit/middleware"
	"visacheck/internal/ratelimit/models"
	"visacheck/internal/ratelimit/store/bucket"
	httptransport "visacheck/internal/transport/http"
	"visacheck/internal/visa/handler"
	visametrics "visacheck/internal/visa/metrics"
	"visacheck/internal/visa/service"
	"visacheck/pkg/platform/audit/publishers/ops"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := metrics.NewRegistry()

	sampler := ops.NewSampler(cfg.Audit.SampleRate)
	tracker := ops.NewTracker(
		ops.NewLogSink(log.With("component", "audit")),
		ops.WithSampler(sampler),
		ops.WithMetrics(ops.NewMetrics(registry)),
	)

	svc := service.New(
		service.WithLogger(log),
		service.WithMetrics(visametrics.New(registry)),
		service.WithAuditor(tracker),
		service.WithLocation(cfg.Location()),
		service.WithRegulatedMode(cfg.RegulatedMode),
	)

	buckets := bucket.NewInMemoryBucketStore()
	limiter := ratelimit.New(
		buckets,
		models.Policy{Limit: cfg.RateLimit.PerMinute, Window: time.Minute},
		log,
		ratelimit.WithMetrics(ratelimitmetrics.New(registry)),
	)

	visaHandler := handler.New(svc, log, handler.WithCheckMiddleware(limiter.RateLimit))
	router := httptransport.NewRouter(log, registry, visaHandler)
	srv := httpserver.New(cfg.Addr, router, cfg.ReadHeaderTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting visacheck",
			"addr", cfg.Addr,
			"env", cfg.Environment,
			"regulated_mode", cfg.RegulatedMode,
			"timezone", cfg.Location().String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := buckets.Sweep(); n > 0 {
					log.Debug("swept idle rate limit buckets", "count", n)
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
