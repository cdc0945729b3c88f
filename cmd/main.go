package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/monetizer/internal/adapters/source"
	"github.com/okian/monetizer/internal/adapters/tracker"
	service "github.com/okian/monetizer/internal/app"
	"github.com/okian/monetizer/internal/config"
	"github.com/okian/monetizer/internal/domain/market"
	"github.com/okian/monetizer/internal/domain/risk"
	"github.com/okian/monetizer/internal/domain/tactics"
	"github.com/okian/monetizer/pkg/logger"
	"github.com/okian/monetizer/pkg/metrics"
)

const stopTimeout = 5 * time.Second

var trackedMetrics = []string{ //nolint:gochecknoglobals // fixed list of sampler outputs
	tracker.MetricCPUPercent,
	tracker.MetricRSSBytes,
	tracker.MetricGoroutines,
	tracker.MetricHeapAlloc,
}

func main() {
	dumpMetrics := flag.Bool("metrics", false, "write Prometheus metrics to stderr after the run")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// config.Load has already rejected unknown levels.
	_ = logger.SetLevelString(cfg.LogLevel)
	log := logger.Get()

	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		log.Error(ctx, "monetizer failed", logger.Error(err))
		stop()
		os.Exit(1)
	}

	if *dumpMetrics {
		if err := metrics.Dump(os.Stderr); err != nil {
			log.Error(ctx, "failed to write metrics", logger.Error(err))
		}
	}
}

// run executes one pipeline pass under performance tracking and writes the
// report to out as indented JSON.
func run(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) error {
	svc := newService(cfg, log)

	perf := tracker.NewTracker(
		tracker.WithLogger(log),
		tracker.WithInterval(cfg.TrackingInterval),
		tracker.WithRetention(cfg.TrackingRetention),
	)
	if err := perf.StartTracking(ctx); err != nil {
		return err
	}
	defer stopTracker(ctx, perf, log)

	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func newService(cfg *config.Config, log logger.Logger) *service.Service {
	analyzer := market.NewAnalyzer(
		source.NewStaticCollector(cfg.MarketData),
		source.NewMeanTrendAnalyzer(),
		market.WithLogger(log),
		market.WithOpportunityThreshold(cfg.OpportunityThreshold),
		market.WithRipeness(cfg.RipeMinLength, cfg.RipeKeyword),
	)
	suggestor := tactics.NewSuggestor(
		source.NewCatalogStrategyGenerator(cfg.Strategies, cfg.DefaultTactics),
		tactics.WithLogger(log),
	)
	manager := risk.NewManager(risk.WithLogger(log))

	return service.New(analyzer, suggestor, manager, service.WithLogger(log))
}

func stopTracker(ctx context.Context, perf *tracker.Tracker, log logger.Logger) {
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
	defer cancel()

	if err := perf.StopTracking(stopCtx); err != nil {
		log.Error(ctx, "failed to stop performance tracking", logger.Error(err))
		return
	}

	for _, name := range trackedMetrics {
		s, ok := perf.Summary(name)
		if !ok {
			continue
		}
		log.Info(ctx, "performance summary",
			logger.String("metric", s.Metric),
			logger.Int("count", s.Count),
			logger.Float64("mean", s.Mean),
			logger.Float64("stddev", s.StdDev),
			logger.Float64("min", s.Min),
			logger.Float64("max", s.Max),
		)
	}
}
