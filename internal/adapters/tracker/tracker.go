// Package tracker samples process performance in the background and keeps a
// bounded time series per metric.
package tracker

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/monetizer/internal/domain/model"
	"github.com/okian/monetizer/pkg/logger"
	"github.com/okian/monetizer/pkg/metrics"
)

// Default tracker configuration constants.
const (
	defaultInterval  = 5 * time.Second
	defaultRetention = 720
)

// Summary describes the retained points of one metric.
type Summary struct {
	Metric string    `json:"metric"`
	Count  int       `json:"count"`
	Mean   float64   `json:"mean"`
	StdDev float64   `json:"stddev"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Latest float64   `json:"latest"`
	Since  time.Time `json:"since"`
}

// Tracker runs one sampling goroutine between StartTracking and StopTracking.
type Tracker struct {
	interval  time.Duration
	retention int
	sampler   Sampler

	// Lifecycle
	mu       sync.Mutex
	tracking bool
	cancel   context.CancelFunc
	done     chan struct{}

	// Collected data
	dataMu sync.RWMutex
	data   model.PerformanceData
	last   model.Sample

	logger logger.Logger
}

// NewTracker creates an idle tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		interval:  defaultInterval,
		retention: defaultRetention,
		data:      make(model.PerformanceData),
		logger:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.Named("tracker")

	return t
}

// StartTracking moves the tracker from idle to tracking and starts the
// sampling goroutine. Calling it while already tracking does nothing.
// The goroutine outlives ctx's cancellation; only StopTracking ends it.
// If an earlier stop timed out, StartTracking first waits for that goroutine
// to exit and returns ErrStillStopping if ctx ends before it does.
func (t *Tracker) StartTracking(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tracking {
		t.logger.Info(ctx, "performance tracking is already running")
		return nil
	}

	if err := t.join(ctx); err != nil {
		t.logger.Error(ctx, "failed to start performance tracking", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrStillStopping, err)
	}

	if t.sampler == nil {
		s, err := NewProcessSampler()
		if err != nil {
			t.logger.Error(ctx, "failed to start performance tracking", logger.Error(err))
			return fmt.Errorf("start tracking: %w", err)
		}
		t.sampler = s
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	t.cancel = cancel
	t.done = make(chan struct{})
	t.tracking = true
	go t.run(runCtx, t.done)

	metrics.UpdateTrackerActive(true)
	t.logger.Info(ctx, "started performance tracking", logger.Duration("interval", t.interval))
	return nil
}

// StopTracking signals the sampling goroutine and waits for it to exit or
// for ctx to end. After a timed-out stop the tracker is idle but the
// goroutine may still be finishing; calling StopTracking again waits for it.
// Stopping an idle tracker with no goroutine left does nothing.
func (t *Tracker) StopTracking(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tracking {
		t.cancel()
		t.tracking = false
		metrics.UpdateTrackerActive(false)
	} else if t.done == nil {
		return nil
	}

	if err := t.join(ctx); err != nil {
		t.logger.Warn(ctx, "performance tracking stop timed out")
		return fmt.Errorf("%w: %w", ErrStopTimeout, err)
	}
	t.logger.Info(ctx, "stopped performance tracking")
	return nil
}

// join waits for the last sampling goroutine to exit. Callers hold t.mu.
func (t *Tracker) join(ctx context.Context) error {
	if t.done == nil {
		return nil
	}
	select {
	case <-t.done:
		t.done = nil
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsTracking reports whether the sampling goroutine is running.
func (t *Tracker) IsTracking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tracking
}

// run samples once immediately and then on every tick until ctx ends.
func (t *Tracker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.collect(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.collect(ctx)
		}
	}
}

func (t *Tracker) collect(ctx context.Context) {
	values, err := t.sampler.Sample(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		metrics.RecordTrackerSampleError()
		t.logger.Warn(ctx, "performance sample failed", logger.Error(err))
		return
	}

	sample := model.Sample{
		ID:      uuid.NewString(),
		At:      time.Now(),
		Metrics: values,
	}
	retained := t.record(sample)

	metrics.RecordTrackerSample(retained)
	if v, ok := values[MetricCPUPercent]; ok {
		metrics.UpdateProcessCPUPercent(v)
	}
	if v, ok := values[MetricRSSBytes]; ok {
		metrics.UpdateProcessRSSBytes(v)
	}
	if v, ok := values[MetricGoroutines]; ok {
		metrics.UpdateProcessGoroutines(v)
	}
	if v, ok := values[MetricHeapAlloc]; ok {
		metrics.UpdateProcessHeapAlloc(v)
	}
	t.logger.Debug(ctx, "performance sample", logger.String("id", sample.ID), logger.Any("metrics", values))
}

// record appends sample to every metric series and returns the largest
// series length after trimming.
func (t *Tracker) record(sample model.Sample) int {
	t.dataMu.Lock()
	defer t.dataMu.Unlock()

	retained := 0
	for name, v := range sample.Metrics {
		series := append(t.data[name], model.Point{At: sample.At, Value: v})
		if len(series) > t.retention {
			series = append(series[:0:0], series[len(series)-t.retention:]...)
		}
		t.data[name] = series
		retained = max(retained, len(series))
	}
	t.last = sample
	return retained
}

// PerformanceData returns a copy of every retained series.
func (t *Tracker) PerformanceData() model.PerformanceData {
	t.dataMu.RLock()
	defer t.dataMu.RUnlock()

	out := make(model.PerformanceData, len(t.data))
	for name, series := range t.data {
		cp := make([]model.Point, len(series))
		copy(cp, series)
		out[name] = cp
	}
	return out
}

// LastSample returns the most recent sample, if any.
func (t *Tracker) LastSample() (model.Sample, bool) {
	t.dataMu.RLock()
	defer t.dataMu.RUnlock()
	return t.last, t.last.ID != ""
}

// Summary aggregates the retained points of metric.
func (t *Tracker) Summary(metric string) (Summary, bool) {
	t.dataMu.RLock()
	series := t.data[metric]
	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}
	var since time.Time
	if len(series) > 0 {
		since = series[0].At
	}
	t.dataMu.RUnlock()

	if len(values) == 0 {
		return Summary{Metric: metric}, false
	}

	mean, std := stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return Summary{
		Metric: metric,
		Count:  len(values),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Latest: values[len(values)-1],
		Since:  since,
	}, true
}
