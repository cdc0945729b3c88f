package tracker

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// Metric names produced by ProcessSampler.
const (
	MetricCPUPercent = "cpu_percent"
	MetricRSSBytes   = "rss_bytes"
	MetricGoroutines = "goroutines"
	MetricHeapAlloc  = "heap_alloc_bytes"
)

// Sampler takes one set of named readings.
type Sampler interface {
	Sample(ctx context.Context) (map[string]float64, error)
}

// ProcessSampler reads resource usage of the current process.
// It is not safe for concurrent use; the tracker calls it from one goroutine.
type ProcessSampler struct {
	proc *process.Process
}

// NewProcessSampler binds a sampler to the running process.
func NewProcessSampler() (*ProcessSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pid fits in int32
	if err != nil {
		return nil, fmt.Errorf("open process: %w", err)
	}
	return &ProcessSampler{proc: proc}, nil
}

// Sample returns CPU percent since the previous call (0 on the first call),
// resident set size, goroutine count and heap allocation.
func (s *ProcessSampler) Sample(ctx context.Context) (map[string]float64, error) {
	cpu, err := s.proc.PercentWithContext(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("cpu percent: %w", err)
	}
	mem, err := s.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("memory info: %w", err)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return map[string]float64{
		MetricCPUPercent: cpu,
		MetricRSSBytes:   float64(mem.RSS),
		MetricGoroutines: float64(runtime.NumGoroutine()),
		MetricHeapAlloc:  float64(ms.HeapAlloc),
	}, nil
}
