// Package source provides in-memory collaborators for the pipeline: a fixed
// data collector, a mean-based trend analyzer and a catalog-backed strategy
// generator.
package source

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/monetizer/internal/domain/model"
)

// StaticCollector returns a fixed set of observations.
type StaticCollector struct {
	observations model.RawData
}

// NewStaticCollector copies observations into a collector.
func NewStaticCollector(observations []model.Observation) *StaticCollector {
	data := make(model.RawData, len(observations))
	copy(data, observations)
	return &StaticCollector{observations: data}
}

// CollectData returns a copy of the configured observations.
func (c *StaticCollector) CollectData(ctx context.Context) (model.RawData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(model.RawData, len(c.observations))
	copy(out, c.observations)
	return out, nil
}

// MeanTrendAnalyzer scores each segment by the mean of its observations.
// Segments appear in the order they were first observed.
type MeanTrendAnalyzer struct{}

// NewMeanTrendAnalyzer creates a MeanTrendAnalyzer.
func NewMeanTrendAnalyzer() *MeanTrendAnalyzer { return &MeanTrendAnalyzer{} }

// Analyze groups observations by segment and averages their scores.
func (MeanTrendAnalyzer) Analyze(ctx context.Context, data model.RawData) (*model.TrendMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grouped := model.NewOrdered[[]float64](len(data))
	for _, o := range data {
		scores, _ := grouped.Get(o.Segment)
		grouped.Set(o.Segment, append(scores, o.Score))
	}

	trends := model.NewOrdered[float64](grouped.Len())
	grouped.Each(func(segment string, scores []float64) bool {
		trends.Set(segment, stat.Mean(scores, nil))
		return true
	})
	return trends, nil
}
