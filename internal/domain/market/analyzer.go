// Package market turns collected market data into segment trends and picks
// the segments worth monetizing.
package market

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/okian/monetizer/internal/domain/model"
	"github.com/okian/monetizer/pkg/logger"
	"github.com/okian/monetizer/pkg/metrics"
)

const (
	component = "market"

	defaultOpportunityThreshold = 0.7
	defaultMinSegmentLen        = 5
	defaultRipeKeyword          = "tech"
)

// DataCollector gathers raw market observations.
type DataCollector interface {
	CollectData(ctx context.Context) (model.RawData, error)
}

// TrendAnalyzer reduces raw observations to one score per segment.
type TrendAnalyzer interface {
	Analyze(ctx context.Context, data model.RawData) (*model.TrendMap, error)
}

// Analyzer scores market segments and filters them into opportunities.
type Analyzer struct {
	collector DataCollector
	trends    TrendAnalyzer

	threshold     float64
	minSegmentLen int
	keyword       string

	logger logger.Logger
}

// NewAnalyzer creates an Analyzer over the given collaborators.
func NewAnalyzer(collector DataCollector, trends TrendAnalyzer, opts ...Option) *Analyzer {
	a := &Analyzer{
		collector:     collector,
		trends:        trends,
		threshold:     defaultOpportunityThreshold,
		minSegmentLen: defaultMinSegmentLen,
		keyword:       defaultRipeKeyword,
		logger:        logger.Nop(),
	}

	for _, opt := range opts {
		opt(a)
	}
	a.keyword = strings.ToLower(a.keyword)
	a.logger = a.logger.Named("analyzer")

	return a
}

// AnalyzeMarketTrends collects raw data and analyzes it into a TrendMap.
// Collaborator errors are logged and returned as-is.
func (a *Analyzer) AnalyzeMarketTrends(ctx context.Context) (*model.TrendMap, error) {
	const op = "analyze_market_trends"
	defer observe(op, time.Now())

	data, err := a.collector.CollectData(ctx)
	if err != nil {
		a.fail(ctx, op, "error analyzing market trends", err)
		return nil, err
	}

	trends, err := a.trends.Analyze(ctx, data)
	if err != nil {
		a.fail(ctx, op, "error analyzing market trends", err)
		return nil, err
	}

	metrics.RecordTrendsAnalyzed(trends.Len())
	a.logger.Debug(ctx, "analyzed market trends",
		logger.Op(op),
		logger.Int("observations", len(data)),
		logger.Int("segments", trends.Len()),
	)
	return trends, nil
}

// IdentifyOpportunities returns, in trend order, every segment whose score
// exceeds the threshold and whose name is ripe.
func (a *Analyzer) IdentifyOpportunities(ctx context.Context, trends *model.TrendMap) (model.OpportunityList, error) {
	const op = "identify_opportunities"
	defer observe(op, time.Now())

	opportunities := make(model.OpportunityList, 0, trends.Len())
	trends.Each(func(segment string, score float64) bool {
		if score > a.threshold && a.IsSegmentRipe(segment) {
			opportunities = append(opportunities, segment)
		}
		return true
	})

	metrics.RecordOpportunities(len(opportunities))
	a.logger.Info(ctx, "identified opportunities",
		logger.Op(op),
		logger.Strings("opportunities", opportunities),
	)
	return opportunities, nil
}

// IsSegmentRipe reports whether a segment name passes the ripeness heuristic.
func (a *Analyzer) IsSegmentRipe(segment string) bool {
	return utf8.RuneCountInString(segment) > a.minSegmentLen &&
		strings.Contains(strings.ToLower(segment), a.keyword)
}

func (a *Analyzer) fail(ctx context.Context, op, msg string, err error) {
	metrics.RecordOperationError(component, op)
	a.logger.Error(ctx, msg, logger.Op(op), logger.Error(err))
}

func observe(op string, start time.Time) {
	metrics.RecordOperationLatency(component, op, time.Since(start).Seconds())
}
