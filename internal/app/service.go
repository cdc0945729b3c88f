// Package service wires the pipeline stages together and runs them in order:
// trends, opportunities, tactics, then per-tactic evaluation and risk.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/monetizer/internal/domain/model"
	"github.com/okian/monetizer/pkg/logger"
	"github.com/okian/monetizer/pkg/metrics"
)

// Analyzer is the market stage.
type Analyzer interface {
	AnalyzeMarketTrends(ctx context.Context) (*model.TrendMap, error)
	IdentifyOpportunities(ctx context.Context, trends *model.TrendMap) (model.OpportunityList, error)
}

// Suggestor is the tactics stage.
type Suggestor interface {
	SuggestTactics(ctx context.Context, opportunities model.OpportunityList) (*model.TacticMap, error)
	EvaluateTactic(tactic, segment string) float64
}

// RiskAssessor is the risk stage.
type RiskAssessor interface {
	AssessRisk(ctx context.Context, tactic, segment string) (model.RiskProfile, error)
}

// Assessment is the evaluated outcome for one tactic in one segment.
type Assessment struct {
	Segment         string            `json:"segment"`
	Tactic          string            `json:"tactic"`
	EvaluationScore float64           `json:"evaluation_score"`
	Risk            model.RiskProfile `json:"risk"`
}

// Report is the result of one pipeline run.
type Report struct {
	RunID         string                `json:"run_id"`
	StartedAt     time.Time             `json:"started_at"`
	FinishedAt    time.Time             `json:"finished_at"`
	Trends        *model.TrendMap       `json:"trends"`
	Opportunities model.OpportunityList `json:"opportunities"`
	Tactics       *model.TacticMap      `json:"tactics"`
	Assessments   []Assessment          `json:"assessments"`
}

// Service runs the pipeline.
type Service struct {
	analyzer  Analyzer
	suggestor Suggestor
	risk      RiskAssessor

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service over the three stages.
func New(analyzer Analyzer, suggestor Suggestor, risk RiskAssessor, opts ...Option) *Service {
	s := &Service{
		analyzer:  analyzer,
		suggestor: suggestor,
		risk:      risk,
		logger:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("pipeline")

	return s
}

// Run executes one pass of the pipeline. The first stage error ends the run
// and is returned unchanged; no partial report is produced.
func (s *Service) Run(ctx context.Context) (Report, error) {
	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	ctx = withRunID(ctx, report.RunID)
	s.logger.Info(ctx, "pipeline run started", logger.String("run_id", report.RunID))

	if err := s.run(ctx, &report); err != nil {
		metrics.RecordPipelineRun("error", len(report.Opportunities), time.Since(report.StartedAt).Seconds())
		s.logger.Error(ctx, "pipeline run failed", logger.String("run_id", report.RunID), logger.Error(err))
		return Report{}, err
	}

	report.FinishedAt = time.Now()
	metrics.RecordPipelineRun("success", len(report.Opportunities), report.FinishedAt.Sub(report.StartedAt).Seconds())
	s.logger.Info(ctx, "pipeline run finished",
		logger.String("run_id", report.RunID),
		logger.Int("opportunities", len(report.Opportunities)),
		logger.Int("assessments", len(report.Assessments)),
		logger.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report, nil
}

func (s *Service) run(ctx context.Context, report *Report) error {
	trends, err := s.analyzer.AnalyzeMarketTrends(ctx)
	if err != nil {
		return err
	}
	report.Trends = trends

	opportunities, err := s.analyzer.IdentifyOpportunities(ctx, trends)
	if err != nil {
		return err
	}
	report.Opportunities = opportunities

	tactics, err := s.suggestor.SuggestTactics(ctx, opportunities)
	if err != nil {
		return err
	}
	report.Tactics = tactics

	report.Assessments = make([]Assessment, 0, tactics.Len())
	tactics.Each(func(segment string, names []string) bool {
		for _, tactic := range names {
			profile, aerr := s.risk.AssessRisk(ctx, tactic, segment)
			if aerr != nil {
				err = aerr
				return false
			}
			report.Assessments = append(report.Assessments, Assessment{
				Segment:         segment,
				Tactic:          tactic,
				EvaluationScore: s.suggestor.EvaluateTactic(tactic, segment),
				Risk:            profile,
			})
		}
		return true
	})
	return err
}

type runIDKey struct{}

func withRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the pipeline run ID carried by ctx, if any.
func RunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok
}
