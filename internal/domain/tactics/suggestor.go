// Package tactics maps market opportunities to monetization tactics and
// scores individual tactics.
package tactics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/monetizer/internal/domain/model"
	"github.com/okian/monetizer/pkg/logger"
	"github.com/okian/monetizer/pkg/metrics"
)

const (
	component = "tactics"

	subscriptionKeyword = "subscription"
	subscriptionScore   = 0.8
	baselineScore       = 0.5
)

// StrategyGenerator produces tactic names for a list of opportunities. The
// result must cover at least every requested segment.
type StrategyGenerator interface {
	GenerateStrategies(ctx context.Context, opportunities model.OpportunityList) (*model.TacticMap, error)
}

// Suggestor suggests and evaluates monetization tactics.
type Suggestor struct {
	generator StrategyGenerator
	logger    logger.Logger
}

// NewSuggestor creates a Suggestor backed by generator.
func NewSuggestor(generator StrategyGenerator, opts ...Option) *Suggestor {
	s := &Suggestor{
		generator: generator,
		logger:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("suggestor")

	return s
}

// SuggestTactics returns the generated tactics for each opportunity, keyed
// and ordered by the input list. An empty input yields an empty map.
func (s *Suggestor) SuggestTactics(ctx context.Context, opportunities model.OpportunityList) (*model.TacticMap, error) {
	const op = "suggest_tactics"
	start := time.Now()
	defer func() {
		metrics.RecordOperationLatency(component, op, time.Since(start).Seconds())
	}()

	if len(opportunities) == 0 {
		s.logger.Warn(ctx, "no opportunities provided", logger.Op(op))
		return model.NewTacticMap(), nil
	}

	strategies, err := s.generator.GenerateStrategies(ctx, opportunities)
	if err != nil {
		s.fail(ctx, op, err)
		return nil, err
	}

	tactics := model.NewOrdered[[]string](len(opportunities))
	suggested := 0
	for _, segment := range opportunities {
		names, ok := strategies.Get(segment)
		if !ok {
			err := fmt.Errorf("%w: %q", ErrStrategyNotFound, segment)
			s.fail(ctx, op, err)
			return nil, err
		}
		tactics.Set(segment, names)
		suggested += len(names)
	}

	metrics.RecordTacticsSuggested(suggested)
	s.logger.Debug(ctx, "suggested tactics",
		logger.Op(op),
		logger.Int("opportunities", tactics.Len()),
		logger.Int("tactics", suggested),
	)
	return tactics, nil
}

// EvaluateTactic scores a tactic's expected effectiveness in [0, 1].
// Tactics naming "subscription" (case-sensitive) score 0.8, all others 0.5.
//
// The segment argument is accepted for interface stability and does not yet
// affect the score.
func (s *Suggestor) EvaluateTactic(tactic, _ string) float64 {
	if strings.Contains(tactic, subscriptionKeyword) {
		metrics.RecordTacticEvaluation("subscription")
		return subscriptionScore
	}
	metrics.RecordTacticEvaluation("baseline")
	return baselineScore
}

func (s *Suggestor) fail(ctx context.Context, op string, err error) {
	metrics.RecordOperationError(component, op)
	s.logger.Error(ctx, "error suggesting monetization tactics", logger.Op(op), logger.Error(err))
}
