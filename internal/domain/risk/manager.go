// Package risk scores the risk of running a monetization tactic in a market
// segment and proposes mitigations.
package risk

import (
	"context"
	"strings"
	"time"

	"github.com/okian/monetizer/internal/domain/model"
	"github.com/okian/monetizer/pkg/logger"
	"github.com/okian/monetizer/pkg/metrics"
)

const component = "risk"

// Category thresholds. Both comparisons are strict.
const (
	HighThreshold   = 0.8
	MediumThreshold = 0.5
)

// Segment risk scores.
const (
	techSegmentRisk    = 0.6
	defaultSegmentRisk = 0.3
	techKeyword        = "tech"
)

var (
	highMitigations = []string{
		"Conduct thorough market research.",
		"Engage with legal experts.",
	}
	mediumMitigations = []string{
		"Develop contingency plans.",
		"Monitor market trends closely.",
	}
)

// Manager assesses tactic risk.
type Manager struct {
	logger logger.Logger
}

// NewManager creates a risk Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{logger: logger.Nop()}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("risk")
	return m
}

// AssessRisk builds the risk profile for running tactic in segment.
// It returns ErrInvalidArgument when either input is empty.
func (m *Manager) AssessRisk(ctx context.Context, tactic, segment string) (model.RiskProfile, error) {
	const op = "assess_risk"
	start := time.Now()
	defer func() {
		metrics.RecordOperationLatency(component, op, time.Since(start).Seconds())
	}()

	if tactic == "" || segment == "" {
		metrics.RecordOperationError(component, op)
		m.logger.Error(ctx, "risk assessment failed",
			logger.Op(op),
			logger.String("tactic", tactic),
			logger.String("segment", segment),
			logger.Error(ErrInvalidArgument),
		)
		return model.RiskProfile{}, ErrInvalidArgument
	}

	score := CalculateRisk(tactic, segment)
	profile := model.RiskProfile{
		RiskScore:            score,
		Category:             CategoryFor(score),
		MitigationStrategies: MitigationsFor(score),
	}

	metrics.RecordRiskAssessment(string(profile.Category))
	m.logger.Debug(ctx, "assessed risk",
		logger.Op(op),
		logger.String("tactic", tactic),
		logger.String("segment", segment),
		logger.Float64("risk_score", profile.RiskScore),
		logger.String("category", string(profile.Category)),
	)
	return profile, nil
}

// CalculateRisk scores the risk of a tactic in a segment: 0.6 for segments
// mentioning "tech" (any case), 0.3 otherwise. The tactic does not yet
// contribute.
func CalculateRisk(_, segment string) float64 {
	if strings.Contains(strings.ToLower(segment), techKeyword) {
		return techSegmentRisk
	}
	return defaultSegmentRisk
}

// CategoryFor buckets a score: above 0.8 is High, above 0.5 Medium, else Low.
func CategoryFor(score float64) model.RiskCategory {
	switch {
	case score > HighThreshold:
		return model.RiskHigh
	case score > MediumThreshold:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// MitigationsFor returns the mitigation strategies for a score's category.
// Low risk yields an empty, non-nil list.
func MitigationsFor(score float64) []string {
	var src []string
	switch CategoryFor(score) {
	case model.RiskHigh:
		src = highMitigations
	case model.RiskMedium:
		src = mediumMitigations
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
