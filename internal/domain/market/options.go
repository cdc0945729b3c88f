package market

import (
	"github.com/okian/monetizer/pkg/logger"
)

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used by the analyzer.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithOpportunityThreshold sets the score a segment must exceed to qualify.
// Values <= 0 are ignored and the default of 0.7 is kept.
func WithOpportunityThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		if threshold > 0 {
			a.threshold = threshold
		}
	}
}

// WithRipeness sets the ripeness heuristic: a segment name must be longer
// than minLen characters and contain keyword, case-insensitively.
func WithRipeness(minLen int, keyword string) Option {
	return func(a *Analyzer) {
		if minLen >= 0 {
			a.minSegmentLen = minLen
		}
		if keyword != "" {
			a.keyword = keyword
		}
	}
}
