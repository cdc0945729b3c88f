// Package model contains domain models passed between pipeline stages.
package model

import "time"

// TrendMap maps a segment name to its profitability score.
// Scores are conventionally within [0, 1]; the range is not enforced.
type TrendMap = Ordered[float64]

// NewTrendMap returns an empty TrendMap.
func NewTrendMap() *TrendMap { return NewOrdered[float64](0) }

// OpportunityList is the ordered list of segments judged ripe.
type OpportunityList []string

// TacticMap maps an opportunity segment to its suggested tactic names.
type TacticMap = Ordered[[]string]

// NewTacticMap returns an empty TacticMap.
func NewTacticMap() *TacticMap { return NewOrdered[[]string](0) }

// Observation is one raw profitability reading for a segment.
type Observation struct {
	Segment string  `json:"segment" koanf:"segment"`
	Score   float64 `json:"score" koanf:"score"`
}

// RawData is what a data collector hands to trend analysis.
type RawData []Observation

// RiskCategory buckets a numeric risk score.
type RiskCategory string

// Risk categories.
const (
	RiskHigh   RiskCategory = "High"
	RiskMedium RiskCategory = "Medium"
	RiskLow    RiskCategory = "Low"
)

// RiskProfile is the outcome of assessing one (tactic, segment) pair.
type RiskProfile struct {
	RiskScore            float64      `json:"risk_score"`
	Category             RiskCategory `json:"category"`
	MitigationStrategies []string     `json:"mitigation_strategies"`
}

// Sample is one set of performance readings taken at a point in time.
type Sample struct {
	ID      string             `json:"id"`
	At      time.Time          `json:"at"`
	Metrics map[string]float64 `json:"metrics"`
}

// Point is a single timestamped value of one metric.
type Point struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}

// PerformanceData holds a time series per metric name.
type PerformanceData map[string][]Point
