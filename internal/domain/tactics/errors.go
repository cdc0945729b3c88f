package tactics

import "errors"

// Sentinel kinds for tactic errors.
var (
	// ErrStrategyNotFound reports an opportunity the strategy generator did not cover.
	ErrStrategyNotFound = errors.New("no strategies generated for segment")
)
