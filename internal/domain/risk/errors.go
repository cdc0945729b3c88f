package risk

import "errors"

// Sentinel kinds for risk errors.
var (
	ErrInvalidArgument = errors.New("tactic and segment must be provided")
)
