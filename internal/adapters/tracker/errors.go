package tracker

import "errors"

// Sentinel kinds for tracker errors.
var (
	ErrStopTimeout   = errors.New("performance tracker did not stop in time")
	ErrStillStopping = errors.New("previous performance tracking has not stopped")
)
