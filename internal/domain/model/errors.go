package model

import "errors"

// Sentinel kinds for model errors.
var (
	ErrNotObject = errors.New("expected a JSON object")
)
