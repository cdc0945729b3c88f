package tactics

import (
	"github.com/okian/monetizer/pkg/logger"
)

// Option applies a configuration option to the Suggestor.
type Option func(*Suggestor)

// WithLogger sets the logger used by the suggestor.
func WithLogger(l logger.Logger) Option {
	return func(s *Suggestor) {
		if l != nil {
			s.logger = l
		}
	}
}
