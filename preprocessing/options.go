package preprocessing

import (
	"math"

	"github.com/YuminosukeSato/featurekit/pkg/errors"
	"github.com/YuminosukeSato/featurekit/pkg/log"
)

// Option is a function that configures FeatureAugmenter
type Option func(*FeatureAugmenter)

// WithCapFactor sets the multiplier applied to the largest non-+Inf ratio
// seen during Fit. It must be finite and positive; otherwise Fit and
// Transform return a ValidationError.
func WithCapFactor(f float64) Option {
	return func(a *FeatureAugmenter) {
		if f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			a.optErr = errors.NewValidationError("cap_factor", "must be finite and positive", f)
			return
		}
		a.capFactor = f
	}
}

// WithParallelThreshold sets the row count from which Transform splits the
// work across CPU cores. Zero or a negative value keeps it sequential.
func WithParallelThreshold(n int) Option {
	return func(a *FeatureAugmenter) {
		a.parallelThreshold = n
	}
}

// WithLogger sets the logger used for debug records
func WithLogger(l log.Logger) Option {
	return func(a *FeatureAugmenter) {
		a.logger = l
	}
}
