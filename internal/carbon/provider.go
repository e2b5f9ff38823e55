package carbon

import (
	"context"
	"time"
)

// Provider abstracts the regional carbon intensity source.
type Provider interface {
	// RegionalIntensity returns the upstream "data" value for the postcode's
	// outward code over [from, to]. Failures are *UpstreamError.
	RegionalIntensity(ctx context.Context, postcode string, from, to time.Time) (Intensity, error)
}
