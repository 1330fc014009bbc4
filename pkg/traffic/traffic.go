package traffic

import (
	"context"
	"time"

	"github.com/yatrigo/yatrigo/pkg/transit"
)

// Provider reports how much slower road traffic is than free-flow for a trip.
// A multiplier of 1.0 means no congestion. Implementations must not fail the
// query, they return ok=false when no estimate is available.
type Provider interface {
	CongestionMultiplier(ctx context.Context, origin *transit.Location, destination *transit.Location) (float64, bool)
}

// TimeOfDayEstimator approximates congestion from the clock alone. It is the
// fallback when no live traffic feed is configured.
type TimeOfDayEstimator struct {
	// Now is swappable for tests. Nil means time.Now.
	Now func() time.Time
}

func (e *TimeOfDayEstimator) CongestionMultiplier(_ context.Context, _ *transit.Location, _ *transit.Location) (float64, bool) {
	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}

	return multiplierFor(now), true
}

func multiplierFor(now time.Time) float64 {
	hour := now.Hour()

	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return 1.1
	}

	switch {
	case (hour >= 7 && hour < 10) || (hour >= 17 && hour < 20):
		return 1.8
	case hour >= 10 && hour < 17:
		return 1.3
	case hour >= 22 || hour < 5:
		return 0.9
	}

	return 1.0
}
