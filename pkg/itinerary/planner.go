package itinerary

import (
	"context"

	"github.com/yatrigo/yatrigo/pkg/transit"
)

// Planner drafts an itinerary with an external planning service. Draft is the
// fallback when no planner is configured or the planner fails.
type Planner interface {
	Plan(ctx context.Context, city string, places []*transit.Place, themes []string, days int) (*Itinerary, error)
}
