package composer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/yatrigo/yatrigo/pkg/datasets"
	"github.com/yatrigo/yatrigo/pkg/external"
	"github.com/yatrigo/yatrigo/pkg/pricing"
	"github.com/yatrigo/yatrigo/pkg/resolver"
	"github.com/yatrigo/yatrigo/pkg/traffic"
	"github.com/yatrigo/yatrigo/pkg/transit"
)

// maxWalkKm is the longest trip offered as a pure walk.
const maxWalkKm = 1.0

// Composer builds every feasible route option for a trip in one city. Modes
// are evaluated independently, a mode that cannot serve the trip degrades
// that mode only and never fails the query.
type Composer struct {
	City       *datasets.CityData
	Traffic    traffic.Provider
	Directions external.WalkingDirections
	Resolver   *resolver.Resolver

	// Now is swappable for tests. Nil means time.Now.
	Now func() time.Time
}

// DegradedMode records a mode that was considered but could not serve the
// trip, with a user presentable reason.
type DegradedMode struct {
	Mode   transit.TransportType `groups:"basic"`
	Reason string                `groups:"basic"`
}

// Result is the full set of options for one trip.
type Result struct {
	Options  []*transit.RouteOption `groups:"basic"`
	Degraded []DegradedMode         `groups:"basic"`

	// NoOptions distinguishes "no way to make this trip" from an empty
	// query, it is only set when every mode degraded.
	NoOptions bool `groups:"basic"`

	DistanceKm float64 `groups:"detailed"`
	Peak       bool    `groups:"detailed"`
	Surge      float64 `groups:"detailed"`
}

type modeOutcome struct {
	option   *transit.RouteOption
	degraded *DegradedMode
}

func noRoute(mode transit.TransportType, reason string) modeOutcome {
	log.Debug().Err(transit.NoRouteFoundError{Mode: mode, Reason: reason}).Msg("Mode degraded")

	return modeOutcome{degraded: &DegradedMode{
		Mode:   mode,
		Reason: reason,
	}}
}

// Compose evaluates every mode for the trip concurrently and assembles the
// outcomes in a fixed mode order so identical queries produce identical
// responses.
func (c *Composer) Compose(ctx context.Context, originName string, origin *transit.Location, destinationName string, destination *transit.Location) *Result {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	distanceKm := origin.DistanceKm(destination)
	peak := c.City.IsPeak(now)
	surge := pricing.Surge(c.City.SurgeProgram, now, peak)

	congestion := 1.0
	if c.Traffic != nil {
		if multiplier, ok := c.Traffic.CongestionMultiplier(ctx, origin, destination); ok {
			congestion = multiplier
		}
	}

	trip := &tripContext{
		originName:      originName,
		origin:          origin,
		destinationName: destinationName,
		destination:     destination,
		distanceKm:      distanceKm,
		congestion:      congestion,
		surge:           surge,
	}

	builders := []func(context.Context, *tripContext) modeOutcome{
		c.composeWalk,
		c.composeBus,
		c.composeMetro,
		c.composeAuto,
		c.composeTaxi,
	}

	resultsPool := pool.NewWithResults[modeOutcome]().WithContext(ctx)
	for _, builder := range builders {
		builder := builder
		resultsPool.Go(func(ctx context.Context) (modeOutcome, error) {
			return builder(ctx, trip), nil
		})
	}

	outcomes, _ := resultsPool.Wait()

	result := &Result{
		DistanceKm: distanceKm,
		Peak:       peak,
		Surge:      surge,
	}

	// Pool results arrive in completion order, reassemble by mode order.
	byMode := map[transit.TransportType]modeOutcome{}
	for _, outcome := range outcomes {
		if outcome.option != nil {
			byMode[outcome.option.Mode] = outcome
		} else if outcome.degraded != nil {
			byMode[outcome.degraded.Mode] = outcome
		}
	}

	for _, mode := range []transit.TransportType{
		transit.TransportTypeWalk,
		transit.TransportTypeBus,
		transit.TransportTypeMetro,
		transit.TransportTypeAuto,
		transit.TransportTypeTaxi,
	} {
		outcome, found := byMode[mode]
		if !found {
			continue
		}

		if outcome.option != nil {
			result.Options = append(result.Options, outcome.option)
		}
		if outcome.degraded != nil {
			result.Degraded = append(result.Degraded, *outcome.degraded)
		}
	}

	result.NoOptions = len(result.Options) == 0

	return result
}

type tripContext struct {
	originName      string
	origin          *transit.Location
	destinationName string
	destination     *transit.Location

	distanceKm float64
	congestion float64
	surge      float64
}

func (c *Composer) walkEstimate(ctx context.Context, origin *transit.Location, destination *transit.Location) external.WalkingEstimate {
	if c.Directions != nil {
		estimate, err := c.Directions.WalkingLeg(ctx, origin, destination)
		if err == nil {
			return estimate
		}
	}

	estimate, _ := external.HaversineDirections{}.WalkingLeg(ctx, origin, destination)
	return estimate
}

func (c *Composer) composeWalk(ctx context.Context, trip *tripContext) modeOutcome {
	if trip.distanceKm > maxWalkKm {
		return modeOutcome{}
	}

	estimate := c.walkEstimate(ctx, trip.origin, trip.destination)

	return modeOutcome{option: &transit.RouteOption{
		Mode:        transit.TransportTypeWalk,
		Cost:        0,
		TimeMinutes: estimate.TimeMinutes,
		Steps: []string{
			fmt.Sprintf("Walk %s from %s to %s", formatDistance(estimate.DistanceKm), trip.originName, trip.destinationName),
		},
		DoorToDoor:    true,
		WalkingMetres: estimate.DistanceKm * 1000,
	}}
}

func (c *Composer) composeAuto(ctx context.Context, trip *tripContext) modeOutcome {
	return modeOutcome{option: c.vehicleOption(transit.TransportTypeAuto, c.City.AutoFares, trip,
		fmt.Sprintf("Take an auto from %s to %s", trip.originName, trip.destinationName))}
}

func (c *Composer) composeTaxi(ctx context.Context, trip *tripContext) modeOutcome {
	return modeOutcome{option: c.vehicleOption(transit.TransportTypeTaxi, c.City.TaxiFares, trip,
		fmt.Sprintf("Take a cab from %s to %s", trip.originName, trip.destinationName))}
}

func (c *Composer) vehicleOption(mode transit.TransportType, fares transit.VehicleFareModel, trip *tripContext, step string) *transit.RouteOption {
	return &transit.RouteOption{
		Mode:        mode,
		Cost:        math.Round(fares.Calculate(trip.distanceKm, trip.surge)),
		TimeMinutes: fares.TravelMinutes(trip.distanceKm, trip.congestion),
		Steps:       []string{step},
		AC:          fares.AC,
		DoorToDoor:  true,
	}
}

func formatDistance(distanceKm float64) string {
	if distanceKm < 1.0 {
		return fmt.Sprintf("%d m", int(math.Round(distanceKm*1000)))
	}
	return fmt.Sprintf("%.1f km", distanceKm)
}
