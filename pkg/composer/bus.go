package composer

import (
	"context"
	"fmt"
	"math"

	"github.com/yatrigo/yatrigo/pkg/external"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

// corridorAreaKm is how far from a corridor area's centre an endpoint may sit
// and still count as being in that area.
const corridorAreaKm = 2.0

// busSegment is one candidate bus leg: a route plus the stops the rider
// actually boards and alights at.
type busSegment struct {
	route         string
	boardingStop  *transit.Stop
	alightingStop *transit.Stop

	boardingWalk  external.WalkingEstimate
	alightingWalk external.WalkingEstimate
	rideKm        float64
	timeMinutes   int
}

func (c *Composer) composeBus(ctx context.Context, trip *tripContext) modeOutcome {
	graph := c.City.Graph.Get()

	if graph.StopCount() == 0 {
		return noRoute(transit.TransportTypeBus, "no bus network data for this city")
	}

	originCluster, _ := graph.StopCluster(trip.origin)
	destinationCluster, _ := graph.StopCluster(trip.destination)

	if len(originCluster) == 0 || len(destinationCluster) == 0 {
		return noRoute(transit.TransportTypeBus, "no bus stops near the origin or destination")
	}

	common := commonRoutes(graph.ClusterRoutes(originCluster), graph.ClusterRoutes(destinationCluster))

	segment := c.bestDirectSegment(ctx, trip, originCluster, destinationCluster, common)
	if segment == nil {
		segment = c.corridorSegment(ctx, trip, originCluster, destinationCluster)
	}
	if segment == nil {
		return noRoute(transit.TransportTypeBus, "no direct bus route between these areas")
	}

	return modeOutcome{option: &transit.RouteOption{
		Mode:        transit.TransportTypeBus,
		Cost:        math.Round(c.City.BusFares.Calculate(segment.rideKm)),
		TimeMinutes: segment.timeMinutes,
		Steps: []string{
			fmt.Sprintf("Walk %s to %s", formatDistance(segment.boardingWalk.DistanceKm), segment.boardingStop.PrimaryName),
			fmt.Sprintf("Take bus %s towards %s", segment.route, segment.alightingStop.PrimaryName),
			fmt.Sprintf("Walk %s to %s", formatDistance(segment.alightingWalk.DistanceKm), trip.destinationName),
		},
		WalkingMetres:   (segment.boardingWalk.DistanceKm + segment.alightingWalk.DistanceKm) * 1000,
		RouteIdentifier: segment.route,
	}}
}

// bestDirectSegment synthesizes a segment per route served by both clusters,
// boarding and alighting at the nearest stops that route actually touches,
// and keeps the best one. Direct segments are all transfer free, so the
// selection order is fewest transfers, then lowest estimated time, then
// route identifier (common is sorted).
func (c *Composer) bestDirectSegment(ctx context.Context, trip *tripContext, originCluster []*transit.Stop, destinationCluster []*transit.Stop, common []string) *busSegment {
	var best *busSegment

	for _, route := range common {
		boarding := firstStopServing(originCluster, route)
		alighting := firstStopServing(destinationCluster, route)
		if boarding == nil || alighting == nil {
			continue
		}
		if boarding.PrimaryIdentifier == alighting.PrimaryIdentifier {
			continue
		}

		segment := c.busSegmentFor(ctx, trip, route, boarding, alighting)
		if best == nil || segment.timeMinutes < best.timeMinutes {
			best = segment
		}
	}

	return best
}

// corridorSegment falls back to the curated area-pair table when no shared
// route exists. The endpoints are named by their nearest alias and matched
// against the corridor list. Corridor routes are not guaranteed to appear in
// either cluster, the nearest stop stands in when none serves the route.
func (c *Composer) corridorSegment(ctx context.Context, trip *tripContext, originCluster []*transit.Stop, destinationCluster []*transit.Stop) *busSegment {
	if c.Resolver == nil || len(c.City.Corridors) == 0 {
		return nil
	}

	originArea, originFound := c.Resolver.NearestAlias(trip.origin, corridorAreaKm)
	destinationArea, destinationFound := c.Resolver.NearestAlias(trip.destination, corridorAreaKm)
	if !originFound || !destinationFound {
		return nil
	}

	for _, corridor := range c.City.Corridors {
		if !corridor.Connects(originArea.Name, destinationArea.Name) || len(corridor.Routes) == 0 {
			continue
		}

		route := corridor.Routes[0]

		boarding := firstStopServing(originCluster, route)
		if boarding == nil {
			boarding = originCluster[0]
		}
		alighting := firstStopServing(destinationCluster, route)
		if alighting == nil {
			alighting = destinationCluster[0]
		}

		return c.busSegmentFor(ctx, trip, route, boarding, alighting)
	}

	return nil
}

func (c *Composer) busSegmentFor(ctx context.Context, trip *tripContext, route string, boarding *transit.Stop, alighting *transit.Stop) *busSegment {
	boardingWalk := c.walkEstimate(ctx, trip.origin, boarding.Location)
	alightingWalk := c.walkEstimate(ctx, alighting.Location, trip.destination)

	rideKm := boarding.Location.DistanceKm(alighting.Location)
	rideMinutes := int(rideKm / c.City.BusFares.SpeedKmh * 60 * trip.congestion)

	return &busSegment{
		route:         route,
		boardingStop:  boarding,
		alightingStop: alighting,
		boardingWalk:  boardingWalk,
		alightingWalk: alightingWalk,
		rideKm:        rideKm,
		timeMinutes:   boardingWalk.TimeMinutes + c.City.BusFares.WaitMinutes + rideMinutes + alightingWalk.TimeMinutes,
	}
}

// commonRoutes intersects two sorted route lists, preserving order.
func commonRoutes(originRoutes []string, destinationRoutes []string) []string {
	destinationSet := map[string]bool{}
	for _, route := range destinationRoutes {
		destinationSet[route] = true
	}

	var common []string
	for _, route := range originRoutes {
		if destinationSet[route] {
			common = append(common, route)
		}
	}

	return common
}

// firstStopServing returns the nearest stop in the cluster that the route
// actually serves. Clusters are ordered nearest first.
func firstStopServing(cluster []*transit.Stop, route string) *transit.Stop {
	for _, stop := range cluster {
		if util.ContainsString(stop.Routes, route) {
			return stop
		}
	}

	return nil
}
