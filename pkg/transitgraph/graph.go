package transitgraph

import (
	"fmt"
	"sort"

	"github.com/yatrigo/yatrigo/pkg/transit"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// RadiusTiers are the expanding search radii in kilometres. A lookup stops at
// the first tier that yields any result.
var RadiusTiers = []float64{0.5, 1.0, 2.0}

// Graph is the immutable in-memory index of stops, stations and route
// memberships for one city. It is built once at load and never mutated, so it
// is safe to share between any number of concurrent queries.
type Graph struct {
	city string

	stops    map[string]*transit.Stop
	stopList []*transit.Stop

	routeStops map[string][]string
	stopRoutes map[string][]string

	lines       map[string]*transit.MetroLine
	lineList    []*transit.MetroLine
	stations    map[string]*transit.MetroStation
	stationList []*transit.MetroStation
}

func NewGraph(city string, stops []*transit.Stop, lines []*transit.MetroLine) (*Graph, error) {
	if len(stops) == 0 && len(lines) == 0 {
		return nil, fmt.Errorf("no stops or metro lines for city %s", city)
	}

	graph := &Graph{
		city:       city,
		stops:      map[string]*transit.Stop{},
		routeStops: map[string][]string{},
		stopRoutes: map[string][]string{},
		lines:      map[string]*transit.MetroLine{},
		stations:   map[string]*transit.MetroStation{},
	}

	for _, stop := range stops {
		if _, exists := graph.stops[stop.PrimaryIdentifier]; exists {
			return nil, fmt.Errorf("duplicate stop identifier %s", stop.PrimaryIdentifier)
		}

		graph.stops[stop.PrimaryIdentifier] = stop
		graph.stopList = append(graph.stopList, stop)

		graph.stopRoutes[stop.PrimaryIdentifier] = slices.Clone(stop.Routes)
		sort.Strings(graph.stopRoutes[stop.PrimaryIdentifier])

		for _, route := range stop.Routes {
			graph.routeStops[route] = append(graph.routeStops[route], stop.PrimaryIdentifier)
		}
	}

	for _, stopIdentifiers := range graph.routeStops {
		sort.Strings(stopIdentifiers)
	}

	for _, line := range lines {
		if _, exists := graph.lines[line.Identifier]; exists {
			return nil, fmt.Errorf("duplicate metro line identifier %s", line.Identifier)
		}

		graph.lines[line.Identifier] = line
		graph.lineList = append(graph.lineList, line)

		for position, station := range line.Stations {
			station.Line = line.Identifier
			station.LinePosition = position

			graph.stations[station.PrimaryIdentifier] = station
			graph.stationList = append(graph.stationList, station)
		}
	}

	return graph, nil
}

func (g *Graph) City() string {
	return g.city
}

func (g *Graph) StopCount() int {
	return len(g.stopList)
}

func (g *Graph) StationCount() int {
	return len(g.stationList)
}

func (g *Graph) Stop(identifier string) *transit.Stop {
	return g.stops[identifier]
}

func (g *Graph) Line(identifier string) *transit.MetroLine {
	return g.lines[identifier]
}

func (g *Graph) Lines() []*transit.MetroLine {
	return g.lineList
}

// RoutesServing returns the sorted route identifiers touching a stop.
func (g *Graph) RoutesServing(stopIdentifier string) []string {
	return g.stopRoutes[stopIdentifier]
}

// Route materialises the unordered stop membership of a route.
func (g *Graph) Route(identifier string) *transit.Route {
	stopIdentifiers := g.routeStops[identifier]
	if stopIdentifiers == nil {
		return nil
	}

	return &transit.Route{
		Identifier: identifier,
		Stops:      stopIdentifiers,
	}
}

// StopsWithinRadius returns all bus stops within radiusKm of the location,
// ordered nearest first (ties by identifier, for deterministic output).
func (g *Graph) StopsWithinRadius(location *transit.Location, radiusKm float64) []*transit.Stop {
	type candidate struct {
		stop     *transit.Stop
		distance float64
	}

	var candidates []candidate
	for _, stop := range g.stopList {
		distance := location.DistanceKm(stop.Location)
		if distance <= radiusKm {
			candidates = append(candidates, candidate{stop, distance})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].stop.PrimaryIdentifier < candidates[j].stop.PrimaryIdentifier
	})

	stops := make([]*transit.Stop, len(candidates))
	for i, c := range candidates {
		stops[i] = c.stop
	}

	return stops
}

// StopCluster finds the bus stops around a location by expanding through the
// radius tiers, stopping at the first non-empty tier. The tier radius that
// produced the cluster is returned alongside it.
func (g *Graph) StopCluster(location *transit.Location) ([]*transit.Stop, float64) {
	for _, radius := range RadiusTiers {
		stops := g.StopsWithinRadius(location, radius)
		if len(stops) > 0 {
			return stops, radius
		}
	}

	return nil, 0
}

// NearestStop is the expanding-radius nearest neighbour lookup.
func (g *Graph) NearestStop(location *transit.Location) (*transit.Stop, float64) {
	cluster, _ := g.StopCluster(location)
	if len(cluster) == 0 {
		return nil, 0
	}

	nearest := cluster[0]
	return nearest, location.DistanceKm(nearest.Location)
}

// ClusterRoutes unions the route sets of every stop in a cluster, sorted.
func (g *Graph) ClusterRoutes(cluster []*transit.Stop) []string {
	routeSet := map[string]bool{}
	for _, stop := range cluster {
		for _, route := range stop.Routes {
			routeSet[route] = true
		}
	}

	routes := maps.Keys(routeSet)
	sort.Strings(routes)
	return routes
}

// NearestStation finds the closest metro station to a location within the
// outermost radius tier, over all lines. The bound is inclusive, matching
// StopsWithinRadius.
func (g *Graph) NearestStation(location *transit.Location) (*transit.MetroStation, float64) {
	maxRadius := RadiusTiers[len(RadiusTiers)-1]

	var nearest *transit.MetroStation
	var nearestDistance float64

	for _, station := range g.stationList {
		distance := location.DistanceKm(station.Location)
		if distance > maxRadius {
			continue
		}

		if nearest == nil || distance < nearestDistance ||
			(distance == nearestDistance && station.PrimaryIdentifier < nearest.PrimaryIdentifier) {
			nearest = station
			nearestDistance = distance
		}
	}

	if nearest == nil {
		return nil, 0
	}
	return nearest, nearestDistance
}

// Interchange returns the station where the two lines meet, or nil. When
// several interchanges exist the one with the smallest identifier wins so
// composition stays deterministic.
func (g *Graph) Interchange(lineA string, lineB string) *transit.MetroStation {
	line := g.lines[lineA]
	if line == nil {
		return nil
	}

	var interchange *transit.MetroStation
	for _, station := range line.Stations {
		if !slices.Contains(station.Interchanges, lineB) {
			continue
		}

		if interchange == nil || station.PrimaryIdentifier < interchange.PrimaryIdentifier {
			interchange = station
		}
	}

	return interchange
}

// StationOnLine returns the station on the given line matching the
// identifier of a station on another line, used to measure the second leg of
// a transfer through an interchange.
func (g *Graph) StationOnLine(lineIdentifier string, name string) *transit.MetroStation {
	line := g.lines[lineIdentifier]
	if line == nil {
		return nil
	}

	for _, station := range line.Stations {
		if station.PrimaryName == name {
			return station
		}
	}

	return nil
}
