package composer

import (
	"context"
	"fmt"

	"github.com/yatrigo/yatrigo/pkg/transit"
)

const (
	// minutesPerStation is the average metro hop time including dwell.
	minutesPerStation = 2
	// metroEntryMinutes covers ticketing, security and the platform wait.
	metroEntryMinutes = 5
	// interchangeMinutes is the penalty for changing lines.
	interchangeMinutes = 8
)

func (c *Composer) composeMetro(ctx context.Context, trip *tripContext) modeOutcome {
	graph := c.City.Graph.Get()

	if graph.StationCount() == 0 {
		return noRoute(transit.TransportTypeMetro, "no metro network in this city")
	}

	originStation, _ := graph.NearestStation(trip.origin)
	destinationStation, _ := graph.NearestStation(trip.destination)

	if originStation == nil || destinationStation == nil {
		return noRoute(transit.TransportTypeMetro, "no metro station near the origin or destination")
	}

	if originStation.PrimaryIdentifier == destinationStation.PrimaryIdentifier {
		return noRoute(transit.TransportTypeMetro, "origin and destination share the nearest station")
	}

	boardingWalk := c.walkEstimate(ctx, trip.origin, originStation.Location)
	alightingWalk := c.walkEstimate(ctx, destinationStation.Location, trip.destination)
	walkMinutes := boardingWalk.TimeMinutes + alightingWalk.TimeMinutes
	walkingMetres := (boardingWalk.DistanceKm + alightingWalk.DistanceKm) * 1000

	originLine := graph.Line(originStation.Line)

	if originStation.Line == destinationStation.Line {
		stations := absInt(originStation.LinePosition - destinationStation.LinePosition)

		return modeOutcome{option: &transit.RouteOption{
			Mode:        transit.TransportTypeMetro,
			Cost:        originLine.FareRule.Calculate(stations),
			TimeMinutes: walkMinutes + metroEntryMinutes + stations*minutesPerStation,
			Steps: []string{
				fmt.Sprintf("Walk %s to %s metro station", formatDistance(boardingWalk.DistanceKm), originStation.PrimaryName),
				fmt.Sprintf("Take the %s line %d stops to %s", originLine.Name, stations, destinationStation.PrimaryName),
				fmt.Sprintf("Walk %s to %s", formatDistance(alightingWalk.DistanceKm), trip.destinationName),
			},
			AC:            true,
			WalkingMetres: walkingMetres,
			Line:          originStation.Line,
		}}
	}

	interchange := graph.Interchange(originStation.Line, destinationStation.Line)
	if interchange == nil {
		return noRoute(transit.TransportTypeMetro, "the metro lines serving these areas do not connect")
	}

	interchangeOnDestinationLine := graph.StationOnLine(destinationStation.Line, interchange.PrimaryName)
	if interchangeOnDestinationLine == nil {
		return noRoute(transit.TransportTypeMetro, "the metro lines serving these areas do not connect")
	}

	firstLeg := absInt(originStation.LinePosition - interchange.LinePosition)
	secondLeg := absInt(interchangeOnDestinationLine.LinePosition - destinationStation.LinePosition)
	stations := firstLeg + secondLeg

	destinationLine := graph.Line(destinationStation.Line)

	return modeOutcome{option: &transit.RouteOption{
		Mode:        transit.TransportTypeMetro,
		Cost:        originLine.FareRule.Calculate(stations),
		TimeMinutes: walkMinutes + metroEntryMinutes + stations*minutesPerStation + interchangeMinutes,
		Steps: []string{
			fmt.Sprintf("Walk %s to %s metro station", formatDistance(boardingWalk.DistanceKm), originStation.PrimaryName),
			fmt.Sprintf("Take the %s line %d stops to %s", originLine.Name, firstLeg, interchange.PrimaryName),
			fmt.Sprintf("Change to the %s line", destinationLine.Name),
			fmt.Sprintf("Take the %s line %d stops to %s", destinationLine.Name, secondLeg, destinationStation.PrimaryName),
			fmt.Sprintf("Walk %s to %s", formatDistance(alightingWalk.DistanceKm), trip.destinationName),
		},
		AC:            true,
		Transfers:     1,
		WalkingMetres: walkingMetres,
		Line:          fmt.Sprintf("%s+%s", originStation.Line, destinationStation.Line),
	}}
}

func absInt(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
