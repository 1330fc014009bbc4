package datasets

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

type busStopRecord struct {
	Identifier string  `csv:"stop_id"`
	Name       string  `csv:"name"`
	Latitude   float64 `csv:"latitude"`
	Longitude  float64 `csv:"longitude"`
	Routes     string  `csv:"routes"`
	DailyTrips int     `csv:"daily_trips"`
}

// loadBusStops parses a bus stop CSV and validates every coordinate against
// the city bounding box. Any malformed record is a DataLoadError - a partial
// stop index would silently corrupt route intersection.
func loadBusStops(path string, boundingBox transit.BoundingBox) ([]*transit.Stop, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, transit.DataLoadError{Path: path, Err: err}
	}
	defer file.Close()

	var records []*busStopRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, transit.DataLoadError{Path: path, Err: err}
	}

	var stops []*transit.Stop
	for _, record := range records {
		if record.Identifier == "" || record.Name == "" {
			return nil, transit.DataLoadError{
				Path: path,
				Err:  fmt.Errorf("stop record missing identifier or name"),
			}
		}

		location := transit.NewLocation(record.Longitude, record.Latitude)
		if !boundingBox.Contains(location) {
			return nil, transit.DataLoadError{
				Path: path,
				Err:  fmt.Errorf("stop %s lies outside the city bounding box", record.Identifier),
			}
		}

		routes := util.RemoveDuplicateStrings(strings.Split(record.Routes, "|"), nil)

		stops = append(stops, &transit.Stop{
			PrimaryIdentifier: record.Identifier,
			PrimaryName:       record.Name,
			Location:          location,
			Routes:            routes,
			DailyTrips:        record.DailyTrips,
		})
	}

	return stops, nil
}
