package datasets

import (
	"time"

	"github.com/expr-lang/expr/vm"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/transitgraph"
)

// Config is the parsed cities.yaml, the root of all static data.
type Config struct {
	DefaultCity string                 `yaml:"default_city"`
	Cities      map[string]*cityConfig `yaml:"cities"`
}

type cityConfig struct {
	Name        string              `yaml:"name"`
	Keywords    []string            `yaml:"keywords"`
	BoundingBox transit.BoundingBox `yaml:"bounding_box"`
	PeakWindows []PeakWindow        `yaml:"peak_windows"`
	SurgeRule   string              `yaml:"surge_rule"`

	Fares fareConfig `yaml:"fares"`

	Datasets datasetFiles `yaml:"datasets"`
}

type fareConfig struct {
	Bus  transit.BusFareModel     `yaml:"bus"`
	Auto transit.VehicleFareModel `yaml:"auto"`
	Taxi transit.VehicleFareModel `yaml:"taxi"`
}

type datasetFiles struct {
	BusStopsCSV    string `yaml:"bus_stops_csv"`
	MetroLinesYAML string `yaml:"metro_lines_yaml"`
	AliasesYAML    string `yaml:"aliases_yaml"`
	CorridorsYAML  string `yaml:"corridors_yaml"`
	PlacesYAML     string `yaml:"places_yaml"`
}

type PeakWindow struct {
	StartHour int `yaml:"start"`
	EndHour   int `yaml:"end"`
}

// CityData is everything loaded for one city: config, datasets and the built
// transit graph. Immutable after Load.
type CityData struct {
	Key  string
	Name string

	Keywords    []string
	BoundingBox transit.BoundingBox
	PeakWindows []PeakWindow

	BusFares  transit.BusFareModel
	AutoFares transit.VehicleFareModel
	TaxiFares transit.VehicleFareModel

	SurgeProgram *vm.Program

	Aliases   []*transit.Alias
	Corridors []*transit.CorridorFallback
	Places    []*transit.Place
	Themes    []string

	Graph *transitgraph.Holder
}

// IsPeak reports whether t falls in a weekday peak window.
func (c *CityData) IsPeak(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}

	for _, window := range c.PeakWindows {
		if t.Hour() >= window.StartHour && t.Hour() < window.EndHour {
			return true
		}
	}

	return false
}
