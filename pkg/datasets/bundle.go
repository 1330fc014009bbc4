package datasets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/yatrigo/yatrigo/pkg/pricing"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/transitgraph"
	"gopkg.in/yaml.v3"
)

// Bundle is everything loaded from the data directory at startup.
type Bundle struct {
	DefaultCity string
	Cities      map[string]*CityData
}

// CityKeys returns the loaded city keys in a stable order.
func (b *Bundle) CityKeys() []string {
	keys := make([]string, 0, len(b.Cities))
	for key := range b.Cities {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (b *Bundle) City(key string) *CityData {
	if city := b.Cities[key]; city != nil {
		return city
	}
	return b.Cities[b.DefaultCity]
}

// Load reads cities.yaml and every per-city dataset underneath dataDir. Any
// failure is a DataLoadError and must abort startup - serving with a partial
// graph would corrupt every route that touches the missing data.
func Load(dataDir string) (*Bundle, error) {
	configPath := filepath.Join(dataDir, "cities.yaml")
	contents, err := os.ReadFile(configPath)
	if err != nil {
		return nil, transit.DataLoadError{Path: configPath, Err: err}
	}

	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return nil, transit.DataLoadError{Path: configPath, Err: err}
	}

	if len(config.Cities) == 0 {
		return nil, transit.DataLoadError{Path: configPath, Err: fmt.Errorf("no cities configured")}
	}
	if config.Cities[config.DefaultCity] == nil {
		return nil, transit.DataLoadError{Path: configPath, Err: fmt.Errorf("default city %s is not configured", config.DefaultCity)}
	}

	bundle := &Bundle{
		DefaultCity: config.DefaultCity,
		Cities:      map[string]*CityData{},
	}

	for key, cityConfig := range config.Cities {
		city, err := loadCity(dataDir, key, cityConfig)
		if err != nil {
			return nil, err
		}

		bundle.Cities[key] = city

		log.Info().
			Str("city", key).
			Int("stops", city.Graph.Get().StopCount()).
			Int("stations", city.Graph.Get().StationCount()).
			Int("aliases", len(city.Aliases)).
			Int("corridors", len(city.Corridors)).
			Msg("Loaded city datasets")
	}

	return bundle, nil
}

func loadCity(dataDir string, key string, config *cityConfig) (*CityData, error) {
	city := &CityData{
		Key:  key,
		Name: config.Name,

		Keywords:    config.Keywords,
		BoundingBox: config.BoundingBox,
		PeakWindows: config.PeakWindows,

		BusFares:  config.Fares.Bus,
		AutoFares: config.Fares.Auto,
		TaxiFares: config.Fares.Taxi,
	}

	if config.SurgeRule != "" {
		program, err := pricing.CompileSurgeRule(config.SurgeRule)
		if err != nil {
			return nil, transit.DataLoadError{Path: "cities.yaml", Err: fmt.Errorf("surge rule for %s: %w", key, err)}
		}
		city.SurgeProgram = program
	}

	var stops []*transit.Stop
	if config.Datasets.BusStopsCSV != "" {
		var err error
		stops, err = loadBusStops(filepath.Join(dataDir, config.Datasets.BusStopsCSV), config.BoundingBox)
		if err != nil {
			return nil, err
		}
	}

	var lines []*transit.MetroLine
	if config.Datasets.MetroLinesYAML != "" {
		var err error
		lines, err = loadMetroLines(filepath.Join(dataDir, config.Datasets.MetroLinesYAML), config.BoundingBox)
		if err != nil {
			return nil, err
		}
	}

	graph, err := transitgraph.NewGraph(key, stops, lines)
	if err != nil {
		return nil, transit.DataLoadError{Path: dataDir, Err: err}
	}
	city.Graph = transitgraph.NewHolder(graph)

	if config.Datasets.AliasesYAML != "" {
		city.Aliases, err = loadAliases(filepath.Join(dataDir, config.Datasets.AliasesYAML), config.BoundingBox)
		if err != nil {
			return nil, err
		}
	}

	if config.Datasets.CorridorsYAML != "" {
		city.Corridors, err = loadCorridors(filepath.Join(dataDir, config.Datasets.CorridorsYAML))
		if err != nil {
			return nil, err
		}
	}

	if config.Datasets.PlacesYAML != "" {
		city.Places, city.Themes, err = loadPlaces(filepath.Join(dataDir, config.Datasets.PlacesYAML))
		if err != nil {
			return nil, err
		}
	}

	return city, nil
}

// Reload rebuilds a city's graph from disk and swaps it in atomically.
// In-flight queries keep the graph they started with.
func (b *Bundle) Reload(dataDir string) error {
	fresh, err := Load(dataDir)
	if err != nil {
		return err
	}

	for key, city := range b.Cities {
		if freshCity := fresh.Cities[key]; freshCity != nil {
			city.Graph.Swap(freshCity.Graph.Get())
		}
	}

	return nil
}
