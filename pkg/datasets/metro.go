package datasets

import (
	"fmt"
	"os"

	"github.com/yatrigo/yatrigo/pkg/transit"
	"gopkg.in/yaml.v3"
)

type metroLinesFile struct {
	FareRule transit.MetroFareRule `yaml:"fare_rule"`
	Lines    []metroLineRecord     `yaml:"lines"`
}

type metroLineRecord struct {
	Identifier string               `yaml:"id"`
	Name       string               `yaml:"name"`
	Stations   []metroStationRecord `yaml:"stations"`
}

type metroStationRecord struct {
	Identifier   string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Longitude    float64  `yaml:"lon"`
	Latitude     float64  `yaml:"lat"`
	Interchanges []string `yaml:"interchange"`
}

func loadMetroLines(path string, boundingBox transit.BoundingBox) ([]*transit.MetroLine, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, transit.DataLoadError{Path: path, Err: err}
	}

	var file metroLinesFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, transit.DataLoadError{Path: path, Err: err}
	}

	var lines []*transit.MetroLine
	for _, lineRecord := range file.Lines {
		if len(lineRecord.Stations) < 2 {
			return nil, transit.DataLoadError{
				Path: path,
				Err:  fmt.Errorf("metro line %s has fewer than 2 stations", lineRecord.Identifier),
			}
		}

		line := &transit.MetroLine{
			Identifier: lineRecord.Identifier,
			Name:       lineRecord.Name,
			FareRule:   file.FareRule,
		}

		for _, stationRecord := range lineRecord.Stations {
			location := transit.NewLocation(stationRecord.Longitude, stationRecord.Latitude)
			if !boundingBox.Contains(location) {
				return nil, transit.DataLoadError{
					Path: path,
					Err:  fmt.Errorf("station %s lies outside the city bounding box", stationRecord.Identifier),
				}
			}

			line.Stations = append(line.Stations, &transit.MetroStation{
				PrimaryIdentifier: stationRecord.Identifier,
				PrimaryName:       stationRecord.Name,
				Location:          location,
				Interchanges:      stationRecord.Interchanges,
			})
		}

		lines = append(lines, line)
	}

	return lines, nil
}
