package datasets

import (
	"fmt"
	"os"

	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
	"gopkg.in/yaml.v3"
)

type aliasesFile struct {
	Aliases map[string]aliasRecord `yaml:"aliases"`
}

type aliasRecord struct {
	Longitude float64  `yaml:"lon"`
	Latitude  float64  `yaml:"lat"`
	Keywords  []string `yaml:"keywords"`
}

func loadAliases(path string, boundingBox transit.BoundingBox) ([]*transit.Alias, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, transit.DataLoadError{Path: path, Err: err}
	}

	var file aliasesFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, transit.DataLoadError{Path: path, Err: err}
	}

	var aliases []*transit.Alias
	for name, record := range file.Aliases {
		location := transit.NewLocation(record.Longitude, record.Latitude)
		if !boundingBox.Contains(location) {
			return nil, transit.DataLoadError{
				Path: path,
				Err:  fmt.Errorf("alias %s lies outside the city bounding box", name),
			}
		}

		normalisedKeywords := make([]string, len(record.Keywords))
		for i, keyword := range record.Keywords {
			normalisedKeywords[i] = util.NormaliseName(keyword)
		}

		aliases = append(aliases, &transit.Alias{
			Name:     util.NormaliseName(name),
			Location: location,
			Keywords: normalisedKeywords,
		})
	}

	return aliases, nil
}

type corridorsFile struct {
	Corridors []*transit.CorridorFallback `yaml:"corridors"`
}

func loadCorridors(path string) ([]*transit.CorridorFallback, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, transit.DataLoadError{Path: path, Err: err}
	}

	var file corridorsFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, transit.DataLoadError{Path: path, Err: err}
	}

	for _, corridor := range file.Corridors {
		if len(corridor.Areas) != 2 || len(corridor.Routes) == 0 {
			return nil, transit.DataLoadError{
				Path: path,
				Err:  fmt.Errorf("corridor must name exactly 2 areas and at least 1 route"),
			}
		}

		corridor.Areas[0] = util.NormaliseName(corridor.Areas[0])
		corridor.Areas[1] = util.NormaliseName(corridor.Areas[1])
	}

	return file.Corridors, nil
}

type placesFile struct {
	Themes []string         `yaml:"themes"`
	Places []*transit.Place `yaml:"safe_places"`
}

func loadPlaces(path string) ([]*transit.Place, []string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, transit.DataLoadError{Path: path, Err: err}
	}

	var file placesFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, nil, transit.DataLoadError{Path: path, Err: err}
	}

	return file.Places, file.Themes, nil
}
