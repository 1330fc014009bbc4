package intent

import (
	"sort"
	"strings"

	"github.com/yatrigo/yatrigo/pkg/util"
)

// CityKeywords maps a city key to the keywords that identify it in free text,
// e.g. "mumbai" -> ["mumbai", "bombay", "bandra", "andheri"].
type CityKeywords map[string][]string

// DetectCity scans the query for city keywords and returns the matching city
// key, or the default when nothing matches. Cities are checked in sorted key
// order so the same text always picks the same city.
func DetectCity(text string, keywords CityKeywords, defaultCity string) string {
	normalised := " " + util.NormaliseName(text) + " "

	cityKeys := make([]string, 0, len(keywords))
	for key := range keywords {
		cityKeys = append(cityKeys, key)
	}
	sort.Strings(cityKeys)

	for _, cityKey := range cityKeys {
		for _, keyword := range keywords[cityKey] {
			if strings.Contains(normalised, " "+util.NormaliseName(keyword)+" ") {
				return cityKey
			}
		}
	}

	return defaultCity
}
