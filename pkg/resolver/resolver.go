package resolver

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

// Geocoder resolves names the alias table does not know. Implementations live
// in pkg/external so the resolver stays free of transport concerns.
type Geocoder interface {
	Geocode(ctx context.Context, name string, city string) (*transit.Location, error)
}

// containsMinLength guards the substring fallback. Matching fragments shorter
// than this produces junk like "to" hitting half the table.
const containsMinLength = 4

// Resolved is a place name pinned to coordinates, with how it was found.
type Resolved struct {
	Name     string
	Location *transit.Location
	Source   string
}

// Resolver turns free-text place names into coordinates for one city. The
// alias table is read-only after construction so a Resolver is safe for
// concurrent use.
type Resolver struct {
	city string

	aliasByName    map[string]*transit.Alias
	aliasByKeyword map[string]*transit.Alias
	aliasNames     []string

	geocoder Geocoder
}

// NewResolver indexes the city's alias table. geocoder may be nil, in which
// case unknown names fail with a ResolutionError instead of a remote lookup.
func NewResolver(city string, aliases []*transit.Alias, geocoder Geocoder) *Resolver {
	resolver := &Resolver{
		city:           city,
		aliasByName:    map[string]*transit.Alias{},
		aliasByKeyword: map[string]*transit.Alias{},
		geocoder:       geocoder,
	}

	for _, alias := range aliases {
		resolver.aliasByName[alias.Name] = alias

		for _, keyword := range alias.Keywords {
			// First alias to claim a keyword keeps it.
			if _, claimed := resolver.aliasByKeyword[keyword]; !claimed {
				resolver.aliasByKeyword[keyword] = alias
			}
		}
	}

	for name := range resolver.aliasByName {
		resolver.aliasNames = append(resolver.aliasNames, name)
	}
	sort.Strings(resolver.aliasNames)

	return resolver
}

// Resolve maps a place name to coordinates. Lookup order is exact alias,
// alias keyword, substring match, then the geocoder. Substring matches pick
// the lexicographically smallest alias name so repeated calls agree.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Resolved, error) {
	normalised := util.NormaliseName(name)
	if normalised == "" {
		return nil, transit.ResolutionError{Name: name, City: r.city}
	}

	if alias := r.aliasByName[normalised]; alias != nil {
		return &Resolved{Name: alias.Name, Location: alias.Location, Source: "alias"}, nil
	}

	if alias := r.aliasByKeyword[normalised]; alias != nil {
		return &Resolved{Name: alias.Name, Location: alias.Location, Source: "keyword"}, nil
	}

	if len(normalised) >= containsMinLength {
		for _, aliasName := range r.aliasNames {
			if strings.Contains(aliasName, normalised) || strings.Contains(normalised, aliasName) {
				alias := r.aliasByName[aliasName]
				return &Resolved{Name: alias.Name, Location: alias.Location, Source: "contains"}, nil
			}
		}
	}

	if r.geocoder != nil {
		location, err := r.geocoder.Geocode(ctx, normalised, r.city)
		if err == nil {
			return &Resolved{Name: normalised, Location: location, Source: "geocoder"}, nil
		}

		log.Debug().Err(err).Str("name", normalised).Msg("Geocoder lookup failed")
	}

	return nil, transit.ResolutionError{Name: name, City: r.city}
}

// NearestAlias names the alias closest to a point, within maxKm. It gives
// raw coordinates an area name for corridor matching.
func (r *Resolver) NearestAlias(location *transit.Location, maxKm float64) (*transit.Alias, bool) {
	var nearest *transit.Alias
	nearestDistance := maxKm

	for _, aliasName := range r.aliasNames {
		alias := r.aliasByName[aliasName]

		distance := location.DistanceKm(alias.Location)
		if distance < nearestDistance {
			nearest = alias
			nearestDistance = distance
		}
	}

	return nearest, nearest != nil
}
