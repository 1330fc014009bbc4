package itinerary

import (
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

const (
	minDays = 1
	maxDays = 5

	// hoursPerDay is the sightseeing time budgeted for one day.
	hoursPerDay = 8.0
)

// Day is one day of a drafted itinerary.
type Day struct {
	Day    int              `groups:"basic"`
	Places []*transit.Place `groups:"basic"`

	VisitHours float64 `groups:"basic"`
	EntryFees  float64 `groups:"basic"`
}

type Itinerary struct {
	City string `groups:"basic"`
	Days []Day  `groups:"basic"`

	TotalEntryFees float64 `groups:"basic"`
}

// Draft packs curated places into day buckets. Places matching the preferred
// themes are scheduled first, the rest fill any remaining time. The curated
// list order is preserved within each group so drafting is deterministic.
func Draft(city string, places []*transit.Place, preferredThemes []string, days int) *Itinerary {
	if days < minDays {
		days = minDays
	}
	if days > maxDays {
		days = maxDays
	}

	ordered := make([]*transit.Place, 0, len(places))
	for _, place := range places {
		if util.ContainsString(preferredThemes, place.Theme) {
			ordered = append(ordered, place)
		}
	}
	for _, place := range places {
		if !util.ContainsString(preferredThemes, place.Theme) {
			ordered = append(ordered, place)
		}
	}

	draft := &Itinerary{City: city}

	dayIndex := 0
	current := Day{Day: 1}

	for _, place := range ordered {
		if dayIndex >= days {
			break
		}

		if current.VisitHours+place.VisitHours > hoursPerDay && len(current.Places) > 0 {
			draft.Days = append(draft.Days, current)
			dayIndex++
			if dayIndex >= days {
				break
			}
			current = Day{Day: dayIndex + 1}
		}

		current.Places = append(current.Places, place)
		current.VisitHours += place.VisitHours
		current.EntryFees += place.EntryFee
	}

	if len(current.Places) > 0 && dayIndex < days {
		draft.Days = append(draft.Days, current)
	}

	for _, day := range draft.Days {
		draft.TotalEntryFees += day.EntryFees
	}

	return draft
}

// Validate reports whether every named place is on the curated list.
func Validate(places []*transit.Place, names []string) bool {
	for _, name := range names {
		found := false
		for _, place := range places {
			if place.Name == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
