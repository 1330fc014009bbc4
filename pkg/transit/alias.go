package transit

// Alias maps a user facing place name onto a fixed coordinate, bypassing live
// geocoding. Keywords are alternative spellings and nearby landmarks.
type Alias struct {
	Name     string    `yaml:"-"`
	Location *Location `yaml:"-"`
	Keywords []string  `yaml:"keywords"`
}

// CorridorFallback is a curated mapping from a coarse area pair to known
// connecting bus routes. It is the sanctioned workaround for the missing
// per-route stop ordering, used when live graph intersection comes up empty.
type CorridorFallback struct {
	Areas  []string `yaml:"between"`
	Routes []string `yaml:"routes"`
}

// Connects reports whether this corridor links the two given areas, in either
// direction.
func (c *CorridorFallback) Connects(areaA string, areaB string) bool {
	if len(c.Areas) != 2 {
		return false
	}

	return (c.Areas[0] == areaA && c.Areas[1] == areaB) ||
		(c.Areas[0] == areaB && c.Areas[1] == areaA)
}

// Place is a curated tourist destination used for itinerary drafting.
type Place struct {
	Name       string  `yaml:"name" groups:"basic"`
	Theme      string  `yaml:"theme" groups:"basic"`
	VisitHours float64 `yaml:"visit_hours" groups:"basic"`
	EntryFee   float64 `yaml:"entry_fee" groups:"basic"`
}
