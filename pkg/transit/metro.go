package transit

type MetroStation struct {
	PrimaryIdentifier string `groups:"basic"`
	PrimaryName       string `groups:"basic"`

	Location *Location `groups:"basic"`

	Line         string `groups:"basic"`
	LinePosition int    `groups:"detailed"`

	// Interchanges lists the other line identifiers reachable without
	// leaving the station.
	Interchanges []string `groups:"detailed"`
}

type MetroLine struct {
	Identifier string `groups:"basic"`
	Name       string `groups:"basic"`

	Stations []*MetroStation `groups:"detailed"`

	FareRule MetroFareRule `groups:"detailed"`
}

type MetroFareRule struct {
	BaseFare   float64 `yaml:"base_fare"`
	PerStation float64 `yaml:"per_station"`
	MaxFare    float64 `yaml:"max_fare"`
}

// Calculate returns the fare for travelling the given number of stations,
// capped at the line maximum.
func (r MetroFareRule) Calculate(stations int) float64 {
	fare := r.BaseFare + float64(stations)*r.PerStation
	if fare > r.MaxFare {
		return r.MaxFare
	}
	return fare
}
