package transit

// Stop is a physical bus boarding point. Immutable once the graph it belongs
// to has been built.
type Stop struct {
	PrimaryIdentifier string `groups:"basic"`
	PrimaryName       string `groups:"basic"`

	Location *Location `groups:"basic"`

	// Routes is the set of route identifiers serving this stop. The source
	// data does not give per-route stop ordering, so co-membership is all a
	// stop can prove.
	Routes []string `groups:"detailed"`

	DailyTrips int `groups:"detailed"`
}

// Route is a named bus service known only by the unordered set of stops it
// touches.
type Route struct {
	Identifier string   `groups:"basic"`
	Stops      []string `groups:"detailed"`
}
