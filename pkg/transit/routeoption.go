package transit

// RouteOption is a single way of making a trip, always with a non-negative
// cost and a positive duration.
type RouteOption struct {
	Mode TransportType `groups:"basic"`

	Cost        float64 `groups:"basic"`
	TimeMinutes int     `groups:"basic"`

	Steps []string `groups:"basic"`

	AC            bool    `groups:"basic"`
	DoorToDoor    bool    `groups:"basic"`
	Transfers     int     `groups:"basic"`
	WalkingMetres float64 `groups:"basic"`

	// ComfortScore is only populated by the elderly ranking policy.
	ComfortScore float64 `groups:"basic"`

	RouteIdentifier string `groups:"detailed"`
	Line            string `groups:"detailed"`
}
