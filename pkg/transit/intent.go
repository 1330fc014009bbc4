package transit

// CurrentLocationSentinel marks an intent whose origin was never stated and
// should be filled from the caller's coordinates or session.
const CurrentLocationSentinel = "current_location"

type Intent struct {
	Origin      string  `groups:"basic"`
	Destination string  `groups:"basic"`
	City        string  `groups:"basic"`
	Confidence  float64 `groups:"basic"`
}

func (i *Intent) OriginIsCurrentLocation() bool {
	return i.Origin == CurrentLocationSentinel
}
