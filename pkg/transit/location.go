package transit

import "math"

const earthRadiusKm = 6371

// Location is a GeoJSON style point, coordinates are [longitude, latitude]
type Location struct {
	Type        string    `json:"-" groups:"basic" yaml:"-"`
	Coordinates []float64 `json:"coordinates" groups:"basic" yaml:"coordinates,flow"`
}

func NewLocation(lon float64, lat float64) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{lon, lat},
	}
}

func (l *Location) Longitude() float64 {
	return l.Coordinates[0]
}

func (l *Location) Latitude() float64 {
	return l.Coordinates[1]
}

// DistanceKm returns the great-circle distance between two locations in kilometres
func (l *Location) DistanceKm(other *Location) float64 {
	lat1 := l.Latitude() * math.Pi / 180
	lat2 := other.Latitude() * math.Pi / 180
	deltaLat := (other.Latitude() - l.Latitude()) * math.Pi / 180
	deltaLon := (other.Longitude() - l.Longitude()) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

type BoundingBox struct {
	MinLon float64 `yaml:"min_lon"`
	MinLat float64 `yaml:"min_lat"`
	MaxLon float64 `yaml:"max_lon"`
	MaxLat float64 `yaml:"max_lat"`
}

func (b *BoundingBox) Contains(l *Location) bool {
	return l.Longitude() >= b.MinLon && l.Longitude() <= b.MaxLon &&
		l.Latitude() >= b.MinLat && l.Latitude() <= b.MaxLat
}
