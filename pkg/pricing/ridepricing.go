package pricing

import (
	"fmt"
	"math"
	"net/url"
)

// Service is a ride-hailing offering with its published rate card.
type Service struct {
	Key         string
	Name        string
	Category    string
	BaseFare    float64
	PerKm       float64
	Description string
}

// Rate cards for Indian ride-hailing services, in display order.
var Services = []Service{
	{Key: "namma_yatri_auto", Name: "Namma Yatri Auto", Category: "auto", BaseFare: 25, PerKm: 14, Description: "Open-source auto booking"},
	{Key: "ola_auto", Name: "Ola Auto", Category: "auto", BaseFare: 30, PerKm: 15, Description: "Standard auto rickshaw"},
	{Key: "uber_auto", Name: "Uber Auto", Category: "auto", BaseFare: 30, PerKm: 15, Description: "UberAuto service"},
	{Key: "rapido_bike", Name: "Rapido Bike", Category: "bike", BaseFare: 20, PerKm: 8, Description: "Bike taxi, fastest for short trips"},
	{Key: "ola_micro", Name: "Ola Micro", Category: "cab", BaseFare: 50, PerKm: 12, Description: "Economy cab"},
	{Key: "uber_go", Name: "Uber Go", Category: "cab", BaseFare: 55, PerKm: 13, Description: "Affordable cab rides"},
}

type Estimate struct {
	Service     string  `groups:"basic"`
	Name        string  `groups:"basic"`
	Category    string  `groups:"basic"`
	Price       float64 `groups:"basic"`
	MinPrice    float64 `groups:"basic"`
	MaxPrice    float64 `groups:"basic"`
	DeepLink    string  `groups:"basic"`
	Description string  `groups:"detailed"`
}

// Estimates prices every known service for the trip. The +-10% band reflects
// route variance the rate card cannot capture.
func Estimates(origin string, destination string, distanceKm float64, surge float64) []Estimate {
	estimates := make([]Estimate, 0, len(Services))

	for _, service := range Services {
		price := (service.BaseFare + distanceKm*service.PerKm) * surge

		estimates = append(estimates, Estimate{
			Service:     service.Key,
			Name:        service.Name,
			Category:    service.Category,
			Price:       math.Round(price),
			MinPrice:    math.Floor(price * 0.9),
			MaxPrice:    math.Ceil(price * 1.1),
			DeepLink:    DeepLink(service.Key, origin, destination),
			Description: service.Description,
		})
	}

	return estimates
}

// DeepLink builds the booking link for a service. Unknown services get an
// empty link rather than a guessed one.
func DeepLink(serviceKey string, origin string, destination string) string {
	pickup := url.QueryEscape(origin)
	drop := url.QueryEscape(destination)

	switch {
	case serviceKey == "namma_yatri_auto":
		return fmt.Sprintf("https://nammayatri.in/open/?pickup=%s&destination=%s", pickup, drop)
	case serviceKey == "ola_auto" || serviceKey == "ola_micro":
		return fmt.Sprintf("https://book.olacabs.com/?pickup=%s&drop=%s", pickup, drop)
	case serviceKey == "uber_auto" || serviceKey == "uber_go":
		return fmt.Sprintf("https://m.uber.com/ul/?action=setPickup&pickup=my_location&dropoff[formatted_address]=%s", drop)
	case serviceKey == "rapido_bike":
		return fmt.Sprintf("https://rapido.bike/ride?pickup=%s&drop=%s", pickup, drop)
	}

	return ""
}
