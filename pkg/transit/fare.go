package transit

// BusFareModel is a distance based fare with a floor, plus average in-traffic
// speed and expected wait used for time estimates.
type BusFareModel struct {
	BaseFare    float64 `yaml:"base_fare"`
	PerKm       float64 `yaml:"per_km"`
	MinimumFare float64 `yaml:"minimum_fare"`
	SpeedKmh    float64 `yaml:"speed_kmh"`
	WaitMinutes int     `yaml:"wait_minutes"`
}

func (m BusFareModel) Calculate(distanceKm float64) float64 {
	fare := m.BaseFare + distanceKm*m.PerKm
	if fare < m.MinimumFare {
		return m.MinimumFare
	}
	return fare
}

// VehicleFareModel covers the door-to-door modes (auto, taxi) which are
// always computable from distance alone.
type VehicleFareModel struct {
	BaseFare      float64 `yaml:"base_fare"`
	PerKm         float64 `yaml:"per_km"`
	SpeedKmh      float64 `yaml:"speed_kmh"`
	PickupMinutes int     `yaml:"pickup_minutes"`
	AC            bool    `yaml:"ac"`
}

func (m VehicleFareModel) Calculate(distanceKm float64, surge float64) float64 {
	return (m.BaseFare + distanceKm*m.PerKm) * surge
}

// TravelMinutes estimates the ride duration including pickup wait, scaled by
// the congestion multiplier. Always at least one minute so option times stay
// positive.
func (m VehicleFareModel) TravelMinutes(distanceKm float64, congestion float64) int {
	minutes := int(distanceKm/m.SpeedKmh*60*congestion) + m.PickupMinutes
	if minutes < 1 {
		return 1
	}
	return minutes
}
