package transit

type TransportType string

const (
	TransportTypeWalk  TransportType = "walk"
	TransportTypeBus   TransportType = "bus"
	TransportTypeMetro TransportType = "metro"
	TransportTypeAuto  TransportType = "auto"
	TransportTypeTaxi  TransportType = "taxi"
)

// VehicularTypes are the modes whose travel time is sensitive to road
// congestion.
var VehicularTypes = []TransportType{
	TransportTypeBus,
	TransportTypeAuto,
	TransportTypeTaxi,
}

type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeElderly UserType = "elderly"
	UserTypeTourist UserType = "tourist"
)
