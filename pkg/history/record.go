package history

import (
	"time"

	"github.com/yatrigo/yatrigo/pkg/transit"
)

// TripRecord is one answered query, archived for usage analysis. It never
// stores raw coordinates of the user, only the resolved place names.
type TripRecord struct {
	SessionID string `json:"session_id" bson:"sessionid"`

	City        string           `json:"city" bson:"city"`
	Origin      string           `json:"origin" bson:"origin"`
	Destination string           `json:"destination" bson:"destination"`
	UserType    transit.UserType `json:"user_type" bson:"usertype"`

	QueryText string `json:"query_text" bson:"querytext"`

	OptionCount  int     `json:"option_count" bson:"optioncount"`
	CheapestFare float64 `json:"cheapest_fare" bson:"cheapestfare"`

	CreationDateTime time.Time `json:"creation_date_time" bson:"creationdatetime"`
}
