package external

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

// WalkingDirections estimates a walking leg between two points.
type WalkingDirections interface {
	WalkingLeg(ctx context.Context, origin *transit.Location, destination *transit.Location) (WalkingEstimate, error)
}

type WalkingEstimate struct {
	DistanceKm  float64
	TimeMinutes int
}

const walkingSpeedKmh = 5.0

// HaversineDirections estimates walks from straight-line distance at a
// typical walking pace. It is the fallback when no routing service is
// configured and never fails.
type HaversineDirections struct{}

func (HaversineDirections) WalkingLeg(_ context.Context, origin *transit.Location, destination *transit.Location) (WalkingEstimate, error) {
	distanceKm := origin.DistanceKm(destination)

	timeMinutes := int(distanceKm / walkingSpeedKmh * 60)
	if timeMinutes < 1 {
		timeMinutes = 1
	}

	return WalkingEstimate{
		DistanceKm:  distanceKm,
		TimeMinutes: timeMinutes,
	}, nil
}

// NewWalkingDirections returns the routed implementation when an endpoint is
// configured, otherwise the haversine fallback.
func NewWalkingDirections() WalkingDirections {
	env := util.GetEnvironmentVariables()

	if env["YATRIGO_DIRECTIONS_ENDPOINT"] == "" {
		return HaversineDirections{}
	}

	return &HTTPDirections{
		Endpoint:    env["YATRIGO_DIRECTIONS_ENDPOINT"],
		AccessToken: env["YATRIGO_DIRECTIONS_ACCESS_TOKEN"],
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// HTTPDirections queries a Mapbox-compatible walking directions endpoint.
type HTTPDirections struct {
	Endpoint    string
	AccessToken string

	httpClient *http.Client
}

type directionsResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

func (d *HTTPDirections) WalkingLeg(ctx context.Context, origin *transit.Location, destination *transit.Location) (WalkingEstimate, error) {
	requestURL := fmt.Sprintf("%s/%f,%f;%f,%f?access_token=%s",
		d.Endpoint,
		origin.Longitude(), origin.Latitude(),
		destination.Longitude(), destination.Latitude(),
		d.AccessToken,
	)

	var estimate WalkingEstimate

	operation := func() error {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		response, err := d.httpClient.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("directions returned status %d", response.StatusCode)
		}

		var directions directionsResponse
		if err := json.NewDecoder(response.Body).Decode(&directions); err != nil {
			return err
		}

		if len(directions.Routes) == 0 {
			return backoff.Permanent(fmt.Errorf("no walking route found"))
		}

		estimate = WalkingEstimate{
			DistanceKm:  directions.Routes[0].Distance / 1000,
			TimeMinutes: int(math.Round(directions.Routes[0].Duration / 60)),
		}
		if estimate.TimeMinutes < 1 {
			estimate.TimeMinutes = 1
		}
		return nil
	}

	err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2))
	if err != nil {
		return WalkingEstimate{}, transit.ExternalServiceError{Service: "directions", Err: err}
	}

	return estimate, nil
}
