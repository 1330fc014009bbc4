package traffic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

// NewProvider returns the live feed when an endpoint is configured, otherwise
// the time-of-day estimator.
func NewProvider() Provider {
	env := util.GetEnvironmentVariables()

	if env["YATRIGO_TRAFFIC_ENDPOINT"] == "" {
		return &TimeOfDayEstimator{}
	}

	return &LiveProvider{
		Endpoint: env["YATRIGO_TRAFFIC_ENDPOINT"],
		APIKey:   env["YATRIGO_TRAFFIC_API_KEY"],
		Fallback: &TimeOfDayEstimator{},
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// LiveProvider asks a traffic feed for the congestion multiplier of a trip.
// When the feed cannot answer it defers to the fallback estimator.
type LiveProvider struct {
	Endpoint string
	APIKey   string
	Fallback Provider

	httpClient *http.Client
}

type liveTrafficResponse struct {
	Multiplier float64 `json:"multiplier"`
}

func (p *LiveProvider) CongestionMultiplier(ctx context.Context, origin *transit.Location, destination *transit.Location) (float64, bool) {
	requestURL := fmt.Sprintf("%s?origin=%f,%f&destination=%f,%f",
		p.Endpoint,
		origin.Latitude(), origin.Longitude(),
		destination.Latitude(), destination.Longitude(),
	)

	var multiplier float64

	operation := func() error {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if p.APIKey != "" {
			request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.APIKey))
		}

		response, err := p.httpClient.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("traffic feed returned status %d", response.StatusCode)
		}

		var feed liveTrafficResponse
		if err := json.NewDecoder(response.Body).Decode(&feed); err != nil {
			return err
		}

		if feed.Multiplier <= 0 {
			return backoff.Permanent(fmt.Errorf("traffic feed returned multiplier %f", feed.Multiplier))
		}

		multiplier = feed.Multiplier
		return nil
	}

	err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 1))
	if err != nil {
		log.Debug().Err(err).Msg("Traffic feed unavailable, using time of day estimate")

		if p.Fallback != nil {
			return p.Fallback.CongestionMultiplier(ctx, origin, destination)
		}
		return 0, false
	}

	return multiplier, true
}
