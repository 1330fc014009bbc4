package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

// HTTPGeocoder queries a Nominatim-compatible endpoint for names the alias
// table cannot place.
type HTTPGeocoder struct {
	Endpoint string

	httpClient *http.Client
}

func NewHTTPGeocoder() *HTTPGeocoder {
	env := util.GetEnvironmentVariables()

	endpoint := env["YATRIGO_GEOCODER_ENDPOINT"]
	if endpoint == "" {
		endpoint = "https://nominatim.openstreetmap.org/search"
	}

	return &HTTPGeocoder{
		Endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type geocoderResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *HTTPGeocoder) Geocode(ctx context.Context, name string, city string) (*transit.Location, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("%s, %s, India", name, city))
	query.Set("format", "json")
	query.Set("limit", "1")

	requestURL := fmt.Sprintf("%s?%s", g.Endpoint, query.Encode())

	var location *transit.Location

	operation := func() error {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		request.Header.Set("User-Agent", "yatrigo")

		response, err := g.httpClient.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("geocoder returned status %d", response.StatusCode)
		}

		var results []geocoderResult
		if err := json.NewDecoder(response.Body).Decode(&results); err != nil {
			return err
		}

		if len(results) == 0 {
			return backoff.Permanent(fmt.Errorf("no results for %s", name))
		}

		var latitude, longitude float64
		if _, err := fmt.Sscanf(results[0].Lat, "%f", &latitude); err != nil {
			return backoff.Permanent(err)
		}
		if _, err := fmt.Sscanf(results[0].Lon, "%f", &longitude); err != nil {
			return backoff.Permanent(err)
		}

		location = transit.NewLocation(longitude, latitude)
		return nil
	}

	err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2))
	if err != nil {
		return nil, transit.ExternalServiceError{Service: "geocoder", Err: err}
	}

	return location, nil
}
