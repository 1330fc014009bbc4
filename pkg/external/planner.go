package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yatrigo/yatrigo/pkg/itinerary"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

// HTTPPlanner delegates itinerary drafting to an external planning service.
// The service is optional, callers fall back to the deterministic packer.
type HTTPPlanner struct {
	Endpoint string
	APIKey   string

	httpClient *http.Client
}

func NewHTTPPlanner() itinerary.Planner {
	env := util.GetEnvironmentVariables()

	if env["YATRIGO_PLANNER_ENDPOINT"] == "" {
		return nil
	}

	return &HTTPPlanner{
		Endpoint: env["YATRIGO_PLANNER_ENDPOINT"],
		APIKey:   env["YATRIGO_PLANNER_API_KEY"],
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type plannerRequest struct {
	City   string           `json:"city"`
	Places []*transit.Place `json:"places"`
	Themes []string         `json:"themes"`
	Days   int              `json:"days"`
}

func (p *HTTPPlanner) Plan(ctx context.Context, city string, places []*transit.Place, themes []string, days int) (*itinerary.Itinerary, error) {
	body, err := json.Marshal(plannerRequest{
		City:   city,
		Places: places,
		Themes: themes,
		Days:   days,
	})
	if err != nil {
		return nil, transit.ExternalServiceError{Service: "planner", Err: err}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, transit.ExternalServiceError{Service: "planner", Err: err}
	}
	request.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.APIKey))
	}

	response, err := p.httpClient.Do(request)
	if err != nil {
		return nil, transit.ExternalServiceError{Service: "planner", Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, transit.ExternalServiceError{
			Service: "planner",
			Err:     fmt.Errorf("status %d", response.StatusCode),
		}
	}

	var draft itinerary.Itinerary
	if err := json.NewDecoder(response.Body).Decode(&draft); err != nil {
		return nil, transit.ExternalServiceError{Service: "planner", Err: err}
	}

	draft.City = city

	// The service only has to name places it was given. Anything else means
	// the draft cannot be trusted.
	var names []string
	for _, day := range draft.Days {
		for _, place := range day.Places {
			names = append(names, place.Name)
		}
	}
	if !itinerary.Validate(places, names) {
		return nil, transit.ExternalServiceError{
			Service: "planner",
			Err:     fmt.Errorf("draft names places outside the curated list"),
		}
	}

	return &draft, nil
}
