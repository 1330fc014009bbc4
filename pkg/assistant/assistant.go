package assistant

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yatrigo/yatrigo/pkg/composer"
	"github.com/yatrigo/yatrigo/pkg/datasets"
	"github.com/yatrigo/yatrigo/pkg/external"
	"github.com/yatrigo/yatrigo/pkg/history"
	"github.com/yatrigo/yatrigo/pkg/intent"
	"github.com/yatrigo/yatrigo/pkg/itinerary"
	"github.com/yatrigo/yatrigo/pkg/pricing"
	"github.com/yatrigo/yatrigo/pkg/ranker"
	"github.com/yatrigo/yatrigo/pkg/resolver"
	"github.com/yatrigo/yatrigo/pkg/session"
	"github.com/yatrigo/yatrigo/pkg/traffic"
	"github.com/yatrigo/yatrigo/pkg/transit"
)

// MissingLocationError means the query needs the user's position and neither
// coordinates nor a remembered origin were available.
type MissingLocationError struct{}

func (MissingLocationError) Error() string {
	return "a starting location is required"
}

// Query is one free-text trip question plus the context around it.
type Query struct {
	Text      string           `json:"text" validate:"required,max=500"`
	SessionID string           `json:"session_id"`
	UserType  transit.UserType `json:"user_type" validate:"omitempty,oneof=student elderly tourist"`
	City      string           `json:"city"`
	Language  string           `json:"language" validate:"omitempty,bcp47_language_tag"`

	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`

	// Days asks for a sightseeing itinerary alongside the trip plan. Only
	// honoured for tourists.
	Days int `json:"days" validate:"omitempty,min=1,max=5"`
}

// Response is the full answer to a query.
type Response struct {
	City        string  `groups:"basic"`
	Origin      string  `groups:"basic"`
	Destination string  `groups:"basic"`
	Confidence  float64 `groups:"detailed"`

	Summary string `groups:"basic"`

	View *ranker.View `groups:"basic"`

	RidePricing []pricing.Estimate `groups:"basic"`

	Itinerary *itinerary.Itinerary `groups:"basic"`
}

// Assistant wires the whole pipeline together: parse, resolve, compose, rank
// and remember. Safe for concurrent use once constructed.
type Assistant struct {
	Bundle     *datasets.Bundle
	Traffic    traffic.Provider
	Directions external.WalkingDirections
	Sessions   session.Store
	History    *history.Publisher
	Translator external.Translator
	Planner    itinerary.Planner

	resolvers    map[string]*resolver.Resolver
	cityKeywords intent.CityKeywords

	// Now is swappable for tests. Nil means time.Now.
	Now func() time.Time
}

func New(bundle *datasets.Bundle, geocoder resolver.Geocoder, trafficProvider traffic.Provider, directions external.WalkingDirections, sessions session.Store) *Assistant {
	assistant := &Assistant{
		Bundle:     bundle,
		Traffic:    trafficProvider,
		Directions: directions,
		Sessions:   sessions,

		resolvers:    map[string]*resolver.Resolver{},
		cityKeywords: intent.CityKeywords{},
	}

	for _, key := range bundle.CityKeys() {
		city := bundle.Cities[key]
		assistant.resolvers[key] = resolver.NewResolver(key, city.Aliases, geocoder)
		assistant.cityKeywords[key] = city.Keywords
	}

	return assistant
}

// Answer runs the full pipeline for one query. Parse and resolution failures
// come back as typed errors so the caller can ask a follow-up question.
func (a *Assistant) Answer(ctx context.Context, query *Query) (*Response, error) {
	state := a.sessionState(ctx, query.SessionID)

	cityKey := a.pickCity(query, state)
	city := a.Bundle.City(cityKey)
	cityResolver := a.resolvers[city.Key]

	parsed, err := intent.Parse(query.Text)
	if err != nil {
		return nil, err
	}
	parsed.City = city.Key

	origin, err := a.resolveOrigin(ctx, cityResolver, parsed, query, state)
	if err != nil {
		return nil, err
	}

	destination, err := cityResolver.Resolve(ctx, parsed.Destination)
	if err != nil {
		return nil, err
	}

	tripComposer := &composer.Composer{
		City:       city,
		Traffic:    a.Traffic,
		Directions: a.Directions,
		Resolver:   cityResolver,
		Now:        a.Now,
	}

	result := tripComposer.Compose(ctx, origin.Name, origin.Location, destination.Name, destination.Location)

	userType := query.UserType
	if userType == "" {
		userType = transit.UserTypeStudent
	}

	view := ranker.Rank(userType, result, !result.Peak)

	response := &Response{
		City:        city.Key,
		Origin:      origin.Name,
		Destination: destination.Name,
		Confidence:  parsed.Confidence,
		Summary:     Summarise(view, origin.Name, destination.Name),
		View:        view,
		RidePricing: pricing.Estimates(origin.Name, destination.Name, result.DistanceKm, result.Surge),
	}

	if userType == transit.UserTypeTourist && query.Days > 0 {
		response.Itinerary = a.Itinerary(ctx, city.Key, nil, query.Days)
	}

	response.Summary = a.translate(ctx, response.Summary, query.Language)

	a.remember(ctx, query, state, city.Key, response, view)

	return response, nil
}

// translate renders the summary in the requested language. Translation is
// best effort, any failure keeps the English text.
func (a *Assistant) translate(ctx context.Context, summary string, language string) string {
	if a.Translator == nil || language == "" || language == "en" {
		return summary
	}

	translated, err := a.Translator.Translate(ctx, summary, language)
	if err != nil {
		log.Debug().Err(err).Str("language", language).Msg("Failed to translate summary")
		return summary
	}

	return translated
}

// FollowUp turns a pipeline error into the next clarifying question for the
// session, advancing its rotation.
func (a *Assistant) FollowUp(ctx context.Context, sessionID string, pipelineErr error) string {
	state := a.sessionState(ctx, sessionID)

	question := FollowUpQuestion(state, pipelineErr)

	if err := a.Sessions.Set(ctx, sessionID, state); err != nil {
		log.Debug().Err(err).Msg("Failed to store session")
	}

	return question
}

// Itinerary drafts a multi-day sightseeing plan from the city's curated
// places, preferring the external planner when one is configured.
func (a *Assistant) Itinerary(ctx context.Context, cityKey string, themes []string, days int) *itinerary.Itinerary {
	city := a.Bundle.City(cityKey)

	if a.Planner != nil {
		draft, err := a.Planner.Plan(ctx, city.Key, city.Places, themes, days)
		if err == nil {
			return draft
		}
		log.Debug().Err(err).Msg("Itinerary planner failed, drafting locally")
	}

	return itinerary.Draft(city.Key, city.Places, themes, days)
}

func (a *Assistant) sessionState(ctx context.Context, sessionID string) *session.State {
	state, err := a.Sessions.Get(ctx, sessionID)
	if err != nil || state == nil {
		return &session.State{}
	}
	return state
}

// pickCity prefers an explicit city, then text keywords, then the city the
// session last used, then the configured default.
func (a *Assistant) pickCity(query *Query, state *session.State) string {
	if query.City != "" && a.Bundle.Cities[query.City] != nil {
		return query.City
	}

	fallback := a.Bundle.DefaultCity
	if state.LastCity != "" && a.Bundle.Cities[state.LastCity] != nil {
		fallback = state.LastCity
	}

	return intent.DetectCity(query.Text, a.cityKeywords, fallback)
}

func (a *Assistant) resolveOrigin(ctx context.Context, cityResolver *resolver.Resolver, parsed *transit.Intent, query *Query, state *session.State) (*resolver.Resolved, error) {
	if !parsed.OriginIsCurrentLocation() {
		return cityResolver.Resolve(ctx, parsed.Origin)
	}

	if query.Latitude != nil && query.Longitude != nil {
		return &resolver.Resolved{
			Name:     "your location",
			Location: transit.NewLocation(*query.Longitude, *query.Latitude),
			Source:   "device",
		}, nil
	}

	if state.LastOrigin != "" {
		return cityResolver.Resolve(ctx, state.LastOrigin)
	}

	return nil, MissingLocationError{}
}

func (a *Assistant) remember(ctx context.Context, query *Query, state *session.State, cityKey string, response *Response, view *ranker.View) {
	state.LastOrigin = response.Origin
	state.LastDestination = response.Destination
	state.LastCity = cityKey
	state.LastOptions = view.Options

	if err := a.Sessions.Set(ctx, query.SessionID, state); err != nil {
		log.Debug().Err(err).Msg("Failed to store session")
	}

	if a.History == nil {
		return
	}

	record := &history.TripRecord{
		SessionID:        query.SessionID,
		City:             cityKey,
		Origin:           response.Origin,
		Destination:      response.Destination,
		UserType:         view.UserType,
		QueryText:        query.Text,
		OptionCount:      len(view.Options),
		CreationDateTime: time.Now(),
	}
	if view.Cheapest != nil {
		record.CheapestFare = view.Cheapest.Cost
	}

	a.History.Publish(record)
}
