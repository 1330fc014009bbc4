package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/yatrigo/yatrigo/pkg/datasets"
	"github.com/yatrigo/yatrigo/pkg/external"
	"github.com/yatrigo/yatrigo/pkg/itinerary"
	"github.com/yatrigo/yatrigo/pkg/session"
	"github.com/yatrigo/yatrigo/pkg/transit"
)

func testAssistant(t *testing.T) *Assistant {
	t.Helper()

	bundle, err := datasets.Load("../../data")
	if err != nil {
		t.Fatal(err)
	}

	tripAssistant := New(bundle, nil, nil, external.HaversineDirections{}, session.NewMemoryStore())
	tripAssistant.Now = func() time.Time {
		return time.Date(2026, time.August, 22, 12, 0, 0, 0, time.UTC) // saturday, off peak
	}

	return tripAssistant
}

func TestAnswerEndToEnd(t *testing.T) {
	tripAssistant := testAssistant(t)

	response, err := tripAssistant.Answer(context.Background(), &Query{
		Text:      "Hebbal to Majestic",
		SessionID: "test-session",
		UserType:  transit.UserTypeStudent,
	})
	if err != nil {
		t.Fatal(err)
	}

	if response.City != "bengaluru" {
		t.Errorf("city = %q, want bengaluru", response.City)
	}
	if response.Origin != "hebbal" || response.Destination != "majestic" {
		t.Errorf("trip = %q -> %q", response.Origin, response.Destination)
	}
	if response.View.NoOptions || len(response.View.Options) == 0 {
		t.Fatal("expected route options")
	}
	if response.Summary == "" {
		t.Error("expected a summary")
	}
	if len(response.RidePricing) == 0 {
		t.Error("expected ride pricing estimates")
	}

	foundAuto := false
	for _, option := range response.View.Options {
		if option.Mode == transit.TransportTypeAuto {
			foundAuto = true
		}
	}
	if !foundAuto {
		t.Error("auto option missing")
	}
}

func TestAnswerMetroTrip(t *testing.T) {
	tripAssistant := testAssistant(t)

	response, err := tripAssistant.Answer(context.Background(), &Query{
		Text:      "indiranagar to jayanagar",
		SessionID: "metro-session",
		UserType:  transit.UserTypeElderly,
	})
	if err != nil {
		t.Fatal(err)
	}

	foundMetro := false
	for _, option := range response.View.Options {
		if option.Mode == transit.TransportTypeMetro {
			foundMetro = true
			if option.Transfers != 1 {
				t.Errorf("metro transfers = %d, want 1 (purple to green)", option.Transfers)
			}
		}
	}
	if !foundMetro {
		t.Errorf("metro option missing, degraded: %+v", response.View.Degraded)
	}
}

func TestAnswerDetectsMumbai(t *testing.T) {
	tripAssistant := testAssistant(t)

	response, err := tripAssistant.Answer(context.Background(), &Query{
		Text:      "bandra to colaba",
		SessionID: "mumbai-session",
	})
	if err != nil {
		t.Fatal(err)
	}

	if response.City != "mumbai" {
		t.Errorf("city = %q, want mumbai", response.City)
	}

	// Mumbai has no metro dataset, the mode must degrade rather than fail.
	for _, option := range response.View.Options {
		if option.Mode == transit.TransportTypeMetro {
			t.Error("metro option should be absent in mumbai")
		}
	}
}

func TestAnswerParseError(t *testing.T) {
	tripAssistant := testAssistant(t)

	_, err := tripAssistant.Answer(context.Background(), &Query{
		Text:      "???",
		SessionID: "garbage-session",
	})

	var parseErr transit.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
}

func TestAnswerUnknownPlace(t *testing.T) {
	tripAssistant := testAssistant(t)

	_, err := tripAssistant.Answer(context.Background(), &Query{
		Text:      "hebbal to atlantis",
		SessionID: "unknown-session",
	})

	var resolutionErr transit.ResolutionError
	if !errors.As(err, &resolutionErr) {
		t.Fatalf("error = %v, want ResolutionError", err)
	}
}

func TestAnswerCurrentLocation(t *testing.T) {
	tripAssistant := testAssistant(t)

	// Without coordinates or history the origin cannot be resolved.
	_, err := tripAssistant.Answer(context.Background(), &Query{
		Text:      "take me to majestic",
		SessionID: "lost-session",
	})

	var locationErr MissingLocationError
	if !errors.As(err, &locationErr) {
		t.Fatalf("error = %v, want MissingLocationError", err)
	}

	// With device coordinates the same query works.
	latitude, longitude := 13.0358, 77.5970
	response, err := tripAssistant.Answer(context.Background(), &Query{
		Text:      "take me to majestic",
		SessionID: "located-session",
		Latitude:  &latitude,
		Longitude: &longitude,
	})
	if err != nil {
		t.Fatal(err)
	}

	if response.Origin != "your location" {
		t.Errorf("origin = %q, want your location", response.Origin)
	}
	if response.Destination != "majestic" {
		t.Errorf("destination = %q, want majestic", response.Destination)
	}
}

func TestAnswerRemembersOrigin(t *testing.T) {
	tripAssistant := testAssistant(t)
	ctx := context.Background()

	if _, err := tripAssistant.Answer(ctx, &Query{
		Text:      "hebbal to majestic",
		SessionID: "memory-session",
	}); err != nil {
		t.Fatal(err)
	}

	// A follow-up with no origin reuses the remembered one.
	response, err := tripAssistant.Answer(ctx, &Query{
		Text:      "take me to koramangala",
		SessionID: "memory-session",
	})
	if err != nil {
		t.Fatal(err)
	}

	if response.Origin != "hebbal" {
		t.Errorf("origin = %q, want remembered hebbal", response.Origin)
	}
}

func TestFollowUpRotates(t *testing.T) {
	tripAssistant := testAssistant(t)
	ctx := context.Background()

	first := tripAssistant.FollowUp(ctx, "rotate-session", transit.ParseError{Text: "???"})
	second := tripAssistant.FollowUp(ctx, "rotate-session", transit.ParseError{Text: "???"})

	if first == second {
		t.Errorf("consecutive follow-ups should differ, both %q", first)
	}
}

func TestAnswerTouristItinerary(t *testing.T) {
	tripAssistant := testAssistant(t)

	response, err := tripAssistant.Answer(context.Background(), &Query{
		Text:      "hebbal to majestic",
		SessionID: "tourist-session",
		UserType:  transit.UserTypeTourist,
		Days:      2,
	})
	if err != nil {
		t.Fatal(err)
	}

	if response.Itinerary == nil || len(response.Itinerary.Days) == 0 {
		t.Fatal("tourist query with days should include an itinerary")
	}

	// Other user types never get one, whatever they ask for.
	response, err = tripAssistant.Answer(context.Background(), &Query{
		Text:      "hebbal to majestic",
		SessionID: "student-session",
		UserType:  transit.UserTypeStudent,
		Days:      2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if response.Itinerary != nil {
		t.Error("student query should not include an itinerary")
	}
}

type stubTranslator struct{}

func (stubTranslator) Translate(_ context.Context, text string, targetLanguage string) (string, error) {
	return fmt.Sprintf("[%s] %s", targetLanguage, text), nil
}

func TestAnswerTranslatesSummary(t *testing.T) {
	tripAssistant := testAssistant(t)
	tripAssistant.Translator = stubTranslator{}

	response, err := tripAssistant.Answer(context.Background(), &Query{
		Text:      "hebbal to majestic",
		SessionID: "kannada-session",
		Language:  "kn",
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(response.Summary, "[kn] ") {
		t.Errorf("summary = %q, want it translated", response.Summary)
	}

	// English requests skip the translator entirely.
	response, err = tripAssistant.Answer(context.Background(), &Query{
		Text:      "hebbal to majestic",
		SessionID: "english-session",
		Language:  "en",
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(response.Summary, "[") {
		t.Errorf("summary = %q, want it untranslated", response.Summary)
	}
}

type failingPlanner struct{}

func (failingPlanner) Plan(context.Context, string, []*transit.Place, []string, int) (*itinerary.Itinerary, error) {
	return nil, errors.New("planner offline")
}

func TestItineraryPlannerFallback(t *testing.T) {
	tripAssistant := testAssistant(t)
	tripAssistant.Planner = failingPlanner{}

	draft := tripAssistant.Itinerary(context.Background(), "bengaluru", nil, 2)

	if draft == nil || len(draft.Days) == 0 {
		t.Fatal("planner failure should fall back to the local draft")
	}
}

func TestItineraryDraft(t *testing.T) {
	tripAssistant := testAssistant(t)

	draft := tripAssistant.Itinerary(context.Background(), "bengaluru", []string{"heritage"}, 2)

	if len(draft.Days) == 0 {
		t.Fatal("expected a drafted itinerary")
	}
	if draft.City != "bengaluru" {
		t.Errorf("city = %q, want bengaluru", draft.City)
	}
	if draft.Days[0].Places[0].Theme != "heritage" {
		t.Errorf("first place theme = %q, want heritage", draft.Days[0].Places[0].Theme)
	}
}
