package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/yatrigo/yatrigo/pkg/transit"
)

func testAliases() []*transit.Alias {
	return []*transit.Alias{
		{Name: "majestic", Location: transit.NewLocation(77.5716, 12.9767), Keywords: []string{"kbs", "kempegowda bus station"}},
		{Name: "hebbal", Location: transit.NewLocation(77.5970, 13.0358), Keywords: []string{"hebbala"}},
		{Name: "hsr layout", Location: transit.NewLocation(77.6446, 12.9121), Keywords: []string{"hsr"}},
	}
}

type stubGeocoder struct {
	calls int
}

func (g *stubGeocoder) Geocode(_ context.Context, name string, _ string) (*transit.Location, error) {
	g.calls++
	if name == "cubbon park" {
		return transit.NewLocation(77.5933, 12.9763), nil
	}
	return nil, errors.New("unknown place")
}

func TestResolveExactAlias(t *testing.T) {
	r := NewResolver("bengaluru", testAliases(), nil)

	resolved, err := r.Resolve(context.Background(), "Majestic")
	if err != nil {
		t.Fatal(err)
	}

	if resolved.Name != "majestic" || resolved.Source != "alias" {
		t.Errorf("got %+v, want alias majestic", resolved)
	}
}

func TestResolveKeyword(t *testing.T) {
	r := NewResolver("bengaluru", testAliases(), nil)

	resolved, err := r.Resolve(context.Background(), "KBS")
	if err != nil {
		t.Fatal(err)
	}

	if resolved.Name != "majestic" || resolved.Source != "keyword" {
		t.Errorf("got %+v, want keyword majestic", resolved)
	}
}

func TestResolveContains(t *testing.T) {
	r := NewResolver("bengaluru", testAliases(), nil)

	resolved, err := r.Resolve(context.Background(), "majestic bus stand")
	if err != nil {
		t.Fatal(err)
	}

	if resolved.Name != "majestic" || resolved.Source != "contains" {
		t.Errorf("got %+v, want contains majestic", resolved)
	}
}

func TestResolveContainsMinLength(t *testing.T) {
	// "heb" is a prefix of hebbal but is too short for substring matching.
	r := NewResolver("bengaluru", testAliases(), nil)

	_, err := r.Resolve(context.Background(), "heb")

	var resolutionErr transit.ResolutionError
	if !errors.As(err, &resolutionErr) {
		t.Fatalf("error = %v, want ResolutionError", err)
	}
}

func TestResolveGeocoderFallback(t *testing.T) {
	geocoder := &stubGeocoder{}
	r := NewResolver("bengaluru", testAliases(), geocoder)

	resolved, err := r.Resolve(context.Background(), "Cubbon Park")
	if err != nil {
		t.Fatal(err)
	}

	if resolved.Source != "geocoder" {
		t.Errorf("source = %q, want geocoder", resolved.Source)
	}
	if geocoder.calls != 1 {
		t.Errorf("geocoder calls = %d, want 1", geocoder.calls)
	}
}

func TestResolveUnknown(t *testing.T) {
	r := NewResolver("bengaluru", testAliases(), &stubGeocoder{})

	_, err := r.Resolve(context.Background(), "atlantis")

	var resolutionErr transit.ResolutionError
	if !errors.As(err, &resolutionErr) {
		t.Fatalf("error = %v, want ResolutionError", err)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	r := NewResolver("bengaluru", testAliases(), nil)

	first, err := r.Resolve(context.Background(), "hebbal")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		again, err := r.Resolve(context.Background(), "hebbal")
		if err != nil {
			t.Fatal(err)
		}
		if again.Name != first.Name || again.Source != first.Source {
			t.Fatalf("resolve #%d = %+v, want %+v", i, again, first)
		}
	}
}

func TestNearestAlias(t *testing.T) {
	r := NewResolver("bengaluru", testAliases(), nil)

	nearHebbal := transit.NewLocation(77.5960, 13.0340)

	alias, found := r.NearestAlias(nearHebbal, 2.0)
	if !found {
		t.Fatal("expected a nearby alias")
	}
	if alias.Name != "hebbal" {
		t.Errorf("nearest = %q, want hebbal", alias.Name)
	}

	farAway := transit.NewLocation(78.5, 14.0)
	if _, found := r.NearestAlias(farAway, 2.0); found {
		t.Error("expected no alias near a far away point")
	}
}
