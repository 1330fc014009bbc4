package pricing

import (
	"strings"
	"testing"
	"time"
)

func TestSurgeRule(t *testing.T) {
	program, err := CompileSurgeRule("peak ? 1.5 : 1.0")
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, time.August, 25, 8, 30, 0, 0, time.UTC)

	if surge := Surge(program, now, true); surge != 1.5 {
		t.Errorf("peak surge = %v, want 1.5", surge)
	}
	if surge := Surge(program, now, false); surge != 1.0 {
		t.Errorf("off-peak surge = %v, want 1.0", surge)
	}
}

func TestSurgeHourRule(t *testing.T) {
	program, err := CompileSurgeRule("hour >= 22 ? 1.2 : 1.0")
	if err != nil {
		t.Fatal(err)
	}

	lateNight := time.Date(2026, time.August, 25, 23, 0, 0, 0, time.UTC)
	midday := time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)

	if surge := Surge(program, lateNight, false); surge != 1.2 {
		t.Errorf("late night surge = %v, want 1.2", surge)
	}
	if surge := Surge(program, midday, false); surge != 1.0 {
		t.Errorf("midday surge = %v, want 1.0", surge)
	}
}

func TestSurgeNilProgram(t *testing.T) {
	if surge := Surge(nil, time.Now(), true); surge != 1.0 {
		t.Errorf("nil program surge = %v, want 1.0", surge)
	}
}

func TestCompileSurgeRuleRejectsBadExpression(t *testing.T) {
	if _, err := CompileSurgeRule("pea k ?"); err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestEstimates(t *testing.T) {
	estimates := Estimates("Hebbal", "Majestic", 8.0, 1.0)

	if len(estimates) != len(Services) {
		t.Fatalf("estimate count = %d, want %d", len(estimates), len(Services))
	}

	for _, estimate := range estimates {
		if estimate.Price <= 0 {
			t.Errorf("%s price = %v, want positive", estimate.Service, estimate.Price)
		}
		if estimate.MinPrice > estimate.Price || estimate.Price > estimate.MaxPrice {
			t.Errorf("%s price %v outside band [%v, %v]",
				estimate.Service, estimate.Price, estimate.MinPrice, estimate.MaxPrice)
		}
	}
}

func TestEstimatesSurge(t *testing.T) {
	base := Estimates("a", "b", 10.0, 1.0)
	surged := Estimates("a", "b", 10.0, 1.5)

	for i := range base {
		if surged[i].Price <= base[i].Price {
			t.Errorf("%s surged price %v not above base %v",
				base[i].Service, surged[i].Price, base[i].Price)
		}
	}
}

func TestDeepLinks(t *testing.T) {
	link := DeepLink("namma_yatri_auto", "MG Road", "Hebbal")

	if !strings.HasPrefix(link, "https://nammayatri.in/") {
		t.Errorf("unexpected link %q", link)
	}
	if !strings.Contains(link, "MG+Road") {
		t.Errorf("origin not escaped into link: %q", link)
	}

	if DeepLink("unknown_service", "a", "b") != "" {
		t.Error("unknown service should produce an empty link")
	}
}
