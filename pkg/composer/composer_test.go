package composer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/expr-lang/expr/vm"
	"github.com/yatrigo/yatrigo/pkg/datasets"
	"github.com/yatrigo/yatrigo/pkg/pricing"
	"github.com/yatrigo/yatrigo/pkg/resolver"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/transitgraph"
)

func compileTestSurge() (*vm.Program, error) {
	return pricing.CompileSurgeRule("peak ? 1.5 : 1.0")
}

// offPeakSaturday keeps peak detection and time-of-day traffic out of the
// picture.
var offPeakSaturday = time.Date(2026, time.August, 22, 12, 0, 0, 0, time.UTC)

func testCity(t *testing.T) *datasets.CityData {
	t.Helper()

	stops := []*transit.Stop{
		{PrimaryIdentifier: "S-MAJ", PrimaryName: "Central Station", Location: transit.NewLocation(77.5716, 12.9767), Routes: []string{"500D", "201"}},
		{PrimaryIdentifier: "S-HEB", PrimaryName: "North Stop", Location: transit.NewLocation(77.5970, 13.0358), Routes: []string{"500D", "290"}},
		{PrimaryIdentifier: "S-KOR", PrimaryName: "South Stop", Location: transit.NewLocation(77.6245, 12.9352), Routes: []string{"171"}},
	}

	lines := []*transit.MetroLine{
		{
			Identifier: "purple",
			Name:       "Purple",
			FareRule:   transit.MetroFareRule{BaseFare: 10, PerStation: 5, MaxFare: 60},
			Stations: []*transit.MetroStation{
				{PrimaryIdentifier: "P1", PrimaryName: "Hub", Location: transit.NewLocation(77.5729, 12.9757), Interchanges: []string{"green"}},
				{PrimaryIdentifier: "P2", PrimaryName: "East One", Location: transit.NewLocation(77.6070, 12.9756)},
				{PrimaryIdentifier: "P3", PrimaryName: "East Two", Location: transit.NewLocation(77.6387, 12.9784)},
			},
		},
		{
			Identifier: "green",
			Name:       "Green",
			FareRule:   transit.MetroFareRule{BaseFare: 10, PerStation: 5, MaxFare: 60},
			Stations: []*transit.MetroStation{
				{PrimaryIdentifier: "G1", PrimaryName: "Hub", Location: transit.NewLocation(77.5729, 12.9757), Interchanges: []string{"purple"}},
				{PrimaryIdentifier: "G2", PrimaryName: "South One", Location: transit.NewLocation(77.5800, 12.9250)},
			},
		},
	}

	graph, err := transitgraph.NewGraph("testcity", stops, lines)
	if err != nil {
		t.Fatal(err)
	}

	return &datasets.CityData{
		Key:  "testcity",
		Name: "Test City",

		PeakWindows: []datasets.PeakWindow{{StartHour: 7, EndHour: 10}, {StartHour: 17, EndHour: 20}},

		BusFares:  transit.BusFareModel{BaseFare: 5, PerKm: 1.5, MinimumFare: 5, SpeedKmh: 15, WaitMinutes: 10},
		AutoFares: transit.VehicleFareModel{BaseFare: 30, PerKm: 15, SpeedKmh: 25, PickupMinutes: 5},
		TaxiFares: transit.VehicleFareModel{BaseFare: 50, PerKm: 15, SpeedKmh: 25, PickupMinutes: 5, AC: true},

		Corridors: []*transit.CorridorFallback{
			{Areas: []string{"north stop", "south stop"}, Routes: []string{"KIAS-9"}},
		},

		Graph: transitgraph.NewHolder(graph),
	}
}

func testComposer(t *testing.T) *Composer {
	city := testCity(t)

	aliases := []*transit.Alias{
		{Name: "north stop", Location: transit.NewLocation(77.5970, 13.0358)},
		{Name: "south stop", Location: transit.NewLocation(77.6245, 12.9352)},
	}

	return &Composer{
		City:     city,
		Resolver: resolver.NewResolver("testcity", aliases, nil),
		Now:      func() time.Time { return offPeakSaturday },
	}
}

func optionByMode(result *Result, mode transit.TransportType) *transit.RouteOption {
	for _, option := range result.Options {
		if option.Mode == mode {
			return option
		}
	}
	return nil
}

func degradedByMode(result *Result, mode transit.TransportType) *DegradedMode {
	for _, degraded := range result.Degraded {
		if degraded.Mode == mode {
			return &degraded
		}
	}
	return nil
}

func TestAutoAndTaxiAlwaysPresent(t *testing.T) {
	c := testComposer(t)

	origin := transit.NewLocation(77.5716, 12.9767)
	destination := transit.NewLocation(77.5970, 13.0358)

	result := c.Compose(context.Background(), "central", origin, "north", destination)

	if optionByMode(result, transit.TransportTypeAuto) == nil {
		t.Error("auto option missing")
	}
	if optionByMode(result, transit.TransportTypeTaxi) == nil {
		t.Error("taxi option missing")
	}
	if result.NoOptions {
		t.Error("NoOptions should be false when options exist")
	}
}

func TestZeroDistanceVehicle(t *testing.T) {
	c := testComposer(t)

	here := transit.NewLocation(77.5716, 12.9767)

	result := c.Compose(context.Background(), "here", here, "here", here)

	auto := optionByMode(result, transit.TransportTypeAuto)
	if auto == nil {
		t.Fatal("auto option missing")
	}

	if auto.Cost != c.City.AutoFares.BaseFare {
		t.Errorf("cost = %v, want base fare %v", auto.Cost, c.City.AutoFares.BaseFare)
	}
	if auto.TimeMinutes != c.City.AutoFares.PickupMinutes {
		t.Errorf("time = %v, want pickup wait %v", auto.TimeMinutes, c.City.AutoFares.PickupMinutes)
	}
}

func TestWalkOnlyForShortTrips(t *testing.T) {
	c := testComposer(t)

	origin := transit.NewLocation(77.5716, 12.9767)
	near := transit.NewLocation(77.5760, 12.9780) // a few hundred metres
	far := transit.NewLocation(77.5970, 13.0358)  // several kilometres

	shortTrip := c.Compose(context.Background(), "a", origin, "b", near)
	if walk := optionByMode(shortTrip, transit.TransportTypeWalk); walk == nil {
		t.Error("walk option missing for a short trip")
	} else {
		if walk.Cost != 0 {
			t.Errorf("walk cost = %v, want 0", walk.Cost)
		}
		if walk.TimeMinutes < 1 {
			t.Errorf("walk time = %v, want >= 1", walk.TimeMinutes)
		}
	}

	longTrip := c.Compose(context.Background(), "a", origin, "b", far)
	if optionByMode(longTrip, transit.TransportTypeWalk) != nil {
		t.Error("walk option should be omitted for a long trip")
	}
}

func TestBusDirectRoute(t *testing.T) {
	c := testComposer(t)

	origin := transit.NewLocation(77.5716, 12.9767)      // near S-MAJ
	destination := transit.NewLocation(77.5970, 13.0358) // near S-HEB

	result := c.Compose(context.Background(), "central", origin, "north", destination)

	bus := optionByMode(result, transit.TransportTypeBus)
	if bus == nil {
		t.Fatalf("bus option missing, degraded: %+v", result.Degraded)
	}

	if bus.RouteIdentifier != "500D" {
		t.Errorf("route = %q, want 500D", bus.RouteIdentifier)
	}
	if bus.Cost < c.City.BusFares.MinimumFare {
		t.Errorf("cost = %v, below minimum fare", bus.Cost)
	}
	if bus.DoorToDoor {
		t.Error("bus should not be door to door")
	}
}

func TestBusCorridorFallback(t *testing.T) {
	c := testComposer(t)

	// S-HEB and S-KOR share no route, but a corridor connects their areas.
	origin := transit.NewLocation(77.5970, 13.0358)
	destination := transit.NewLocation(77.6245, 12.9352)

	result := c.Compose(context.Background(), "north", origin, "south", destination)

	bus := optionByMode(result, transit.TransportTypeBus)
	if bus == nil {
		t.Fatalf("bus option missing, degraded: %+v", result.Degraded)
	}

	if bus.RouteIdentifier != "KIAS-9" {
		t.Errorf("route = %q, want corridor route KIAS-9", bus.RouteIdentifier)
	}
}

func testCityWithStops(t *testing.T, stops []*transit.Stop) *datasets.CityData {
	t.Helper()

	graph, err := transitgraph.NewGraph("testcity", stops, nil)
	if err != nil {
		t.Fatal(err)
	}

	return &datasets.CityData{
		Key:  "testcity",
		Name: "Test City",

		BusFares:  transit.BusFareModel{BaseFare: 5, PerKm: 1.5, MinimumFare: 5, SpeedKmh: 15, WaitMinutes: 10},
		AutoFares: transit.VehicleFareModel{BaseFare: 30, PerKm: 15, SpeedKmh: 25, PickupMinutes: 5},
		TaxiFares: transit.VehicleFareModel{BaseFare: 50, PerKm: 15, SpeedKmh: 25, PickupMinutes: 5, AC: true},

		Graph: transitgraph.NewHolder(graph),
	}
}

func TestBusBoardsStopServingChosenRoute(t *testing.T) {
	// The stop nearest the origin does not serve the only route shared with
	// the destination. Boarding must move to the stop that does.
	city := testCityWithStops(t, []*transit.Stop{
		{PrimaryIdentifier: "BW-1", PrimaryName: "Wrong Stop", Location: transit.NewLocation(77.5000, 12.9510), Routes: []string{"9X"}},
		{PrimaryIdentifier: "BW-2", PrimaryName: "Right Stop", Location: transit.NewLocation(77.5000, 12.9530), Routes: []string{"9R"}},
		{PrimaryIdentifier: "BW-3", PrimaryName: "Far End", Location: transit.NewLocation(77.5000, 12.9905), Routes: []string{"9R"}},
	})
	c := &Composer{City: city, Now: func() time.Time { return offPeakSaturday }}

	origin := transit.NewLocation(77.5000, 12.9500)
	destination := transit.NewLocation(77.5000, 12.9900)

	result := c.Compose(context.Background(), "start", origin, "end", destination)

	bus := optionByMode(result, transit.TransportTypeBus)
	if bus == nil {
		t.Fatalf("bus option missing, degraded: %+v", result.Degraded)
	}

	if bus.RouteIdentifier != "9R" {
		t.Fatalf("route = %q, want 9R", bus.RouteIdentifier)
	}
	if !strings.Contains(bus.Steps[0], "Right Stop") {
		t.Errorf("boarding step = %q, want boarding at Right Stop", bus.Steps[0])
	}
}

func TestBusPicksQuickestCommonRoute(t *testing.T) {
	// Both routes connect the clusters. Route 100 sorts first but strands
	// the rider much further from the destination, 200 wins on total time.
	city := testCityWithStops(t, []*transit.Stop{
		{PrimaryIdentifier: "Q-O", PrimaryName: "Shared Origin", Location: transit.NewLocation(77.6000, 13.0010), Routes: []string{"100", "200"}},
		{PrimaryIdentifier: "Q-DF", PrimaryName: "Far Alight", Location: transit.NewLocation(77.6000, 13.0230), Routes: []string{"100"}},
		{PrimaryIdentifier: "Q-DN", PrimaryName: "Near Alight", Location: transit.NewLocation(77.6000, 13.0301), Routes: []string{"200"}},
	})
	c := &Composer{City: city, Now: func() time.Time { return offPeakSaturday }}

	origin := transit.NewLocation(77.6000, 13.0000)
	destination := transit.NewLocation(77.6000, 13.0400)

	result := c.Compose(context.Background(), "start", origin, "end", destination)

	bus := optionByMode(result, transit.TransportTypeBus)
	if bus == nil {
		t.Fatalf("bus option missing, degraded: %+v", result.Degraded)
	}

	if bus.RouteIdentifier != "200" {
		t.Errorf("route = %q, want the quicker 200", bus.RouteIdentifier)
	}
	if !strings.Contains(bus.Steps[1], "Near Alight") {
		t.Errorf("ride step = %q, want alighting at Near Alight", bus.Steps[1])
	}
}

func TestVehicleTimePositiveWithoutPickupWait(t *testing.T) {
	c := testComposer(t)
	c.City.AutoFares.PickupMinutes = 0

	here := transit.NewLocation(77.5716, 12.9767)

	result := c.Compose(context.Background(), "here", here, "here", here)

	auto := optionByMode(result, transit.TransportTypeAuto)
	if auto == nil {
		t.Fatal("auto option missing")
	}
	if auto.TimeMinutes < 1 {
		t.Errorf("time = %d, want at least 1", auto.TimeMinutes)
	}
}

func TestBusDegradesWithoutStops(t *testing.T) {
	c := testComposer(t)

	origin := transit.NewLocation(77.40, 12.80) // nowhere near any stop
	destination := transit.NewLocation(77.5970, 13.0358)

	result := c.Compose(context.Background(), "nowhere", origin, "north", destination)

	if optionByMode(result, transit.TransportTypeBus) != nil {
		t.Error("bus option should be absent")
	}
	if degradedByMode(result, transit.TransportTypeBus) == nil {
		t.Error("bus should be reported as degraded")
	}
}

func TestMetroSameLine(t *testing.T) {
	c := testComposer(t)

	origin := transit.NewLocation(77.6070, 12.9756)      // at P2
	destination := transit.NewLocation(77.6387, 12.9784) // at P3

	result := c.Compose(context.Background(), "east one", origin, "east two", destination)

	metro := optionByMode(result, transit.TransportTypeMetro)
	if metro == nil {
		t.Fatalf("metro option missing, degraded: %+v", result.Degraded)
	}

	if metro.Transfers != 0 {
		t.Errorf("transfers = %d, want 0", metro.Transfers)
	}
	// One station hop: base 10 + 1*5.
	if metro.Cost != 15 {
		t.Errorf("cost = %v, want 15", metro.Cost)
	}
	if !metro.AC {
		t.Error("metro should count as AC")
	}
}

func TestMetroInterchange(t *testing.T) {
	c := testComposer(t)

	origin := transit.NewLocation(77.6387, 12.9784)      // P3 on purple
	destination := transit.NewLocation(77.5800, 12.9250) // G2 on green

	result := c.Compose(context.Background(), "east", origin, "south", destination)

	metro := optionByMode(result, transit.TransportTypeMetro)
	if metro == nil {
		t.Fatalf("metro option missing, degraded: %+v", result.Degraded)
	}

	if metro.Transfers != 1 {
		t.Errorf("transfers = %d, want 1", metro.Transfers)
	}
	// Two stops on purple plus one on green: base 10 + 3*5.
	if metro.Cost != 25 {
		t.Errorf("cost = %v, want 25", metro.Cost)
	}
}

func TestModeOrderingIsStable(t *testing.T) {
	c := testComposer(t)

	origin := transit.NewLocation(77.5716, 12.9767)
	destination := transit.NewLocation(77.5970, 13.0358)

	first := c.Compose(context.Background(), "central", origin, "north", destination)

	for i := 0; i < 5; i++ {
		again := c.Compose(context.Background(), "central", origin, "north", destination)

		if len(again.Options) != len(first.Options) {
			t.Fatalf("option count changed between runs")
		}
		for j := range first.Options {
			if again.Options[j].Mode != first.Options[j].Mode {
				t.Fatalf("mode order changed between runs")
			}
		}
	}
}

func TestSurgeAppliesAtPeak(t *testing.T) {
	c := testComposer(t)

	program, err := compileTestSurge()
	if err != nil {
		t.Fatal(err)
	}
	c.City.SurgeProgram = program

	// Tuesday 08:30, inside the morning peak window.
	c.Now = func() time.Time { return time.Date(2026, time.August, 25, 8, 30, 0, 0, time.UTC) }

	origin := transit.NewLocation(77.5716, 12.9767)
	destination := transit.NewLocation(77.5970, 13.0358)

	result := c.Compose(context.Background(), "central", origin, "north", destination)

	if !result.Peak {
		t.Fatal("expected peak to be detected")
	}
	if result.Surge != 1.5 {
		t.Errorf("surge = %v, want 1.5", result.Surge)
	}
}
