package catalog

import (
	"testing"

	"transitcatalog/internal/domain"
)

func threeStops() []StopInput {
	return []StopInput{
		{Name: "A", Lat: 0, Lon: 0, Distances: map[string]int{"B": 100}},
		{Name: "B", Lat: 0, Lon: 0.001, Distances: map[string]int{"C": 200}},
		{Name: "C", Lat: 0, Lon: 0.002, Distances: map[string]int{"B": 250}},
	}
}

func TestBuildRoundRoute(t *testing.T) {
	stops := threeStops()
	buses := []BusInput{{Name: "1", Stops: []string{"A", "B", "C", "A"}, Kind: domain.RouteRound}}
	// A round route needs a distance back from C to A too.
	stops[2].Distances["A"] = 300

	cat, err := Build(stops, buses)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	bus := cat.Buses["1"]
	if bus.StopCount != 4 {
		t.Errorf("StopCount = %d, want 4", bus.StopCount)
	}
	if bus.UniqueStopCount != 3 {
		t.Errorf("UniqueStopCount = %d, want 3", bus.UniqueStopCount)
	}
	if bus.RoadLength != 100+200+300 {
		t.Errorf("RoadLength = %d, want %d", bus.RoadLength, 600)
	}
}

func TestBuildTwoWayRouteUsesIndependentReverseDistance(t *testing.T) {
	stops := threeStops()
	buses := []BusInput{{Name: "2", Stops: []string{"A", "B", "C"}, Kind: domain.RouteTwoWay}}

	cat, err := Build(stops, buses)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	bus := cat.Buses["2"]
	if bus.StopCount != 5 {
		t.Errorf("StopCount = %d, want 5 (2*3-1)", bus.StopCount)
	}
	// forward: A->B(100) + B->C(200) = 300
	// reverse: C->B(250) + B->A(100, symmetric fallback since B->A missing) = 350
	wantRoad := (100 + 200) + (250 + 100)
	if bus.RoadLength != wantRoad {
		t.Errorf("RoadLength = %d, want %d", bus.RoadLength, wantRoad)
	}
}

func TestBuildUnknownStopIsBuildError(t *testing.T) {
	stops := threeStops()
	buses := []BusInput{{Name: "3", Stops: []string{"A", "Z"}, Kind: domain.RouteRound}}

	_, err := Build(stops, buses)
	if err == nil {
		t.Fatal("expected error for unknown stop reference")
	}
}

func TestStopToBusesAndNeighboursAreSorted(t *testing.T) {
	stops := threeStops()
	buses := []BusInput{
		{Name: "2", Stops: []string{"A", "B"}, Kind: domain.RouteTwoWay},
		{Name: "1", Stops: []string{"A", "B"}, Kind: domain.RouteTwoWay},
	}
	cat, err := Build(stops, buses)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := cat.StopToBuses["A"]
	if len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("StopToBuses[A] = %v, want [1 2]", got)
	}
	if !cat.StopNeighbours["A"]["B"] || !cat.StopNeighbours["B"]["A"] {
		t.Errorf("expected A and B to be mutual neighbours")
	}
}
