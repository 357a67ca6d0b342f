package router

import (
	"testing"

	"transitcatalog/internal/catalog"
	"transitcatalog/internal/domain"
)

func buildSimpleCatalog(t *testing.T, kind domain.RouteKind) *catalog.Catalog {
	t.Helper()
	stops := []catalog.StopInput{
		{Name: "A", Lat: 0, Lon: 0, Distances: map[string]int{"B": 600}},
		{Name: "B", Lat: 0, Lon: 0.01, Distances: map[string]int{"C": 600}},
		{Name: "C", Lat: 0, Lon: 0.02, Distances: map[string]int{}},
	}
	buses := []catalog.BusInput{{Name: "1", Stops: []string{"A", "B", "C"}, Kind: kind}}
	cat, err := catalog.Build(stops, buses)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return cat
}

func settings() domain.RouterSettings {
	return domain.RouterSettings{BusWaitTime: 5, BusVelocity: 10, PedestrianVelocity: 5}
}

func TestBuildRouteSameStopIsEmpty(t *testing.T) {
	cat := buildSimpleCatalog(t, domain.RouteTwoWay)
	r, err := Build(cat, settings())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	info, err := r.BuildRoute("A", "A")
	if err != nil {
		t.Fatalf("BuildRoute: %v", err)
	}
	if info.TotalTime != 0 || len(info.Items) != 0 {
		t.Errorf("expected empty route for same stop, got %+v", info)
	}
}

func TestBuildRouteUnknownStopNotFound(t *testing.T) {
	cat := buildSimpleCatalog(t, domain.RouteTwoWay)
	r, err := Build(cat, settings())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := r.BuildRoute("A", "Z"); err == nil {
		t.Fatal("expected not-found error for unknown stop")
	}
}

func TestBuildRouteItemsSumToTotalTime(t *testing.T) {
	cat := buildSimpleCatalog(t, domain.RouteTwoWay)
	r, err := Build(cat, settings())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	info, err := r.BuildRoute("A", "C")
	if err != nil {
		t.Fatalf("BuildRoute: %v", err)
	}
	sum := 0.0
	for _, it := range info.Items {
		sum += it.Time
	}
	if diff := sum - info.TotalTime; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("items sum to %v, want %v", sum, info.TotalTime)
	}
	if info.TotalTime < float64(settings().BusWaitTime) {
		t.Errorf("TotalTime %v should be at least one wait time", info.TotalTime)
	}
}

func TestTwoWayBusAllowsReverseTravel(t *testing.T) {
	cat := buildSimpleCatalog(t, domain.RouteTwoWay)
	r, err := Build(cat, settings())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := r.BuildRoute("C", "A"); err != nil {
		t.Errorf("expected reverse travel to be reachable on a TWOWAY bus: %v", err)
	}
}

func TestRoundBusDoesNotAllowReverseTravel(t *testing.T) {
	cat := buildSimpleCatalog(t, domain.RouteRound)
	r, err := Build(cat, settings())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := r.BuildRoute("C", "A"); err == nil {
		t.Error("expected reverse travel to be unreachable on a ROUND bus with no return edge")
	}
}

func TestBuildRouteToCompanyAppendsWalk(t *testing.T) {
	cat := buildSimpleCatalog(t, domain.RouteTwoWay)
	r, err := Build(cat, settings())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	info, err := r.BuildRouteToCompany("A", "A", 100)
	if err != nil {
		t.Fatalf("BuildRouteToCompany: %v", err)
	}
	if len(info.Items) != 1 || info.Items[0].Type != domain.ItemWalk {
		t.Fatalf("expected a single walk item, got %+v", info.Items)
	}
	if info.TotalTime != 100.0/settings().PedestrianVelocity {
		t.Errorf("TotalTime = %v, want %v", info.TotalTime, 100.0/settings().PedestrianVelocity)
	}
}

func TestDirectEdgesRoundTripThroughBuildFromEdges(t *testing.T) {
	cat := buildSimpleCatalog(t, domain.RouteTwoWay)
	r, err := Build(cat, settings())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	edges := r.DirectEdges()
	if len(edges) == 0 {
		t.Fatal("expected at least one direct edge")
	}

	r2 := BuildFromEdges(r.StopNames(), settings(), edges)
	info1, err1 := r.BuildRoute("A", "C")
	info2, err2 := r2.BuildRoute("A", "C")
	if err1 != nil || err2 != nil {
		t.Fatalf("BuildRoute errors: %v, %v", err1, err2)
	}
	if info1.TotalTime != info2.TotalTime {
		t.Errorf("rebuilt router gives different total_time: %v vs %v", info2.TotalTime, info1.TotalTime)
	}
}
