package query

import (
	"strings"
	"testing"

	"transitcatalog/internal/catalog"
	"transitcatalog/internal/domain"
	"transitcatalog/internal/render"
	"transitcatalog/internal/request"
	"transitcatalog/internal/router"
	"transitcatalog/internal/yellowpages"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	stops := []catalog.StopInput{
		{Name: "A", Lat: 0, Lon: 0, Distances: map[string]int{"B": 500}},
		{Name: "B", Lat: 0, Lon: 0.01, Distances: map[string]int{}},
	}
	buses := []catalog.BusInput{{Name: "1", Stops: []string{"A", "B"}, Kind: domain.RouteTwoWay}}
	cat, err := catalog.Build(stops, buses)
	if err != nil {
		t.Fatalf("catalog.Build: %v", err)
	}

	settings := domain.RouterSettings{BusWaitTime: 5, BusVelocity: 10, PedestrianVelocity: 5}
	r, err := router.Build(cat, settings)
	if err != nil {
		t.Fatalf("router.Build: %v", err)
	}

	dir := &yellowpages.Directory{
		Rubrics: map[uint64]domain.Rubric{1: {Name: "cafe"}},
		Companies: []domain.Company{
			{
				Names:       []domain.Name{{Value: "Acme", Type: domain.NameMain}},
				Rubrics:     []uint64{1},
				NearbyStops: []domain.NearbyStop{{Name: "B", Meters: 50}},
			},
		},
	}

	renderSettings := &domain.RenderSettings{Width: 10, Height: 10}
	rnd := render.New(cat, dir, renderSettings)

	return New(cat, dir, r, rnd, nil)
}

func TestAnswerBusNotFound(t *testing.T) {
	e := testEngine(t)
	resp := e.Answer(request.StatRequest{ID: 1, Kind: request.KindBus, Name: "nope"})
	if resp.ErrorMessage == "" {
		t.Error("expected an error_message for an unknown bus")
	}
	if resp.RequestID != 1 {
		t.Errorf("RequestID = %d, want 1", resp.RequestID)
	}
}

func TestAnswerBusFound(t *testing.T) {
	e := testEngine(t)
	resp := e.Answer(request.StatRequest{ID: 2, Kind: request.KindBus, Name: "1"})
	if resp.ErrorMessage != "" {
		t.Fatalf("unexpected error_message: %q", resp.ErrorMessage)
	}
	if resp.StopCount == 0 {
		t.Error("expected a non-zero StopCount")
	}
}

func TestAnswerStopUnknownStop(t *testing.T) {
	e := testEngine(t)
	resp := e.Answer(request.StatRequest{ID: 3, Kind: request.KindStop, Name: "nope"})
	if resp.ErrorMessage == "" {
		t.Error("expected an error_message for an unknown stop")
	}
}

func TestAnswerStopFound(t *testing.T) {
	e := testEngine(t)
	resp := e.Answer(request.StatRequest{ID: 4, Kind: request.KindStop, Name: "A"})
	if resp.ErrorMessage != "" {
		t.Fatalf("unexpected error_message: %q", resp.ErrorMessage)
	}
	if len(resp.Buses) != 1 || resp.Buses[0] != "1" {
		t.Errorf("Buses = %v, want [1]", resp.Buses)
	}
}

func TestAnswerRouteBuildsItemsAndMap(t *testing.T) {
	e := testEngine(t)
	resp := e.Answer(request.StatRequest{ID: 5, Kind: request.KindRoute, From: "A", To: "B"})
	if resp.ErrorMessage != "" {
		t.Fatalf("unexpected error_message: %q", resp.ErrorMessage)
	}
	if resp.TotalTime <= 0 {
		t.Error("expected a positive TotalTime")
	}
	if len(resp.Items) == 0 {
		t.Error("expected at least one item")
	}
	if !strings.Contains(resp.Map, "<svg") {
		t.Errorf("Map doesn't look like SVG: %q", resp.Map)
	}
}

func TestAnswerMapReturnsBaseMap(t *testing.T) {
	e := testEngine(t)
	resp := e.Answer(request.StatRequest{ID: 6, Kind: request.KindMap})
	if !strings.Contains(resp.Map, "<svg") {
		t.Errorf("Map doesn't look like SVG: %q", resp.Map)
	}
}

func TestAnswerFindCompaniesMatchesByRubric(t *testing.T) {
	e := testEngine(t)
	resp := e.Answer(request.StatRequest{
		ID: 7, Kind: request.KindFindCompanies,
		Query: yellowpages.Query{RubricNames: []string{"cafe"}},
	})
	if len(resp.Companies) != 1 || resp.Companies[0] != "Acme" {
		t.Errorf("Companies = %v, want [Acme]", resp.Companies)
	}
}

func TestAnswerRouteToCompanyNoMatchesIsNotFound(t *testing.T) {
	e := testEngine(t)
	resp := e.Answer(request.StatRequest{
		ID: 8, Kind: request.KindRouteToCompany, From: "A",
		Query: yellowpages.Query{RubricNames: []string{"nonexistent"}},
	})
	if resp.ErrorMessage == "" {
		t.Error("expected an error_message when no companies match")
	}
}

func TestAnswerRouteToCompanyFindsWinner(t *testing.T) {
	e := testEngine(t)
	resp := e.Answer(request.StatRequest{
		ID: 9, Kind: request.KindRouteToCompany, From: "A", StartMinutes: 0,
		Query: yellowpages.Query{RubricNames: []string{"cafe"}},
	})
	if resp.ErrorMessage != "" {
		t.Fatalf("unexpected error_message: %q", resp.ErrorMessage)
	}
	if len(resp.Companies) != 1 || resp.Companies[0] != "Acme" {
		t.Errorf("Companies = %v, want [Acme]", resp.Companies)
	}
	if !strings.Contains(resp.Map, "<svg") {
		t.Errorf("Map doesn't look like SVG: %q", resp.Map)
	}
}
