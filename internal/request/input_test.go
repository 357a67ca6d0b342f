package request

import (
	"strings"
	"testing"

	"transitcatalog/internal/domain"
)

func TestParseMakeBaseConvertsVelocitiesToMetersPerMinute(t *testing.T) {
	doc := `{
		"routing_settings": {"bus_wait_time": 6, "bus_velocity": 60, "pedestrian_velocity": 6},
		"render_settings": {"width": 100, "height": 100, "layers": ["stop_points"]},
		"base_requests": [],
		"serialization_settings": {"file": "db.bin"},
		"yellow_pages": {"companies": []}
	}`
	in, err := ParseMakeBase(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseMakeBase: %v", err)
	}
	if got, want := in.RoutingSettings.BusVelocity, 1000.0; got != want {
		t.Errorf("BusVelocity = %v, want %v (60 km/h in meters/minute)", got, want)
	}
	if got, want := in.RoutingSettings.PedestrianVelocity, 100.0; got != want {
		t.Errorf("PedestrianVelocity = %v, want %v", got, want)
	}
	if in.SerializationFile != "db.bin" {
		t.Errorf("SerializationFile = %q, want db.bin", in.SerializationFile)
	}
}

func TestParseMakeBaseBuildsStopsAndBuses(t *testing.T) {
	doc := `{
		"routing_settings": {"bus_wait_time": 5, "bus_velocity": 40, "pedestrian_velocity": 5},
		"render_settings": {"width": 100, "height": 100, "layers": []},
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 1.0, "longitude": 2.0, "road_distances": {"B": 300}},
			{"type": "Stop", "name": "B", "latitude": 1.1, "longitude": 2.1},
			{"type": "Bus", "name": "1", "stops": ["A", "B"], "is_roundtrip": false},
			{"type": "Bus", "name": "2", "stops": ["A", "B", "A"], "is_roundtrip": true}
		],
		"serialization_settings": {"file": "db.bin"},
		"yellow_pages": {"companies": []}
	}`
	in, err := ParseMakeBase(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseMakeBase: %v", err)
	}
	if len(in.Stops) != 2 {
		t.Fatalf("len(Stops) = %d, want 2", len(in.Stops))
	}
	if in.Stops[0].Distances["B"] != 300 {
		t.Errorf("Stops[0].Distances[B] = %d, want 300", in.Stops[0].Distances["B"])
	}
	if in.Stops[1].Distances == nil {
		t.Error("Stops[1].Distances should default to an empty, non-nil map")
	}
	if len(in.Buses) != 2 {
		t.Fatalf("len(Buses) = %d, want 2", len(in.Buses))
	}
	if in.Buses[0].Kind != domain.RouteTwoWay {
		t.Errorf("Buses[0].Kind = %v, want RouteTwoWay (is_roundtrip: false)", in.Buses[0].Kind)
	}
	if in.Buses[1].Kind != domain.RouteRound {
		t.Errorf("Buses[1].Kind = %v, want RouteRound (is_roundtrip: true)", in.Buses[1].Kind)
	}
}

func TestParseMakeBaseMissingIsRoundtripIsParseError(t *testing.T) {
	doc := `{
		"routing_settings": {"bus_wait_time": 5, "bus_velocity": 40, "pedestrian_velocity": 5},
		"render_settings": {"width": 100, "height": 100, "layers": []},
		"base_requests": [{"type": "Bus", "name": "1", "stops": ["A", "B"]}],
		"serialization_settings": {"file": "db.bin"},
		"yellow_pages": {"companies": []}
	}`
	if _, err := ParseMakeBase(strings.NewReader(doc)); err == nil {
		t.Error("expected a parse error when is_roundtrip is missing")
	}
}

func TestParseMakeBaseUnknownBaseRequestTypeIsParseError(t *testing.T) {
	doc := `{
		"routing_settings": {"bus_wait_time": 5, "bus_velocity": 40, "pedestrian_velocity": 5},
		"render_settings": {"width": 100, "height": 100, "layers": []},
		"base_requests": [{"type": "Bogus"}],
		"serialization_settings": {"file": "db.bin"},
		"yellow_pages": {"companies": []}
	}`
	if _, err := ParseMakeBase(strings.NewReader(doc)); err == nil {
		t.Error("expected a parse error for an unknown base_requests[].type")
	}
}

func TestParseMakeBaseRenderSettingsLayers(t *testing.T) {
	doc := `{
		"routing_settings": {"bus_wait_time": 5, "bus_velocity": 40, "pedestrian_velocity": 5},
		"render_settings": {"width": 100, "height": 200, "layers": ["bus_lines", "stop_points"]},
		"base_requests": [],
		"serialization_settings": {"file": "db.bin"},
		"yellow_pages": {"companies": []}
	}`
	in, err := ParseMakeBase(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseMakeBase: %v", err)
	}
	if in.RenderSettings.Height != 200 {
		t.Errorf("Height = %v, want 200", in.RenderSettings.Height)
	}
	want := []domain.Layer{domain.LayerBusLines, domain.LayerStopPoints}
	if len(in.RenderSettings.Layers) != len(want) {
		t.Fatalf("Layers = %v, want %v", in.RenderSettings.Layers, want)
	}
	for i, l := range want {
		if in.RenderSettings.Layers[i] != l {
			t.Errorf("Layers[%d] = %v, want %v", i, in.RenderSettings.Layers[i], l)
		}
	}
}
