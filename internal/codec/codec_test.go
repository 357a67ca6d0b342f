package codec

import (
	"os"
	"path/filepath"
	"testing"

	"transitcatalog/internal/catalog"
	"transitcatalog/internal/domain"
	"transitcatalog/internal/router"
	"transitcatalog/internal/yellowpages"
)

func buildTestBundle(t *testing.T) Bundle {
	t.Helper()
	stops := []catalog.StopInput{
		{Name: "A", Lat: 0, Lon: 0, Distances: map[string]int{"B": 100}},
		{Name: "B", Lat: 0, Lon: 0.01, Distances: map[string]int{}},
	}
	buses := []catalog.BusInput{{Name: "1", Stops: []string{"A", "B"}, Kind: domain.RouteTwoWay}}
	cat, err := catalog.Build(stops, buses)
	if err != nil {
		t.Fatalf("catalog.Build: %v", err)
	}
	settings := domain.RouterSettings{BusWaitTime: 3, BusVelocity: 10, PedestrianVelocity: 5}
	r, err := router.Build(cat, settings)
	if err != nil {
		t.Fatalf("router.Build: %v", err)
	}
	dir := &yellowpages.Directory{
		Rubrics:   map[uint64]domain.Rubric{1: {Name: "cafe"}},
		Companies: []domain.Company{{Names: []domain.Name{{Value: "Acme", Type: domain.NameMain}}, Rubrics: []uint64{1}}},
	}
	return Bundle{Catalog: cat, Dir: dir, Router: r, Routing: settings, Render: domain.RenderSettings{}}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.bin")

	b := buildTestBundle(t)
	if err := Save(path, b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Catalog.StopNames) != len(b.Catalog.StopNames) {
		t.Errorf("StopNames length = %d, want %d", len(loaded.Catalog.StopNames), len(b.Catalog.StopNames))
	}
	if loaded.Dir.Companies[0].MainName() != "Acme" {
		t.Errorf("company main name = %q, want Acme", loaded.Dir.Companies[0].MainName())
	}

	origInfo, err := b.Router.BuildRoute("A", "B")
	if err != nil {
		t.Fatalf("original BuildRoute: %v", err)
	}
	loadedInfo, err := loaded.Router.BuildRoute("A", "B")
	if err != nil {
		t.Fatalf("loaded BuildRoute: %v", err)
	}
	if origInfo.TotalTime != loadedInfo.TotalTime {
		t.Errorf("TotalTime after round trip = %v, want %v", loadedInfo.TotalTime, origInfo.TotalTime)
	}
}

func TestLoadRejectsCorruptedArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.bin")

	if err := Save(path, buildTestBundle(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back artifact: %v", err)
	}
	if len(data) < 10 {
		t.Fatalf("artifact unexpectedly small: %d bytes", len(data))
	}
	data[len(data)-1] ^= 0xFF
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write corrupted artifact: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected Load to reject a corrupted artifact")
	}
}
