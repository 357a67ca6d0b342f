// Package catalog builds and holds the frozen stop/bus model (component
// B): stops, buses with derived lengths and curvature, the stop->buses
// index, and the stop-neighbour index layout depends on.
//
// The engine is single-threaded and synchronous end to end (no component
// suspends except on the two I/O events), so unlike the teacher's
// internal/store this catalog carries no mutex and its getters return the
// live pointers rather than defensive copies: nothing mutates a Stop or
// Bus concurrently with a reader, and after make-base's build phase the
// whole catalog is logically frozen.
package catalog

import (
	"fmt"
	"sort"

	"transitcatalog/internal/domain"
	"transitcatalog/internal/engineerr"
	"transitcatalog/internal/geo"
)

// StopInput and BusInput are the normalized, already-type-checked shape
// the request parser hands to Build; they mirror the base_requests
// wire entries one-to-one.
type StopInput struct {
	Name      string
	Lat, Lon  float64
	Distances map[string]int
}

type BusInput struct {
	Name  string
	Stops []string
	Kind  domain.RouteKind
}

// Catalog is the frozen model built from ingested stops and buses.
type Catalog struct {
	Stops     map[string]*domain.Stop
	StopNames []string // ascending, vertex-id order for the router

	Buses     map[string]*domain.Bus
	BusNames  []string // ascending, palette-assignment order

	// StopToBuses maps a stop name to the sorted list of bus names that
	// touch it.
	StopToBuses map[string][]string

	// StopNeighbours maps a stop name to the set of stop names adjacent
	// to it on any bus, in either direction.
	StopNeighbours map[string]map[string]bool
}

// Build constructs a frozen Catalog from ingested stops and buses,
// computing every Bus's derived fields along the way. It returns a
// BuildError if a bus references an unknown stop or a required road
// distance is missing in both directions.
func Build(stopInputs []StopInput, busInputs []BusInput) (*Catalog, error) {
	c := &Catalog{
		Stops:          make(map[string]*domain.Stop, len(stopInputs)),
		Buses:          make(map[string]*domain.Bus, len(busInputs)),
		StopToBuses:    make(map[string][]string),
		StopNeighbours: make(map[string]map[string]bool),
	}

	for _, si := range stopInputs {
		loc := domain.LatLon{Lat: si.Lat, Lon: si.Lon}
		c.Stops[si.Name] = &domain.Stop{
			Name:      si.Name,
			Geo:       loc,
			Display:   loc,
			Distances: si.Distances,
		}
	}
	for name := range c.Stops {
		c.StopNames = append(c.StopNames, name)
	}
	sort.Strings(c.StopNames)

	stopToBusSet := make(map[string]map[string]bool)

	for _, bi := range busInputs {
		for _, sn := range bi.Stops {
			if _, ok := c.Stops[sn]; !ok {
				return nil, engineerr.NewBuildError(fmt.Sprintf("bus %q references unknown stop %q", bi.Name, sn))
			}
		}

		bus := &domain.Bus{Name: bi.Name, Stops: bi.Stops, Kind: bi.Kind}
		if err := evaluateRoute(c.Stops, bus); err != nil {
			return nil, err
		}
		c.Buses[bi.Name] = bus

		for _, sn := range bi.Stops {
			if stopToBusSet[sn] == nil {
				stopToBusSet[sn] = make(map[string]bool)
			}
			stopToBusSet[sn][bi.Name] = true
		}
		addNeighbours(c.StopNeighbours, bi.Stops)
	}

	for name := range c.Buses {
		c.BusNames = append(c.BusNames, name)
	}
	sort.Strings(c.BusNames)

	for stop, set := range stopToBusSet {
		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		c.StopToBuses[stop] = names
	}

	return c, nil
}

func addNeighbours(neigh map[string]map[string]bool, stops []string) {
	for i := 0; i+1 < len(stops); i++ {
		a, b := stops[i], stops[i+1]
		if a == b {
			continue
		}
		if neigh[a] == nil {
			neigh[a] = make(map[string]bool)
		}
		if neigh[b] == nil {
			neigh[b] = make(map[string]bool)
		}
		neigh[a][b] = true
		neigh[b][a] = true
	}
}

// evaluateRoute fills in Bus's derived StopCount/UniqueStopCount/
// GeoLength/RoadLength/Curvature, grounded on Bus::EvaluateRoute: TWOWAY's
// road length is not simply double the forward sum, the return leg
// independently looks up (with symmetric fallback) the reverse-direction
// distance per segment.
func evaluateRoute(stops map[string]*domain.Stop, bus *domain.Bus) error {
	unique := make(map[string]bool, len(bus.Stops))
	for _, s := range bus.Stops {
		unique[s] = true
	}
	bus.UniqueStopCount = len(unique)

	forwardGeo := 0.0
	forwardRoad := 0
	for i := 0; i+1 < len(bus.Stops); i++ {
		a, b := bus.Stops[i], bus.Stops[i+1]
		forwardGeo += geo.HaversineMeters(stops[a].Geo, stops[b].Geo)
		d, ok := geo.RoadDistanceMeters(stops, a, b)
		if !ok {
			return engineerr.NewBuildError(fmt.Sprintf("bus %q: no road distance between %q and %q", bus.Name, a, b))
		}
		forwardRoad += d
	}

	switch bus.Kind {
	case domain.RouteRound:
		bus.StopCount = len(bus.Stops)
		bus.GeoLength = forwardGeo
		bus.RoadLength = forwardRoad
	case domain.RouteTwoWay:
		bus.StopCount = 2*len(bus.Stops) - 1
		bus.GeoLength = 2 * forwardGeo
		reverseRoad := 0
		for i := 0; i+1 < len(bus.Stops); i++ {
			a, b := bus.Stops[i], bus.Stops[i+1]
			d, ok := geo.RoadDistanceMeters(stops, b, a)
			if !ok {
				return engineerr.NewBuildError(fmt.Sprintf("bus %q: no road distance between %q and %q", bus.Name, b, a))
			}
			reverseRoad += d
		}
		bus.RoadLength = forwardRoad + reverseRoad
	}

	if bus.GeoLength > 0 {
		bus.Curvature = float64(bus.RoadLength) / bus.GeoLength
	}
	return nil
}
