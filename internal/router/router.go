// Package router builds the routing graph and answers shortest-time and
// route-to-company queries (component D). One vertex per stop; a
// Floyd-Warshall-style relaxation over a dense V*V table answers
// all-pairs queries with path reconstruction via recursive midpoint
// splitting, as called for by the routing graph & search design.
package router

import (
	"sort"

	"transitcatalog/internal/catalog"
	"transitcatalog/internal/domain"
	"transitcatalog/internal/engineerr"
	"transitcatalog/internal/geo"
	"transitcatalog/internal/yellowpages"
)

type directEdge struct {
	has    bool
	weight float64
	bus    string
	span   int
}

// Router is the frozen routing graph plus its precomputed all-pairs
// shortest-time table.
type Router struct {
	settings domain.RouterSettings

	stopOf   []string       // vertex id -> stop name, ascending
	vertexOf map[string]int // stop name -> vertex id

	v int

	direct []directEdge // row-major V*V, the initial (pre-relaxation) edges
	dist   []float64    // row-major V*V
	mid    []int32      // row-major V*V; -1 means direct edge, else midpoint vertex id
	hasPath []bool       // row-major V*V
}

func idx(v, i, j int) int { return i*v + j }

// Build constructs the graph from a frozen catalog and runs the all-pairs
// relaxation once, up front, per the make-base control flow.
func Build(cat *catalog.Catalog, settings domain.RouterSettings) (*Router, error) {
	r := &Router{settings: settings}

	r.stopOf = append(r.stopOf, cat.StopNames...)
	sort.Strings(r.stopOf)
	r.v = len(r.stopOf)
	r.vertexOf = make(map[string]int, r.v)
	for i, name := range r.stopOf {
		r.vertexOf[name] = i
	}

	r.direct = make([]directEdge, r.v*r.v)

	busNames := append([]string(nil), cat.BusNames...)
	sort.Strings(busNames)

	for _, busName := range busNames {
		bus := cat.Buses[busName]
		if err := r.addBusEdges(cat, bus); err != nil {
			return nil, err
		}
	}

	r.relaxAllPairs()
	return r, nil
}

// SerializedEdge is one direct edge of the graph, the unit the codec
// bridge persists: vertex names in id order plus edges with weights and
// side-data (bus name, span count), mirroring SerializeGraph. The
// precomputed all-pairs table itself is not persisted — it is cheap to
// re-derive from the direct edges on load, the same way the original's
// deserializing constructor rebuilds its routing engine from a stored
// vertex/edge list rather than storing the engine's own internal state.
type SerializedEdge struct {
	From, To int
	Weight   float64
	Bus      string
	Span     int
}

// DirectEdges returns every direct edge the graph was built from, for
// the codec to persist.
func (r *Router) DirectEdges() []SerializedEdge {
	var out []SerializedEdge
	for i := 0; i < r.v; i++ {
		for j := 0; j < r.v; j++ {
			de := r.direct[idx(r.v, i, j)]
			if de.has {
				out = append(out, SerializedEdge{From: i, To: j, Weight: de.weight, Bus: de.bus, Span: de.span})
			}
		}
	}
	return out
}

// BuildFromEdges reconstructs a Router from a previously-serialized
// vertex list and direct edge list, then re-runs the all-pairs
// relaxation. Used by the codec bridge on artifact load.
func BuildFromEdges(stopNames []string, settings domain.RouterSettings, edges []SerializedEdge) *Router {
	r := &Router{settings: settings}
	r.stopOf = append([]string(nil), stopNames...)
	r.v = len(r.stopOf)
	r.vertexOf = make(map[string]int, r.v)
	for i, name := range r.stopOf {
		r.vertexOf[name] = i
	}
	r.direct = make([]directEdge, r.v*r.v)
	for _, e := range edges {
		r.direct[idx(r.v, e.From, e.To)] = directEdge{has: true, weight: e.Weight, bus: e.Bus, span: e.Span}
	}
	r.relaxAllPairs()
	return r
}

func (r *Router) addBusEdges(cat *catalog.Catalog, bus *domain.Bus) error {
	n := len(bus.Stops)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w, err := segmentWeight(cat, r.settings, bus.Stops, i, j, false)
			if err != nil {
				return err
			}
			r.offerEdge(bus.Stops[i], bus.Stops[j], w, bus.Name, j-i)

			if bus.Kind == domain.RouteTwoWay {
				rw, err := segmentWeight(cat, r.settings, bus.Stops, i, j, true)
				if err != nil {
					return err
				}
				r.offerEdge(bus.Stops[j], bus.Stops[i], rw, bus.Name, j-i)
			}
		}
	}
	return nil
}

// segmentWeight sums ride time across stops[i..j] (or its reverse when
// reverse is true, independently re-walking the segment's map distances
// rather than mirroring the forward weight) and adds the constant wait
// time once.
func segmentWeight(cat *catalog.Catalog, settings domain.RouterSettings, stops []string, i, j int, reverse bool) (float64, error) {
	total := 0.0
	for p := i; p < j; p++ {
		a, b := stops[p], stops[p+1]
		if reverse {
			a, b = stops[p+1], stops[p]
		}
		d, ok := geo.RoadDistanceMeters(cat.Stops, a, b)
		if !ok {
			return 0, engineerr.NewBuildError("missing road distance between " + a + " and " + b)
		}
		total += float64(d) / settings.BusVelocity
	}
	return total + float64(settings.BusWaitTime), nil
}

// offerEdge keeps the minimum-weight edge seen so far between from and
// to; ties keep whichever was offered first (buses are processed in
// ascending name order, so this is deterministic).
func (r *Router) offerEdge(from, to string, weight float64, bus string, span int) {
	i, j := r.vertexOf[from], r.vertexOf[to]
	k := idx(r.v, i, j)
	cur := &r.direct[k]
	if !cur.has || weight < cur.weight {
		*cur = directEdge{has: true, weight: weight, bus: bus, span: span}
	}
}

func (r *Router) relaxAllPairs() {
	v := r.v
	r.dist = make([]float64, v*v)
	r.mid = make([]int32, v*v)
	r.hasPath = make([]bool, v*v)
	for i := 0; i < v; i++ {
		for j := 0; j < v; j++ {
			k := idx(v, i, j)
			r.mid[k] = -1
			if r.direct[k].has {
				r.dist[k] = r.direct[k].weight
				r.hasPath[k] = true
			}
		}
	}

	for k := 0; k < v; k++ {
		for i := 0; i < v; i++ {
			ik := idx(v, i, k)
			if !r.hasPath[ik] {
				continue
			}
			for j := 0; j < v; j++ {
				kj := idx(v, k, j)
				if !r.hasPath[kj] {
					continue
				}
				ij := idx(v, i, j)
				cand := r.dist[ik] + r.dist[kj]
				if !r.hasPath[ij] || cand < r.dist[ij] {
					r.dist[ij] = cand
					r.hasPath[ij] = true
					r.mid[ij] = int32(k)
				}
			}
		}
	}
}

type edgeRef struct {
	from, to int
	bus      string
	span     int
	weight   float64
}

func (r *Router) reconstruct(i, j int) []edgeRef {
	k := idx(r.v, i, j)
	if r.mid[k] == -1 {
		de := r.direct[k]
		return []edgeRef{{from: i, to: j, bus: de.bus, span: de.span, weight: de.weight}}
	}
	m := int(r.mid[k])
	left := r.reconstruct(i, m)
	right := r.reconstruct(m, j)
	return append(left, right...)
}

// BuildRoute returns the shortest-time itinerary from -> to. Fails with a
// NotFoundError if no path exists, including when either stop name is
// unknown.
func (r *Router) BuildRoute(from, to string) (domain.RouteInfo, error) {
	if from == to {
		return domain.RouteInfo{}, nil
	}
	vi, ok1 := r.vertexOf[from]
	vj, ok2 := r.vertexOf[to]
	if !ok1 || !ok2 {
		return domain.RouteInfo{}, engineerr.NewNotFoundError("not found")
	}
	k := idx(r.v, vi, vj)
	if !r.hasPath[k] {
		return domain.RouteInfo{}, engineerr.NewNotFoundError("not found")
	}

	edges := r.reconstruct(vi, vj)
	items := make([]domain.RouteItem, 0, len(edges)*2)
	for _, e := range edges {
		items = append(items, domain.RouteItem{
			Type:     domain.ItemWaitBus,
			StopName: r.stopOf[e.from],
			Time:     float64(r.settings.BusWaitTime),
		})
		items = append(items, domain.RouteItem{
			Type:      domain.ItemRideBus,
			Bus:       e.bus,
			StopBegin: r.stopOf[e.from],
			StopEnd:   r.stopOf[e.to],
			Span:      e.span,
			Time:      e.weight - float64(r.settings.BusWaitTime),
		})
	}

	return domain.RouteInfo{TotalTime: r.dist[k], Items: items}, nil
}

// BuildRouteToCompany walks from -> nearbyStop by bus (or not at all if
// already there), then appends a walking leg of meters/pedestrian
// velocity.
func (r *Router) BuildRouteToCompany(from, nearbyStop string, meters int) (domain.RouteInfo, error) {
	var info domain.RouteInfo
	if from != nearbyStop {
		var err error
		info, err = r.BuildRoute(from, nearbyStop)
		if err != nil {
			return domain.RouteInfo{}, err
		}
	}
	walkTime := float64(meters) / r.settings.PedestrianVelocity
	info.Items = append(info.Items, domain.RouteItem{
		Type:     domain.ItemWalk,
		StopName: nearbyStop,
		Time:     walkTime,
	})
	info.TotalTime += walkTime
	return info, nil
}

// CompanyCandidate is the minimal shape BuildRouteToClosestCompany needs
// from a yellow-pages company: its index (used only by the caller to map
// back to the full record) and the data that drives earliest-arrival
// search.
type CompanyCandidate struct {
	Index       int
	NearbyStops []domain.NearbyStop
	WorkingTime domain.WorkingTime
}

const minutesPerWeek = 7 * 1440.0

// BuildRouteToClosestCompany evaluates every candidate's every nearby
// stop, waits for the company to open on arrival, and keeps the smallest
// total_time seen, first-encountered wins ties (candidate order, then
// nearby-stop order).
func BuildRouteToClosestCompany(r *Router, from string, startMinutes float64, candidates []CompanyCandidate) (int, domain.RouteInfo, error) {
	bestIndex := -1
	var best domain.RouteInfo
	found := false

	for _, cand := range candidates {
		for _, ns := range cand.NearbyStops {
			route, err := r.BuildRouteToCompany(from, ns.Name, ns.Meters)
			if err != nil {
				continue
			}
			finish := mod(startMinutes+route.TotalTime, minutesPerWeek)
			wait := yellowpages.WaitForOpen(cand.WorkingTime, finish)
			if wait > 0 {
				route.Items = append(route.Items, domain.RouteItem{Type: domain.ItemWaitCompany, Time: wait})
				route.TotalTime += wait
			}
			if !found || route.TotalTime < best.TotalTime {
				found = true
				best = route
				bestIndex = cand.Index
			}
		}
	}

	if !found {
		return -1, domain.RouteInfo{}, engineerr.NewNotFoundError("not found")
	}
	return bestIndex, best, nil
}

func mod(a, m float64) float64 {
	r := a
	for r >= m {
		r -= m
	}
	for r < 0 {
		r += m
	}
	return r
}

// StopNames returns the vertex-id-ordered stop name list, used by the
// codec to serialize the graph's vertex labels.
func (r *Router) StopNames() []string { return r.stopOf }
