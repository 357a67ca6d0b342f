// Package layout produces the schematic map layout (component E): the
// bounding box and zoom, base-stop marking, intermediate-stop
// straightening, and neighbor-constrained coordinate compression on both
// axes.
package layout

import (
	"sort"

	"transitcatalog/internal/catalog"
	"transitcatalog/internal/domain"
	"transitcatalog/internal/yellowpages"
)

// Run executes all five layout phases in order and commits final pixel
// positions onto cat's stops and dir's companies.
//
// Phase 1 (bounding box) runs before phase 3 (straightening), using
// stops' and companies' original coordinates — an explicit choice: a
// post-straighten bounding box would be computed from coordinates layout
// itself is about to move, an order-dependence documented as a source
// ambiguity; this implementation follows the pre-straighten reading.
func Run(cat *catalog.Catalog, dir *yellowpages.Directory, settings *domain.RenderSettings) {
	computeBoundingBox(cat, dir, settings)
	markBaseStops(cat)
	moveIntermediateStops(cat)
	compressAxis(cat, dir, settings, true)
	compressAxis(cat, dir, settings, false)
}

func computeBoundingBox(cat *catalog.Catalog, dir *yellowpages.Directory, settings *domain.RenderSettings) {
	first := true
	var minLon, maxLon, minLat, maxLat float64

	consider := func(lat, lon float64) {
		if first {
			minLon, maxLon, minLat, maxLat = lon, lon, lat, lat
			first = false
			return
		}
		if lon < minLon {
			minLon = lon
		}
		if lon > maxLon {
			maxLon = lon
		}
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
	}

	for _, name := range cat.StopNames {
		s := cat.Stops[name]
		consider(s.Geo.Lat, s.Geo.Lon)
	}
	for _, c := range dir.Companies {
		consider(c.Address.Coords.Lat, c.Address.Coords.Lon)
	}

	widthZoom := 0.0
	if dLon := maxLon - minLon; dLon != 0 {
		widthZoom = (settings.Width - 2*settings.Padding) / dLon
	}
	heightZoom := 0.0
	if dLat := maxLat - minLat; dLat != 0 {
		heightZoom = (settings.Height - 2*settings.Padding) / dLat
	}

	var zoom float64
	if widthZoom > 0 && heightZoom > 0 {
		zoom = min(widthZoom, heightZoom)
	} else {
		zoom = widthZoom + heightZoom
	}

	settings.MinLon = minLon
	settings.MaxLat = maxLat
	settings.Zoom = zoom
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// markBaseStops implements MarkBaseStops: a stop is a base stop if no bus
// touches it, more than one distinct bus touches it, it is a terminal of
// any bus, it is visited more than twice on some ROUND bus, or it is
// visited at least twice on some TWOWAY bus (every passage counts twice
// because of the return trip).
func markBaseStops(cat *catalog.Catalog) {
	for _, name := range cat.StopNames {
		stop := cat.Stops[name]
		buses := cat.StopToBuses[name]
		if len(buses) == 0 || len(buses) > 1 {
			stop.IsBase = true
		}
	}

	for _, busName := range cat.BusNames {
		bus := cat.Buses[busName]
		if len(bus.Stops) == 0 {
			continue
		}
		cat.Stops[bus.Stops[0]].IsBase = true
		cat.Stops[bus.Stops[len(bus.Stops)-1]].IsBase = true

		counts := make(map[string]int)
		for _, s := range bus.Stops {
			counts[s]++
		}
		for s, n := range counts {
			var base bool
			if bus.Kind == domain.RouteTwoWay {
				base = n >= 2 // every passage counts as two because of the return trip
			} else {
				base = n > 2
			}
			if base {
				cat.Stops[s].IsBase = true
			}
		}
	}
}

// moveIntermediateStops implements MoveIntermediateStops: for each bus,
// scan the stop sequence; between two base stops with m positions in
// between, linearly interpolate the intermediate stops' Display
// lat/lon onto the chord, using each stop's current (possibly
// already-updated by an earlier bus) Display value as chord endpoints.
func moveIntermediateStops(cat *catalog.Catalog) {
	for _, busName := range cat.BusNames {
		bus := cat.Buses[busName]
		stops := bus.Stops
		i := 0
		for i < len(stops) {
			j := i + 1
			for j < len(stops) && !cat.Stops[stops[j]].IsBase {
				j++
			}
			if j >= len(stops) {
				break
			}
			m := j - i
			if m > 1 {
				start := cat.Stops[stops[i]].Display
				end := cat.Stops[stops[j]].Display
				latStep := (end.Lat - start.Lat) / float64(m)
				lonStep := (end.Lon - start.Lon) / float64(m)
				for k := 1; k < m; k++ {
					s := cat.Stops[stops[i+k]]
					s.Display.Lat = start.Lat + latStep*float64(k)
					s.Display.Lon = start.Lon + lonStep*float64(k)
				}
			}
			i = j
		}
	}
}

type axisItem struct {
	coord    float64
	isStop   bool
	stopName string
	company  int
	rank     int
}

// compressAxis implements coordinate compression for one axis: project
// every stop and company, sort (ascending for X, descending for Y),
// assign neighbor-constrained ranks, then commit final pixel coordinates.
func compressAxis(cat *catalog.Catalog, dir *yellowpages.Directory, settings *domain.RenderSettings, isX bool) {
	items := make([]axisItem, 0, len(cat.StopNames)+len(dir.Companies))

	for _, name := range cat.StopNames {
		s := cat.Stops[name]
		items = append(items, axisItem{coord: project(s.Display, settings, isX), isStop: true, stopName: name})
	}
	for i, c := range dir.Companies {
		items = append(items, axisItem{coord: projectLatLon(c.Address.Coords, settings, isX), isStop: false, company: i})
	}

	if isX {
		sort.SliceStable(items, func(a, b int) bool { return items[a].coord < items[b].coord })
	} else {
		sort.SliceStable(items, func(a, b int) bool { return items[a].coord > items[b].coord })
	}

	maxRank := 0
	for i := range items {
		best := -1
		for j := 0; j < i; j++ {
			if isNeighbor(items[i], items[j], cat, dir) && items[j].rank+1 > best {
				best = items[j].rank + 1
			}
		}
		if best < 0 {
			items[i].rank = 0
		} else {
			items[i].rank = best
		}
		if items[i].rank > maxRank {
			maxRank = items[i].rank
		}
	}

	step := 0.0
	if maxRank > 0 {
		span := settings.Width - 2*settings.Padding
		if !isX {
			span = settings.Height - 2*settings.Padding
		}
		step = span / float64(maxRank)
	}

	for _, it := range items {
		var coord float64
		switch {
		case isX && maxRank == 0:
			coord = settings.Padding
		case isX:
			coord = settings.Padding + float64(it.rank)*step
		case !isX && maxRank == 0:
			coord = settings.Height - settings.Padding
		default:
			coord = settings.Height - settings.Padding - float64(it.rank)*step
		}

		if it.isStop {
			s := cat.Stops[it.stopName]
			if isX {
				s.XY.X = coord
			} else {
				s.XY.Y = coord
			}
		} else {
			// Company coordinates are overwritten in place with pixel
			// positions, reusing Lon for X and Lat for Y.
			c := &dir.Companies[it.company]
			if isX {
				c.Address.Coords.Lon = coord
			} else {
				c.Address.Coords.Lat = coord
			}
		}
	}
}

func project(p domain.LatLon, settings *domain.RenderSettings, isX bool) float64 {
	if isX {
		return (p.Lon-settings.MinLon)*settings.Zoom + settings.Padding
	}
	return (settings.MaxLat-p.Lat)*settings.Zoom + settings.Padding
}

func projectLatLon(p domain.LatLon, settings *domain.RenderSettings, isX bool) float64 {
	return project(p, settings, isX)
}

func isNeighbor(a, b axisItem, cat *catalog.Catalog, dir *yellowpages.Directory) bool {
	switch {
	case a.isStop && b.isStop:
		return cat.StopNeighbours[a.stopName][b.stopName]
	case a.isStop != b.isStop:
		stopName := a.stopName
		companyIdx := b.company
		if !a.isStop {
			stopName = b.stopName
			companyIdx = a.company
		}
		for _, ns := range dir.Companies[companyIdx].NearbyStops {
			if ns.Name == stopName {
				return true
			}
		}
		return false
	default:
		return false
	}
}
