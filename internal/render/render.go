// Package render implements the SVG renderer (component F): layered
// dispatch tables for the base map (draws everything) and the route
// overlay (draws only what's visited), with single-shot memoization of
// the base map document.
package render

import (
	"fmt"

	"transitcatalog/internal/catalog"
	"transitcatalog/internal/domain"
	"transitcatalog/internal/svg"
	"transitcatalog/internal/yellowpages"
)

// Renderer holds the frozen catalog/directory/settings it renders from
// and memoizes the base map document on first use — the only mutation
// observable between process-requests queries, and an idempotent one.
type Renderer struct {
	cat      *catalog.Catalog
	dir      *yellowpages.Directory
	settings *domain.RenderSettings

	baseMap *svg.Document
}

func New(cat *catalog.Catalog, dir *yellowpages.Directory, settings *domain.RenderSettings) *Renderer {
	return &Renderer{cat: cat, dir: dir, settings: settings}
}

// SetBusColors assigns each bus a palette index in ascending bus-name
// order, wrapping modulo the palette size. It is idempotent and only
// needs to run once before the first render.
func SetBusColors(cat *catalog.Catalog, paletteSize int) {
	if paletteSize == 0 {
		return
	}
	id := 0
	for _, name := range cat.BusNames {
		cat.Buses[name].ColorID = id % paletteSize
		id++
	}
}

// BaseMapSVG returns the memoized base-map document, rendering it on
// first call.
func (r *Renderer) BaseMapSVG() *svg.Document {
	if r.baseMap == nil {
		SetBusColors(r.cat, len(r.settings.ColorPalette))
		doc := &svg.Document{}
		for _, layer := range r.settings.Layers {
			if fn, ok := baseFuncs[layer]; ok {
				fn(r, doc)
			}
		}
		r.baseMap = doc
	}
	return r.baseMap
}

// RenderBaseMap renders the base map to an SVG string.
func (r *Renderer) RenderBaseMap() string {
	return r.BaseMapSVG().Render()
}

// RenderRoute clones the base map, dims it, and draws the route overlay
// for route (and, if companyIdx >= 0 and the itinerary ends with a walk,
// the destination company).
func (r *Renderer) RenderRoute(route domain.RouteInfo, companyIdx int) string {
	doc := r.BaseMapSVG().Clone()
	r.renderDimRectangle(doc)
	for _, layer := range r.settings.Layers {
		if fn, ok := routeFuncs[layer]; ok {
			fn(r, doc, route, companyIdx)
		}
	}
	return doc.Render()
}

func (r *Renderer) renderDimRectangle(doc *svg.Document) {
	rect := svg.NewRectangle().
		SetPoint(svg.Point{X: -r.settings.OuterMargin, Y: -r.settings.OuterMargin}).
		SetWidth(r.settings.Width + 2*r.settings.OuterMargin).
		SetHeight(r.settings.Height + 2*r.settings.OuterMargin).
		SetFillColor(r.settings.UnderlayerColor)
	doc.Add(rect)
}

type baseFunc func(r *Renderer, doc *svg.Document)
type routeFunc func(r *Renderer, doc *svg.Document, route domain.RouteInfo, companyIdx int)

var baseFuncs = map[domain.Layer]baseFunc{
	domain.LayerBusLines:   (*Renderer).renderBuses,
	domain.LayerBusLabels:  (*Renderer).renderBusNames,
	domain.LayerStopPoints: (*Renderer).renderStops,
	domain.LayerStopLabels: (*Renderer).renderStopNames,
}

var routeFuncs = map[domain.Layer]routeFunc{
	domain.LayerBusLines:      (*Renderer).renderBusesOnRoute,
	domain.LayerBusLabels:     (*Renderer).renderBusNamesOnRoute,
	domain.LayerStopPoints:    (*Renderer).renderStopsOnRoute,
	domain.LayerStopLabels:    (*Renderer).renderStopNamesOnRoute,
	domain.LayerCompanyLines:  (*Renderer).renderCompanyLines,
	domain.LayerCompanyPoints: (*Renderer).renderCompanyPoints,
	domain.LayerCompanyLabels: (*Renderer).renderCompanyLabels,
}

func pt(p domain.Point) svg.Point { return svg.Point{X: p.X, Y: p.Y} }

func (r *Renderer) renderBuses(doc *svg.Document) {
	for _, name := range r.cat.BusNames {
		bus := r.cat.Buses[name]
		line := svg.NewPolyline().
			SetStrokeColor(r.settings.ColorPalette[bus.ColorID]).
			SetStrokeWidth(r.settings.LineWidth).
			SetStrokeLineCap("round").
			SetStrokeLineJoin("round")
		for _, s := range bus.Stops {
			line.AddPoint(pt(r.cat.Stops[s].XY))
		}
		if bus.Kind == domain.RouteTwoWay {
			for i := len(bus.Stops) - 2; i >= 0; i-- {
				line.AddPoint(pt(r.cat.Stops[bus.Stops[i]].XY))
			}
		}
		doc.Add(line)
	}
}

func (r *Renderer) busNameItem(point domain.Point, name string, colorID int) (underlayer, toplayer *svg.Text) {
	build := func() *svg.Text {
		return svg.NewText().
			SetPoint(pt(point)).
			SetOffset(pt(r.settings.BusLabelOffset)).
			SetFontSize(r.settings.BusLabelFontSize).
			SetFontFamily("Verdana").
			SetFontWeight("bold").
			SetData(name)
	}
	underlayer = build().
		SetFillColor(r.settings.UnderlayerColor).
		SetStrokeColor(r.settings.UnderlayerColor).
		SetStrokeWidth(r.settings.UnderlayerWidth).
		SetStrokeLineCap("round").
		SetStrokeLineJoin("round")
	toplayer = build().SetFillColor(r.settings.ColorPalette[colorID])
	return
}

func (r *Renderer) renderBusNames(doc *svg.Document) {
	for _, name := range r.cat.BusNames {
		bus := r.cat.Buses[name]
		if len(bus.Stops) == 0 {
			continue
		}
		first := r.cat.Stops[bus.Stops[0]].XY
		u, t := r.busNameItem(first, bus.Name, bus.ColorID)
		doc.Add(u)
		doc.Add(t)
		if bus.Kind == domain.RouteTwoWay {
			last := r.cat.Stops[bus.Stops[len(bus.Stops)-1]].XY
			u2, t2 := r.busNameItem(last, bus.Name, bus.ColorID)
			doc.Add(u2)
			doc.Add(t2)
		}
	}
}

func (r *Renderer) renderStops(doc *svg.Document) {
	for _, name := range r.cat.StopNames {
		s := r.cat.Stops[name]
		circle := svg.NewCircle().
			SetCenter(pt(s.XY)).
			SetRadius(r.settings.StopRadius).
			SetFillColor(domain.NewNamedColor("white"))
		doc.Add(circle)
	}
}

func (r *Renderer) stopNameItem(point domain.Point, name string) (underlayer, toplayer *svg.Text) {
	build := func() *svg.Text {
		return svg.NewText().
			SetPoint(pt(point)).
			SetOffset(pt(r.settings.StopLabelOffset)).
			SetFontSize(r.settings.StopLabelFontSize).
			SetFontFamily("Verdana").
			SetData(name)
	}
	underlayer = build().
		SetFillColor(r.settings.UnderlayerColor).
		SetStrokeColor(r.settings.UnderlayerColor).
		SetStrokeWidth(r.settings.UnderlayerWidth).
		SetStrokeLineCap("round").
		SetStrokeLineJoin("round")
	toplayer = build().SetFillColor(domain.NewNamedColor("black"))
	return
}

func (r *Renderer) renderStopNames(doc *svg.Document) {
	for _, name := range r.cat.StopNames {
		s := r.cat.Stops[name]
		u, t := r.stopNameItem(s.XY, name)
		doc.Add(u)
		doc.Add(t)
	}
}

// rideWindow returns the stop-list positions traversed by a Ride item, in
// travel order, trying the forward reading first and, for TWOWAY buses,
// the reverse reading.
func rideWindow(bus *domain.Bus, item domain.RouteItem) []int {
	stops := bus.Stops
	for j := 0; j+item.Span < len(stops); j++ {
		if stops[j] == item.StopBegin && stops[j+item.Span] == item.StopEnd {
			out := make([]int, 0, item.Span+1)
			for k := j; k <= j+item.Span; k++ {
				out = append(out, k)
			}
			return out
		}
	}
	if bus.Kind == domain.RouteTwoWay {
		for j := item.Span; j < len(stops); j++ {
			if stops[j] == item.StopBegin && stops[j-item.Span] == item.StopEnd {
				out := make([]int, 0, item.Span+1)
				for k := j; k >= j-item.Span; k-- {
					out = append(out, k)
				}
				return out
			}
		}
	}
	return nil
}

func (r *Renderer) renderBusesOnRoute(doc *svg.Document, route domain.RouteInfo, companyIdx int) {
	for _, item := range route.Items {
		if item.Type != domain.ItemRideBus {
			continue
		}
		bus := r.cat.Buses[item.Bus]
		window := rideWindow(bus, item)
		if window == nil {
			continue
		}
		line := svg.NewPolyline().
			SetStrokeColor(r.settings.ColorPalette[bus.ColorID]).
			SetStrokeWidth(r.settings.LineWidth).
			SetStrokeLineCap("round").
			SetStrokeLineJoin("round")
		for _, pos := range window {
			line.AddPoint(pt(r.cat.Stops[bus.Stops[pos]].XY))
		}
		doc.Add(line)
	}
}

func (r *Renderer) renderBusNamesOnRoute(doc *svg.Document, route domain.RouteInfo, companyIdx int) {
	for _, item := range route.Items {
		if item.Type != domain.ItemRideBus {
			continue
		}
		bus := r.cat.Buses[item.Bus]
		isTerminal := func(stopName string) bool {
			if len(bus.Stops) == 0 {
				return false
			}
			if stopName == bus.Stops[0] {
				return true
			}
			if bus.Kind == domain.RouteTwoWay && stopName == bus.Stops[len(bus.Stops)-1] {
				return true
			}
			return false
		}
		if isTerminal(item.StopBegin) {
			u, t := r.busNameItem(r.cat.Stops[item.StopBegin].XY, bus.Name, bus.ColorID)
			doc.Add(u)
			doc.Add(t)
		}
		if isTerminal(item.StopEnd) {
			u, t := r.busNameItem(r.cat.Stops[item.StopEnd].XY, bus.Name, bus.ColorID)
			doc.Add(u)
			doc.Add(t)
		}
	}
}

func (r *Renderer) renderStopsOnRoute(doc *svg.Document, route domain.RouteInfo, companyIdx int) {
	seen := make(map[string]bool)
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		s := r.cat.Stops[name]
		circle := svg.NewCircle().
			SetCenter(pt(s.XY)).
			SetRadius(r.settings.StopRadius).
			SetFillColor(domain.NewNamedColor("white"))
		doc.Add(circle)
	}
	for _, item := range route.Items {
		switch item.Type {
		case domain.ItemWaitBus:
			add(item.StopName)
		case domain.ItemRideBus:
			bus := r.cat.Buses[item.Bus]
			for _, pos := range rideWindow(bus, item) {
				add(bus.Stops[pos])
			}
		case domain.ItemWalk:
			add(item.StopName)
		}
	}
}

func (r *Renderer) renderStopNamesOnRoute(doc *svg.Document, route domain.RouteInfo, companyIdx int) {
	label := func(name string) {
		s := r.cat.Stops[name]
		u, t := r.stopNameItem(s.XY, name)
		doc.Add(u)
		doc.Add(t)
	}
	for _, item := range route.Items {
		if item.Type == domain.ItemWaitBus {
			label(item.StopName)
		}
	}
	if len(route.Items) > 0 && route.Items[0].Type == domain.ItemWalk {
		label(route.Items[0].StopName)
		return
	}
	for i := len(route.Items) - 1; i >= 0; i-- {
		if route.Items[i].Type == domain.ItemRideBus {
			label(route.Items[i].StopEnd)
			return
		}
	}
}

func findLastWalk(items []domain.RouteItem) int {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Type == domain.ItemWalk {
			return i
		}
	}
	return -1
}

func (r *Renderer) renderCompanyLines(doc *svg.Document, route domain.RouteInfo, companyIdx int) {
	idx := findLastWalk(route.Items)
	if idx < 0 || companyIdx < 0 {
		return
	}
	stop := r.cat.Stops[route.Items[idx].StopName]
	company := r.dir.Companies[companyIdx]
	line := svg.NewPolyline().
		SetStrokeColor(domain.NewNamedColor("black")).
		SetStrokeWidth(r.settings.CompanyLineWidth).
		AddPoint(pt(stop.XY)).
		AddPoint(svg.Point{X: company.Address.Coords.Lon, Y: company.Address.Coords.Lat})
	doc.Add(line)
}

func (r *Renderer) renderCompanyPoints(doc *svg.Document, route domain.RouteInfo, companyIdx int) {
	if findLastWalk(route.Items) < 0 || companyIdx < 0 {
		return
	}
	company := r.dir.Companies[companyIdx]
	circle := svg.NewCircle().
		SetCenter(svg.Point{X: company.Address.Coords.Lon, Y: company.Address.Coords.Lat}).
		SetRadius(r.settings.CompanyRadius).
		SetFillColor(domain.NewNamedColor("black"))
	doc.Add(circle)
}

func (r *Renderer) renderCompanyLabels(doc *svg.Document, route domain.RouteInfo, companyIdx int) {
	if findLastWalk(route.Items) < 0 || companyIdx < 0 {
		return
	}
	company := r.dir.Companies[companyIdx]
	text := company.MainName()
	if len(company.Rubrics) > 0 {
		if rubric, ok := r.dir.Rubrics[company.Rubrics[0]]; ok {
			text = fmt.Sprintf("%s %s", rubric.Name, text)
		}
	}
	point := domain.Point{X: company.Address.Coords.Lon, Y: company.Address.Coords.Lat}
	u, t := r.stopNameItem(point, text)
	doc.Add(u)
	doc.Add(t)
}
