// Package query dispatches decoded stat requests against a loaded
// catalog/directory/router/renderer and builds the wire response for
// each, following the per-request "log start, do work, log completion
// with duration_ms" pattern used throughout the teacher's request
// handlers.
package query

import (
	"transitcatalog/internal/domain"
)

// itemWire is one itinerary step as emitted on the wire. Which fields
// are present depends on Type, mirroring BuildRouteItemNodes's per-type
// field sets.
type itemWire struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
	Company   string  `json:"company,omitempty"`
	Time      float64 `json:"time"`
}

// toItemWire builds one itinerary step. companyName is the destination
// company's main name, carried onto WalkToCompany/WaitCompany items the
// way BuildRouteItemNodes does; it is ignored for every other item type
// and is empty for a plain stop-to-stop route.
func toItemWire(it domain.RouteItem, companyName string) itemWire {
	w := itemWire{Type: string(it.Type), Time: it.Time}
	switch it.Type {
	case domain.ItemWaitBus:
		w.StopName = it.StopName
	case domain.ItemRideBus:
		w.Bus = it.Bus
		w.SpanCount = it.Span
	case domain.ItemWalk:
		w.StopName = it.StopName
		w.Company = companyName
	case domain.ItemWaitCompany:
		w.Company = companyName
	}
	return w
}

// Response is one stat_requests[] reply. Only the fields relevant to the
// originating request's Kind are populated.
type Response struct {
	RequestID       int        `json:"request_id"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	StopCount       int        `json:"stop_count,omitempty"`
	UniqueStopCount int        `json:"unique_stop_count,omitempty"`
	RouteLength     int        `json:"route_length,omitempty"`
	Curvature       float64    `json:"curvature,omitempty"`
	Buses           []string   `json:"buses,omitempty"`
	TotalTime       float64    `json:"total_time,omitempty"`
	Items           []itemWire `json:"items,omitempty"`
	Map             string     `json:"map,omitempty"`
	Companies       []string   `json:"companies,omitempty"`
}

// The original's hand-rolled JSON writer escapes every '"' in the embedded
// SVG with a preceding backslash; encoding/json does the same for any
// string value, so the Map field needs no pre-escaping here.
