package query

import (
	"log/slog"
	"time"

	"transitcatalog/internal/catalog"
	"transitcatalog/internal/domain"
	"transitcatalog/internal/render"
	"transitcatalog/internal/request"
	"transitcatalog/internal/router"
	"transitcatalog/internal/yellowpages"
)

// Engine holds everything a loaded artifact provides and answers one
// stat request at a time, synchronously, mirroring the single-threaded
// engine model the whole process runs under.
type Engine struct {
	Catalog  *catalog.Catalog
	Dir      *yellowpages.Directory
	Router   *router.Router
	Renderer *render.Renderer

	log *slog.Logger
}

func New(cat *catalog.Catalog, dir *yellowpages.Directory, r *router.Router, rnd *render.Renderer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Catalog: cat, Dir: dir, Router: r, Renderer: rnd, log: logger.With("component", "query")}
}

// Answer dispatches one decoded stat request and builds its response.
// A NotFoundError never aborts the batch: it becomes an error_message on
// this response alone.
func (e *Engine) Answer(req request.StatRequest) Response {
	start := time.Now()
	e.log.Debug("answering stat request", "request_id", req.ID, "type", req.Kind)
	resp := e.dispatch(req)
	e.log.Debug("answered stat request",
		"request_id", req.ID, "type", req.Kind, "duration_ms", time.Since(start).Milliseconds())
	return resp
}

func (e *Engine) dispatch(req request.StatRequest) Response {
	switch req.Kind {
	case request.KindBus:
		return e.answerBus(req)
	case request.KindStop:
		return e.answerStop(req)
	case request.KindRoute:
		return e.answerRoute(req)
	case request.KindMap:
		return e.answerMap(req)
	case request.KindFindCompanies:
		return e.answerFindCompanies(req)
	case request.KindRouteToCompany:
		return e.answerRouteToCompany(req)
	default:
		return Response{RequestID: req.ID, ErrorMessage: "not found"}
	}
}

func notFound(id int) Response {
	return Response{RequestID: id, ErrorMessage: "not found"}
}

func (e *Engine) answerBus(req request.StatRequest) Response {
	bus, ok := e.Catalog.Buses[req.Name]
	if !ok {
		return notFound(req.ID)
	}
	return Response{
		RequestID:       req.ID,
		StopCount:       bus.StopCount,
		UniqueStopCount: bus.UniqueStopCount,
		RouteLength:     bus.RoadLength,
		Curvature:       bus.Curvature,
	}
}

func (e *Engine) answerStop(req request.StatRequest) Response {
	if _, ok := e.Catalog.Stops[req.Name]; !ok {
		return notFound(req.ID)
	}
	buses := e.Catalog.StopToBuses[req.Name]
	return Response{RequestID: req.ID, Buses: buses}
}

func (e *Engine) answerRoute(req request.StatRequest) Response {
	info, err := e.Router.BuildRoute(req.From, req.To)
	if err != nil {
		return notFound(req.ID)
	}
	return Response{
		RequestID: req.ID,
		TotalTime: info.TotalTime,
		Items:     toItemsWire(info.Items, ""),
		Map:       e.Renderer.RenderRoute(info, -1),
	}
}

func (e *Engine) answerMap(req request.StatRequest) Response {
	return Response{RequestID: req.ID, Map: e.Renderer.RenderBaseMap()}
}

func (e *Engine) answerFindCompanies(req request.StatRequest) Response {
	idxs := yellowpages.Filter(e.Dir, req.Query)
	names := make([]string, 0, len(idxs))
	for _, i := range idxs {
		names = append(names, e.Dir.Companies[i].MainName())
	}
	return Response{RequestID: req.ID, Companies: names}
}

func (e *Engine) answerRouteToCompany(req request.StatRequest) Response {
	idxs := yellowpages.Filter(e.Dir, req.Query)
	if len(idxs) == 0 {
		return notFound(req.ID)
	}
	candidates := make([]router.CompanyCandidate, 0, len(idxs))
	for _, i := range idxs {
		c := e.Dir.Companies[i]
		candidates = append(candidates, router.CompanyCandidate{
			Index:       i,
			NearbyStops: c.NearbyStops,
			WorkingTime: c.WorkingTime,
		})
	}

	winner, info, err := router.BuildRouteToClosestCompany(e.Router, req.From, req.StartMinutes, candidates)
	if err != nil {
		return notFound(req.ID)
	}

	companyName := e.Dir.Companies[winner].MainName()
	return Response{
		RequestID: req.ID,
		TotalTime: info.TotalTime,
		Items:     toItemsWire(info.Items, companyName),
		Map:       e.Renderer.RenderRoute(info, winner),
		Companies: []string{companyName},
	}
}

func toItemsWire(items []domain.RouteItem, companyName string) []itemWire {
	out := make([]itemWire, len(items))
	for i, it := range items {
		out[i] = toItemWire(it, companyName)
	}
	return out
}
