// Command make_base ingests a transit network and yellow-pages
// description, builds the routing graph and schematic map layout, and
// writes the frozen result to a binary artifact for process_requests to
// load.
package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"transitcatalog/internal/catalog"
	"transitcatalog/internal/codec"
	"transitcatalog/internal/config"
	"transitcatalog/internal/layout"
	"transitcatalog/internal/render"
	"transitcatalog/internal/request"
	"transitcatalog/internal/router"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) != 1 && len(os.Args) != 2 {
		return 5
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	runID := uuid.New().String()
	logger = logger.With("run_id", runID, "cmd", "make_base")

	in, err := openInput(os.Args)
	if err != nil {
		logger.Error("failed to open input", "error", err)
		return 1
	}
	defer in.Close()

	if err := makeBase(logger, in); err != nil {
		logger.Error("make_base failed", "error", err)
		return 1
	}
	return 0
}

func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 2 {
		f, err := os.Open(args[1])
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return io.NopCloser(os.Stdin), nil
}

func makeBase(logger *slog.Logger, in io.Reader) error {
	start := time.Now()
	logger.Debug("parsing input document")
	doc, err := request.ParseMakeBase(in)
	if err != nil {
		return err
	}
	logger.Debug("parsed input document",
		"stops", len(doc.Stops), "buses", len(doc.Buses), "companies", len(doc.YellowPages.Companies),
		"duration_ms", time.Since(start).Milliseconds())

	buildStart := time.Now()
	cat, err := catalog.Build(doc.Stops, doc.Buses)
	if err != nil {
		return err
	}
	logger.Debug("built catalog", "duration_ms", time.Since(buildStart).Milliseconds())

	routeStart := time.Now()
	r, err := router.Build(cat, doc.RoutingSettings)
	if err != nil {
		return err
	}
	logger.Debug("built routing graph",
		"vertices", len(cat.StopNames), "duration_ms", time.Since(routeStart).Milliseconds())

	layoutStart := time.Now()
	layout.Run(cat, &doc.YellowPages, &doc.RenderSettings)
	logger.Debug("computed map layout", "duration_ms", time.Since(layoutStart).Milliseconds())

	warmStart := time.Now()
	renderer := render.New(cat, &doc.YellowPages, &doc.RenderSettings)
	base := renderer.BaseMapSVG()
	logger.Debug("pre-warmed base map svg",
		"bytes", len(base.Render()), "duration_ms", time.Since(warmStart).Milliseconds())

	saveStart := time.Now()
	bundle := codec.Bundle{
		Catalog: cat,
		Dir:     &doc.YellowPages,
		Router:  r,
		Routing: doc.RoutingSettings,
		Render:  doc.RenderSettings,
	}
	if err := codec.Save(doc.SerializationFile, bundle); err != nil {
		return err
	}

	info, statErr := os.Stat(doc.SerializationFile)
	size := "unknown"
	if statErr == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	logger.Info("wrote artifact",
		"path", doc.SerializationFile, "size", size, "duration_ms", time.Since(saveStart).Milliseconds())

	return nil
}
