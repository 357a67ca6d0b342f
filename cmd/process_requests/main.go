// Command process_requests loads a binary artifact written by make_base
// and answers a batch of stat requests against it, printing a JSON array
// of responses to stdout.
package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"transitcatalog/internal/codec"
	"transitcatalog/internal/config"
	"transitcatalog/internal/query"
	"transitcatalog/internal/render"
	"transitcatalog/internal/request"
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
	logger = logger.With("run_id", runID, "cmd", "process_requests")

	in, err := openInput(os.Args)
	if err != nil {
		logger.Error("failed to open input", "error", err)
		return 1
	}
	defer in.Close()

	if err := processRequests(logger, in, os.Stdout); err != nil {
		logger.Error("process_requests failed", "error", err)
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

func processRequests(logger *slog.Logger, in io.Reader, out io.Writer) error {
	start := time.Now()
	doc, err := request.ParseStat(in)
	if err != nil {
		return err
	}
	logger.Debug("parsed stat document",
		"requests", len(doc.Requests), "duration_ms", time.Since(start).Milliseconds())

	loadStart := time.Now()
	bundle, err := codec.Load(doc.SerializationFile)
	if err != nil {
		return err
	}
	logger.Debug("loaded artifact",
		"path", doc.SerializationFile, "duration_ms", time.Since(loadStart).Milliseconds())

	renderer := render.New(bundle.Catalog, bundle.Dir, &bundle.Render)
	engine := query.New(bundle.Catalog, bundle.Dir, bundle.Router, renderer, logger)

	answerStart := time.Now()
	responses := make([]query.Response, 0, len(doc.Requests))
	for _, req := range doc.Requests {
		responses = append(responses, engine.Answer(req))
	}
	logger.Info("answered stat requests",
		"count", len(responses), "duration_ms", time.Since(answerStart).Milliseconds())

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(responses)
}
