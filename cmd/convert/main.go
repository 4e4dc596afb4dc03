// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/quixsi/planner/internal/db/jsondb"
	"github.com/quixsi/planner/internal/db/memdb"
	"github.com/quixsi/planner/internal/ics"
	"github.com/quixsi/planner/internal/planner"
)

// convert replays a seed file into an in-memory planner and writes the
// resulting events as iCalendar.
func main() {
	var (
		inputPath  = flag.String("input-path", "testdata/seed.json", "seed json file")
		outputPath = flag.String("output-path", "", "ics output file, stdout if empty")
	)
	flag.Parse()

	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{})
	logger := slog.New(jsonHandler)
	slog.SetDefault(logger)

	ctx := context.Background()

	seed, err := jsondb.LoadSeed(*inputPath)
	if err != nil {
		logger.Error("could not load seed", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	p := planner.New(memdb.NewEventStore(), memdb.NewVendorStore(), memdb.NewAssignmentStore())
	if err := seed.Apply(ctx, p); err != nil {
		logger.Error("could not apply seed", "error", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			logger.Error("could not create output file", "path", *outputPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	logger.Info("start converting")
	entries, err := ics.Collect(ctx, p)
	if err != nil {
		logger.Error("could not collect events", "error", err)
		os.Exit(1)
	}
	if err := ics.Export(ctx, out, entries, time.Now()); err != nil {
		logger.Error("could not write calendar", "error", err)
		os.Exit(1)
	}
	logger.Info("finished converting", "events", len(entries))
}
