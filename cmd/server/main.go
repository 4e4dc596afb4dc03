// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/quixsi/planner/internal/clock"
	"github.com/quixsi/planner/internal/config"
	"github.com/quixsi/planner/internal/db"
	"github.com/quixsi/planner/internal/db/jsondb"
	"github.com/quixsi/planner/internal/db/kvdb"
	"github.com/quixsi/planner/internal/db/memdb"
	"github.com/quixsi/planner/internal/planner"
	"github.com/quixsi/planner/internal/server"
)

func main() {
	def := config.DefaultConfig()
	var (
		configPath  = flag.String("config", "", "path to a yaml config file")
		serviceName = flag.String("service-name", def.ServiceName, "otel service name")
		addr        = flag.String("addr", def.Addr, "default server address")
		dbStr       = flag.String("db", def.DB, "database connection string, mem:// or kvdb://<path>")
		otlpAddr    = flag.String("otlp-grpc", "", "default otlp/gRPC address, by default disabled. Example value: localhost:4317")
		logLevelArg = flag.String("log-level", def.LogLevel, "log level")
		staticDir   = flag.String("static-dir", "", "path to static directory")
		seedPath    = flag.String("seed", "", "optional json file with events and vendors to start with")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("unable to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "service-name":
			cfg.ServiceName = *serviceName
		case "addr":
			cfg.Addr = *addr
		case "db":
			cfg.DB = *dbStr
		case "otlp-grpc":
			cfg.OTLPGRPC = *otlpAddr
		case "log-level":
			cfg.LogLevel = *logLevelArg
		case "static-dir":
			cfg.StaticDir = *staticDir
		case "seed":
			cfg.Seed = *seedPath
		}
	})
	cfg.Normalize()

	logLevel, err := cfg.Level()
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(jsonHandler)
	if err != nil {
		logger.Error("unable to parse log level", "level-input", cfg.LogLevel, "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)
	logger.Info("start and listen", "address", cfg.Addr)
	logger.Info("otlp/gRPC", "address", cfg.OTLPGRPC, "service", cfg.ServiceName)
	logger.Info("static-dir", "directory", cfg.StaticDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPGRPC != "" {
		dialCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		grpcOptions := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock()}
		conn, err := grpc.DialContext(dialCtx, cfg.OTLPGRPC, grpcOptions...)
		if err != nil {
			logger.Error("failed to create gRPC connection to collector", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		otelExporter, err := otlptracegrpc.New(dialCtx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			logger.Error("failed to create trace exporter", "error", err)
			os.Exit(1)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(otelExporter),
		)
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("failed to flush traces", "error", err)
			}
		}()
		otel.SetTracerProvider(tp)
	}

	var (
		eventStore      db.EventStore
		vendorStore     db.VendorStore
		assignmentStore db.AssignmentStore
	)

	scheme, path, err := cfg.Backend()
	if err != nil {
		logger.Error("unable to parse db connection string", "error", err)
		os.Exit(1)
	}

	switch scheme {
	case config.BackendKVDB:
		bdb, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			logger.Error("could not open bolt database", "path", path, "error", err)
			os.Exit(1)
		}
		defer bdb.Close()

		if eventStore, err = kvdb.NewEventStore(bdb); err != nil {
			logger.Error("could not initialize event bucket", "error", err)
			os.Exit(1)
		}
		if vendorStore, err = kvdb.NewVendorStore(bdb); err != nil {
			logger.Error("could not initialize vendor bucket", "error", err)
			os.Exit(1)
		}
		if assignmentStore, err = kvdb.NewAssignmentStore(bdb); err != nil {
			logger.Error("could not initialize assignment bucket", "error", err)
			os.Exit(1)
		}
	default:
		eventStore = memdb.NewEventStore()
		vendorStore = memdb.NewVendorStore()
		assignmentStore = memdb.NewAssignmentStore()
	}

	p := planner.New(eventStore, vendorStore, assignmentStore)

	if cfg.Seed != "" {
		seed, err := jsondb.LoadSeed(cfg.Seed)
		if err != nil {
			logger.Error("could not load seed", "path", cfg.Seed, "error", err)
			os.Exit(1)
		}
		if err := seed.Apply(ctx, p); err != nil {
			logger.Error("could not apply seed", "path", cfg.Seed, "error", err)
			os.Exit(1)
		}
		logger.Info("seed applied", "events", len(seed.Events), "vendors", len(seed.Vendors))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewServer(cfg.ServiceName, cfg.StaticDir, p, clock.NewSystem()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("error during listen and serve", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown")
}
