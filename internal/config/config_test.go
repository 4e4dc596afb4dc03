// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	testCases := []struct {
		name    string
		path    string
		want    Config
		wantErr bool
	}{
		{
			name: "no file",
			path: "",
			want: *DefaultConfig(),
		},
		{
			name: "partial file is normalized",
			path: write("partial.yaml", "addr: 127.0.0.1:9000\ndb: kvdb://planner.db\n"),
			want: Config{
				ServiceName: "event-planner",
				Addr:        "127.0.0.1:9000",
				DB:          "kvdb://planner.db",
				LogLevel:    "INFO",
			},
		},
		{
			name: "all fields",
			path: write("full.yaml", `
service_name: planner
addr: ":8081"
db: mem://
otlp_grpc: localhost:4317
log_level: DEBUG
static_dir: ./static
seed: testdata/seed.json
`),
			want: Config{
				ServiceName: "planner",
				Addr:        ":8081",
				DB:          "mem://",
				OTLPGRPC:    "localhost:4317",
				LogLevel:    "DEBUG",
				StaticDir:   "./static",
				Seed:        "testdata/seed.json",
			},
		},
		{
			name:    "missing file",
			path:    filepath.Join(dir, "missing.yaml"),
			wantErr: true,
		},
		{
			name:    "bad log level",
			path:    write("level.yaml", "log_level: LOUD\n"),
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			path:    write("broken.yaml", "addr: [\n"),
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Load(tc.path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr {
				return
			}
			if *got != tc.want {
				t.Fatalf("got %+v, expected %+v", *got, tc.want)
			}
		})
	}
}

func TestConfig_Level(t *testing.T) {
	cfg := &Config{LogLevel: "warn"}
	level, err := cfg.Level()
	if err != nil {
		t.Fatal(err)
	}
	if level != slog.LevelWarn {
		t.Fatalf("got %v", level)
	}
}

func TestConfig_Backend(t *testing.T) {
	testCases := []struct {
		name       string
		db         string
		wantScheme string
		wantPath   string
		wantErr    error
	}{
		{name: "memory", db: "mem://", wantScheme: BackendMem},
		{name: "relative bolt file", db: "kvdb://testdata/test.db", wantScheme: BackendKVDB, wantPath: "testdata/test.db"},
		{name: "absolute bolt file", db: "kvdb:///var/lib/planner.db", wantScheme: BackendKVDB, wantPath: "/var/lib/planner.db"},
		{name: "bolt without path", db: "kvdb://", wantErr: ErrUnknownBackend},
		{name: "postgres", db: "postgres://localhost/planner", wantErr: ErrUnknownBackend},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{DB: tc.db}
			scheme, path, err := cfg.Backend()
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if scheme != tc.wantScheme || path != tc.wantPath {
				t.Fatalf("got %q %q, expected %q %q", scheme, path, tc.wantScheme, tc.wantPath)
			}
		})
	}
}
