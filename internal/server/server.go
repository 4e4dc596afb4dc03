// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/planner/internal/clock"
	"github.com/quixsi/planner/internal/planner"
	"github.com/quixsi/planner/internal/server/templates"
)

//go:embed all:static
var staticFS embed.FS

func NewServer(serviceName, staticDir string, p *planner.Planner, clk clock.Clock) *Server {
	s := &Server{
		logger:      slog.Default().WithGroup("http"),
		serviceName: serviceName,
		staticDir:   staticDir,
		planner:     p,
		clock:       clk,
	}
	s.mux = s.routes()
	return s
}

type Server struct {
	serviceName string
	staticDir   string
	logger      *slog.Logger
	planner     *planner.Planner
	clock       clock.Clock
	mux         *gin.Engine
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	mux := gin.New()

	mux.Use(
		sloggin.NewWithConfig(s.logger,
			sloggin.Config{
				DefaultLevel:     slog.LevelInfo,
				ClientErrorLevel: slog.LevelWarn,
				ServerErrorLevel: slog.LevelError,
			},
		),
		gin.Recovery(), otelgin.Middleware(s.serviceName), slogAddTraceAttributes,
	)

	var staticDir fs.FS
	var err error
	switch {
	case s.staticDir != "":
		staticDir = os.DirFS(s.staticDir)
	default:
		staticDir, err = fs.Sub(staticFS, "static")
		if err != nil {
			panic(err)
		}
	}
	mux.StaticFS("/static", http.FS(staticDir))

	mux.GET("/health", health)

	h := templates.NewPlannerHandler(s.planner, s.clock)
	mux.GET("/", h.RenderPage)
	mux.GET("/calendar", h.RenderCalendar)
	mux.GET("/calendar.ics", h.ExportCalendar)
	mux.POST("/events", h.CreateEvent)
	mux.POST("/vendors", h.CreateVendor)

	events := mux.Group("/events/:id", s.eventExists)
	events.GET("", h.RenderEvent)
	events.POST("/vendors", h.AssignVendor)
	events.DELETE("/vendors/:vendorid", h.UnassignVendor)

	vendors := mux.Group("/vendors/:id", s.vendorExists)
	vendors.POST("/availability", h.MarkVendorAvailable)
	vendors.GET("/email", h.VendorEmail)
	vendors.DELETE("", h.DeleteVendor)

	api := mux.Group("/api")
	api.GET("/calendar", h.CalendarJSON)
	api.GET("/events/:id/candidates", s.eventExists, h.CandidatesJSON)
	api.GET("/events/:id/vendors", s.eventExists, h.AssignedJSON)

	mux.NoRoute(notFound)
	return mux
}

func (s *Server) eventExists(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Middleware.eventExists")
	defer span.End()

	id, err := templates.EventID(c.Param("id"))
	if err != nil {
		span.RecordError(err)
		notFound(c)
		c.Abort()
		return
	}
	span.SetAttributes(attribute.Int64("event.id", int64(id)))
	if _, err := s.planner.Event(ctx, id); err != nil {
		span.RecordError(err)
		notFound(c)
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) vendorExists(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Middleware.vendorExists")
	defer span.End()

	id, err := templates.VendorID(c.Param("id"))
	if err != nil {
		span.RecordError(err)
		notFound(c)
		c.Abort()
		return
	}
	span.SetAttributes(attribute.Int64("vendor.id", int64(id)))
	if _, err := s.planner.Vendor(ctx, id); err != nil {
		span.RecordError(err)
		notFound(c)
		c.Abort()
		return
	}
	c.Next()
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
}

func slogAddTraceAttributes(c *gin.Context) {
	sloggin.AddCustomAttributes(c,
		slog.String("trace-id", trace.SpanFromContext(c.Request.Context()).SpanContext().TraceID().String()),
	)
	sloggin.AddCustomAttributes(c,
		slog.String("span-id", trace.SpanFromContext(c.Request.Context()).SpanContext().SpanID().String()),
	)
	c.Next()
}
