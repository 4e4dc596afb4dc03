// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/planner/internal/clock"
	"github.com/quixsi/planner/internal/ics"
	"github.com/quixsi/planner/internal/model"
	"github.com/quixsi/planner/internal/parser/form"
	"github.com/quixsi/planner/internal/planner"
)

//go:embed *.html *.txt
var templates embed.FS

var errInvalidID = errors.New("invalid id")

func NewPlannerHandler(p *planner.Planner, clk clock.Clock) *PlannerHandler {
	return &PlannerHandler{
		tmpl:    template.Must(template.ParseFS(templates, "main.html", "calendar.html", "events.html", "vendors.html")),
		planner: p,
		clock:   clk,
		logger:  slog.Default().WithGroup("http"),
	}
}

type PlannerHandler struct {
	tmpl    *template.Template
	planner *planner.Planner
	clock   clock.Clock
	logger  *slog.Logger
}

type calendarView struct {
	Month     planner.Month
	PrevYear  int
	PrevMonth time.Month
	NextYear  int
	NextMonth time.Month
}

func newCalendarView(m planner.Month) calendarView {
	view := calendarView{Month: m}
	view.PrevYear, view.PrevMonth = m.Prev()
	view.NextYear, view.NextMonth = m.Next()
	return view
}

type eventView struct {
	Event      *model.Event
	Candidates []planner.CandidateGroup
	Assigned   []planner.VendorStatus
}

func (h *PlannerHandler) RenderPage(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.RenderPage")
	defer span.End()

	month, ok := h.projectCalendar(ctx, c, span)
	if !ok {
		return
	}

	events, err := h.planner.Events(ctx)
	if err != nil {
		h.fail(ctx, c, span, err, "could not list events")
		return
	}
	views := make([]eventView, 0, len(events))
	for _, e := range events {
		view, err := h.eventView(ctx, e.ID)
		if err != nil {
			h.fail(ctx, c, span, err, "could not render event")
			return
		}
		views = append(views, view)
	}

	vendors, err := h.planner.Vendors(ctx)
	if err != nil {
		h.fail(ctx, c, span, err, "could not list vendors")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	err = h.tmpl.ExecuteTemplate(c.Writer, "main.html", gin.H{
		"calendar":   newCalendarView(month),
		"events":     views,
		"vendors":    vendors,
		"categories": model.Categories,
	})
	if err != nil {
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "unable to execute main template", "error", err)
	}
}

func (h *PlannerHandler) RenderCalendar(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.RenderCalendar")
	defer span.End()

	month, ok := h.projectCalendar(ctx, c, span)
	if !ok {
		return
	}
	h.render(ctx, c, span, http.StatusOK, "CALENDAR", newCalendarView(month))
}

func (h *PlannerHandler) CalendarJSON(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.CalendarJSON")
	defer span.End()

	month, ok := h.projectCalendar(ctx, c, span)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, month)
}

// projectCalendar reads year and month from the query and defaults each to
// today's value.
func (h *PlannerHandler) projectCalendar(ctx context.Context, c *gin.Context, span trace.Span) (planner.Month, bool) {
	today := h.clock.Now()
	year, month := today.Year(), today.Month()
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			h.badRequest(ctx, c, span, err, "invalid year")
			return planner.Month{}, false
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			h.fail(ctx, c, span, model.ErrInvalidMonth, "invalid month")
			return planner.Month{}, false
		}
		month = time.Month(m)
	}
	span.SetAttributes(attribute.Int("year", year), attribute.Int("month", int(month)))

	m, err := h.planner.ProjectCalendar(ctx, year, month)
	if err != nil {
		h.fail(ctx, c, span, err, "could not project calendar")
		return planner.Month{}, false
	}
	return m, true
}

func (h *PlannerHandler) CreateEvent(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.CreateEvent")
	defer span.End()

	if err := c.Request.ParseForm(); err != nil {
		h.badRequest(ctx, c, span, err, "could not parse form")
		return
	}
	input := struct {
		Name string `form:"name"`
		Date string `form:"date"`
	}{}
	if err := form.Unmarshal(c.Request.PostForm, &input); err != nil {
		h.badRequest(ctx, c, span, err, "could not parse event")
		return
	}

	event, err := h.planner.CreateEvent(ctx, input.Name, input.Date)
	if err != nil {
		h.fail(ctx, c, span, err, "could not create event")
		return
	}
	plannerChanged(c)
	if !isHtmx(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	view, err := h.eventView(ctx, event.ID)
	if err != nil {
		h.fail(ctx, c, span, err, "could not render event")
		return
	}
	h.render(ctx, c, span, http.StatusCreated, "EVENT", view)
}

func (h *PlannerHandler) CreateVendor(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.CreateVendor")
	defer span.End()

	if err := c.Request.ParseForm(); err != nil {
		h.badRequest(ctx, c, span, err, "could not parse form")
		return
	}
	input := struct {
		Name     string         `form:"name"`
		Category model.Category `form:"category"`
	}{}
	if err := form.Unmarshal(c.Request.PostForm, &input); err != nil {
		h.badRequest(ctx, c, span, err, "could not parse vendor")
		return
	}

	vendor, err := h.planner.CreateVendor(ctx, input.Name, input.Category)
	if err != nil {
		h.fail(ctx, c, span, err, "could not create vendor")
		return
	}
	plannerChanged(c)
	if !isHtmx(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(ctx, c, span, http.StatusCreated, "VENDOR", vendor)
}

func (h *PlannerHandler) MarkVendorAvailable(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.MarkVendorAvailable")
	defer span.End()

	vendorID, err := VendorID(c.Param("id"))
	if err != nil {
		h.badRequest(ctx, c, span, err, "invalid vendor ID")
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		h.badRequest(ctx, c, span, err, "could not parse form")
		return
	}

	vendor, err := h.planner.MarkVendorAvailable(ctx, vendorID, c.Request.PostForm.Get("date"))
	if err != nil {
		h.fail(ctx, c, span, err, "could not update availability")
		return
	}
	plannerChanged(c)
	if !isHtmx(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(ctx, c, span, http.StatusOK, "VENDOR", vendor)
}

func (h *PlannerHandler) DeleteVendor(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.DeleteVendor")
	defer span.End()

	vendorID, err := VendorID(c.Param("id"))
	if err != nil {
		h.badRequest(ctx, c, span, err, "invalid vendor ID")
		return
	}
	if err := h.planner.RemoveVendor(ctx, vendorID); err != nil {
		h.fail(ctx, c, span, err, "could not remove vendor")
		return
	}
	plannerChanged(c)
	// htmx swaps the vendor entry with the empty body.
	c.Status(http.StatusOK)
}

func (h *PlannerHandler) VendorEmail(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.VendorEmail")
	defer span.End()

	vendorID, err := VendorID(c.Param("id"))
	if err != nil {
		h.badRequest(ctx, c, span, err, "invalid vendor ID")
		return
	}
	vendor, err := h.planner.Vendor(ctx, vendorID)
	if err != nil {
		h.fail(ctx, c, span, err, "could not find vendor")
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	if err := RenderEmail(c.Writer, vendor); err != nil {
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "unable to execute email template", "error", err)
	}
}

func (h *PlannerHandler) AssignVendor(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.AssignVendor")
	defer span.End()

	eventID, err := EventID(c.Param("id"))
	if err != nil {
		h.badRequest(ctx, c, span, err, "invalid event ID")
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		h.badRequest(ctx, c, span, err, "could not parse form")
		return
	}
	input := struct {
		VendorID model.VendorID `form:"vendor_id"`
	}{}
	if err := form.Unmarshal(c.Request.PostForm, &input); err != nil {
		h.badRequest(ctx, c, span, err, "invalid vendor ID")
		return
	}
	if input.VendorID == 0 {
		h.badRequest(ctx, c, span, model.ErrVendorRequired, "no vendor selected")
		return
	}

	if err := h.planner.AssignVendor(ctx, eventID, input.VendorID); err != nil {
		h.fail(ctx, c, span, err, "could not assign vendor")
		return
	}
	plannerChanged(c)
	h.renderEvent(ctx, c, span, eventID)
}

func (h *PlannerHandler) UnassignVendor(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.UnassignVendor")
	defer span.End()

	eventID, err := EventID(c.Param("id"))
	if err != nil {
		h.badRequest(ctx, c, span, err, "invalid event ID")
		return
	}
	vendorID, err := VendorID(c.Param("vendorid"))
	if err != nil {
		h.badRequest(ctx, c, span, err, "invalid vendor ID")
		return
	}

	if err := h.planner.UnassignVendor(ctx, eventID, vendorID); err != nil {
		h.fail(ctx, c, span, err, "could not unassign vendor")
		return
	}
	plannerChanged(c)
	h.renderEvent(ctx, c, span, eventID)
}

// RenderEvent answers the refresh of a single event entry.
func (h *PlannerHandler) RenderEvent(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.RenderEvent")
	defer span.End()

	eventID, err := EventID(c.Param("id"))
	if err != nil {
		h.badRequest(ctx, c, span, err, "invalid event ID")
		return
	}
	view, err := h.eventView(ctx, eventID)
	if err != nil {
		h.fail(ctx, c, span, err, "could not render event")
		return
	}
	h.render(ctx, c, span, http.StatusOK, "EVENT", view)
}

func (h *PlannerHandler) renderEvent(ctx context.Context, c *gin.Context, span trace.Span, eventID model.EventID) {
	if !isHtmx(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	view, err := h.eventView(ctx, eventID)
	if err != nil {
		h.fail(ctx, c, span, err, "could not render event")
		return
	}
	h.render(ctx, c, span, http.StatusOK, "EVENT", view)
}

func (h *PlannerHandler) CandidatesJSON(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.CandidatesJSON")
	defer span.End()

	eventID, err := EventID(c.Param("id"))
	if err != nil {
		h.badRequest(ctx, c, span, err, "invalid event ID")
		return
	}
	groups, err := h.planner.ProjectAssignmentCandidates(ctx, eventID)
	if err != nil {
		h.fail(ctx, c, span, err, "could not project candidates")
		return
	}
	if groups == nil {
		groups = []planner.CandidateGroup{}
	}
	c.JSON(http.StatusOK, groups)
}

func (h *PlannerHandler) AssignedJSON(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.AssignedJSON")
	defer span.End()

	eventID, err := EventID(c.Param("id"))
	if err != nil {
		h.badRequest(ctx, c, span, err, "invalid event ID")
		return
	}
	assigned, err := h.planner.AssignedVendors(ctx, eventID)
	if err != nil {
		h.fail(ctx, c, span, err, "could not resolve vendors")
		return
	}
	c.JSON(http.StatusOK, assigned)
}

func (h *PlannerHandler) ExportCalendar(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PlannerHandler.ExportCalendar")
	defer span.End()

	entries, err := ics.Collect(ctx, h.planner)
	if err != nil {
		h.fail(ctx, c, span, err, "could not collect events")
		return
	}
	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="events.ics"`)
	c.Status(http.StatusOK)
	if err := ics.Export(ctx, c.Writer, entries, h.clock.Now()); err != nil {
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "unable to export calendar", "error", err)
	}
}

func (h *PlannerHandler) eventView(ctx context.Context, eventID model.EventID) (eventView, error) {
	event, err := h.planner.Event(ctx, eventID)
	if err != nil {
		return eventView{}, err
	}
	candidates, err := h.planner.ProjectAssignmentCandidates(ctx, eventID)
	if err != nil {
		return eventView{}, err
	}
	assigned, err := h.planner.AssignedVendors(ctx, eventID)
	if err != nil {
		return eventView{}, err
	}
	return eventView{Event: event, Candidates: candidates, Assigned: assigned}, nil
}

func (h *PlannerHandler) render(ctx context.Context, c *gin.Context, span trace.Span, status int, name string, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := h.tmpl.ExecuteTemplate(c.Writer, name, data); err != nil {
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "unable to execute template", "template", name, "error", err)
	}
}

func (h *PlannerHandler) badRequest(ctx context.Context, c *gin.Context, span trace.Span, err error, msg string) {
	span.RecordError(err)
	h.logger.WarnContext(ctx, msg, "error", err)
	c.String(http.StatusBadRequest, msg+": "+err.Error())
}

// fail answers with the status matching err: 400 for bad input, 404 for
// unknown events or vendors and 500 otherwise.
func (h *PlannerHandler) fail(ctx context.Context, c *gin.Context, span trace.Span, err error, msg string) {
	switch {
	case model.IsValidation(err):
		h.badRequest(ctx, c, span, err, msg)
	case model.IsNotFound(err):
		span.RecordError(err)
		h.logger.WarnContext(ctx, msg, "error", err)
		c.String(http.StatusNotFound, err.Error())
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.ErrorContext(ctx, msg, "error", err)
		c.String(http.StatusInternalServerError, msg)
	}
}

// ChangedEvent is the htmx event fired after every mutation. The calendar and
// the event entries listen for it and reload themselves.
const ChangedEvent = "planner-changed"

func plannerChanged(c *gin.Context) {
	c.Header("HX-Trigger", ChangedEvent)
}

func isHtmx(c *gin.Context) bool {
	return c.Request.Header.Get("Hx-Request") == "true"
}

func EventID(raw string) (model.EventID, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return model.EventID(id), nil
}

func VendorID(raw string) (model.VendorID, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return model.VendorID(id), nil
}
