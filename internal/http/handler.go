package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"ticket-analytics/internal/export"
	"ticket-analytics/internal/http/middleware"
	"ticket-analytics/internal/model"
	"ticket-analytics/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	reports   *service.ReportService
	validator *validator.Validate
	log       zerolog.Logger
	now       func() time.Time
}

func NewHandler(reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{reports: reports, validator: validator.New(), log: log, now: time.Now}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.GET("/healthz", h.healthz)

	protected := r.Group("/api")
	protected.Use(authMiddleware)

	protected.GET("/overview", report(h, h.reports.Overview))
	protected.GET("/lookups", h.lookups)
	protected.GET("/tickets/detail/:ticketNumber", h.ticketDetail)

	job := protected.Group("/job-dashboard")
	job.GET("/kpis", report(h, h.reports.JobKPIs))
	job.GET("/summary/vendor", report(h, h.reports.VendorSummary))
	job.GET("/summary/material", report(h, h.reports.MaterialSummary))
	h.registerTickets(job, "Job Tickets")

	material := protected.Group("/material-dashboard")
	material.GET("/kpis", report(h, h.reports.MaterialKPIs))
	material.GET("/summary/sites", report(h, h.reports.SitesSummary))
	material.GET("/summary/jobs", report(h, h.reports.JobsSummary))
	h.registerTickets(material, "Material Tickets")

	hauler := protected.Group("/hauler-dashboard")
	hauler.GET("/kpis", report(h, h.reports.HaulerKPIs))
	hauler.GET("/summary/billable-units", report(h, h.reports.BillableUnits))
	hauler.GET("/summary/cost-center", report(h, h.reports.CostCenter))
	h.registerTickets(hauler, "Hauler Tickets")

	forensic := protected.Group("/forensic")
	forensic.GET("/late-submission", report(h, h.reports.LateSubmissions))
	forensic.GET("/late-submission/export", h.exportLateSubmissions)
	forensic.GET("/efficiency-outlier", report(h, h.reports.EfficiencyOutliers))
	forensic.GET("/efficiency-outlier/export", h.exportEfficiencyOutliers)
}

func (h *Handler) registerTickets(g *gin.RouterGroup, exportTitle string) {
	g.GET("/tickets", h.listTickets)
	g.GET("/tickets/detail/:ticketNumber", h.ticketDetail)
	g.GET("/tickets/export", h.exportTickets(exportTitle))
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// report serves any read that takes the standard filter query.
func report[T any](h *Handler, run func(context.Context, model.Principal, model.TicketFilter) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.MustPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
			return
		}

		query, ok := h.bindQuery(c)
		if !ok {
			return
		}
		filter, err := query.filter()
		if err != nil {
			h.handleError(c, err)
			return
		}

		data, err := run(c.Request.Context(), principal, filter)
		if err != nil {
			h.handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, successResponse(data))
	}
}

func (h *Handler) listTickets(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	query, ok := h.bindQuery(c)
	if !ok {
		return
	}
	filter, err := query.filter()
	if err != nil {
		h.handleError(c, err)
		return
	}

	page, err := h.reports.Tickets(c.Request.Context(), principal, filter, query.Page, query.PageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(page))
}

func (h *Handler) ticketDetail(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	detail, err := h.reports.TicketDetail(c.Request.Context(), principal, c.Query("companyId"), c.Param("ticketNumber"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(detail))
}

func (h *Handler) lookups(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	lists, err := h.reports.Lookups(c.Request.Context(), principal, c.Query("companyId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(lists))
}

func (h *Handler) exportTickets(title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.MustPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
			return
		}

		query, ok := h.bindQuery(c)
		if !ok {
			return
		}
		filter, err := query.filter()
		if err != nil {
			h.handleError(c, err)
			return
		}

		tickets, err := h.reports.ExportTickets(c.Request.Context(), principal, filter)
		if err != nil {
			h.handleError(c, err)
			return
		}

		now := h.now()
		h.writeWorkbook(c, export.TicketsSheet(title, tickets, now), fileName(title, now))
	}
}

func (h *Handler) exportLateSubmissions(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	query, ok := h.bindQuery(c)
	if !ok {
		return
	}
	filter, err := query.filter()
	if err != nil {
		h.handleError(c, err)
		return
	}

	rows, err := h.reports.LateSubmissions(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	now := h.now()
	h.writeWorkbook(c, export.LateSubmissionsSheet(rows, now), fileName("Late Submissions", now))
}

func (h *Handler) exportEfficiencyOutliers(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	query, ok := h.bindQuery(c)
	if !ok {
		return
	}
	filter, err := query.filter()
	if err != nil {
		h.handleError(c, err)
		return
	}

	rows, err := h.reports.EfficiencyOutliers(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	now := h.now()
	h.writeWorkbook(c, export.EfficiencyOutliersSheet(rows, now), fileName("Efficiency Outliers", now))
}

func (h *Handler) writeWorkbook(c *gin.Context, sheet export.Sheet, name string) {
	var buf bytes.Buffer
	if err := sheet.Write(&buf); err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func fileName(title string, now time.Time) string {
	slug := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	return fmt.Sprintf("%s-%s.xlsx", slug, now.Format(model.DateLayout))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDHeader)).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
