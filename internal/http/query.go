package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ticket-analytics/internal/model"
	"ticket-analytics/internal/service"
)

type filterQuery struct {
	CompanyID      string `form:"companyId"`
	StartDate      string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string `form:"endDate" validate:"omitempty,datetime=2006-01-02"`
	JobName        string `form:"jobName" validate:"max=200"`
	Material       string `form:"material" validate:"max=200"`
	HaulingCompany string `form:"haulingCompany" validate:"max=200"`
	TruckType      string `form:"truckType" validate:"max=200"`
	Direction      string `form:"direction"`
	Page           int    `form:"page" validate:"gte=0"`
	PageSize       int    `form:"pageSize" validate:"gte=0"`
}

func (h *Handler) bindQuery(c *gin.Context) (filterQuery, bool) {
	var q filterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid query parameters"))
		return q, false
	}
	if err := h.validator.Struct(q); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return q, false
	}
	return q, true
}

// filter converts raw query values into a TicketFilter. "all" and empty
// values become wildcards.
func (q filterQuery) filter() (model.TicketFilter, error) {
	direction, err := model.ParseDirection(q.Direction)
	if err != nil {
		return model.TicketFilter{}, fmt.Errorf("%w: %v", service.ErrInvalidFilter, err)
	}

	filter := model.TicketFilter{
		CompanyID:      strings.TrimSpace(q.CompanyID),
		JobName:        model.ParseSelection(q.JobName),
		Material:       model.ParseSelection(q.Material),
		HaulingCompany: model.ParseSelection(q.HaulingCompany),
		TruckType:      model.ParseSelection(q.TruckType),
		Direction:      direction,
	}
	if q.StartDate != "" {
		filter.Range.From, _ = time.Parse(model.DateLayout, q.StartDate)
	}
	if q.EndDate != "" {
		filter.Range.To, _ = time.Parse(model.DateLayout, q.EndDate)
	}
	return filter, nil
}
