package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiftsync/timetable-api/internal/dto"
	"github.com/shiftsync/timetable-api/internal/service"
	appErrors "github.com/shiftsync/timetable-api/pkg/errors"
	"github.com/shiftsync/timetable-api/pkg/response"
)

// SubstituteHandler exposes the free-faculty search endpoint.
type SubstituteHandler struct {
	service *service.SubstituteService
}

// NewSubstituteHandler constructs the handler.
func NewSubstituteHandler(svc *service.SubstituteService) *SubstituteHandler {
	return &SubstituteHandler{service: svc}
}

// Search godoc
// @Summary Find faculty free at a given day and time slot
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param day query string true "Day"
// @Param time_index query int true "Time slot index"
// @Param payload body dto.SubstituteSearchRequest true "Faculty roster and schedule snapshot"
// @Success 200 {object} response.Envelope
// @Router /substitute-search [post]
func (h *SubstituteHandler) Search(c *gin.Context) {
	var query dto.SubstituteSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "day and time_index query parameters are required"))
		return
	}

	var req dto.SubstituteSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid substitute search payload"))
		return
	}

	candidates := h.service.Search(req, query.Day, query.TimeIndex)
	response.JSON(c, http.StatusOK, candidates)
}
