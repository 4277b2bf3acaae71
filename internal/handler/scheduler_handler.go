package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiftsync/timetable-api/internal/dto"
	"github.com/shiftsync/timetable-api/internal/models"
	"github.com/shiftsync/timetable-api/internal/service"
	appErrors "github.com/shiftsync/timetable-api/pkg/errors"
	"github.com/shiftsync/timetable-api/pkg/export"
	"github.com/shiftsync/timetable-api/pkg/response"
)

type scheduleGenerator interface {
	Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error)
}

// RunReader is the audit-trail read seam GET /runs/:id depends on. It is
// exported so callers can hold a nil interface value (rather than a
// typed-nil concrete pointer) when the audit database is disabled.
type RunReader interface {
	GetByID(ctx context.Context, id string) (*service.RunRecord, error)
}

// SchedulerHandler exposes the timetable generation endpoints.
type SchedulerHandler struct {
	service scheduleGenerator
	runs    RunReader
	pdf     *export.PDFExporter
	csv     *export.CSVExporter
}

// NewSchedulerHandler constructs the handler. runs may be nil when the
// audit database is disabled.
func NewSchedulerHandler(svc *service.SchedulerService, runs RunReader) *SchedulerHandler {
	return &SchedulerHandler{
		service: svc,
		runs:    runs,
		pdf:     export.NewPDFExporter(),
		csv:     export.NewCSVExporter(),
	}
}

// Generate godoc
// @Summary Generate a weekly timetable
// @Description Runs the constraint solver against the supplied college settings, rooms, and faculty workloads.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.GenerateRequest true "Generation payload"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 422 {object} dto.GenerateResponse
// @Router /generate [post]
func (h *SchedulerHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		respondGenerateError(c, err)
		return
	}

	// The generate response shape is mandated verbatim at the top level
	// (status/message/total_classes/schedule/run_id/cached) — no
	// response.Envelope wrapper, same bypass health_handler.go uses.
	c.JSON(http.StatusOK, result)
}

// ExportPDF godoc
// @Summary Generate a timetable and render it as a printable PDF
// @Tags Scheduler
// @Accept json
// @Produce application/pdf
// @Param payload body dto.GenerateRequest true "Generation payload"
// @Success 200 {file} byte
// @Router /generate/export.pdf [post]
func (h *SchedulerHandler) ExportPDF(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		respondGenerateError(c, err)
		return
	}

	entries := toScheduleEntries(result.Schedule)
	dataset := export.TimetableDataset(entries)
	body, err := h.pdf.Render(dataset, "weekly timetable")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to render timetable pdf"))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=timetable.pdf")
	c.Data(http.StatusOK, "application/pdf", body)
}

// ExportCSV godoc
// @Summary Generate a timetable and render it as CSV rows
// @Tags Scheduler
// @Accept json
// @Produce text/csv
// @Param payload body dto.GenerateRequest true "Generation payload"
// @Success 200 {file} byte
// @Router /generate/export.csv [post]
func (h *SchedulerHandler) ExportCSV(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		respondGenerateError(c, err)
		return
	}

	entries := toScheduleEntries(result.Schedule)
	dataset := export.TimetableDataset(entries)
	body, err := h.csv.Render(dataset, "weekly timetable")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to render timetable csv"))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=timetable.csv")
	c.Data(http.StatusOK, "text/csv", body)
}

// GetRun godoc
// @Summary Fetch the audit record for a previous generation run
// @Tags Scheduler
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /runs/{id} [get]
func (h *SchedulerHandler) GetRun(c *gin.Context) {
	if h.runs == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "audit trail is disabled"))
		return
	}
	run, err := h.runs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrNotFound.Code, http.StatusNotFound, "run not found"))
		return
	}
	response.JSON(c, http.StatusOK, run)
}

// respondGenerateError renders the failure kinds Generate can return.
// A pre-solve validation failure and an infeasible solve are rendered
// in their own top-level shapes, outside the response.Envelope wrapper;
// every other error goes through response.Error's envelope, with an
// untyped error's own text as the message.
func respondGenerateError(c *gin.Context, err error) {
	var failure *service.ValidationFailure
	if isValidationFailure(err, &failure) {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Detail: dto.ValidationErrorDetail{ValidationErrors: failure.Errors},
		})
		return
	}

	appErr := appErrors.FromError(err)
	if appErr.Code == appErrors.ErrInfeasible.Code {
		// The 422 body must carry an empty schedule, not omit the field
		// entirely — an absent key and a proven-infeasible result are
		// different facts for a caller to branch on.
		c.JSON(http.StatusUnprocessableEntity, dto.GenerateResponse{
			Status:   "infeasible",
			Message:  appErr.Message,
			Schedule: []dto.ScheduleEntryResult{},
		})
		return
	}

	if appErr.Err == err {
		// err was not a typed *Error: surface its raw text instead of the
		// generic internal-error message.
		appErr = appErrors.Clone(appErr, err.Error())
	}
	response.Error(c, appErr)
}

func isValidationFailure(err error, target **service.ValidationFailure) bool {
	failure, ok := err.(*service.ValidationFailure)
	if !ok {
		return false
	}
	*target = failure
	return true
}

// toScheduleEntries converts the wire-level schedule rows back into
// domain models, only so the PDF and CSV exporters can project them into
// a grid — export.TimetableDataset works off the domain shape, not the DTO.
func toScheduleEntries(in []dto.ScheduleEntryResult) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(in))
	for i, e := range in {
		out[i] = models.ScheduleEntry{
			WorkloadID:  e.WorkloadID,
			FacultyID:   e.FacultyID,
			FacultyName: e.FacultyName,
			Subject:     e.Subject,
			Targets:     e.Targets,
			Type:        models.WorkloadType(e.Type),
			Room:        e.Room,
			Day:         e.Day,
			TimeSlot:    e.TimeSlot,
		}
	}
	return out
}
