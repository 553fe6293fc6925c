package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lentera-edu/timetable-api/internal/dto"
	appErrors "github.com/lentera-edu/timetable-api/pkg/errors"
	"github.com/lentera-edu/timetable-api/pkg/response"
)

const maxRosterBytes = 10 << 20

// TimetableService defines the operations the handler needs.
type TimetableService interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.TimetableRunResponse, error)
	GenerateFromRoster(ctx context.Context, data []byte) (*dto.TimetableRunResponse, error)
	Get(ctx context.Context, id string) (*dto.TimetableRunResponse, error)
	Workbook(ctx context.Context, id string) ([]byte, error)
	ExportCSV(ctx context.Context, id string) ([]byte, error)
	ExportPDF(ctx context.Context, id string) ([]byte, error)
}

// TimetableHandler exposes allocation runs over HTTP.
type TimetableHandler struct {
	service TimetableService
}

func NewTimetableHandler(service TimetableService) *TimetableHandler {
	return &TimetableHandler{service: service}
}

// RegisterRoutes mounts the timetable endpoints on the given group.
func (h *TimetableHandler) RegisterRoutes(rg *gin.RouterGroup) {
	timetables := rg.Group("/timetables")
	{
		timetables.POST("/generate", h.Generate)
		timetables.POST("/upload", h.Upload)
		timetables.GET("/:id", h.Get)
		timetables.GET("/:id/workbook", h.Workbook)
		timetables.GET("/:id/export.csv", h.ExportCSV)
		timetables.GET("/:id/export.pdf", h.ExportPDF)
	}
}

// Generate runs an allocation over a JSON roster.
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	run, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, run)
}

// Upload runs an allocation over an uploaded xlsx roster.
func (h *TimetableHandler) Upload(c *gin.Context) {
	file, _, err := c.Request.FormFile("roster")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "roster file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxRosterBytes))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read roster file"))
		return
	}

	run, err := h.service.GenerateFromRoster(c.Request.Context(), data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, run)
}

// Get returns a stored run.
func (h *TimetableHandler) Get(c *gin.Context) {
	run, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, run)
}

// Workbook streams the distribution xlsx for a stored run.
func (h *TimetableHandler) Workbook(c *gin.Context) {
	data, err := h.service.Workbook(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Blob(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "jadwal_output.xlsx", data)
}

// ExportCSV streams the flat CSV export for a stored run.
func (h *TimetableHandler) ExportCSV(c *gin.Context) {
	data, err := h.service.ExportCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Blob(c, "text/csv", "jadwal.csv", data)
}

// ExportPDF streams the flat PDF export for a stored run.
func (h *TimetableHandler) ExportPDF(c *gin.Context) {
	data, err := h.service.ExportPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Blob(c, "application/pdf", "jadwal.pdf", data)
}
