package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lentera-edu/timetable-api/internal/dto"
	"github.com/lentera-edu/timetable-api/internal/models"
	appErrors "github.com/lentera-edu/timetable-api/pkg/errors"
	"github.com/lentera-edu/timetable-api/pkg/response"
)

type stubService struct {
	run        *dto.TimetableRunResponse
	err        error
	blob       []byte
	lastRoster []byte
}

func (s *stubService) Generate(context.Context, dto.GenerateTimetableRequest) (*dto.TimetableRunResponse, error) {
	return s.run, s.err
}

func (s *stubService) GenerateFromRoster(_ context.Context, data []byte) (*dto.TimetableRunResponse, error) {
	s.lastRoster = data
	return s.run, s.err
}

func (s *stubService) Get(context.Context, string) (*dto.TimetableRunResponse, error) {
	return s.run, s.err
}

func (s *stubService) Workbook(context.Context, string) ([]byte, error) {
	return s.blob, s.err
}

func (s *stubService) ExportCSV(context.Context, string) ([]byte, error) {
	return s.blob, s.err
}

func (s *stubService) ExportPDF(context.Context, string) ([]byte, error) {
	return s.blob, s.err
}

func setupRouter(svc TimetableService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewTimetableHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func sampleRun() *dto.TimetableRunResponse {
	return &dto.TimetableRunResponse{
		RunID: "run-1",
		Stats: models.RunStats{Offerings: 1, Entries: 1, Scheduled: 1},
		Entries: []models.ScheduleEntry{{
			Lecturer: "Budi Santoso",
			Course:   "Algoritma",
			Section:  "TI21A",
			Day:      "SENIN",
			Start:    models.MustTimeOfDay("08:00"),
			End:      models.MustTimeOfDay("09:40"),
			Room:     "A3-1",
			Status:   models.StatusScheduled,
		}},
	}
}

func TestGenerateEndpoint(t *testing.T) {
	router := setupRouter(&stubService{run: sampleRun()})

	body := `{"offerings":[{"lecturer":"Budi Santoso","course":"Algoritma","credits":2,"sections":["TI21A"]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/timetables/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data dto.TimetableRunResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "run-1", envelope.Data.RunID)
	assert.Equal(t, 1, envelope.Data.Stats.Scheduled)
}

func TestGenerateEndpointRejectsBadJSON(t *testing.T) {
	router := setupRouter(&stubService{run: sampleRun()})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/timetables/generate", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
}

func TestGenerateEndpointPropagatesServiceError(t *testing.T) {
	router := setupRouter(&stubService{err: appErrors.Clone(appErrors.ErrValidation, "bad roster")})

	body := `{"offerings":[{"lecturer":"A","course":"B","credits":2,"sections":["TI21A"]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/timetables/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadEndpoint(t *testing.T) {
	stub := &stubService{run: sampleRun()}
	router := setupRouter(stub)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("roster", "roster.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("xlsx-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/timetables/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []byte("xlsx-bytes"), stub.lastRoster)
}

func TestUploadEndpointRequiresFile(t *testing.T) {
	router := setupRouter(&stubService{run: sampleRun()})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/timetables/upload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEndpointNotFound(t *testing.T) {
	router := setupRouter(&stubService{err: appErrors.Clone(appErrors.ErrRunNotFound, "")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timetables/run-x", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkbookEndpoint(t *testing.T) {
	router := setupRouter(&stubService{blob: []byte("xlsx-bytes")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timetables/run-1/workbook", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "xlsx-bytes", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "jadwal_output.xlsx")
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
}

func TestExportEndpoints(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
	}{
		{"csv", "/api/v1/timetables/run-1/export.csv", "text/csv"},
		{"pdf", "/api/v1/timetables/run-1/export.pdf", "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&stubService{blob: []byte("payload")})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "payload", rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
		})
	}
}
