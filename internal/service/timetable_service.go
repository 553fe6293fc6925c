package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lentera-edu/timetable-api/internal/dto"
	"github.com/lentera-edu/timetable-api/internal/models"
	"github.com/lentera-edu/timetable-api/internal/roster"
	"github.com/lentera-edu/timetable-api/internal/timetable"
	"github.com/lentera-edu/timetable-api/internal/workbook"
	appErrors "github.com/lentera-edu/timetable-api/pkg/errors"
	"github.com/lentera-edu/timetable-api/pkg/export"
)

// TimetableService runs allocations over a fresh ledger per request and keeps
// finished runs available for download until their TTL expires.
type TimetableService struct {
	policy    timetable.Policy
	catalog   timetable.Catalog
	prefs     timetable.FloorPreferences
	validator *validator.Validate
	logger    *zap.Logger
	store     RunStore
	metrics   *MetricsService
}

// NewTimetableService wires the allocation dependencies. Nil validator,
// logger, and store fall back to sane defaults.
func NewTimetableService(
	policy timetable.Policy,
	catalog timetable.Catalog,
	prefs timetable.FloorPreferences,
	validate *validator.Validate,
	logger *zap.Logger,
	store RunStore,
	metrics *MetricsService,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewMemoryRunStore(0)
	}
	return &TimetableService{
		policy:    policy,
		catalog:   catalog,
		prefs:     prefs,
		validator: validate,
		logger:    logger,
		store:     store,
		metrics:   metrics,
	}
}

// Generate allocates the submitted offerings and stores the finished run.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.TimetableRunResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	offerings := make([]models.CourseOffering, 0, len(req.Offerings))
	for _, item := range req.Offerings {
		offerings = append(offerings, models.CourseOffering{
			Lecturer: item.Lecturer,
			Course:   item.Course,
			Credits:  item.Credits,
			Sections: item.Sections,
			Days:     item.Days,
			Times:    item.Times,
		})
	}
	return s.run(ctx, offerings)
}

// GenerateFromRoster parses an uploaded xlsx roster and allocates it.
func (s *TimetableService) GenerateFromRoster(ctx context.Context, data []byte) (*dto.TimetableRunResponse, error) {
	offerings, err := roster.ParseExcel(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRosterFormat.Code, appErrors.ErrRosterFormat.Status, "roster could not be parsed")
	}
	return s.run(ctx, offerings)
}

func (s *TimetableService) run(ctx context.Context, offerings []models.CourseOffering) (*dto.TimetableRunResponse, error) {
	started := time.Now()

	engine := timetable.NewEngine(s.policy, s.catalog, s.prefs, s.logger)
	entries, failures, err := engine.Allocate(offerings)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed offering rejected")
	}

	run := TimetableRun{
		ID:        uuid.NewString(),
		Entries:   entries,
		Failures:  failures,
		Stats:     buildStats(offerings, entries, failures),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, run); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable run")
	}

	s.metrics.ObserveRun(time.Since(started), run.Stats)
	s.logger.Info("timetable run finished",
		zap.String("run_id", run.ID),
		zap.Int("offerings", run.Stats.Offerings),
		zap.Int("entries", run.Stats.Entries),
		zap.Int("fallback", run.Stats.Fallback),
		zap.Duration("took", time.Since(started)),
	)

	return &dto.TimetableRunResponse{
		RunID:    run.ID,
		Stats:    run.Stats,
		Entries:  run.Entries,
		Failures: run.Failures,
	}, nil
}

// Get returns a stored run by id.
func (s *TimetableService) Get(ctx context.Context, id string) (*dto.TimetableRunResponse, error) {
	run, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TimetableRunResponse{
		RunID:    run.ID,
		Stats:    run.Stats,
		Entries:  run.Entries,
		Failures: run.Failures,
	}, nil
}

// Workbook renders the distribution xlsx for a stored run.
func (s *TimetableService) Workbook(ctx context.Context, id string) ([]byte, error) {
	run, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := workbook.Bytes(run.Entries, run.Failures)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render workbook")
	}
	return data, nil
}

// ExportCSV renders the flat CSV export for a stored run.
func (s *TimetableService) ExportCSV(ctx context.Context, id string) ([]byte, error) {
	run, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := export.CSV(run.Entries)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return data, nil
}

// ExportPDF renders the flat PDF export for a stored run.
func (s *TimetableService) ExportPDF(ctx context.Context, id string) ([]byte, error) {
	run, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := export.PDF(run.Entries, fmt.Sprintf("Jadwal Kuliah %s", run.CreatedAt.Format("2006-01-02")))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return data, nil
}

func (s *TimetableService) load(ctx context.Context, id string) (TimetableRun, error) {
	if id == "" {
		return TimetableRun{}, appErrors.Clone(appErrors.ErrValidation, "run id is required")
	}
	run, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return TimetableRun{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable run")
	}
	if !ok {
		return TimetableRun{}, appErrors.Clone(appErrors.ErrRunNotFound, "")
	}
	return run, nil
}

func buildStats(offerings []models.CourseOffering, entries []models.ScheduleEntry, failures []models.FailureRecord) models.RunStats {
	stats := models.RunStats{
		Offerings: len(offerings),
		Entries:   len(entries),
		Fallback:  len(failures),
	}
	for _, entry := range entries {
		switch {
		case entry.Fallback():
			// counted via failures
		case entry.Status == models.StatusOnline:
			stats.Online++
		default:
			stats.Scheduled++
		}
	}
	return stats
}
