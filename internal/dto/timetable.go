package dto

import "github.com/lentera-edu/timetable-api/internal/models"

// OfferingRequest is one roster row submitted via the API.
type OfferingRequest struct {
	Lecturer string   `json:"lecturer" validate:"required"`
	Course   string   `json:"course" validate:"required"`
	Credits  int      `json:"credits" validate:"required,min=1,max=12"`
	Sections []string `json:"sections" validate:"required,min=1,dive,required"`
	Days     []string `json:"days"`
	Times    string   `json:"times"`
}

// GenerateTimetableRequest submits a full roster for one allocation run.
type GenerateTimetableRequest struct {
	Offerings []OfferingRequest `json:"offerings" validate:"required,min=1,dive"`
}

// TimetableRunResponse returns a finished run.
type TimetableRunResponse struct {
	RunID    string                 `json:"runId"`
	Stats    models.RunStats        `json:"stats"`
	Entries  []models.ScheduleEntry `json:"entries"`
	Failures []models.FailureRecord `json:"failures"`
}
