package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrsante/records-management/internal"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type CreateReportDTO struct {
	PatientID    int64  `json:"patient_id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	IncidentDate string `json:"incident_date"`
}

func (d *CreateReportDTO) Validate() error {
	if d.PatientID <= 0 {
		return ValidationError{Field: "patient_id", Message: "patient is required"}
	}
	if strings.TrimSpace(d.Title) == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if _, err := time.Parse("2006-01-02", d.IncidentDate); err != nil {
		return internal.NewValidationError("incident_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return nil
}

func (d *CreateReportDTO) ParsedIncidentDate() time.Time {
	t, _ := time.Parse("2006-01-02", d.IncidentDate)
	return t
}

type UpdateReportDTO struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	IncidentDate string `json:"incident_date"`
}

func (d *UpdateReportDTO) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if _, err := time.Parse("2006-01-02", d.IncidentDate); err != nil {
		return internal.NewValidationError("incident_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return nil
}

func (d *UpdateReportDTO) ParsedIncidentDate() time.Time {
	t, _ := time.Parse("2006-01-02", d.IncidentDate)
	return t
}
