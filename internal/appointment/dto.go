package appointment

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

// IntakeDTO is submitted without authentication, so everything beyond the
// name is optional and the payload carries no identifiers.
type IntakeDTO struct {
	PatientName     string `json:"patient_name"`
	PatientPhone    string `json:"patient_phone"`
	PatientContact  string `json:"patient_contact"`
	AppointmentType string `json:"appointment_type"`
	PreferredDate   string `json:"preferred_date"`
	PreferredTime   string `json:"preferred_time"`
	Description     string `json:"description"`
}

func (d *IntakeDTO) Validate() error {
	if strings.TrimSpace(d.PatientName) == "" {
		return ValidationError{Field: "patient_name", Message: "name is required"}
	}
	if d.PatientPhone == "" && d.PatientContact == "" {
		return ValidationError{Field: "patient_phone", Message: "a phone number or contact detail is required"}
	}
	if d.PreferredDate != "" {
		if _, err := time.Parse("2006-01-02", d.PreferredDate); err != nil {
			return internal.NewValidationError("preferred_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

func (d *IntakeDTO) ParsedPreferredDate() *time.Time {
	if d.PreferredDate == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", d.PreferredDate)
	if err != nil {
		return nil
	}
	return &t
}

type CompleteDTO struct {
	CompletionNotes string `json:"completion_notes"`
}

type ListQuery struct {
	Status       string
	AssignedToMe bool
}
