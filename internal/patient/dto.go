package patient

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

type UpsertPatientDTO struct {
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	DateOfBirth           string `json:"date_of_birth"`
	Gender                string `json:"gender"`
	Phone                 string `json:"phone"`
	InsuranceNumber       string `json:"insurance_number"`
	BloodType             string `json:"blood_type"`
	Allergies             string `json:"allergies"`
	Address               string `json:"address"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	ChronicConditions     string `json:"chronic_conditions"`
	Photo                 string `json:"photo"`
}

func (d *UpsertPatientDTO) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" {
		return ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if strings.TrimSpace(d.LastName) == "" {
		return ValidationError{Field: "last_name", Message: "last name is required"}
	}
	if d.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", d.DateOfBirth); err != nil {
			return internal.NewValidationError("date_of_birth must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

func (d *UpsertPatientDTO) BirthDate() *time.Time {
	if d.DateOfBirth == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", d.DateOfBirth)
	if err != nil {
		return nil
	}
	return &t
}

type ListQuery struct {
	Search  string
	Page    int
	PerPage int
}

func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 100 {
		q.PerPage = 25
	}
	q.Search = strings.TrimSpace(q.Search)
}
