package appointment

import (
	"time"

	appointmentDatamodel "github.com/mrsante/records-management/internal/core/datamodel/appointment"
)

type Appointment struct {
	ID              int64      `json:"id"`
	PatientName     string     `json:"patient_name"`
	PatientPhone    string     `json:"patient_phone,omitempty"`
	PatientContact  string     `json:"patient_contact,omitempty"`
	AppointmentType string     `json:"appointment_type,omitempty"`
	PreferredDate   *time.Time `json:"preferred_date,omitempty"`
	PreferredTime   string     `json:"preferred_time,omitempty"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	AssignedMedicID *int64     `json:"assigned_medic_id,omitempty"`
	AssignedMedic   string     `json:"assigned_medic,omitempty"`
	CompletionNotes string     `json:"completion_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Stats summarizes the intake queue by status, plus the viewer's own
// completed count.
type Stats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Assigned    int64 `json:"assigned"`
	Completed   int64 `json:"completed"`
	Cancelled   int64 `json:"cancelled"`
	MyCompleted int64 `json:"my_completed"`
}

func FromDataModel(a *appointmentDatamodel.Appointment) *Appointment {
	return &Appointment{
		ID:              a.ID,
		PatientName:     a.PatientName,
		PatientPhone:    a.PatientPhone,
		PatientContact:  a.PatientContact,
		AppointmentType: a.AppointmentType,
		PreferredDate:   a.PreferredDate,
		PreferredTime:   a.PreferredTime,
		Description:     a.Description,
		Status:          a.Status,
		AssignedMedicID: a.AssignedMedicID,
		CompletionNotes: a.CompletionNotes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
