package report

import (
	"time"

	reportDatamodel "github.com/mrsante/records-management/internal/core/datamodel/report"
)

type Report struct {
	ID           int64     `json:"id"`
	PatientID    int64     `json:"patient_id"`
	PatientName  string    `json:"patient_name,omitempty"`
	MedicID      *int64    `json:"medic_id,omitempty"`
	MedicName    string    `json:"medic_name,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	IncidentDate time.Time `json:"incident_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromDataModel(r *reportDatamodel.MedicalReport) *Report {
	return &Report{
		ID:           r.ID,
		PatientID:    r.PatientID,
		MedicID:      r.MedicID,
		Title:        r.Title,
		Content:      r.Content,
		IncidentDate: r.IncidentDate,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
