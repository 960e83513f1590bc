package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeVisitRecorded = "visit.recorded"
)

// VisitRecordedEvent fires when a medical report is filed, so external
// services can be notified of the visit.
type VisitRecordedEvent struct {
	BaseEvent
	ReportID     int64     `json:"report_id"`
	PatientID    int64     `json:"patient_id"`
	PatientName  string    `json:"patient_name"`
	MedicID      int64     `json:"medic_id"`
	Title        string    `json:"title"`
	IncidentDate time.Time `json:"incident_date"`
}

func NewVisitRecordedEvent(reportID, patientID, medicID int64, patientName, title string, incidentDate time.Time) *VisitRecordedEvent {
	return &VisitRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeVisitRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"report_id":     reportID,
				"patient_id":    patientID,
				"patient_name":  patientName,
				"medic_id":      medicID,
				"title":         title,
				"incident_date": incidentDate,
			},
		},
		ReportID:     reportID,
		PatientID:    patientID,
		PatientName:  patientName,
		MedicID:      medicID,
		Title:        title,
		IncidentDate: incidentDate,
	}
}
