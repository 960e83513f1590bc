package appointment

import "time"

const (
	StatusPending   = "pending"
	StatusAssigned  = "assigned"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID              int64      `gorm:"primaryKey"`
	PatientName     string     `gorm:"column:patient_name;not null"`
	PatientPhone    string     `gorm:"column:patient_phone"`
	PatientContact  string     `gorm:"column:patient_contact"`
	AppointmentType string     `gorm:"column:appointment_type"`
	PreferredDate   *time.Time `gorm:"column:preferred_date"`
	PreferredTime   string     `gorm:"column:preferred_time"`
	Description     string     `gorm:"column:description"`
	Status          string     `gorm:"column:status;default:pending;index"`
	AssignedMedicID *int64     `gorm:"column:assigned_medic_id;index"`
	CompletionNotes string     `gorm:"column:completion_notes"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}
