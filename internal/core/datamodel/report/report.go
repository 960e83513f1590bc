package report

import "time"

type MedicalReport struct {
	ID           int64     `gorm:"primaryKey"`
	PatientID    int64     `gorm:"column:patient_id;not null;index"`
	MedicID      *int64    `gorm:"column:medic_id;index"`
	Title        string    `gorm:"column:title;not null"`
	Content      string    `gorm:"column:content"`
	IncidentDate time.Time `gorm:"column:incident_date;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (MedicalReport) TableName() string {
	return "medical_reports"
}
