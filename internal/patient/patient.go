package patient

import (
	"time"

	patientDatamodel "github.com/mrsante/records-management/internal/core/datamodel/patient"
)

type Patient struct {
	ID                    int64      `json:"id"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	DateOfBirth           *time.Time `json:"date_of_birth,omitempty"`
	Gender                string     `json:"gender,omitempty"`
	Phone                 string     `json:"phone,omitempty"`
	InsuranceNumber       string     `json:"insurance_number,omitempty"`
	BloodType             string     `json:"blood_type,omitempty"`
	Allergies             string     `json:"allergies,omitempty"`
	Address               string     `json:"address,omitempty"`
	EmergencyContactName  string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `json:"emergency_contact_phone,omitempty"`
	ChronicConditions     string     `json:"chronic_conditions,omitempty"`
	Photo                 string     `json:"photo,omitempty"`
	ReportCount           int64      `json:"report_count"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// ReportSummary is a patient's report history entry, with the author's
// display name resolved.
type ReportSummary struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	IncidentDate time.Time `json:"incident_date"`
	MedicID      *int64    `json:"medic_id,omitempty"`
	MedicName    string    `json:"medic_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type PatientDetail struct {
	Patient
	Reports []*ReportSummary `json:"reports"`
}

type PatientPage struct {
	Patients []*Patient `json:"patients"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PerPage  int        `json:"per_page"`
}

func ToDataModel(p *Patient) *patientDatamodel.Patient {
	return &patientDatamodel.Patient{
		ID:                    p.ID,
		FirstName:             p.FirstName,
		LastName:              p.LastName,
		DateOfBirth:           p.DateOfBirth,
		Gender:                p.Gender,
		Phone:                 p.Phone,
		InsuranceNumber:       p.InsuranceNumber,
		BloodType:             p.BloodType,
		Allergies:             p.Allergies,
		Address:               p.Address,
		EmergencyContactName:  p.EmergencyContactName,
		EmergencyContactPhone: p.EmergencyContactPhone,
		ChronicConditions:     p.ChronicConditions,
		Photo:                 p.Photo,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func FromDataModel(p *patientDatamodel.Patient) *Patient {
	return &Patient{
		ID:                    p.ID,
		FirstName:             p.FirstName,
		LastName:              p.LastName,
		DateOfBirth:           p.DateOfBirth,
		Gender:                p.Gender,
		Phone:                 p.Phone,
		InsuranceNumber:       p.InsuranceNumber,
		BloodType:             p.BloodType,
		Allergies:             p.Allergies,
		Address:               p.Address,
		EmergencyContactName:  p.EmergencyContactName,
		EmergencyContactPhone: p.EmergencyContactPhone,
		ChronicConditions:     p.ChronicConditions,
		Photo:                 p.Photo,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
