package patient

import "time"

type Patient struct {
	ID                    int64      `gorm:"primaryKey"`
	FirstName             string     `gorm:"column:first_name;not null"`
	LastName              string     `gorm:"column:last_name;not null"`
	DateOfBirth           *time.Time `gorm:"column:date_of_birth"`
	Gender                string     `gorm:"column:gender"`
	Phone                 string     `gorm:"column:phone"`
	InsuranceNumber       string     `gorm:"column:insurance_number"`
	BloodType             string     `gorm:"column:blood_type"`
	Allergies             string     `gorm:"column:allergies"`
	Address               string     `gorm:"column:address"`
	EmergencyContactName  string     `gorm:"column:emergency_contact_name"`
	EmergencyContactPhone string     `gorm:"column:emergency_contact_phone"`
	ChronicConditions     string     `gorm:"column:chronic_conditions"`
	Photo                 string     `gorm:"column:photo"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Patient) TableName() string {
	return "patients"
}
