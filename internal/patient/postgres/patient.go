package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrsante/records-management/internal"
	patientDatamodel "github.com/mrsante/records-management/internal/core/datamodel/patient"
	reportDatamodel "github.com/mrsante/records-management/internal/core/datamodel/report"
	"github.com/mrsante/records-management/internal/patient"
)

// PatientRepository implements the patient.Repository interface using GORM.
type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) patient.Repository {
	return &PatientRepository{db: db}
}

type patientRow struct {
	patientDatamodel.Patient
	ReportCount int64 `gorm:"column:report_count"`
}

func (r *PatientRepository) List(query patient.ListQuery) ([]*patient.Patient, int64, error) {
	where := "1=1"
	args := []interface{}{}
	if query.Search != "" {
		where = "(p.first_name LIKE ? OR p.last_name LIKE ? OR p.insurance_number LIKE ?)"
		like := "%" + query.Search + "%"
		args = append(args, like, like, like)
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM patients p WHERE " + where
	if err := r.db.Raw(countSQL, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.PerPage
	listSQL := `
		SELECT p.*, COUNT(mr.id) AS report_count
		FROM patients p
		LEFT JOIN medical_reports mr ON mr.patient_id = p.id
		WHERE ` + where + `
		GROUP BY p.id
		ORDER BY p.last_name ASC, p.first_name ASC
		LIMIT ? OFFSET ?`
	args = append(args, query.PerPage, offset)

	var rows []*patientRow
	if err := r.db.Raw(listSQL, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	patients := make([]*patient.Patient, 0, len(rows))
	for _, row := range rows {
		p := patient.FromDataModel(&row.Patient)
		p.ReportCount = row.ReportCount
		patients = append(patients, p)
	}
	return patients, total, nil
}

func (r *PatientRepository) GetByID(id int64) (*patient.Patient, error) {
	var row patientDatamodel.Patient
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrPatientNotFound
		}
		return nil, err
	}
	p := patient.FromDataModel(&row)
	count, err := countReports(r.db, id)
	if err != nil {
		return nil, err
	}
	p.ReportCount = count
	return p, nil
}

func (r *PatientRepository) GetReports(patientID int64) ([]*patient.ReportSummary, error) {
	var rows []*patient.ReportSummary
	err := r.db.Raw(`
		SELECT mr.id, mr.title, mr.incident_date, mr.medic_id, mr.created_at,
		       COALESCE(u.first_name || ' ' || u.last_name, '') AS medic_name
		FROM medical_reports mr
		LEFT JOIN users u ON mr.medic_id = u.id
		WHERE mr.patient_id = ?
		ORDER BY mr.incident_date DESC`, patientID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func countReports(db *gorm.DB, patientID int64) (int64, error) {
	var count int64
	err := db.Model(&reportDatamodel.MedicalReport{}).
		Where("patient_id = ?", patientID).
		Count(&count).Error
	return count, err
}

func (r *PatientRepository) Create(p *patientDatamodel.Patient) error {
	return r.db.Create(p).Error
}

func (r *PatientRepository) Update(p *patientDatamodel.Patient) error {
	res := r.db.Model(&patientDatamodel.Patient{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"first_name":              p.FirstName,
			"last_name":               p.LastName,
			"date_of_birth":           p.DateOfBirth,
			"gender":                  p.Gender,
			"phone":                   p.Phone,
			"insurance_number":        p.InsuranceNumber,
			"blood_type":              p.BloodType,
			"allergies":               p.Allergies,
			"address":                 p.Address,
			"emergency_contact_name":  p.EmergencyContactName,
			"emergency_contact_phone": p.EmergencyContactPhone,
			"chronic_conditions":      p.ChronicConditions,
			"photo":                   p.Photo,
			"updated_at":              time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrPatientNotFound
	}
	return nil
}

// DeleteIfNoReports counts the patient's reports and, when there are none,
// deletes the row in the same transaction. A positive return means the
// patient was left untouched.
func (r *PatientRepository) DeleteIfNoReports(id int64) (int64, error) {
	var dependents int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		count, err := countReports(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			dependents = count
			return nil
		}

		res := tx.Where("id = ?", id).Delete(&patientDatamodel.Patient{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrPatientNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return dependents, nil
}

// DeleteCascade removes the patient's reports and the patient row together.
// Either both deletes commit or neither does.
func (r *PatientRepository) DeleteCascade(id int64) (int64, error) {
	var reportsDeleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("patient_id = ?", id).Delete(&reportDatamodel.MedicalReport{})
		if res.Error != nil {
			return res.Error
		}
		reportsDeleted = res.RowsAffected

		del := tx.Where("id = ?", id).Delete(&patientDatamodel.Patient{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			return internal.ErrPatientNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reportsDeleted, nil
}
