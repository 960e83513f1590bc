package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrsante/records-management/internal"
	patientDatamodel "github.com/mrsante/records-management/internal/core/datamodel/patient"
	reportDatamodel "github.com/mrsante/records-management/internal/core/datamodel/report"
	"github.com/mrsante/records-management/internal/report"
)

// ReportRepository implements the report.Repository interface using GORM.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &ReportRepository{db: db}
}

type reportRow struct {
	reportDatamodel.MedicalReport
	PatientName string `gorm:"column:patient_name"`
	MedicName   string `gorm:"column:medic_name"`
}

func toDomain(row *reportRow) *report.Report {
	rep := report.FromDataModel(&row.MedicalReport)
	rep.PatientName = row.PatientName
	rep.MedicName = row.MedicName
	return rep
}

const reportSelect = `
	SELECT mr.*,
	       COALESCE(p.first_name || ' ' || p.last_name, '') AS patient_name,
	       COALESCE(u.first_name || ' ' || u.last_name, '') AS medic_name
	FROM medical_reports mr
	LEFT JOIN patients p ON mr.patient_id = p.id
	LEFT JOIN users u ON mr.medic_id = u.id`

func (r *ReportRepository) List(patientID int64) ([]*report.Report, error) {
	sql := reportSelect
	args := []interface{}{}
	if patientID > 0 {
		sql += " WHERE mr.patient_id = ?"
		args = append(args, patientID)
	}
	sql += " ORDER BY mr.incident_date DESC"

	var rows []*reportRow
	if err := r.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	reports := make([]*report.Report, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, toDomain(row))
	}
	return reports, nil
}

func (r *ReportRepository) GetByID(id int64) (*report.Report, error) {
	var row reportRow
	if err := r.db.Raw(reportSelect+" WHERE mr.id = ?", id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, internal.ErrReportNotFound
	}
	return toDomain(&row), nil
}

func (r *ReportRepository) PatientExists(patientID int64) (bool, error) {
	var count int64
	err := r.db.Model(&patientDatamodel.Patient{}).Where("id = ?", patientID).Count(&count).Error
	return count > 0, err
}

func (r *ReportRepository) Create(rep *reportDatamodel.MedicalReport) error {
	return r.db.Create(rep).Error
}

func (r *ReportRepository) Update(id int64, title, content string, incidentDate time.Time) error {
	res := r.db.Model(&reportDatamodel.MedicalReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":         title,
			"content":       content,
			"incident_date": incidentDate,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepository) Delete(id int64) error {
	res := r.db.Where("id = ?", id).Delete(&reportDatamodel.MedicalReport{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrReportNotFound
	}
	return nil
}
