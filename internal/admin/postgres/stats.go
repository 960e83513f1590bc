package postgres

import (
	"gorm.io/gorm"

	"github.com/mrsante/records-management/internal/admin"
	appointmentDatamodel "github.com/mrsante/records-management/internal/core/datamodel/appointment"
	patientDatamodel "github.com/mrsante/records-management/internal/core/datamodel/patient"
	reportDatamodel "github.com/mrsante/records-management/internal/core/datamodel/report"
	userDatamodel "github.com/mrsante/records-management/internal/core/datamodel/user"
)

// StatsRepository implements the admin.Repository interface using GORM.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) admin.Repository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CollectStats() (*admin.Stats, error) {
	stats := &admin.Stats{}

	if err := r.db.Model(&userDatamodel.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&userDatamodel.User{}).Where("is_active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&patientDatamodel.Patient{}).Count(&stats.TotalPatients).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&reportDatamodel.MedicalReport{}).Count(&stats.TotalReports).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&appointmentDatamodel.Appointment{}).Count(&stats.TotalAppointments).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&appointmentDatamodel.Appointment{}).
		Where("status = ?", appointmentDatamodel.StatusPending).
		Count(&stats.PendingIntake).Error; err != nil {
		return nil, err
	}

	// Distribution buckets come from grade_id, never visible_grade_id.
	var buckets []*admin.GradeCount
	err := r.db.Raw(`
		SELECT g.id AS grade_id, g.name AS grade_name, g.level, COUNT(u.id) AS user_count
		FROM grades g
		LEFT JOIN users u ON u.grade_id = g.id
		GROUP BY g.id, g.name, g.level
		ORDER BY g.level DESC`).Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	stats.GradeDistribution = buckets

	return stats, nil
}
