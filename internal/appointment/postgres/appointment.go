package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/appointment"
	appointmentDatamodel "github.com/mrsante/records-management/internal/core/datamodel/appointment"
)

// AppointmentRepository implements the appointment.Repository interface using GORM.
type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) appointment.Repository {
	return &AppointmentRepository{db: db}
}

type appointmentRow struct {
	appointmentDatamodel.Appointment
	AssignedMedic string `gorm:"column:assigned_medic"`
}

func toDomain(row *appointmentRow) *appointment.Appointment {
	a := appointment.FromDataModel(&row.Appointment)
	a.AssignedMedic = row.AssignedMedic
	return a
}

const appointmentSelect = `
	SELECT a.*,
	       COALESCE(u.first_name || ' ' || u.last_name, '') AS assigned_medic
	FROM appointments a
	LEFT JOIN users u ON a.assigned_medic_id = u.id`

func (r *AppointmentRepository) List(query appointment.ListQuery, viewerID int64) ([]*appointment.Appointment, error) {
	sql := appointmentSelect + " WHERE 1=1"
	args := []interface{}{}
	if query.Status != "" {
		sql += " AND a.status = ?"
		args = append(args, query.Status)
	}
	if query.AssignedToMe {
		sql += " AND a.assigned_medic_id = ?"
		args = append(args, viewerID)
	}
	sql += " ORDER BY a.created_at DESC"

	var rows []*appointmentRow
	if err := r.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	appts := make([]*appointment.Appointment, 0, len(rows))
	for _, row := range rows {
		appts = append(appts, toDomain(row))
	}
	return appts, nil
}

func (r *AppointmentRepository) GetByID(id int64) (*appointment.Appointment, error) {
	var row appointmentRow
	if err := r.db.Raw(appointmentSelect+" WHERE a.id = ?", id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, internal.ErrAppointmentNotFound
	}
	return toDomain(&row), nil
}

func (r *AppointmentRepository) Create(a *appointmentDatamodel.Appointment) error {
	return r.db.Create(a).Error
}

func (r *AppointmentRepository) UpdateStatus(id int64, status string, assignedMedicID *int64, completionNotes string) error {
	updates := map[string]interface{}{
		"status":            status,
		"assigned_medic_id": assignedMedicID,
		"updated_at":        time.Now(),
	}
	if completionNotes != "" {
		updates["completion_notes"] = completionNotes
	}

	res := r.db.Model(&appointmentDatamodel.Appointment{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(id int64) error {
	res := r.db.Where("id = ?", id).Delete(&appointmentDatamodel.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) Stats(viewerID int64) (*appointment.Stats, error) {
	type statusCount struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}

	var rows []statusCount
	err := r.db.Model(&appointmentDatamodel.Appointment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &appointment.Stats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case appointmentDatamodel.StatusPending:
			stats.Pending = row.Count
		case appointmentDatamodel.StatusAssigned:
			stats.Assigned = row.Count
		case appointmentDatamodel.StatusCompleted:
			stats.Completed = row.Count
		case appointmentDatamodel.StatusCancelled:
			stats.Cancelled = row.Count
		}
	}

	if viewerID > 0 {
		err = r.db.Model(&appointmentDatamodel.Appointment{}).
			Where("status = ? AND assigned_medic_id = ?", appointmentDatamodel.StatusCompleted, viewerID).
			Count(&stats.MyCompleted).Error
		if err != nil {
			return nil, err
		}
	}

	return stats, nil
}
