package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrsante/records-management/internal"
	appointmentDatamodel "github.com/mrsante/records-management/internal/core/datamodel/appointment"
	reportDatamodel "github.com/mrsante/records-management/internal/core/datamodel/report"
	userDatamodel "github.com/mrsante/records-management/internal/core/datamodel/user"
	"github.com/mrsante/records-management/internal/user"
)

// UserRepository implements the user.Repository interface using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

type userRow struct {
	userDatamodel.User
	GradeName     string `gorm:"column:grade_name"`
	GradeCategory string `gorm:"column:grade_category"`
	GradeLevel    int    `gorm:"column:grade_level"`
	GradeColor    string `gorm:"column:grade_color"`
}

func toDomain(row *userRow) *user.User {
	u := user.FromDataModel(&row.User)
	u.GradeName = row.GradeName
	u.GradeCategory = row.GradeCategory
	u.GradeLevel = row.GradeLevel
	u.GradeColor = row.GradeColor
	return u
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var rows []*userRow
	err := r.db.Raw(`
		SELECT u.*,
		       g.name AS grade_name, g.category AS grade_category,
		       g.level AS grade_level, g.color AS grade_color
		FROM users u
		LEFT JOIN grades g ON u.grade_id = g.id
		ORDER BY g.level DESC, u.last_name ASC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toDomain(row))
	}
	return users, nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var row userRow
	err := r.db.Raw(`
		SELECT u.*,
		       g.name AS grade_name, g.category AS grade_category,
		       g.level AS grade_level, g.color AS grade_color
		FROM users u
		LEFT JOIN grades g ON u.grade_id = g.id
		WHERE u.id = ?`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, internal.ErrUserNotFound
	}
	return toDomain(&row), nil
}

// GetRoster lists active staff with grade fields already resolved to the
// display grade. The real grade never leaves this query when a visible
// grade is set.
func (r *UserRepository) GetRoster() ([]*user.RosterEntry, error) {
	var rows []*user.RosterEntry
	err := r.db.Raw(`
		SELECT u.id, u.first_name, u.last_name, u.badge_number, u.phone, u.profile_picture,
		       COALESCE(vg.name, g.name) AS grade_name,
		       COALESCE(vg.category, g.category) AS grade_category,
		       COALESCE(vg.color, g.color) AS grade_color
		FROM users u
		LEFT JOIN grades g ON u.grade_id = g.id
		LEFT JOIN grades vg ON u.visible_grade_id = vg.id
		WHERE u.is_active = true
		ORDER BY COALESCE(vg.level, g.level) DESC, u.last_name ASC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *UserRepository) UsernameExists(username string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.Model(&userDatamodel.User{}).Where("username = ?", username)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	res := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"username":         u.Username,
			"password_hash":    u.PasswordHash,
			"first_name":       u.FirstName,
			"last_name":        u.LastName,
			"badge_number":     u.BadgeNumber,
			"phone":            u.Phone,
			"is_admin":         u.IsAdmin,
			"grade_id":         u.GradeID,
			"visible_grade_id": u.VisibleGradeID,
			"is_active":        u.IsActive,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateProfile(id int64, firstName, lastName, phone, profilePicture string) error {
	res := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"first_name":      firstName,
			"last_name":       lastName,
			"phone":           phone,
			"profile_picture": profilePicture,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

// DeleteWithNullify detaches the user's medical reports and appointment
// assignments before deleting the row. The target's grade level is read
// first and handed to authorize; everything runs in one transaction so a
// refusal or failure leaves everything in place.
func (r *UserRepository) DeleteWithNullify(id int64, authorize func(gradeLevel int) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var rows []int
		err := tx.Raw(`
			SELECT COALESCE(g.level, 0)
			FROM users u
			LEFT JOIN grades g ON u.grade_id = g.id
			WHERE u.id = ?`, id).Scan(&rows).Error
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return internal.ErrUserNotFound
		}
		if err := authorize(rows[0]); err != nil {
			return err
		}

		if err := tx.Model(&reportDatamodel.MedicalReport{}).
			Where("medic_id = ?", id).
			Update("medic_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&appointmentDatamodel.Appointment{}).
			Where("assigned_medic_id = ?", id).
			Update("assigned_medic_id", nil).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&userDatamodel.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrUserNotFound
		}
		return nil
	})
}
