package postgres

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/auth"
	gradeDatamodel "github.com/mrsante/records-management/internal/core/datamodel/grade"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByUsername(username string) (string, string, bool, error) {
	var userID string
	var passwordHash string
	var isActive bool

	query := `SELECT id, password_hash, is_active FROM users WHERE username = ?`
	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&userID, &passwordHash, &isActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", false, internal.ErrUserNotFound
		}
		return "", "", false, err
	}
	return userID, passwordHash, isActive, nil
}

// GetPrincipal performs the dual grade join: authority columns come from the
// real grade (grade_id), display columns from the visible grade when set,
// falling back to the real grade. The two joins never share a result column.
func (r *Repository) GetPrincipal(userID int64) (*auth.Principal, error) {
	var p auth.Principal
	var perms gradeDatamodel.PermissionMap

	query := `
SELECT
  u.id, u.username, u.first_name, u.last_name, u.badge_number, u.is_admin,
  u.grade_id, u.visible_grade_id,
  g.level,
  g.permissions,
  COALESCE(vg.name, g.name),
  COALESCE(vg.color, g.color)
FROM users u
LEFT JOIN grades g ON u.grade_id = g.id
LEFT JOIN grades vg ON u.visible_grade_id = vg.id
WHERE u.id = ? AND u.is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(
		&p.UserID, &p.Username, &p.FirstName, &p.LastName, &p.BadgeNumber, &p.IsAdmin,
		&p.GradeID, &p.VisibleGradeID,
		&p.GradeLevel,
		&perms,
		&p.DisplayGradeName,
		&p.DisplayGradeColor,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	p.Permissions = map[string]bool(perms)
	return &p, nil
}
