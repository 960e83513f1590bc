package user

import (
	"time"

	userDatamodel "github.com/mrsante/records-management/internal/core/datamodel/user"
)

// User is the administrative view of a staff member. GradeLevel always
// reflects the real grade; the visible grade only shows up in roster
// display fields, never here.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	BadgeNumber    string    `json:"badge_number"`
	Phone          string    `json:"phone"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	IsAdmin        bool      `json:"is_admin"`
	GradeID        int64     `json:"grade_id"`
	VisibleGradeID *int64    `json:"visible_grade_id,omitempty"`
	IsActive       bool      `json:"is_active"`
	GradeName      string    `json:"grade_name"`
	GradeCategory  string    `json:"grade_category"`
	GradeLevel     int       `json:"grade_level"`
	GradeColor     string    `json:"grade_color"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RosterEntry is the internal public roster row. Its grade fields are
// display-only: when a visible grade is set they come from it, masking the
// real grade for every viewer.
type RosterEntry struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	BadgeNumber    string `json:"badge_number"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	GradeName      string `json:"grade_name"`
	GradeCategory  string `json:"grade_category"`
	GradeColor     string `json:"grade_color"`
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:             u.ID,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		BadgeNumber:    u.BadgeNumber,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		IsAdmin:        u.IsAdmin,
		GradeID:        u.GradeID,
		VisibleGradeID: u.VisibleGradeID,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:             u.ID,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		BadgeNumber:    u.BadgeNumber,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		IsAdmin:        u.IsAdmin,
		GradeID:        u.GradeID,
		VisibleGradeID: u.VisibleGradeID,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
