package user

import "time"

// User carries no gorm default tag on IsActive: with one, Create skips the
// zero value and a deactivated account would be silently stored active.
type User struct {
	ID             int64     `gorm:"primaryKey"`
	Username       string    `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash   string    `gorm:"column:password_hash;not null"`
	FirstName      string    `gorm:"column:first_name;not null"`
	LastName       string    `gorm:"column:last_name;not null"`
	BadgeNumber    string    `gorm:"column:badge_number"`
	Phone          string    `gorm:"column:phone"`
	ProfilePicture string    `gorm:"column:profile_picture"`
	IsAdmin        bool      `gorm:"column:is_admin"`
	GradeID        int64     `gorm:"column:grade_id;not null"`
	VisibleGradeID *int64    `gorm:"column:visible_grade_id"`
	IsActive       bool      `gorm:"column:is_active"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
