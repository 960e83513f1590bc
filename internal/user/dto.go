package user

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type CreateUserDTO struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	BadgeNumber    string `json:"badge_number"`
	Phone          string `json:"phone"`
	IsAdmin        bool   `json:"is_admin"`
	GradeID        int64  `json:"grade_id"`
	VisibleGradeID *int64 `json:"visible_grade_id"`
	IsActive       *bool  `json:"is_active"`
}

func (d *CreateUserDTO) Validate() error {
	if strings.TrimSpace(d.Username) == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if len(d.Password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	if strings.TrimSpace(d.FirstName) == "" {
		return ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if strings.TrimSpace(d.LastName) == "" {
		return ValidationError{Field: "last_name", Message: "last name is required"}
	}
	if d.GradeID <= 0 {
		return ValidationError{Field: "grade_id", Message: "grade is required"}
	}
	return nil
}

// UpdateUserDTO carries a full replacement of the editable fields. Password
// is optional: empty keeps the stored hash. A zero VisibleGradeID clears the
// visible grade.
type UpdateUserDTO struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	BadgeNumber    string `json:"badge_number"`
	Phone          string `json:"phone"`
	IsAdmin        bool   `json:"is_admin"`
	GradeID        int64  `json:"grade_id"`
	VisibleGradeID *int64 `json:"visible_grade_id"`
	IsActive       *bool  `json:"is_active"`
}

func (d *UpdateUserDTO) Validate() error {
	if strings.TrimSpace(d.Username) == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if d.Password != "" && len(d.Password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	if strings.TrimSpace(d.FirstName) == "" {
		return ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if strings.TrimSpace(d.LastName) == "" {
		return ValidationError{Field: "last_name", Message: "last name is required"}
	}
	if d.GradeID <= 0 {
		return ValidationError{Field: "grade_id", Message: "grade is required"}
	}
	return nil
}

type UpdateProfileDTO struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profile_picture"`
}

func (d *UpdateProfileDTO) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" {
		return ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if strings.TrimSpace(d.LastName) == "" {
		return ValidationError{Field: "last_name", Message: "last name is required"}
	}
	return nil
}

func normalizeVisibleGrade(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	return id
}
