package grade

import "github.com/mrsante/records-management/internal"

// UpsertGradeDTO is shared by create and update requests.
type UpsertGradeDTO struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Level       int             `json:"level"`
	Color       string          `json:"color"`
	Permissions map[string]bool `json:"permissions"`
}

func (d *UpsertGradeDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if d.Level < 1 || d.Level > 99 {
		return internal.NewValidationError("level must be between 1 and 99", internal.ErrCodeInvalidLevel)
	}
	return nil
}

// ApplyDefaults mirrors the intake defaults for optional fields.
func (d *UpsertGradeDTO) ApplyDefaults() {
	if d.Color == "" {
		d.Color = "#4a90a4"
	}
	if d.Permissions == nil {
		d.Permissions = map[string]bool{}
	}
}
