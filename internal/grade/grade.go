package grade

import (
	"time"

	gradeDatamodel "github.com/mrsante/records-management/internal/core/datamodel/grade"
)

// Grade is the ordered authority catalog entry. Level is a total-order
// surrogate for authority; exactly one grade carries the root level 99.
type Grade struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Level       int             `json:"level"`
	Color       string          `json:"color"`
	Permissions map[string]bool `json:"permissions"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToDataModel(g *Grade) *gradeDatamodel.Grade {
	return &gradeDatamodel.Grade{
		ID:          g.ID,
		Name:        g.Name,
		Category:    g.Category,
		Level:       g.Level,
		Color:       g.Color,
		Permissions: gradeDatamodel.PermissionMap(g.Permissions),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func FromDataModel(g *gradeDatamodel.Grade) *Grade {
	perms := map[string]bool(g.Permissions)
	if perms == nil {
		perms = map[string]bool{}
	}
	return &Grade{
		ID:          g.ID,
		Name:        g.Name,
		Category:    g.Category,
		Level:       g.Level,
		Color:       g.Color,
		Permissions: perms,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
