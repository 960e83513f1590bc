package grade

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PermissionMap is the grade's permission-flag set, stored as a JSON column.
// A key present with value true grants the capability.
type PermissionMap map[string]bool

func (p PermissionMap) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *PermissionMap) Scan(src interface{}) error {
	if src == nil {
		*p = PermissionMap{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported type for PermissionMap: %T", src)
	}
}

type Grade struct {
	ID          int64         `gorm:"primaryKey"`
	Name        string        `gorm:"column:name;uniqueIndex;not null"`
	Category    string        `gorm:"column:category"`
	Level       int           `gorm:"column:level;not null"`
	Color       string        `gorm:"column:color"`
	Permissions PermissionMap `gorm:"column:permissions;type:jsonb"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

func (Grade) TableName() string {
	return "grades"
}
