package diagnosis

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SymptomList is the set of symptom keys a rule matches on, stored as JSON.
type SymptomList []string

func (s SymptomList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SymptomList) Scan(src interface{}) error {
	if src == nil {
		*s = SymptomList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for SymptomList: %T", src)
	}
}

type Rule struct {
	ID                 int64       `gorm:"primaryKey"`
	Name               string      `gorm:"column:name;uniqueIndex;not null"`
	SymptomKeys        SymptomList `gorm:"column:symptom_keys;type:jsonb"`
	MinHeartRate       *int        `gorm:"column:min_heart_rate"`
	MaxHeartRate       *int        `gorm:"column:max_heart_rate"`
	MinSystolicBP      *int        `gorm:"column:min_systolic_bp"`
	MaxSystolicBP      *int        `gorm:"column:max_systolic_bp"`
	MinTemperature     *float64    `gorm:"column:min_temperature"`
	MaxTemperature     *float64    `gorm:"column:max_temperature"`
	SuggestedCondition string      `gorm:"column:suggested_condition;not null"`
	Severity           string      `gorm:"column:severity"`
	Advice             string      `gorm:"column:advice"`
	CreatedAt          time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (Rule) TableName() string {
	return "diagnosis_rules"
}
