package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrsante/records-management/internal"
	diagnosisDatamodel "github.com/mrsante/records-management/internal/core/datamodel/diagnosis"
	"github.com/mrsante/records-management/internal/diagnosis"
)

// RuleRepository implements the diagnosis.Repository interface using GORM.
type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) diagnosis.Repository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) GetAll() ([]*diagnosis.Rule, error) {
	var rows []*diagnosisDatamodel.Rule
	if err := r.db.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	rules := make([]*diagnosis.Rule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, diagnosis.FromDataModel(row))
	}
	return rules, nil
}

func (r *RuleRepository) GetByID(id int64) (*diagnosis.Rule, error) {
	var row diagnosisDatamodel.Rule
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRuleNotFound
		}
		return nil, err
	}
	return diagnosis.FromDataModel(&row), nil
}

func (r *RuleRepository) Create(rule *diagnosisDatamodel.Rule) error {
	return r.db.Create(rule).Error
}

func (r *RuleRepository) Update(rule *diagnosisDatamodel.Rule) error {
	res := r.db.Model(&diagnosisDatamodel.Rule{}).
		Where("id = ?", rule.ID).
		Updates(map[string]interface{}{
			"name":                rule.Name,
			"symptom_keys":        rule.SymptomKeys,
			"min_heart_rate":      rule.MinHeartRate,
			"max_heart_rate":      rule.MaxHeartRate,
			"min_systolic_bp":     rule.MinSystolicBP,
			"max_systolic_bp":     rule.MaxSystolicBP,
			"min_temperature":     rule.MinTemperature,
			"max_temperature":     rule.MaxTemperature,
			"suggested_condition": rule.SuggestedCondition,
			"severity":            rule.Severity,
			"advice":              rule.Advice,
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrRuleNotFound
	}
	return nil
}

func (r *RuleRepository) Delete(id int64) error {
	res := r.db.Where("id = ?", id).Delete(&diagnosisDatamodel.Rule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrRuleNotFound
	}
	return nil
}
