package diagnosis

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

type UpsertRuleDTO struct {
	Name               string   `json:"name"`
	SymptomKeys        []string `json:"symptom_keys"`
	MinHeartRate       *int     `json:"min_heart_rate"`
	MaxHeartRate       *int     `json:"max_heart_rate"`
	MinSystolicBP      *int     `json:"min_systolic_bp"`
	MaxSystolicBP      *int     `json:"max_systolic_bp"`
	MinTemperature     *float64 `json:"min_temperature"`
	MaxTemperature     *float64 `json:"max_temperature"`
	SuggestedCondition string   `json:"suggested_condition"`
	Severity           string   `json:"severity"`
	Advice             string   `json:"advice"`
}

func (d *UpsertRuleDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(d.SuggestedCondition) == "" {
		return ValidationError{Field: "suggested_condition", Message: "suggested condition is required"}
	}
	if len(d.SymptomKeys) == 0 && d.MinHeartRate == nil && d.MaxHeartRate == nil &&
		d.MinSystolicBP == nil && d.MaxSystolicBP == nil &&
		d.MinTemperature == nil && d.MaxTemperature == nil {
		return ValidationError{Field: "symptom_keys", Message: "a rule needs at least one symptom or vital range"}
	}
	return nil
}

// SuggestDTO carries reported symptoms plus optional vital readings.
type SuggestDTO struct {
	Symptoms    []string `json:"symptoms"`
	HeartRate   *int     `json:"heart_rate"`
	SystolicBP  *int     `json:"systolic_bp"`
	Temperature *float64 `json:"temperature"`
}

func (d *SuggestDTO) Validate() error {
	if len(d.Symptoms) == 0 && d.HeartRate == nil && d.SystolicBP == nil && d.Temperature == nil {
		return ValidationError{Field: "symptoms", Message: "at least one symptom or vital reading is required"}
	}
	return nil
}
