package diagnosis

import (
	"time"

	diagnosisDatamodel "github.com/mrsante/records-management/internal/core/datamodel/diagnosis"
)

type Rule struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	SymptomKeys        []string  `json:"symptom_keys"`
	MinHeartRate       *int      `json:"min_heart_rate,omitempty"`
	MaxHeartRate       *int      `json:"max_heart_rate,omitempty"`
	MinSystolicBP      *int      `json:"min_systolic_bp,omitempty"`
	MaxSystolicBP      *int      `json:"max_systolic_bp,omitempty"`
	MinTemperature     *float64  `json:"min_temperature,omitempty"`
	MaxTemperature     *float64  `json:"max_temperature,omitempty"`
	SuggestedCondition string    `json:"suggested_condition"`
	Severity           string    `json:"severity"`
	Advice             string    `json:"advice"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Suggestion is one matched rule with the symptom keys that matched it.
type Suggestion struct {
	Condition       string   `json:"condition"`
	Severity        string   `json:"severity"`
	Advice          string   `json:"advice"`
	MatchedSymptoms []string `json:"matched_symptoms"`
}

func ToDataModel(r *Rule) *diagnosisDatamodel.Rule {
	return &diagnosisDatamodel.Rule{
		ID:                 r.ID,
		Name:               r.Name,
		SymptomKeys:        diagnosisDatamodel.SymptomList(r.SymptomKeys),
		MinHeartRate:       r.MinHeartRate,
		MaxHeartRate:       r.MaxHeartRate,
		MinSystolicBP:      r.MinSystolicBP,
		MaxSystolicBP:      r.MaxSystolicBP,
		MinTemperature:     r.MinTemperature,
		MaxTemperature:     r.MaxTemperature,
		SuggestedCondition: r.SuggestedCondition,
		Severity:           r.Severity,
		Advice:             r.Advice,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func FromDataModel(r *diagnosisDatamodel.Rule) *Rule {
	keys := []string(r.SymptomKeys)
	if keys == nil {
		keys = []string{}
	}
	return &Rule{
		ID:                 r.ID,
		Name:               r.Name,
		SymptomKeys:        keys,
		MinHeartRate:       r.MinHeartRate,
		MaxHeartRate:       r.MaxHeartRate,
		MinSystolicBP:      r.MinSystolicBP,
		MaxSystolicBP:      r.MaxSystolicBP,
		MinTemperature:     r.MinTemperature,
		MaxTemperature:     r.MaxTemperature,
		SuggestedCondition: r.SuggestedCondition,
		Severity:           r.Severity,
		Advice:             r.Advice,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}
