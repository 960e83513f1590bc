package diagnosis

import (
	"log/slog"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/auth"
	diagnosisDatamodel "github.com/mrsante/records-management/internal/core/datamodel/diagnosis"
)

type Repository interface {
	GetAll() ([]*Rule, error)
	GetByID(id int64) (*Rule, error)
	Create(r *diagnosisDatamodel.Rule) error
	Update(r *diagnosisDatamodel.Rule) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	engine *auth.Engine
	logger *slog.Logger
}

func NewService(repo Repository, engine *auth.Engine, logger *slog.Logger) *Service {
	return &Service{repo: repo, engine: engine, logger: logger}
}

func (s *Service) ListRules(principal *auth.Principal) ([]*Rule, error) {
	return s.repo.GetAll()
}

func (s *Service) CreateRule(principal *auth.Principal, dto UpsertRuleDTO) (*Rule, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	dm := dtoToDataModel(0, dto)
	if err := s.repo.Create(dm); err != nil {
		return nil, err
	}
	s.logger.Info("diagnosis rule created", "actor_id", principal.UserID, "rule_id", dm.ID)
	return s.repo.GetByID(dm.ID)
}

func (s *Service) UpdateRule(principal *auth.Principal, id int64, dto UpsertRuleDTO) (*Rule, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(dtoToDataModel(id, dto)); err != nil {
		return nil, err
	}
	s.logger.Info("diagnosis rule updated", "actor_id", principal.UserID, "rule_id", id)
	return s.repo.GetByID(id)
}

func (s *Service) DeleteRule(principal *auth.Principal, id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("diagnosis rule deleted", "actor_id", principal.UserID, "rule_id", id)
	return nil
}

// Suggest evaluates every rule against the reported symptoms and vitals.
// Suggestions are advisory lookups only and carry no clinical authority.
func (s *Service) Suggest(principal *auth.Principal, dto SuggestDTO) ([]*Suggestion, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rules, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to load diagnosis rules", err)
	}

	suggestions := []*Suggestion{}
	for _, rule := range rules {
		matched, symptoms := matchRule(rule, dto)
		if matched {
			suggestions = append(suggestions, &Suggestion{
				Condition:       rule.SuggestedCondition,
				Severity:        rule.Severity,
				Advice:          rule.Advice,
				MatchedSymptoms: symptoms,
			})
		}
	}
	return suggestions, nil
}

// matchRule applies a rule to one set of inputs. Symptom rules need at least
// one overlapping key; vital bounds only count when the reading was provided.
// A rule with no satisfiable criterion never matches.
func matchRule(rule *Rule, dto SuggestDTO) (bool, []string) {
	matchedSymptoms := []string{}
	anyCriterion := false

	if len(rule.SymptomKeys) > 0 {
		reported := make(map[string]bool, len(dto.Symptoms))
		for _, s := range dto.Symptoms {
			reported[s] = true
		}
		for _, key := range rule.SymptomKeys {
			if reported[key] {
				matchedSymptoms = append(matchedSymptoms, key)
			}
		}
		if len(matchedSymptoms) == 0 {
			return false, nil
		}
		anyCriterion = true
	}

	if rule.MinHeartRate != nil || rule.MaxHeartRate != nil {
		if dto.HeartRate == nil {
			return false, nil
		}
		if rule.MinHeartRate != nil && *dto.HeartRate < *rule.MinHeartRate {
			return false, nil
		}
		if rule.MaxHeartRate != nil && *dto.HeartRate > *rule.MaxHeartRate {
			return false, nil
		}
		anyCriterion = true
	}

	if rule.MinSystolicBP != nil || rule.MaxSystolicBP != nil {
		if dto.SystolicBP == nil {
			return false, nil
		}
		if rule.MinSystolicBP != nil && *dto.SystolicBP < *rule.MinSystolicBP {
			return false, nil
		}
		if rule.MaxSystolicBP != nil && *dto.SystolicBP > *rule.MaxSystolicBP {
			return false, nil
		}
		anyCriterion = true
	}

	if rule.MinTemperature != nil || rule.MaxTemperature != nil {
		if dto.Temperature == nil {
			return false, nil
		}
		if rule.MinTemperature != nil && *dto.Temperature < *rule.MinTemperature {
			return false, nil
		}
		if rule.MaxTemperature != nil && *dto.Temperature > *rule.MaxTemperature {
			return false, nil
		}
		anyCriterion = true
	}

	return anyCriterion, matchedSymptoms
}

func dtoToDataModel(id int64, dto UpsertRuleDTO) *diagnosisDatamodel.Rule {
	keys := dto.SymptomKeys
	if keys == nil {
		keys = []string{}
	}
	return &diagnosisDatamodel.Rule{
		ID:                 id,
		Name:               dto.Name,
		SymptomKeys:        diagnosisDatamodel.SymptomList(keys),
		MinHeartRate:       dto.MinHeartRate,
		MaxHeartRate:       dto.MaxHeartRate,
		MinSystolicBP:      dto.MinSystolicBP,
		MaxSystolicBP:      dto.MaxSystolicBP,
		MinTemperature:     dto.MinTemperature,
		MaxTemperature:     dto.MaxTemperature,
		SuggestedCondition: dto.SuggestedCondition,
		Severity:           dto.Severity,
		Advice:             dto.Advice,
	}
}
