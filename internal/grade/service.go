package grade

import (
	"log/slog"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/auth"
)

// Repository defines the data access methods for grades.
type Repository interface {
	GetAll() ([]*Grade, error)
	GetByID(id int64) (*Grade, error)
	Create(g *Grade) error
	Update(g *Grade) error
	// DeleteIfUnreferenced deletes the grade unless users still reference
	// it; a positive count means nothing was deleted. The count and the
	// delete share one transaction.
	DeleteIfUnreferenced(id int64) (references int64, err error)
}

type Service struct {
	repo   Repository
	engine *auth.Engine
	logger *slog.Logger
}

func NewService(repo Repository, engine *auth.Engine, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		logger: logger,
	}
}

// List returns the catalog ordered by descending level.
func (s *Service) List(principal *auth.Principal) ([]*Grade, error) {
	grades, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list grades", "error", err)
		return nil, err
	}
	return grades, nil
}

// Create inserts a new grade. A non-root principal may only create grades
// strictly below their own level.
func (s *Service) Create(principal *auth.Principal, dto UpsertGradeDTO) (*Grade, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	dto.ApplyDefaults()

	if !s.engine.Dominates(principal, dto.Level) {
		s.logger.Warn("grade create denied: requested level not dominated",
			"user_id", principal.UserID,
			"principal_level", principal.GradeLevel,
			"requested_level", dto.Level)
		return nil, internal.ErrInsufficientGrade
	}

	g := &Grade{
		Name:        dto.Name,
		Category:    dto.Category,
		Level:       dto.Level,
		Color:       dto.Color,
		Permissions: dto.Permissions,
	}

	if err := s.repo.Create(g); err != nil {
		s.logger.Error("failed to create grade", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("grade created", "grade_id", g.ID, "level", g.Level, "by", principal.UserID)
	return g, nil
}

// Update edits a grade. The dominance check runs against the requested
// level before any write.
func (s *Service) Update(principal *auth.Principal, id int64, dto UpsertGradeDTO) (*Grade, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	dto.ApplyDefaults()

	if !s.engine.Dominates(principal, dto.Level) {
		s.logger.Warn("grade update denied: requested level not dominated",
			"user_id", principal.UserID,
			"principal_level", principal.GradeLevel,
			"requested_level", dto.Level)
		return nil, internal.ErrInsufficientGrade
	}

	g, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	g.Name = dto.Name
	g.Category = dto.Category
	g.Level = dto.Level
	g.Color = dto.Color
	g.Permissions = dto.Permissions

	if err := s.repo.Update(g); err != nil {
		s.logger.Error("failed to update grade", "error", err, "grade_id", id)
		return nil, err
	}

	s.logger.Info("grade updated", "grade_id", id, "level", g.Level, "by", principal.UserID)
	return g, nil
}

// Delete removes an unreferenced grade. The referential guard is a
// data-integrity rule and applies to every principal, root included.
func (s *Service) Delete(principal *auth.Principal, id int64) error {
	references, err := s.repo.DeleteIfUnreferenced(id)
	if err != nil {
		s.logger.Error("failed to delete grade", "error", err, "grade_id", id)
		return err
	}
	if references > 0 {
		s.logger.Warn("grade delete blocked: still referenced",
			"grade_id", id,
			"user_count", references,
			"by", principal.UserID)
		return internal.ErrGradeInUse
	}

	s.logger.Info("grade deleted", "grade_id", id, "by", principal.UserID)
	return nil
}
