package user

import (
	"log/slog"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/auth"
	userDatamodel "github.com/mrsante/records-management/internal/core/datamodel/user"
	"github.com/mrsante/records-management/internal/grade"
)

type Repository interface {
	GetAll() ([]*User, error)
	GetByID(id int64) (*User, error)
	GetRoster() ([]*RosterEntry, error)
	UsernameExists(username string, excludeID int64) (bool, error)
	Create(u *userDatamodel.User) error
	Update(u *userDatamodel.User) error
	UpdateProfile(id int64, firstName, lastName, phone, profilePicture string) error
	// DeleteWithNullify removes the user after detaching every record that
	// references them. The target's grade level is re-read inside the same
	// transaction and handed to authorize; an authorize error aborts the
	// whole delete with nothing detached.
	DeleteWithNullify(id int64, authorize func(gradeLevel int) error) error
}

// GradeResolver looks up the grade a user is being assigned to, so the
// service can compare levels before committing.
type GradeResolver interface {
	GetByID(id int64) (*grade.Grade, error)
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   Repository
	grades GradeResolver
	hasher PasswordHasher
	engine *auth.Engine
	logger *slog.Logger
}

func NewService(repo Repository, grades GradeResolver, hasher PasswordHasher, engine *auth.Engine, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		grades: grades,
		hasher: hasher,
		engine: engine,
		logger: logger,
	}
}

func (s *Service) List(principal *auth.Principal) ([]*User, error) {
	return s.repo.GetAll()
}

func (s *Service) Get(principal *auth.Principal, id int64) (*User, error) {
	return s.repo.GetByID(id)
}

// Roster returns the staff listing every authenticated user may see. Grade
// fields in the result are display values and may come from a visible grade.
func (s *Service) Roster() ([]*RosterEntry, error) {
	return s.repo.GetRoster()
}

func (s *Service) Create(principal *auth.Principal, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	targetGrade, err := s.grades.GetByID(dto.GradeID)
	if err != nil {
		return nil, err
	}
	if !s.engine.Dominates(principal, targetGrade.Level) {
		s.logger.Warn("user create blocked by grade level",
			"actor_id", principal.UserID,
			"target_level", targetGrade.Level)
		return nil, internal.ErrCannotPromoteAbove
	}

	taken, err := s.repo.UsernameExists(dto.Username, 0)
	if err != nil {
		return nil, internal.NewInternalError("failed to check username", err)
	}
	if taken {
		return nil, internal.ErrUsernameTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	active := true
	if dto.IsActive != nil {
		active = *dto.IsActive
	}

	dm := &userDatamodel.User{
		Username:       dto.Username,
		PasswordHash:   hash,
		FirstName:      dto.FirstName,
		LastName:       dto.LastName,
		BadgeNumber:    dto.BadgeNumber,
		Phone:          dto.Phone,
		IsAdmin:        dto.IsAdmin,
		GradeID:        dto.GradeID,
		VisibleGradeID: normalizeVisibleGrade(dto.VisibleGradeID),
		IsActive:       active,
	}
	if err := s.repo.Create(dm); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		"actor_id", principal.UserID,
		"user_id", dm.ID,
		"grade_id", dm.GradeID)
	return s.repo.GetByID(dm.ID)
}

// Update replaces a user's account fields. Two independent level checks
// apply: the actor must outrank the user's current grade and must outrank
// the grade being assigned. Each failure reports its own error.
func (s *Service) Update(principal *auth.Principal, id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !s.engine.Dominates(principal, existing.GradeLevel) {
		s.logger.Warn("user update blocked: target outranks actor",
			"actor_id", principal.UserID,
			"user_id", id,
			"target_level", existing.GradeLevel)
		return nil, internal.ErrCannotEditSuperior
	}

	targetGrade, err := s.grades.GetByID(dto.GradeID)
	if err != nil {
		return nil, err
	}
	if !s.engine.Dominates(principal, targetGrade.Level) {
		s.logger.Warn("user update blocked: assigned grade outranks actor",
			"actor_id", principal.UserID,
			"user_id", id,
			"assigned_level", targetGrade.Level)
		return nil, internal.ErrCannotPromoteAbove
	}

	taken, err := s.repo.UsernameExists(dto.Username, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to check username", err)
	}
	if taken {
		return nil, internal.ErrUsernameTaken
	}

	hash := existing.PasswordHash
	if dto.Password != "" {
		hash, err = s.hasher.HashPassword(dto.Password)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
	}

	active := existing.IsActive
	if dto.IsActive != nil {
		active = *dto.IsActive
	}

	dm := &userDatamodel.User{
		ID:             id,
		Username:       dto.Username,
		PasswordHash:   hash,
		FirstName:      dto.FirstName,
		LastName:       dto.LastName,
		BadgeNumber:    dto.BadgeNumber,
		Phone:          dto.Phone,
		IsAdmin:        dto.IsAdmin,
		GradeID:        dto.GradeID,
		VisibleGradeID: normalizeVisibleGrade(dto.VisibleGradeID),
		IsActive:       active,
	}
	if err := s.repo.Update(dm); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "actor_id", principal.UserID, "user_id", id)
	return s.repo.GetByID(id)
}

// Delete removes a user account. The self-delete check runs before any
// authority check, so even the highest grade cannot remove itself. Records
// authored by or assigned to the user are detached, not deleted. The
// dominance check runs against the grade level as read inside the delete
// transaction, never a stale copy.
func (s *Service) Delete(principal *auth.Principal, id int64) error {
	if principal != nil && principal.UserID == id {
		return internal.ErrCannotDeleteSelf
	}
	if !s.engine.HasPermission(principal, auth.PermDeleteUsers) {
		return internal.NewForbiddenError("missing permission: "+auth.PermDeleteUsers, internal.ErrCodeMissingPermission)
	}

	err := s.repo.DeleteWithNullify(id, func(gradeLevel int) error {
		if !s.engine.Dominates(principal, gradeLevel) {
			s.logger.Warn("user delete blocked: target outranks actor",
				"actor_id", principal.UserID,
				"user_id", id,
				"target_level", gradeLevel)
			return internal.ErrCannotEditSuperior
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("user deleted", "actor_id", principal.UserID, "user_id", id)
	return nil
}

// UpdateProfile lets a user edit their own contact fields. Username, grade,
// permissions and the admin flag are out of reach here.
func (s *Service) UpdateProfile(principal *auth.Principal, dto UpdateProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfile(principal.UserID, dto.FirstName, dto.LastName, dto.Phone, dto.ProfilePicture); err != nil {
		return nil, err
	}
	return s.repo.GetByID(principal.UserID)
}
