package appointment

import (
	"log/slog"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/auth"
	appointmentDatamodel "github.com/mrsante/records-management/internal/core/datamodel/appointment"
)

// seniorMedicLevel is the minimum grade level allowed to hard-delete an
// intake request without the admin flag.
const seniorMedicLevel = 8

type Repository interface {
	List(query ListQuery, viewerID int64) ([]*Appointment, error)
	GetByID(id int64) (*Appointment, error)
	Create(a *appointmentDatamodel.Appointment) error
	UpdateStatus(id int64, status string, assignedMedicID *int64, completionNotes string) error
	Delete(id int64) error
	Stats(viewerID int64) (*Stats, error)
}

type Service struct {
	repo   Repository
	engine *auth.Engine
	logger *slog.Logger
}

func NewService(repo Repository, engine *auth.Engine, logger *slog.Logger) *Service {
	return &Service{repo: repo, engine: engine, logger: logger}
}

// Intake files a public appointment request. No principal is involved.
func (s *Service) Intake(dto IntakeDTO) (*Appointment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm := &appointmentDatamodel.Appointment{
		PatientName:     dto.PatientName,
		PatientPhone:    dto.PatientPhone,
		PatientContact:  dto.PatientContact,
		AppointmentType: dto.AppointmentType,
		PreferredDate:   dto.ParsedPreferredDate(),
		PreferredTime:   dto.PreferredTime,
		Description:     dto.Description,
		Status:          appointmentDatamodel.StatusPending,
	}
	if err := s.repo.Create(dm); err != nil {
		return nil, err
	}

	s.logger.Info("appointment intake received", "appointment_id", dm.ID)
	return s.repo.GetByID(dm.ID)
}

func (s *Service) List(principal *auth.Principal, query ListQuery) ([]*Appointment, error) {
	return s.repo.List(query, principal.UserID)
}

func (s *Service) Get(principal *auth.Principal, id int64) (*Appointment, error) {
	return s.repo.GetByID(id)
}

// Assign takes a pending or already-assigned request and puts it on the
// caller's queue.
func (s *Service) Assign(principal *auth.Principal, id int64) (*Appointment, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.Status == appointmentDatamodel.StatusCompleted || existing.Status == appointmentDatamodel.StatusCancelled {
		return nil, internal.NewConflictError("appointment is already closed", internal.ErrCodeInvalidAppointmentState)
	}

	medicID := principal.UserID
	if err := s.repo.UpdateStatus(id, appointmentDatamodel.StatusAssigned, &medicID, ""); err != nil {
		return nil, err
	}
	s.logger.Info("appointment assigned", "appointment_id", id, "medic_id", medicID)
	return s.repo.GetByID(id)
}

func (s *Service) Complete(principal *auth.Principal, id int64, dto CompleteDTO) (*Appointment, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.Status != appointmentDatamodel.StatusAssigned {
		return nil, internal.NewConflictError("only an assigned appointment can be completed", internal.ErrCodeInvalidAppointmentState)
	}

	if err := s.repo.UpdateStatus(id, appointmentDatamodel.StatusCompleted, existing.AssignedMedicID, dto.CompletionNotes); err != nil {
		return nil, err
	}
	s.logger.Info("appointment completed", "appointment_id", id, "actor_id", principal.UserID)
	return s.repo.GetByID(id)
}

func (s *Service) Cancel(principal *auth.Principal, id int64) (*Appointment, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.Status == appointmentDatamodel.StatusCompleted || existing.Status == appointmentDatamodel.StatusCancelled {
		return nil, internal.NewConflictError("appointment is already closed", internal.ErrCodeInvalidAppointmentState)
	}

	if err := s.repo.UpdateStatus(id, appointmentDatamodel.StatusCancelled, existing.AssignedMedicID, ""); err != nil {
		return nil, err
	}
	s.logger.Info("appointment cancelled", "appointment_id", id, "actor_id", principal.UserID)
	return s.repo.GetByID(id)
}

// Delete permanently removes an intake request. Reserved for administrators
// and senior grades; everyone else cancels instead.
func (s *Service) Delete(principal *auth.Principal, id int64) error {
	if !s.engine.IsAdmin(principal) && (principal == nil || principal.GradeLevel < seniorMedicLevel) {
		return internal.NewForbiddenError("deleting appointments requires administrator access or a senior grade", internal.ErrCodeAdminRequired)
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("appointment deleted", "appointment_id", id, "actor_id", principal.UserID)
	return nil
}

func (s *Service) Stats(principal *auth.Principal) (*Stats, error) {
	var viewerID int64
	if principal != nil {
		viewerID = principal.UserID
	}
	return s.repo.Stats(viewerID)
}
