package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/auth"
	reportDatamodel "github.com/mrsante/records-management/internal/core/datamodel/report"
	"github.com/mrsante/records-management/internal/core/events"
)

type Repository interface {
	List(patientID int64) ([]*Report, error)
	GetByID(id int64) (*Report, error)
	PatientExists(patientID int64) (bool, error)
	Create(r *reportDatamodel.MedicalReport) error
	Update(id int64, title, content string, incidentDate time.Time) error
	Delete(id int64) error
}

// Publisher emits domain events. A nil publisher disables notifications.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      Repository
	engine    *auth.Engine
	publisher Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, engine *auth.Engine, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, engine: engine, publisher: publisher, logger: logger}
}

// List returns reports, optionally filtered by patient.
func (s *Service) List(principal *auth.Principal, patientID int64) ([]*Report, error) {
	return s.repo.List(patientID)
}

func (s *Service) Get(principal *auth.Principal, id int64) (*Report, error) {
	return s.repo.GetByID(id)
}

// Create files a report under the authoring medic's identity.
func (s *Service) Create(principal *auth.Principal, dto CreateReportDTO) (*Report, error) {
	if !s.engine.HasPermission(principal, auth.PermCreateReports) {
		return nil, internal.NewForbiddenError("missing permission: "+auth.PermCreateReports, internal.ErrCodeMissingPermission)
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.PatientExists(dto.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrPatientNotFound
	}

	medicID := principal.UserID
	dm := &reportDatamodel.MedicalReport{
		PatientID:    dto.PatientID,
		MedicID:      &medicID,
		Title:        dto.Title,
		Content:      dto.Content,
		IncidentDate: dto.ParsedIncidentDate(),
	}
	if err := s.repo.Create(dm); err != nil {
		return nil, err
	}

	s.logger.Info("report created",
		"actor_id", principal.UserID,
		"report_id", dm.ID,
		"patient_id", dm.PatientID)

	created, err := s.repo.GetByID(dm.ID)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := events.NewVisitRecordedEvent(created.ID, created.PatientID, medicID, created.PatientName, created.Title, created.IncidentDate)
		if err := s.publisher.Publish(context.Background(), event); err != nil {
			s.logger.Error("failed to publish visit event", "report_id", created.ID, "error", err)
		}
	}

	return created, nil
}

// Update lets the authoring medic or an administrator amend a report.
func (s *Service) Update(principal *auth.Principal, id int64, dto UpdateReportDTO) (*Report, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	isAuthor := existing.MedicID != nil && *existing.MedicID == principal.UserID
	if !isAuthor && !s.engine.IsAdmin(principal) {
		return nil, internal.NewForbiddenError("only the authoring medic or an administrator can amend a report", internal.ErrCodeMissingPermission)
	}

	if err := s.repo.Update(id, dto.Title, dto.Content, dto.ParsedIncidentDate()); err != nil {
		return nil, err
	}
	s.logger.Info("report updated", "actor_id", principal.UserID, "report_id", id)
	return s.repo.GetByID(id)
}

func (s *Service) Delete(principal *auth.Principal, id int64) error {
	if !s.engine.HasPermission(principal, auth.PermDeleteReports) {
		return internal.NewForbiddenError("missing permission: "+auth.PermDeleteReports, internal.ErrCodeMissingPermission)
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("report deleted", "actor_id", principal.UserID, "report_id", id)
	return nil
}
