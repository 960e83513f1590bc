package patient

import (
	"log/slog"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/auth"
	patientDatamodel "github.com/mrsante/records-management/internal/core/datamodel/patient"
)

type Repository interface {
	List(query ListQuery) ([]*Patient, int64, error)
	GetByID(id int64) (*Patient, error)
	GetReports(patientID int64) ([]*ReportSummary, error)
	Create(p *patientDatamodel.Patient) error
	Update(p *patientDatamodel.Patient) error
	// DeleteIfNoReports deletes the patient only when no reports reference
	// them; with dependents nothing is touched and their count is returned.
	// The count and the delete share one transaction.
	DeleteIfNoReports(id int64) (dependents int64, err error)
	// DeleteCascade removes the patient's reports and then the patient in a
	// single transaction.
	DeleteCascade(id int64) (reportsDeleted int64, err error)
}

type Service struct {
	repo   Repository
	engine *auth.Engine
	logger *slog.Logger
}

func NewService(repo Repository, engine *auth.Engine, logger *slog.Logger) *Service {
	return &Service{repo: repo, engine: engine, logger: logger}
}

func (s *Service) List(principal *auth.Principal, query ListQuery) (*PatientPage, error) {
	query.Normalize()
	patients, total, err := s.repo.List(query)
	if err != nil {
		return nil, err
	}
	return &PatientPage{
		Patients: patients,
		Total:    total,
		Page:     query.Page,
		PerPage:  query.PerPage,
	}, nil
}

func (s *Service) Get(principal *auth.Principal, id int64) (*PatientDetail, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	reports, err := s.repo.GetReports(id)
	if err != nil {
		return nil, err
	}
	return &PatientDetail{Patient: *p, Reports: reports}, nil
}

func (s *Service) Create(principal *auth.Principal, dto UpsertPatientDTO) (*Patient, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	dm := dtoToDataModel(0, dto)
	if err := s.repo.Create(dm); err != nil {
		return nil, err
	}
	s.logger.Info("patient created", "actor_id", principal.UserID, "patient_id", dm.ID)
	return s.repo.GetByID(dm.ID)
}

func (s *Service) Update(principal *auth.Principal, id int64, dto UpsertPatientDTO) (*Patient, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(dtoToDataModel(id, dto)); err != nil {
		return nil, err
	}
	s.logger.Info("patient updated", "actor_id", principal.UserID, "patient_id", id)
	return s.repo.GetByID(id)
}

// Delete removes a patient. With dependent reports the call must carry an
// explicit force flag, and forcing additionally requires the report-delete
// permission; the conflict response reports how many records are at stake.
// Nothing is deleted unless every check passes, and the dependent count is
// never read outside the transaction that acts on it.
func (s *Service) Delete(principal *auth.Principal, id int64, force bool) error {
	dependents, err := s.repo.DeleteIfNoReports(id)
	if err != nil {
		return err
	}
	if dependents == 0 {
		s.logger.Info("patient deleted", "actor_id", principal.UserID, "patient_id", id)
		return nil
	}

	if !force {
		return internal.NewConflictError(
			"patient has medical reports; deletion must be forced",
			internal.ErrCodeCascadeConfirmRequired,
		).WithDetails(internal.CascadeConflictDetails{
			RequiresForce:  true,
			DependentCount: dependents,
		})
	}

	if !s.engine.HasPermission(principal, auth.PermDeleteReports) {
		s.logger.Warn("cascade delete blocked: missing report permission",
			"actor_id", principal.UserID,
			"patient_id", id,
			"report_count", dependents)
		return internal.NewForbiddenError(
			"deleting this patient removes medical reports, which requires the "+auth.PermDeleteReports+" permission",
			internal.ErrCodeMissingPermission,
		)
	}

	deleted, err := s.repo.DeleteCascade(id)
	if err != nil {
		return err
	}
	s.logger.Info("patient deleted with reports",
		"actor_id", principal.UserID,
		"patient_id", id,
		"reports_deleted", deleted)
	return nil
}

func dtoToDataModel(id int64, dto UpsertPatientDTO) *patientDatamodel.Patient {
	return &patientDatamodel.Patient{
		ID:                    id,
		FirstName:             dto.FirstName,
		LastName:              dto.LastName,
		DateOfBirth:           dto.BirthDate(),
		Gender:                dto.Gender,
		Phone:                 dto.Phone,
		InsuranceNumber:       dto.InsuranceNumber,
		BloodType:             dto.BloodType,
		Allergies:             dto.Allergies,
		Address:               dto.Address,
		EmergencyContactName:  dto.EmergencyContactName,
		EmergencyContactPhone: dto.EmergencyContactPhone,
		ChronicConditions:     dto.ChronicConditions,
		Photo:                 dto.Photo,
	}
}
