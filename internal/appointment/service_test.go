package appointment_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/appointment"
	"github.com/mrsante/records-management/internal/auth"
	appointmentDatamodel "github.com/mrsante/records-management/internal/core/datamodel/appointment"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAppointmentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Appointment Service Suite")
}

// MockRepository implements appointment.Repository for testing
type MockRepository struct {
	appointments map[int64]*appointment.Appointment
	nextID       int64
	shouldFail   bool
	failError    error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		appointments: make(map[int64]*appointment.Appointment),
		nextID:       1,
	}
}

func (m *MockRepository) List(query appointment.ListQuery, viewerID int64) ([]*appointment.Appointment, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*appointment.Appointment
	for _, a := range m.appointments {
		if query.Status != "" && a.Status != query.Status {
			continue
		}
		if query.AssignedToMe && (a.AssignedMedicID == nil || *a.AssignedMedicID != viewerID) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *MockRepository) GetByID(id int64) (*appointment.Appointment, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	a, ok := m.appointments[id]
	if !ok {
		return nil, internal.ErrAppointmentNotFound
	}
	return a, nil
}

func (m *MockRepository) Create(a *appointmentDatamodel.Appointment) error {
	if m.shouldFail {
		return m.failError
	}
	a.ID = m.nextID
	m.nextID++
	m.appointments[a.ID] = appointment.FromDataModel(a)
	return nil
}

func (m *MockRepository) UpdateStatus(id int64, status string, assignedMedicID *int64, completionNotes string) error {
	if m.shouldFail {
		return m.failError
	}
	a, ok := m.appointments[id]
	if !ok {
		return internal.ErrAppointmentNotFound
	}
	a.Status = status
	a.AssignedMedicID = assignedMedicID
	a.CompletionNotes = completionNotes
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	if _, ok := m.appointments[id]; !ok {
		return internal.ErrAppointmentNotFound
	}
	delete(m.appointments, id)
	return nil
}

func (m *MockRepository) Stats(viewerID int64) (*appointment.Stats, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	stats := &appointment.Stats{}
	for _, a := range m.appointments {
		stats.Total++
		switch a.Status {
		case appointmentDatamodel.StatusPending:
			stats.Pending++
		case appointmentDatamodel.StatusAssigned:
			stats.Assigned++
		case appointmentDatamodel.StatusCompleted:
			stats.Completed++
			if a.AssignedMedicID != nil && *a.AssignedMedicID == viewerID {
				stats.MyCompleted++
			}
		case appointmentDatamodel.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) AddAppointment(a *appointment.Appointment) {
	m.appointments[a.ID] = a
	if a.ID >= m.nextID {
		m.nextID = a.ID + 1
	}
}

func expectStateConflict(err error) {
	var appErr *internal.AppError
	ExpectWithOffset(1, errors.As(err, &appErr)).To(BeTrue())
	ExpectWithOffset(1, appErr.Code).To(Equal(internal.ErrCodeInvalidAppointmentState))
}

var _ = Describe("Appointment Service", func() {
	var (
		mockRepo *MockRepository
		service  *appointment.Service
		logger   *slog.Logger
		engine   *auth.Engine

		medic  *auth.Principal
		senior *auth.Principal
		admin  *auth.Principal
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		engine = auth.NewEngine(0)
		service = appointment.NewService(mockRepo, engine, logger)

		medic = &auth.Principal{UserID: 1, GradeLevel: 5, Permissions: map[string]bool{auth.PermManageAppointments: true}}
		senior = &auth.Principal{UserID: 2, GradeLevel: 8, Permissions: map[string]bool{auth.PermManageAppointments: true}}
		admin = &auth.Principal{UserID: 3, GradeLevel: 10, IsAdmin: true}

		mockRepo.AddAppointment(&appointment.Appointment{ID: 20, PatientName: "Walk In", Status: appointmentDatamodel.StatusPending})
	})

	Describe("Intake", func() {
		It("should accept a request with a name and phone", func() {
			created, err := service.Intake(appointment.IntakeDTO{
				PatientName:  "Sofia Marsh",
				PatientPhone: "555-0147",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(Equal(appointmentDatamodel.StatusPending))
		})

		It("should accept a contact detail in place of a phone", func() {
			_, err := service.Intake(appointment.IntakeDTO{
				PatientName:    "Sofia Marsh",
				PatientContact: "sofia@example.org",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should require a name", func() {
			_, err := service.Intake(appointment.IntakeDTO{PatientPhone: "555-0147"})
			Expect(err).To(HaveOccurred())
		})

		It("should require some way to reach the patient", func() {
			_, err := service.Intake(appointment.IntakeDTO{PatientName: "Sofia Marsh"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Assign", func() {
		It("should put a pending request on the caller's queue", func() {
			assigned, err := service.Assign(medic, 20)

			Expect(err).ToNot(HaveOccurred())
			Expect(assigned.Status).To(Equal(appointmentDatamodel.StatusAssigned))
			Expect(assigned.AssignedMedicID).ToNot(BeNil())
			Expect(*assigned.AssignedMedicID).To(Equal(int64(1)))
		})

		It("should allow taking over an already assigned request", func() {
			_, err := service.Assign(medic, 20)
			Expect(err).ToNot(HaveOccurred())

			taken, err := service.Assign(senior, 20)
			Expect(err).ToNot(HaveOccurred())
			Expect(*taken.AssignedMedicID).To(Equal(int64(2)))
		})

		It("should reject a completed request", func() {
			mockRepo.appointments[20].Status = appointmentDatamodel.StatusCompleted
			_, err := service.Assign(medic, 20)
			expectStateConflict(err)
		})

		It("should reject a cancelled request", func() {
			mockRepo.appointments[20].Status = appointmentDatamodel.StatusCancelled
			_, err := service.Assign(medic, 20)
			expectStateConflict(err)
		})
	})

	Describe("Complete", func() {
		It("should close an assigned request with notes", func() {
			_, err := service.Assign(medic, 20)
			Expect(err).ToNot(HaveOccurred())

			completed, err := service.Complete(medic, 20, appointment.CompleteDTO{CompletionNotes: "seen and discharged"})
			Expect(err).ToNot(HaveOccurred())
			Expect(completed.Status).To(Equal(appointmentDatamodel.StatusCompleted))
			Expect(completed.CompletionNotes).To(Equal("seen and discharged"))
		})

		It("should reject completing straight from pending", func() {
			_, err := service.Complete(medic, 20, appointment.CompleteDTO{})
			expectStateConflict(err)
		})
	})

	Describe("Cancel", func() {
		It("should cancel a pending request", func() {
			cancelled, err := service.Cancel(medic, 20)
			Expect(err).ToNot(HaveOccurred())
			Expect(cancelled.Status).To(Equal(appointmentDatamodel.StatusCancelled))
		})

		It("should reject cancelling twice", func() {
			_, err := service.Cancel(medic, 20)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Cancel(medic, 20)
			expectStateConflict(err)
		})
	})

	Describe("Delete", func() {
		It("should refuse a medic below the senior level", func() {
			err := service.Delete(medic, 20)

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeAdminRequired))
		})

		It("should allow a senior grade", func() {
			Expect(service.Delete(senior, 20)).To(Succeed())
		})

		It("should allow an administrator", func() {
			Expect(service.Delete(admin, 20)).To(Succeed())
		})

		It("should surface a missing appointment", func() {
			err := service.Delete(admin, 999)
			Expect(err).To(MatchError(internal.ErrAppointmentNotFound))
		})
	})

	Describe("Stats", func() {
		It("should bucket the queue by status", func() {
			mockRepo.AddAppointment(&appointment.Appointment{ID: 21, Status: appointmentDatamodel.StatusCompleted})
			mockRepo.AddAppointment(&appointment.Appointment{ID: 22, Status: appointmentDatamodel.StatusPending})

			stats, err := service.Stats(admin)
			Expect(err).ToNot(HaveOccurred())
			Expect(stats.Total).To(Equal(int64(3)))
			Expect(stats.Pending).To(Equal(int64(2)))
			Expect(stats.Completed).To(Equal(int64(1)))
		})

		It("should count only the viewer's own completed appointments", func() {
			mineID := medic.UserID
			otherID := senior.UserID
			mockRepo.AddAppointment(&appointment.Appointment{ID: 23, Status: appointmentDatamodel.StatusCompleted, AssignedMedicID: &mineID})
			mockRepo.AddAppointment(&appointment.Appointment{ID: 24, Status: appointmentDatamodel.StatusCompleted, AssignedMedicID: &otherID})

			stats, err := service.Stats(medic)
			Expect(err).ToNot(HaveOccurred())
			Expect(stats.Completed).To(Equal(int64(2)))
			Expect(stats.MyCompleted).To(Equal(int64(1)))
		})
	})
})
