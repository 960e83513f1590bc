package postgres_test

import (
	"testing"
	"time"

	"github.com/mrsante/records-management/internal"
	patientDatamodel "github.com/mrsante/records-management/internal/core/datamodel/patient"
	reportDatamodel "github.com/mrsante/records-management/internal/core/datamodel/report"
	"github.com/mrsante/records-management/internal/patient"
	patientPostgres "github.com/mrsante/records-management/internal/patient/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPatientPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Patient Postgres Suite")
}

// SQLitePatient is a SQLite-compatible model for testing
type SQLitePatient struct {
	ID                    int64      `gorm:"primaryKey"`
	FirstName             string     `gorm:"column:first_name;not null"`
	LastName              string     `gorm:"column:last_name;not null"`
	DateOfBirth           *time.Time `gorm:"column:date_of_birth"`
	Gender                string     `gorm:"column:gender"`
	Phone                 string     `gorm:"column:phone"`
	InsuranceNumber       string     `gorm:"column:insurance_number"`
	BloodType             string     `gorm:"column:blood_type"`
	Allergies             string     `gorm:"column:allergies"`
	Address               string     `gorm:"column:address"`
	EmergencyContactName  string     `gorm:"column:emergency_contact_name"`
	EmergencyContactPhone string     `gorm:"column:emergency_contact_phone"`
	ChronicConditions     string     `gorm:"column:chronic_conditions"`
	Photo                 string     `gorm:"column:photo"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at"`
}

func (SQLitePatient) TableName() string {
	return "patients"
}

// SQLiteMedicalReport is a SQLite-compatible model for testing
type SQLiteMedicalReport struct {
	ID           int64     `gorm:"primaryKey"`
	PatientID    int64     `gorm:"column:patient_id;not null;index"`
	MedicID      *int64    `gorm:"column:medic_id;index"`
	Title        string    `gorm:"column:title;not null"`
	Content      string    `gorm:"column:content"`
	IncidentDate time.Time `gorm:"column:incident_date;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteMedicalReport) TableName() string {
	return "medical_reports"
}

// SQLiteUser carries just enough of the users table for the report joins
type SQLiteUser struct {
	ID        int64  `gorm:"primaryKey"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

var _ = Describe("Patient PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo patient.Repository
	)

	addReport := func(patientID int64, medicID *int64, title string) {
		err := db.Create(&SQLiteMedicalReport{
			PatientID:    patientID,
			MedicID:      medicID,
			Title:        title,
			IncidentDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}).Error
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLitePatient{}, &SQLiteMedicalReport{}, &SQLiteUser{})
		Expect(err).NotTo(HaveOccurred())

		repo = patientPostgres.NewPatientRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("should store a patient and read it back with a report count", func() {
			dm := &patientDatamodel.Patient{
				FirstName:       "Elena",
				LastName:        "Brandt",
				InsuranceNumber: "INS-1001",
			}
			Expect(repo.Create(dm)).To(Succeed())
			Expect(dm.ID).To(BeNumerically(">", 0))

			addReport(dm.ID, nil, "intake exam")

			got, err := repo.GetByID(dm.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.FirstName).To(Equal("Elena"))
			Expect(got.ReportCount).To(Equal(int64(1)))
		})

		It("should report a missing patient", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(MatchError(internal.ErrPatientNotFound))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for _, p := range []*patientDatamodel.Patient{
				{FirstName: "Elena", LastName: "Brandt", InsuranceNumber: "INS-1001"},
				{FirstName: "Oscar", LastName: "Lindh", InsuranceNumber: "INS-1002"},
				{FirstName: "Noor", LastName: "Haddad", InsuranceNumber: "INS-2001"},
			} {
				Expect(repo.Create(p)).To(Succeed())
			}
		})

		It("should page through all patients ordered by name", func() {
			patients, total, err := repo.List(patient.ListQuery{Page: 1, PerPage: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(patients).To(HaveLen(2))
			Expect(patients[0].LastName).To(Equal("Brandt"))
		})

		It("should filter by name fragments", func() {
			patients, total, err := repo.List(patient.ListQuery{Search: "Lind", Page: 1, PerPage: 25})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(patients[0].FirstName).To(Equal("Oscar"))
		})

		It("should filter by insurance number", func() {
			_, total, err := repo.List(patient.ListQuery{Search: "INS-2001", Page: 1, PerPage: 25})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
		})

		It("should attach per-patient report counts", func() {
			patients, _, err := repo.List(patient.ListQuery{Page: 1, PerPage: 25})
			Expect(err).NotTo(HaveOccurred())

			addReport(patients[0].ID, nil, "first")
			addReport(patients[0].ID, nil, "second")

			patients, _, err = repo.List(patient.ListQuery{Page: 1, PerPage: 25})
			Expect(err).NotTo(HaveOccurred())
			Expect(patients[0].ReportCount).To(Equal(int64(2)))
			Expect(patients[1].ReportCount).To(Equal(int64(0)))
		})
	})

	Describe("GetReports", func() {
		It("should resolve the author's name for each entry", func() {
			dm := &patientDatamodel.Patient{FirstName: "Elena", LastName: "Brandt"}
			Expect(repo.Create(dm)).To(Succeed())

			Expect(db.Create(&SQLiteUser{ID: 7, FirstName: "Iris", LastName: "Falk"}).Error).To(Succeed())
			medicID := int64(7)
			addReport(dm.ID, &medicID, "follow up")

			reports, err := repo.GetReports(dm.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(HaveLen(1))
			Expect(reports[0].MedicName).To(Equal("Iris Falk"))
		})
	})

	Describe("DeleteIfNoReports", func() {
		It("should remove a patient without reports", func() {
			dm := &patientDatamodel.Patient{FirstName: "Elena", LastName: "Brandt"}
			Expect(repo.Create(dm)).To(Succeed())

			dependents, err := repo.DeleteIfNoReports(dm.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(dependents).To(BeZero())

			_, err = repo.GetByID(dm.ID)
			Expect(err).To(MatchError(internal.ErrPatientNotFound))
		})

		It("should keep a patient with reports and return their count", func() {
			dm := &patientDatamodel.Patient{FirstName: "Oscar", LastName: "Lindh"}
			Expect(repo.Create(dm)).To(Succeed())
			addReport(dm.ID, nil, "first")
			addReport(dm.ID, nil, "second")

			dependents, err := repo.DeleteIfNoReports(dm.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(dependents).To(Equal(int64(2)))

			_, err = repo.GetByID(dm.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should report a missing patient", func() {
			_, err := repo.DeleteIfNoReports(999)
			Expect(err).To(MatchError(internal.ErrPatientNotFound))
		})
	})

	Describe("DeleteCascade", func() {
		var patientID int64

		BeforeEach(func() {
			dm := &patientDatamodel.Patient{FirstName: "Oscar", LastName: "Lindh"}
			Expect(repo.Create(dm)).To(Succeed())
			patientID = dm.ID

			addReport(patientID, nil, "first")
			addReport(patientID, nil, "second")
			addReport(patientID, nil, "third")
		})

		It("should remove the reports and the patient together", func() {
			deleted, err := repo.DeleteCascade(patientID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(Equal(int64(3)))

			_, err = repo.GetByID(patientID)
			Expect(err).To(MatchError(internal.ErrPatientNotFound))

			var remaining int64
			Expect(db.Model(&reportDatamodel.MedicalReport{}).Where("patient_id = ?", patientID).Count(&remaining).Error).To(Succeed())
			Expect(remaining).To(BeZero())
		})

		It("should leave other patients' reports alone", func() {
			other := &patientDatamodel.Patient{FirstName: "Noor", LastName: "Haddad"}
			Expect(repo.Create(other)).To(Succeed())
			addReport(other.ID, nil, "unrelated")

			_, err := repo.DeleteCascade(patientID)
			Expect(err).NotTo(HaveOccurred())

			var count int64
			Expect(db.Model(&reportDatamodel.MedicalReport{}).Where("patient_id = ?", other.ID).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("should roll back entirely for a missing patient", func() {
			_, err := repo.DeleteCascade(999)
			Expect(err).To(MatchError(internal.ErrPatientNotFound))
		})
	})
})
