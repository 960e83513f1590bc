package patient_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/mrsante/records-management/internal/auth"
	"github.com/mrsante/records-management/internal/patient"
	patientPostgres "github.com/mrsante/records-management/internal/patient/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

var _ = Describe("Patient Handler Integration", func() {
	var (
		db      *gorm.DB
		service *patient.Service
		handler *patient.Handler
		router  *chi.Mux

		medic   *auth.Principal
		cleared *auth.Principal
	)

	doRequest := func(method, target string, principal *auth.Principal) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		req = req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLitePatient{}, &SQLiteMedicalReport{}, &SQLiteUser{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := patientPostgres.NewPatientRepository(db)
		service = patient.NewService(repo, auth.NewEngine(0), slogger)
		handler = patient.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/patients/{id}", handler.Get)
		router.Delete("/patients/{id}", handler.Delete)

		medic = &auth.Principal{UserID: 1, GradeLevel: 5, Permissions: map[string]bool{
			auth.PermViewPatients:   true,
			auth.PermDeletePatients: true,
		}}
		cleared = &auth.Principal{UserID: 2, GradeLevel: 8, Permissions: map[string]bool{
			auth.PermViewPatients:   true,
			auth.PermDeletePatients: true,
			auth.PermDeleteReports:  true,
		}}

		Expect(db.Create(&SQLitePatient{ID: 10, FirstName: "Elena", LastName: "Brandt"}).Error).To(Succeed())
		Expect(db.Create(&SQLitePatient{ID: 11, FirstName: "Oscar", LastName: "Lindh"}).Error).To(Succeed())
		for _, title := range []string{"first", "second"} {
			Expect(db.Create(&SQLiteMedicalReport{
				PatientID:    11,
				Title:        title,
				IncidentDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			}).Error).To(Succeed())
		}
	})

	Describe("GET /patients/{id}", func() {
		It("should return the patient with report history", func() {
			w := doRequest(http.MethodGet, "/patients/11", medic)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var detail patient.PatientDetail
			Expect(json.NewDecoder(w.Body).Decode(&detail)).To(Succeed())
			Expect(detail.FirstName).To(Equal("Oscar"))
			Expect(detail.ReportCount).To(Equal(int64(2)))
			Expect(detail.Reports).To(HaveLen(2))
		})

		It("should return 404 for an unknown patient", func() {
			w := doRequest(http.MethodGet, "/patients/999", medic)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 401 without a principal", func() {
			w := doRequest(http.MethodGet, "/patients/11", nil)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("DELETE /patients/{id}", func() {
		It("should delete a patient without reports", func() {
			w := doRequest(http.MethodDelete, "/patients/10", medic)
			Expect(w.Code).To(Equal(http.StatusOK))

			w = doRequest(http.MethodGet, "/patients/10", medic)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 409 with the dependent count when reports exist", func() {
			w := doRequest(http.MethodDelete, "/patients/11", cleared)

			Expect(w.Code).To(Equal(http.StatusConflict))

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Details struct {
						RequiresForce  bool  `json:"requires_force"`
						DependentCount int64 `json:"dependent_count"`
					} `json:"details"`
				} `json:"error"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
			Expect(body.Error.Code).To(Equal("CASCADE_CONFIRMATION_REQUIRED"))
			Expect(body.Error.Details.RequiresForce).To(BeTrue())
			Expect(body.Error.Details.DependentCount).To(Equal(int64(2)))
		})

		It("should return 403 when forcing without the report permission", func() {
			w := doRequest(http.MethodDelete, "/patients/11?force=true", medic)
			Expect(w.Code).To(Equal(http.StatusForbidden))

			w = doRequest(http.MethodGet, "/patients/11", medic)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should cascade when forced with the report permission", func() {
			w := doRequest(http.MethodDelete, "/patients/11?force=true", cleared)
			Expect(w.Code).To(Equal(http.StatusOK))

			w = doRequest(http.MethodGet, "/patients/11", cleared)
			Expect(w.Code).To(Equal(http.StatusNotFound))

			var remaining int64
			Expect(db.Model(&SQLiteMedicalReport{}).Where("patient_id = ?", 11).Count(&remaining).Error).To(Succeed())
			Expect(remaining).To(BeZero())
		})
	})
})
