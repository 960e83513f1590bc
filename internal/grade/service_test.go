package grade_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/auth"
	"github.com/mrsante/records-management/internal/grade"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGradeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Grade Service Suite")
}

// MockRepository implements grade.Repository for testing
type MockRepository struct {
	grades     map[int64]*grade.Grade
	userCounts map[int64]int64
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		grades:     make(map[int64]*grade.Grade),
		userCounts: make(map[int64]int64),
		nextID:     1,
	}
}

func (m *MockRepository) GetAll() ([]*grade.Grade, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*grade.Grade
	for _, g := range m.grades {
		result = append(result, g)
	}
	return result, nil
}

func (m *MockRepository) GetByID(id int64) (*grade.Grade, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	g, ok := m.grades[id]
	if !ok {
		return nil, internal.ErrGradeNotFound
	}
	return g, nil
}

func (m *MockRepository) Create(g *grade.Grade) error {
	if m.shouldFail {
		return m.failError
	}
	g.ID = m.nextID
	m.nextID++
	m.grades[g.ID] = g
	return nil
}

func (m *MockRepository) Update(g *grade.Grade) error {
	if m.shouldFail {
		return m.failError
	}
	m.grades[g.ID] = g
	return nil
}

func (m *MockRepository) DeleteIfUnreferenced(id int64) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	if count := m.userCounts[id]; count > 0 {
		return count, nil
	}
	if _, ok := m.grades[id]; !ok {
		return 0, internal.ErrGradeNotFound
	}
	delete(m.grades, id)
	return 0, nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) AddGrade(g *grade.Grade) {
	m.grades[g.ID] = g
	if g.ID >= m.nextID {
		m.nextID = g.ID + 1
	}
}

var _ = Describe("Grade Service", func() {
	var (
		mockRepo *MockRepository
		service  *grade.Service
		logger   *slog.Logger
		engine   *auth.Engine

		chief  *auth.Principal
		senior *auth.Principal
		root   *auth.Principal
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		engine = auth.NewEngine(0)
		service = grade.NewService(mockRepo, engine, logger)

		chief = &auth.Principal{UserID: 1, GradeLevel: 10, IsAdmin: true}
		senior = &auth.Principal{UserID: 2, GradeLevel: 8}
		root = &auth.Principal{UserID: 3, GradeLevel: auth.RootGradeLevel}
	})

	Describe("Create", func() {
		Context("when the requested level is dominated", func() {
			It("should create the grade", func() {
				created, err := service.Create(chief, grade.UpsertGradeDTO{
					Name:     "Physician",
					Category: "medical",
					Level:    5,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(created.ID).ToNot(BeZero())
				Expect(created.Level).To(Equal(5))
			})

			It("should default color and permissions", func() {
				created, err := service.Create(chief, grade.UpsertGradeDTO{
					Name:     "Intern",
					Category: "medical",
					Level:    1,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(created.Color).ToNot(BeEmpty())
				Expect(created.Permissions).ToNot(BeNil())
			})
		})

		Context("when the requested level is not dominated", func() {
			It("should reject a level equal to the caller's own", func() {
				_, err := service.Create(senior, grade.UpsertGradeDTO{
					Name:     "Peer",
					Category: "medical",
					Level:    8,
				})
				Expect(err).To(MatchError(internal.ErrInsufficientGrade))
			})

			It("should reject a level above the caller's own", func() {
				_, err := service.Create(senior, grade.UpsertGradeDTO{
					Name:     "Overlord",
					Category: "command",
					Level:    50,
				})
				Expect(err).To(MatchError(internal.ErrInsufficientGrade))
			})

			It("should let root create at any level", func() {
				_, err := service.Create(root, grade.UpsertGradeDTO{
					Name:     "Director",
					Category: "command",
					Level:    99,
				})
				Expect(err).ToNot(HaveOccurred())
			})
		})

		Context("when the payload is invalid", func() {
			It("should require a name", func() {
				_, err := service.Create(chief, grade.UpsertGradeDTO{Level: 5})
				Expect(err).To(HaveOccurred())
			})

			It("should bound the level", func() {
				_, err := service.Create(chief, grade.UpsertGradeDTO{Name: "Ghost", Level: 0})
				Expect(err).To(HaveOccurred())

				_, err = service.Create(chief, grade.UpsertGradeDTO{Name: "Ghost", Level: 100})
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			mockRepo.AddGrade(&grade.Grade{ID: 4, Name: "Nurse", Category: "medical", Level: 3})
		})

		It("should apply the edit when the new level is dominated", func() {
			updated, err := service.Update(chief, 4, grade.UpsertGradeDTO{
				Name:     "Head Nurse",
				Category: "medical",
				Level:    4,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Name).To(Equal("Head Nurse"))
			Expect(updated.Level).To(Equal(4))
		})

		It("should reject raising a grade to the caller's own level", func() {
			_, err := service.Update(senior, 4, grade.UpsertGradeDTO{
				Name:     "Nurse",
				Category: "medical",
				Level:    8,
			})
			Expect(err).To(MatchError(internal.ErrInsufficientGrade))
		})

		It("should surface a missing grade", func() {
			_, err := service.Update(chief, 999, grade.UpsertGradeDTO{
				Name:     "Nobody",
				Category: "medical",
				Level:    2,
			})
			Expect(err).To(MatchError(internal.ErrGradeNotFound))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			mockRepo.AddGrade(&grade.Grade{ID: 5, Name: "Intern", Category: "medical", Level: 1})
		})

		It("should delete an unreferenced grade", func() {
			Expect(service.Delete(chief, 5)).To(Succeed())

			_, err := mockRepo.GetByID(5)
			Expect(err).To(MatchError(internal.ErrGradeNotFound))
		})

		It("should block deletion while users still hold the grade", func() {
			mockRepo.userCounts[5] = 3

			err := service.Delete(chief, 5)
			Expect(err).To(MatchError(internal.ErrGradeInUse))
		})

		It("should block a referenced delete even for root", func() {
			mockRepo.userCounts[5] = 1

			err := service.Delete(root, 5)
			Expect(err).To(MatchError(internal.ErrGradeInUse))
		})

		It("should propagate repository failures", func() {
			mockRepo.SetShouldFail(true, errors.New("connection lost"))

			err := service.Delete(chief, 5)
			Expect(err).To(HaveOccurred())
		})
	})
})
