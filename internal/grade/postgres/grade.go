package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrsante/records-management/internal"
	gradeDatamodel "github.com/mrsante/records-management/internal/core/datamodel/grade"
	userDatamodel "github.com/mrsante/records-management/internal/core/datamodel/user"
	"github.com/mrsante/records-management/internal/grade"
)

// GradeRepository implements the grade.Repository interface using GORM.
type GradeRepository struct {
	db *gorm.DB
}

func NewGradeRepository(db *gorm.DB) grade.Repository {
	return &GradeRepository{db: db}
}

func (r *GradeRepository) GetAll() ([]*grade.Grade, error) {
	var rows []*gradeDatamodel.Grade
	if err := r.db.Order("level DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	grades := make([]*grade.Grade, 0, len(rows))
	for _, row := range rows {
		grades = append(grades, grade.FromDataModel(row))
	}
	return grades, nil
}

func (r *GradeRepository) GetByID(id int64) (*grade.Grade, error) {
	var row gradeDatamodel.Grade
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrGradeNotFound
		}
		return nil, err
	}
	return grade.FromDataModel(&row), nil
}

func (r *GradeRepository) Create(g *grade.Grade) error {
	row := grade.ToDataModel(g)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	g.ID = row.ID
	g.CreatedAt = row.CreatedAt
	g.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *GradeRepository) Update(g *grade.Grade) error {
	row := grade.ToDataModel(g)
	return r.db.Model(&gradeDatamodel.Grade{}).
		Where("id = ?", g.ID).
		Updates(map[string]interface{}{
			"name":        row.Name,
			"category":    row.Category,
			"level":       row.Level,
			"color":       row.Color,
			"permissions": row.Permissions,
			"updated_at":  time.Now(),
		}).Error
}

// DeleteIfUnreferenced counts the users still assigned to the grade and
// deletes the row only when none remain, inside one transaction.
func (r *GradeRepository) DeleteIfUnreferenced(id int64) (int64, error) {
	var references int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userDatamodel.User{}).
			Where("grade_id = ?", id).
			Count(&references).Error; err != nil {
			return err
		}
		if references > 0 {
			return nil
		}

		res := tx.Where("id = ?", id).Delete(&gradeDatamodel.Grade{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrGradeNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return references, nil
}
