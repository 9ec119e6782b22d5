package repository

import (
	"context"

	"github.com/fadilmartias/pathfinder/internal/apperror"
	"github.com/fadilmartias/pathfinder/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentResultRepositoryInterface has no update or delete: results are immutable.
type AssessmentResultRepositoryInterface interface {
	Save(ctx context.Context, result *model.AssessmentResult) error
	FindByLearner(ctx context.Context, learnerID string, offset, limit int) ([]model.AssessmentResult, int64, error)
	FindByID(ctx context.Context, id string) (*model.AssessmentResult, error)
}

type AssessmentResultRepository struct {
	db *gorm.DB
}

func NewAssessmentResultRepository(db *gorm.DB) *AssessmentResultRepository {
	return &AssessmentResultRepository{db}
}

// Save inserts result, assigning an id when it has none. CreatedAt is set by gorm.
func (r *AssessmentResultRepository) Save(ctx context.Context, result *model.AssessmentResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return storageError("save assessment result", err)
	}
	return nil
}

// FindByLearner returns newest first. A non-positive limit returns every result.
func (r *AssessmentResultRepository) FindByLearner(ctx context.Context, learnerID string, offset, limit int) ([]model.AssessmentResult, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.AssessmentResult{}).Where("learner_id = ?", learnerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, storageError("count assessment results", err)
	}

	var results []model.AssessmentResult
	q := base.Session(&gorm.Session{}).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, 0, storageError("find assessment results", err)
	}
	return results, total, nil
}

func (r *AssessmentResultRepository) FindByID(ctx context.Context, id string) (*model.AssessmentResult, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrNotFound
	}
	var result model.AssessmentResult
	if err := r.db.WithContext(ctx).First(&result, "id = ?", parsed).Error; err != nil {
		return nil, storageError("find assessment result", err)
	}
	return &result, nil
}
