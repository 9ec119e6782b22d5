package repository

import (
	"context"

	"github.com/fadilmartias/pathfinder/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepositoryInterface interface {
	FindActive(ctx context.Context, limit int) ([]model.Question, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Question, error)
	Upsert(ctx context.Context, questions []model.Question) error
}

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db}
}

func (r *QuestionRepository) FindActive(ctx context.Context, limit int) ([]model.Question, error) {
	var questions []model.Question
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&questions).Error; err != nil {
		return nil, storageError("find active questions", err)
	}
	return questions, nil
}

// FindByIDs ignores the active flag. Ids that are not UUIDs cannot exist and
// are skipped, so callers see them as missing.
func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Question, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if u, err := uuid.Parse(id); err == nil {
			parsed = append(parsed, u)
		}
	}
	if len(parsed) == 0 {
		return []model.Question{}, nil
	}

	var questions []model.Question
	if err := r.db.WithContext(ctx).Where("id IN ?", parsed).Find(&questions).Error; err != nil {
		return nil, storageError("find questions by id", err)
	}
	return questions, nil
}

func (r *QuestionRepository) Upsert(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"text", "options", "category", "difficulty", "is_active", "display_order", "updated_at"}),
		}).
		CreateInBatches(&questions, 100).Error
	if err != nil {
		return storageError("upsert questions", err)
	}
	return nil
}
