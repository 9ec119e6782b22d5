package repository

import (
	"context"

	"github.com/fadilmartias/pathfinder/internal/model"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InstitutionRepositoryInterface interface {
	FindActiveByTags(ctx context.Context, tags []string, limit int) ([]model.Institution, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Institution, error)
	Upsert(ctx context.Context, institutions []model.Institution) error
}

type InstitutionRepository struct {
	db *gorm.DB
}

func NewInstitutionRepository(db *gorm.DB) *InstitutionRepository {
	return &InstitutionRepository{db}
}

// FindActiveByTags returns active institutions sharing at least one tag,
// best rated first, then best ranked. created_at and id make the order total.
func (r *InstitutionRepository) FindActiveByTags(ctx context.Context, tags []string, limit int) ([]model.Institution, error) {
	if len(tags) == 0 {
		return []model.Institution{}, nil
	}

	var institutions []model.Institution
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("interest_tags && ?", pq.Array(tags)).
		Order("rating DESC").
		Order("rank ASC").
		Order("created_at ASC").
		Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&institutions).Error; err != nil {
		return nil, storageError("find institutions by tags", err)
	}
	return institutions, nil
}

// FindByIDs includes inactive institutions so old results can still be shown.
func (r *InstitutionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Institution, error) {
	if len(ids) == 0 {
		return []model.Institution{}, nil
	}
	var institutions []model.Institution
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&institutions).Error; err != nil {
		return nil, storageError("find institutions by id", err)
	}
	return institutions, nil
}

func (r *InstitutionRepository) Upsert(ctx context.Context, institutions []model.Institution) error {
	if len(institutions) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "location_state", "location_city", "location_address", "streams",
				"interest_tags", "rank", "rating", "website", "is_active", "updated_at",
			}),
		}).
		CreateInBatches(&institutions, 100).Error
	if err != nil {
		return storageError("upsert institutions", err)
	}
	return nil
}
