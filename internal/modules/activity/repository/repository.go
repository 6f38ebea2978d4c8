package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitapantaups.id/api/internal/entity"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.AppActivity) error
	List(ctx context.Context, aduanID *uuid.UUID, limit int) ([]entity.AppActivity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.AppActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) List(ctx context.Context, aduanID *uuid.UUID, limit int) ([]entity.AppActivity, error) {
	var activities []entity.AppActivity
	query := r.db.WithContext(ctx).Order("created_at desc").Limit(limit)
	if aduanID != nil {
		query = query.Where("aduan_id = ?", *aduanID)
	}
	err := query.Find(&activities).Error
	return activities, err
}
