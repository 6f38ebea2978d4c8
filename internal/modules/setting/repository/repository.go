package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"kitapantaups.id/api/internal/entity"
)

type SettingRepository interface {
	All(ctx context.Context) ([]entity.Setting, error)
	Upsert(ctx context.Context, key, value string, updatedBy uuid.UUID) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) All(ctx context.Context) ([]entity.Setting, error) {
	rows := []entity.Setting{}
	err := r.db.WithContext(ctx).Order("key").Find(&rows).Error
	return rows, err
}

func (r *settingRepository) Upsert(ctx context.Context, key, value string, updatedBy uuid.UUID) error {
	row := entity.Setting{
		Key:       key,
		Value:     value,
		UpdatedBy: &updatedBy,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(&row).Error
}
