package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/pkg/apperror"
)

type TindakLanjutRepository interface {
	Create(ctx context.Context, tl *entity.TindakLanjut) error
	ListByAduan(ctx context.Context, aduanID uuid.UUID) ([]entity.TindakLanjut, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TindakLanjut, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*entity.TindakLanjut, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}

type tindakLanjutRepository struct {
	db *gorm.DB
}

func NewTindakLanjutRepository(db *gorm.DB) TindakLanjutRepository {
	return &tindakLanjutRepository{db: db}
}

func (r *tindakLanjutRepository) Create(ctx context.Context, tl *entity.TindakLanjut) error {
	return r.db.WithContext(ctx).Create(tl).Error
}

func (r *tindakLanjutRepository) ListByAduan(ctx context.Context, aduanID uuid.UUID) ([]entity.TindakLanjut, error) {
	items := []entity.TindakLanjut{}
	err := r.db.WithContext(ctx).
		Where("aduan_id = ?", aduanID).
		Order("tanggal DESC").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *tindakLanjutRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TindakLanjut, error) {
	var tl entity.TindakLanjut
	if err := r.db.WithContext(ctx).First(&tl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Tindak lanjut tidak ditemukan")
		}
		return nil, err
	}
	return &tl, nil
}

func (r *tindakLanjutRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*entity.TindakLanjut, error) {
	result := r.db.WithContext(ctx).Model(&entity.TindakLanjut{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("Tindak lanjut tidak ditemukan")
	}
	return r.FindByID(ctx, id)
}

func (r *tindakLanjutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.TindakLanjut{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Tindak lanjut tidak ditemukan")
	}
	return nil
}

func (r *tindakLanjutRepository) DisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	var name string
	err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		Select("display_name").
		Scan(&name).Error
	return name, err
}
