package repository

import (
	"context"

	"gorm.io/gorm"
	"kitapantaups.id/api/internal/entity"
)

type MasterRepository interface {
	Statuses(ctx context.Context) ([]entity.MasterStatus, error)
	Kategori(ctx context.Context) ([]entity.MasterKategoriMasalah, error)
	JenisTL(ctx context.Context) ([]entity.MasterJenisTL, error)
	SearchKPS(ctx context.Context, search string, limit, offset int) ([]entity.MasterKPS, int64, error)
}

type masterRepository struct {
	db *gorm.DB
}

func NewMasterRepository(db *gorm.DB) MasterRepository {
	return &masterRepository{db: db}
}

func (r *masterRepository) Statuses(ctx context.Context) ([]entity.MasterStatus, error) {
	rows := []entity.MasterStatus{}
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	return rows, err
}

func (r *masterRepository) Kategori(ctx context.Context) ([]entity.MasterKategoriMasalah, error) {
	rows := []entity.MasterKategoriMasalah{}
	err := r.db.WithContext(ctx).Order("nama_kategori").Find(&rows).Error
	return rows, err
}

func (r *masterRepository) JenisTL(ctx context.Context) ([]entity.MasterJenisTL, error) {
	rows := []entity.MasterJenisTL{}
	err := r.db.WithContext(ctx).Order("nama_jenis_tl").Find(&rows).Error
	return rows, err
}

func (r *masterRepository) SearchKPS(ctx context.Context, search string, limit, offset int) ([]entity.MasterKPS, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.MasterKPS{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("nama_kps ILIKE ? OR nomor_sk ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []entity.MasterKPS{}
	err := query.Order("nama_kps").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}
