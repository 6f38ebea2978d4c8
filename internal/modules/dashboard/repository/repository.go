package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"kitapantaups.id/api/internal/entity"
)

type StatusCount struct {
	Status string
	Count  int64
}

type DashboardRepository interface {
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Aduan{}).Count(&total).Error
	return total, err
}

func (r *dashboardRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&entity.Aduan{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Aduan{}).
		Where("created_at > ?", since).
		Count(&count).Error
	return count, err
}
