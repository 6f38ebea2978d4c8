package service

import (
	"context"
	"time"

	"kitapantaups.id/api/internal/modules/dashboard/dto"
	"kitapantaups.id/api/internal/modules/dashboard/repository"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*dto.Stats, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*dto.Stats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}

	recent, err := s.repo.CountSince(ctx, s.now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &dto.Stats{
		Total:      total,
		ByStatus:   byStatus,
		Last30Days: recent,
	}, nil
}
