package service

import (
	"context"

	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/internal/modules/master/dto"
	"kitapantaups.id/api/internal/modules/master/repository"
	commonDto "kitapantaups.id/api/pkg/dto"
)

const (
	defaultKPSLimit = 50
	maxKPSLimit     = 200
)

type MasterService interface {
	Statuses(ctx context.Context) ([]entity.MasterStatus, error)
	Kategori(ctx context.Context) ([]entity.MasterKategoriMasalah, error)
	JenisTL(ctx context.Context) ([]entity.MasterJenisTL, error)
	SearchKPS(ctx context.Context, filter dto.KPSFilter) (*commonDto.PaginatedResponse[entity.MasterKPS], error)
}

type masterService struct {
	repo repository.MasterRepository
}

func NewMasterService(repo repository.MasterRepository) MasterService {
	return &masterService{repo: repo}
}

func (s *masterService) Statuses(ctx context.Context) ([]entity.MasterStatus, error) {
	return s.repo.Statuses(ctx)
}

func (s *masterService) Kategori(ctx context.Context) ([]entity.MasterKategoriMasalah, error) {
	return s.repo.Kategori(ctx)
}

func (s *masterService) JenisTL(ctx context.Context) ([]entity.MasterJenisTL, error) {
	return s.repo.JenisTL(ctx)
}

func (s *masterService) SearchKPS(ctx context.Context, filter dto.KPSFilter) (*commonDto.PaginatedResponse[entity.MasterKPS], error) {
	if filter.Limit > maxKPSLimit {
		filter.Limit = maxKPSLimit
	}
	offset := filter.Normalize(defaultKPSLimit)

	rows, total, err := s.repo.SearchKPS(ctx, filter.Search, filter.Limit, offset)
	if err != nil {
		return nil, err
	}

	return &commonDto.PaginatedResponse[entity.MasterKPS]{
		Data:  rows,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
