package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"kitapantaups.id/api/internal/entity"
	aduanRepo "kitapantaups.id/api/internal/modules/aduan/repository"
	"kitapantaups.id/api/internal/modules/tindaklanjut/repository"
	"kitapantaups.id/api/pkg/apperror"
)

type MockRepository struct {
	mock.Mock
}

var _ repository.TindakLanjutRepository = (*MockRepository)(nil)

func (m *MockRepository) Create(ctx context.Context, tl *entity.TindakLanjut) error {
	args := m.Called(ctx, tl)
	return args.Error(0)
}

func (m *MockRepository) ListByAduan(ctx context.Context, aduanID uuid.UUID) ([]entity.TindakLanjut, error) {
	args := m.Called(ctx, aduanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TindakLanjut), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TindakLanjut, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TindakLanjut), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*entity.TindakLanjut, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TindakLanjut), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// stubAduanRepo answers FindByID from a fixed set; other methods are not used here.
type stubAduanRepo struct {
	aduanRepo.AduanRepository
	known map[uuid.UUID]*entity.Aduan
}

func (s *stubAduanRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Aduan, error) {
	if a, ok := s.known[id]; ok {
		return a, nil
	}
	return nil, apperror.NotFound("Aduan tidak ditemukan")
}

type recordedActivities struct {
	items []*entity.AppActivity
}

func (r *recordedActivities) Record(_ context.Context, activity *entity.AppActivity) {
	r.items = append(r.items, activity)
}
