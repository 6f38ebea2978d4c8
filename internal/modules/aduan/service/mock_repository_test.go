package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/internal/modules/aduan/dto"
	"kitapantaups.id/api/internal/modules/aduan/repository"
)

type MockRepository struct {
	mock.Mock
}

var _ repository.AduanRepository = (*MockRepository)(nil)

func (m *MockRepository) Create(ctx context.Context, aduan *entity.Aduan) error {
	args := m.Called(ctx, aduan)
	return args.Error(0)
}

func (m *MockRepository) LastTicket(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Aduan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Aduan), args.Error(1)
}

func (m *MockRepository) FindDetail(ctx context.Context, id uuid.UUID) (*dto.AduanDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AduanDetail), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, q repository.ListQuery) ([]dto.AduanListItem, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.AduanListItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Provinces(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*entity.Aduan, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Aduan), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockIndex struct {
	mock.Mock
}

func (m *MockIndex) IndexAduan(aduan *entity.Aduan) error {
	args := m.Called(aduan)
	return args.Error(0)
}

func (m *MockIndex) DeleteAduan(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockIndex) SearchIDs(query string, limit int64) ([]string, error) {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type recordedActivities struct {
	items []*entity.AppActivity
}

func (r *recordedActivities) Record(_ context.Context, activity *entity.AppActivity) {
	r.items = append(r.items, activity)
}
