package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/internal/modules/activity/repository"
)

type MockRepository struct {
	mock.Mock
}

var _ repository.ActivityRepository = (*MockRepository)(nil)

func (m *MockRepository) Create(ctx context.Context, activity *entity.AppActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, aduanID *uuid.UUID, limit int) ([]entity.AppActivity, error) {
	args := m.Called(ctx, aduanID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AppActivity), args.Error(1)
}
