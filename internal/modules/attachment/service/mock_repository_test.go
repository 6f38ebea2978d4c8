package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"kitapantaups.id/api/internal/entity"
	aduanDto "kitapantaups.id/api/internal/modules/aduan/dto"
	aduanRepo "kitapantaups.id/api/internal/modules/aduan/repository"
	"kitapantaups.id/api/internal/modules/attachment/repository"
	"kitapantaups.id/api/pkg/apperror"
)

type MockDocumentRepository struct {
	mock.Mock
}

var _ repository.DocumentRepository = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) Create(ctx context.Context, doc *entity.AduanDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) ListByAduan(ctx context.Context, aduanID uuid.UUID) ([]entity.AduanDocument, error) {
	args := m.Called(ctx, aduanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AduanDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindForAduan(ctx context.Context, aduanID, docID uuid.UUID) (*entity.AduanDocument, error) {
	args := m.Called(ctx, aduanID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AduanDocument), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) ReferencedURLs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// stubAduanRepo serves complaints and their details from memory.
type stubAduanRepo struct {
	aduanRepo.AduanRepository
	details map[uuid.UUID]*aduanDto.AduanDetail
}

func newStubAduanRepo(details ...*aduanDto.AduanDetail) *stubAduanRepo {
	s := &stubAduanRepo{details: map[uuid.UUID]*aduanDto.AduanDetail{}}
	for _, d := range details {
		s.details[d.ID] = d
	}
	return s
}

func (s *stubAduanRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Aduan, error) {
	if d, ok := s.details[id]; ok {
		return &d.Aduan, nil
	}
	return nil, apperror.NotFound("Aduan tidak ditemukan")
}

func (s *stubAduanRepo) FindDetail(_ context.Context, id uuid.UUID) (*aduanDto.AduanDetail, error) {
	if d, ok := s.details[id]; ok {
		return d, nil
	}
	return nil, apperror.NotFound("Aduan tidak ditemukan")
}

type recordedActivities struct {
	items []*entity.AppActivity
}

func (r *recordedActivities) Record(_ context.Context, activity *entity.AppActivity) {
	r.items = append(r.items, activity)
}
