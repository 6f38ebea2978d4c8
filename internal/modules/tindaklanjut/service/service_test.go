package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/internal/modules/tindaklanjut/dto"
	"kitapantaups.id/api/pkg/apperror"
	"kitapantaups.id/api/pkg/response"
)

func setup(t *testing.T) (*MockRepository, *recordedActivities, *entity.Aduan, TindakLanjutService) {
	t.Helper()
	aduan := &entity.Aduan{ID: uuid.New(), NomorTiket: "ADU25000003"}
	repo := new(MockRepository)
	rec := &recordedActivities{}
	svc := NewTindakLanjutService(repo, &stubAduanRepo{known: map[uuid.UUID]*entity.Aduan{aduan.ID: aduan}}, rec)
	return repo, rec, aduan, svc
}

func TestCreateCapturesCreatorName(t *testing.T) {
	repo, rec, aduan, svc := setup(t)
	actor := response.Actor{ID: uuid.New(), Email: "staf@kitapantau.id"}

	repo.On("DisplayName", mock.Anything, actor.ID).Return("Sari", nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.TindakLanjut")).Return(nil)

	tl, err := svc.Create(context.Background(), actor, aduan.ID.String(), dto.CreateTindakLanjutInput{
		Tanggal:  "2025-01-05",
		JenisTL:  "Rapat Koordinasi",
		FileURLs: []string{"http://localhost:3000/uploads/ADU25000003/tl_a.pdf"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Sari", tl.CreatedByName)
	assert.Equal(t, aduan.ID, tl.AduanID)
	assert.Equal(t, time.January, time.Time(tl.Tanggal).Month())
	require.Len(t, rec.items, 1)
	assert.Equal(t, entity.ActivityCreateTL, rec.items[0].Type)
}

func TestCreateFallsBackToEmail(t *testing.T) {
	repo, _, aduan, svc := setup(t)
	actor := response.Actor{ID: uuid.New(), Email: "staf@kitapantau.id"}

	repo.On("DisplayName", mock.Anything, actor.ID).Return("", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	tl, err := svc.Create(context.Background(), actor, aduan.ID.String(), dto.CreateTindakLanjutInput{
		Tanggal: "2025-01-05",
		JenisTL: "Surat Jawaban",
	})
	require.NoError(t, err)
	assert.Equal(t, "staf@kitapantau.id", tl.CreatedByName)
	assert.NotNil(t, tl.FileURLs)
}

func TestCreateUnknownAduan(t *testing.T) {
	_, _, _, svc := setup(t)

	_, err := svc.Create(context.Background(), response.Actor{ID: uuid.New()}, uuid.NewString(), dto.CreateTindakLanjutInput{
		Tanggal: "2025-01-05",
		JenisTL: "Surat Jawaban",
	})
	assert.Equal(t, 404, apperror.MapErrorToStatus(err))
}

func TestUpdateOnlyTouchesGivenFields(t *testing.T) {
	repo, _, aduan, svc := setup(t)
	id := uuid.New()
	ket := "Sudah ditindaklanjuti"

	repo.On("Update", mock.Anything, id, map[string]any{"keterangan": ket}).
		Return(&entity.TindakLanjut{ID: id, AduanID: aduan.ID, Keterangan: &ket}, nil)

	tl, err := svc.Update(context.Background(), response.Actor{ID: uuid.New()}, id.String(), dto.UpdateTindakLanjutInput{Keterangan: &ket})
	require.NoError(t, err)
	assert.Equal(t, ket, *tl.Keterangan)
	repo.AssertExpectations(t)
}

func TestUpdateEmptyBodyReturnsCurrent(t *testing.T) {
	repo, rec, aduan, svc := setup(t)
	id := uuid.New()

	repo.On("FindByID", mock.Anything, id).Return(&entity.TindakLanjut{ID: id, AduanID: aduan.ID}, nil)

	_, err := svc.Update(context.Background(), response.Actor{ID: uuid.New()}, id.String(), dto.UpdateTindakLanjutInput{})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, rec.items)
}

func TestDeleteMissing(t *testing.T) {
	repo, _, _, svc := setup(t)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, apperror.NotFound("Tindak lanjut tidak ditemukan"))

	err := svc.Delete(context.Background(), response.Actor{ID: uuid.New()}, id.String())
	assert.Equal(t, 404, apperror.MapErrorToStatus(err))
}
