package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/internal/modules/aduan/dto"
	"kitapantaups.id/api/internal/modules/aduan/repository"
	"kitapantaups.id/api/pkg/apperror"
	"kitapantaups.id/api/pkg/response"
)

func newTestService(repo *MockRepository, index *MockIndex) (*aduanService, *recordedActivities) {
	rec := &recordedActivities{}
	svc := &aduanService{
		repo:     repo,
		activity: rec,
		now:      func() time.Time { return time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC) },
	}
	if index != nil {
		svc.index = index
	}
	return svc, rec
}

func TestNomorTiket(t *testing.T) {
	assert.Equal(t, "ADU25000001", NomorTiket(2025, 1))
	assert.Equal(t, "ADU26001234", NomorTiket(2026, 1234))
}

func TestCreateAssignsTicketNumber(t *testing.T) {
	repo := new(MockRepository)
	repo.On("LastTicket", mock.Anything, "ADU25").Return("ADU25000041", nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Aduan")).Return(nil)

	svc, rec := newTestService(repo, nil)
	actor := response.Actor{ID: uuid.New(), Email: "staf@kitapantau.id"}

	aduan, err := svc.Create(context.Background(), actor, dto.CreateAduanInput{
		PengaduNama:      "Kelompok Tani Hutan",
		RingkasanMasalah: "Tumpang tindih areal",
		NamaKPS:          []string{"HKm Maju"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ADU25000042", aduan.NomorTiket)
	assert.Equal(t, entity.StatusDisposisi, aduan.Status)
	assert.Equal(t, actor.ID, *aduan.CreatedBy)
	require.Len(t, rec.items, 1)
	assert.Equal(t, entity.ActivityCreateAduan, rec.items[0].Type)
	repo.AssertExpectations(t)
}

func TestCreateRetriesOnTicketConflict(t *testing.T) {
	repo := new(MockRepository)
	repo.On("LastTicket", mock.Anything, "ADU25").Return("", nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Aduan")).Return(apperror.ErrConflict).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Aduan")).Return(nil).Once()

	svc, _ := newTestService(repo, nil)
	aduan, err := svc.Create(context.Background(), response.Actor{ID: uuid.New()}, dto.CreateAduanInput{
		PengaduNama:      "A",
		RingkasanMasalah: "B",
	})
	require.NoError(t, err)
	assert.Equal(t, "ADU25000002", aduan.NomorTiket)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestCreateGivesUpAfterRepeatedConflicts(t *testing.T) {
	repo := new(MockRepository)
	repo.On("LastTicket", mock.Anything, "ADU25").Return("", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(apperror.ErrConflict)

	svc, rec := newTestService(repo, nil)
	_, err := svc.Create(context.Background(), response.Actor{ID: uuid.New()}, dto.CreateAduanInput{
		PengaduNama:      "A",
		RingkasanMasalah: "B",
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	repo.AssertNumberOfCalls(t, "Create", ticketMaxAttempt)
	assert.Empty(t, rec.items)
}

func TestCreateContinuesAfterHighestTicket(t *testing.T) {
	// Five earlier complaints were deleted: tickets 6..10 remain, so a count
	// of this year's rows would point back into the used range.
	taken := map[string]bool{}
	for seq := 6; seq <= 10; seq++ {
		taken[NomorTiket(2025, seq)] = true
	}

	repo := new(MockRepository)
	repo.On("LastTicket", mock.Anything, "ADU25").Return("ADU25000010", nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Aduan")).Return(nil).Run(func(args mock.Arguments) {
		aduan := args.Get(1).(*entity.Aduan)
		assert.False(t, taken[aduan.NomorTiket], "ticket %s already issued", aduan.NomorTiket)
	})

	svc, _ := newTestService(repo, nil)
	aduan, err := svc.Create(context.Background(), response.Actor{ID: uuid.New()}, dto.CreateAduanInput{
		PengaduNama:      "A",
		RingkasanMasalah: "B",
	})
	require.NoError(t, err)
	assert.Equal(t, "ADU25000011", aduan.NomorTiket)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCreateStartsNewYearAtOne(t *testing.T) {
	repo := new(MockRepository)
	repo.On("LastTicket", mock.Anything, "ADU25").Return("", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc, _ := newTestService(repo, nil)
	aduan, err := svc.Create(context.Background(), response.Actor{ID: uuid.New()}, dto.CreateAduanInput{
		PengaduNama:      "A",
		RingkasanMasalah: "B",
	})
	require.NoError(t, err)
	assert.Equal(t, "ADU25000001", aduan.NomorTiket)
}

func TestTicketSequence(t *testing.T) {
	seq, err := ticketSequence("ADU25000123", "ADU25")
	require.NoError(t, err)
	assert.Equal(t, 123, seq)

	_, err = ticketSequence("ADU24000123", "ADU25")
	assert.Error(t, err)
	_, err = ticketSequence("ADU25abc", "ADU25")
	assert.Error(t, err)
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc, _ := newTestService(new(MockRepository), nil)
	bad := "04-03-2025"

	_, err := svc.Create(context.Background(), response.Actor{ID: uuid.New()}, dto.CreateAduanInput{
		PengaduNama:      "A",
		RingkasanMasalah: "B",
		SuratTanggal:     &bad,
	})
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
}

func TestCreateIndexFailureDoesNotFail(t *testing.T) {
	repo := new(MockRepository)
	repo.On("LastTicket", mock.Anything, "ADU25").Return("", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	index := new(MockIndex)
	index.On("IndexAduan", mock.Anything).Return(errors.New("meili down"))

	svc, _ := newTestService(repo, index)
	_, err := svc.Create(context.Background(), response.Actor{ID: uuid.New()}, dto.CreateAduanInput{
		PengaduNama:      "A",
		RingkasanMasalah: "B",
	})
	assert.NoError(t, err)
	index.AssertExpectations(t)
}

func TestListParsesDateRange(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything, mock.MatchedBy(func(q repository.ListQuery) bool {
		return q.From != nil && q.From.Day() == 1 &&
			q.Until != nil && q.Until.Day() == 1 && q.Until.Month() == time.February &&
			q.Limit == 20 && q.Offset == 20
	})).Return([]dto.AduanListItem{}, int64(25), nil)

	svc, _ := newTestService(repo, nil)
	filter := dto.AduanFilter{StartDate: "2025-01-01", EndDate: "2025-01-31"}
	filter.Page = 2

	result, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 20, result.Limit)
	repo.AssertExpectations(t)
}

func TestListRejectsBadDate(t *testing.T) {
	svc, _ := newTestService(new(MockRepository), nil)

	_, err := svc.List(context.Background(), dto.AduanFilter{StartDate: "kemarin"})
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
}

func TestListUsesSearchIndex(t *testing.T) {
	id := uuid.New()
	index := new(MockIndex)
	index.On("SearchIDs", "hutan", int64(searchHitLimit)).Return([]string{id.String(), "garbage"}, nil)

	repo := new(MockRepository)
	repo.On("List", mock.Anything, mock.MatchedBy(func(q repository.ListQuery) bool {
		return len(q.IDs) == 1 && q.IDs[0] == id
	})).Return([]dto.AduanListItem{}, int64(1), nil)

	svc, _ := newTestService(repo, index)
	_, err := svc.List(context.Background(), dto.AduanFilter{Search: "hutan"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListFallsBackWhenSearchFails(t *testing.T) {
	index := new(MockIndex)
	index.On("SearchIDs", "hutan", mock.Anything).Return(nil, errors.New("timeout"))

	repo := new(MockRepository)
	repo.On("List", mock.Anything, mock.MatchedBy(func(q repository.ListQuery) bool {
		return q.IDs == nil && q.Search == "hutan"
	})).Return([]dto.AduanListItem{}, int64(0), nil)

	svc, _ := newTestService(repo, index)
	_, err := svc.List(context.Background(), dto.AduanFilter{Search: "hutan"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetDetailMalformedID(t *testing.T) {
	svc, _ := newTestService(new(MockRepository), nil)

	_, err := svc.GetDetail(context.Background(), "123")
	assert.Equal(t, 404, apperror.MapErrorToStatus(err))
}

func TestUpdateRequiresFields(t *testing.T) {
	svc, _ := newTestService(new(MockRepository), nil)

	_, err := svc.Update(context.Background(), response.Actor{ID: uuid.New()}, uuid.NewString(), dto.UpdateAduanInput{})
	require.Error(t, err)
	assert.Equal(t, "Tidak ada field yang diupdate", err.Error())
}

func TestUpdateBuildsColumnMap(t *testing.T) {
	id := uuid.New()
	actor := response.Actor{ID: uuid.New(), Email: "admin@kitapantau.id"}
	status := "proses"
	kps := []string{"HD Sejahtera", "HKm Lestari"}

	repo := new(MockRepository)
	repo.On("Update", mock.Anything, id, mock.MatchedBy(func(u map[string]any) bool {
		arr, ok := u["nama_kps"]
		return u["status"] == "proses" && u["updated_by"] == actor.ID && ok && len(u) == 3 && arr != nil
	})).Return(&entity.Aduan{ID: id, NomorTiket: "ADU25000001", Status: status}, nil)

	svc, rec := newTestService(repo, nil)
	got, err := svc.Update(context.Background(), actor, id.String(), dto.UpdateAduanInput{Status: &status, NamaKPS: &kps})
	require.NoError(t, err)
	assert.Equal(t, "proses", got.Status)
	require.Len(t, rec.items, 1)
	assert.Equal(t, "proses", rec.items[0].Metadata["status"])
	repo.AssertExpectations(t)
}

func TestDeleteRemovesFromIndex(t *testing.T) {
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, id).Return(&entity.Aduan{ID: id, NomorTiket: "ADU25000007"}, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)
	index := new(MockIndex)
	index.On("DeleteAduan", id.String()).Return(nil)

	svc, rec := newTestService(repo, index)
	require.NoError(t, svc.Delete(context.Background(), response.Actor{ID: uuid.New()}, id.String()))

	require.Len(t, rec.items, 1)
	assert.Equal(t, entity.ActivityDeleteAduan, rec.items[0].Type)
	assert.Equal(t, "Menghapus aduan ADU25000007", rec.items[0].Description)
	index.AssertExpectations(t)
}

func TestDeleteUnknown(t *testing.T) {
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, id).Return(nil, apperror.NotFound("Aduan tidak ditemukan"))

	svc, _ := newTestService(repo, nil)
	err := svc.Delete(context.Background(), response.Actor{ID: uuid.New()}, id.String())
	assert.Equal(t, 404, apperror.MapErrorToStatus(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
