package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"kitapantaups.id/api/internal/entity"
	activity "kitapantaups.id/api/internal/modules/activity/service"
	aduanRepo "kitapantaups.id/api/internal/modules/aduan/repository"
	aduanService "kitapantaups.id/api/internal/modules/aduan/service"
	"kitapantaups.id/api/internal/modules/tindaklanjut/dto"
	"kitapantaups.id/api/internal/modules/tindaklanjut/repository"
	"kitapantaups.id/api/pkg/apperror"
	"kitapantaups.id/api/pkg/response"
)

const dateLayout = "2006-01-02"

type TindakLanjutService interface {
	List(ctx context.Context, aduanID string) ([]entity.TindakLanjut, error)
	Create(ctx context.Context, actor response.Actor, aduanID string, input dto.CreateTindakLanjutInput) (*entity.TindakLanjut, error)
	Update(ctx context.Context, actor response.Actor, id string, input dto.UpdateTindakLanjutInput) (*entity.TindakLanjut, error)
	Delete(ctx context.Context, actor response.Actor, id string) error
}

type tindakLanjutService struct {
	repo      repository.TindakLanjutRepository
	aduanRepo aduanRepo.AduanRepository
	activity  activity.Recorder
}

func NewTindakLanjutService(repo repository.TindakLanjutRepository, aduanRepo aduanRepo.AduanRepository, recorder activity.Recorder) TindakLanjutService {
	return &tindakLanjutService{
		repo:      repo,
		aduanRepo: aduanRepo,
		activity:  recorder,
	}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.NotFound("Tindak lanjut tidak ditemukan")
	}
	return parsed, nil
}

func (s *tindakLanjutService) List(ctx context.Context, aduanID string) ([]entity.TindakLanjut, error) {
	id, err := aduanService.ParseID(aduanID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByAduan(ctx, id)
}

func (s *tindakLanjutService) Create(ctx context.Context, actor response.Actor, aduanID string, input dto.CreateTindakLanjutInput) (*entity.TindakLanjut, error) {
	id, err := aduanService.ParseID(aduanID)
	if err != nil {
		return nil, err
	}
	aduan, err := s.aduanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tanggal, err := time.Parse(dateLayout, input.Tanggal)
	if err != nil {
		return nil, apperror.BadRequest("Format tanggal tidak valid")
	}

	creator := actor.ID
	tl := &entity.TindakLanjut{
		AduanID:          aduan.ID,
		Tanggal:          datatypes.Date(tanggal),
		JenisTL:          input.JenisTL,
		Keterangan:       input.Keterangan,
		FileURLs:         pq.StringArray(nonNil(input.FileURLs)),
		NomorSuratOutput: input.NomorSuratOutput,
		LinkDrive:        input.LinkDrive,
		CreatedBy:        &creator,
		CreatedByName:    s.creatorName(ctx, actor),
	}

	if err := s.repo.Create(ctx, tl); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &entity.AppActivity{
		Type:        entity.ActivityCreateTL,
		Description: fmt.Sprintf("Menambahkan tindak lanjut %s pada aduan %s", tl.JenisTL, aduan.NomorTiket),
		UserID:      &creator,
		UserName:    tl.CreatedByName,
		AduanID:     &aduan.ID,
		Metadata:    datatypes.JSONMap{"jenis_tl": tl.JenisTL, "file_count": len(tl.FileURLs)},
	})

	return tl, nil
}

func (s *tindakLanjutService) Update(ctx context.Context, actor response.Actor, id string, input dto.UpdateTindakLanjutInput) (*entity.TindakLanjut, error) {
	tlID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Tanggal != nil {
		tanggal, err := time.Parse(dateLayout, *input.Tanggal)
		if err != nil {
			return nil, apperror.BadRequest("Format tanggal tidak valid")
		}
		updates["tanggal"] = datatypes.Date(tanggal)
	}
	if input.JenisTL != nil {
		updates["jenis_tl"] = *input.JenisTL
	}
	if input.Keterangan != nil {
		updates["keterangan"] = *input.Keterangan
	}
	if input.FileURLs != nil {
		updates["file_urls"] = pq.StringArray(nonNil(*input.FileURLs))
	}
	if input.NomorSuratOutput != nil {
		updates["nomor_surat_output"] = *input.NomorSuratOutput
	}
	if input.LinkDrive != nil {
		updates["link_drive"] = *input.LinkDrive
	}

	// An empty body is a no-op that still returns the current row.
	if len(updates) == 0 {
		return s.repo.FindByID(ctx, tlID)
	}

	tl, err := s.repo.Update(ctx, tlID, updates)
	if err != nil {
		return nil, err
	}

	userID := actor.ID
	s.activity.Record(ctx, &entity.AppActivity{
		Type:        entity.ActivityUpdateTL,
		Description: fmt.Sprintf("Memperbarui tindak lanjut %s", tl.JenisTL),
		UserID:      &userID,
		UserName:    actor.Email,
		AduanID:     &tl.AduanID,
		Metadata:    datatypes.JSONMap{"tindak_lanjut_id": tl.ID.String()},
	})

	return tl, nil
}

// Delete removes the record only. Its file_urls become unreferenced and are
// reclaimed by the orphan sweep.
func (s *tindakLanjutService) Delete(ctx context.Context, actor response.Actor, id string) error {
	tlID, err := parseID(id)
	if err != nil {
		return err
	}

	tl, err := s.repo.FindByID(ctx, tlID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tlID); err != nil {
		return err
	}

	userID := actor.ID
	s.activity.Record(ctx, &entity.AppActivity{
		Type:        entity.ActivityDeleteTL,
		Description: fmt.Sprintf("Menghapus tindak lanjut %s", tl.JenisTL),
		UserID:      &userID,
		UserName:    actor.Email,
		AduanID:     &tl.AduanID,
		Metadata:    datatypes.JSONMap{"tindak_lanjut_id": tl.ID.String()},
	})
	return nil
}

func (s *tindakLanjutService) creatorName(ctx context.Context, actor response.Actor) string {
	name, err := s.repo.DisplayName(ctx, actor.ID)
	if err != nil {
		log.Printf("⚠️ failed to look up display name for %s: %v", actor.ID, err)
	}
	if name == "" {
		return actor.Email
	}
	return name
}

func nonNil(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}
