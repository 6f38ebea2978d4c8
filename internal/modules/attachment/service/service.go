package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"kitapantaups.id/api/internal/entity"
	activity "kitapantaups.id/api/internal/modules/activity/service"
	aduanRepo "kitapantaups.id/api/internal/modules/aduan/repository"
	aduanService "kitapantaups.id/api/internal/modules/aduan/service"
	"kitapantaups.id/api/internal/modules/attachment/dto"
	"kitapantaups.id/api/internal/modules/attachment/repository"
	"kitapantaups.id/api/pkg/apperror"
	"kitapantaups.id/api/pkg/response"
	"kitapantaups.id/api/pkg/storage"
)

type AttachmentService interface {
	Upload(ctx context.Context, aduanID, category, fileName string, content io.Reader) (*storage.StoredFile, error)
	RegisterDocument(ctx context.Context, actor response.Actor, aduanID string, input dto.RegisterDocumentInput) (*entity.AduanDocument, error)
	ListDocuments(ctx context.Context, aduanID string) ([]entity.AduanDocument, error)
	DeleteDocument(ctx context.Context, actor response.Actor, aduanID, docID string) error
	Attachments(ctx context.Context, aduanID string) ([]dto.Attachment, error)
	Archive(ctx context.Context, aduanID string) (*Archive, error)
	CleanupOrphanFiles(ctx context.Context) (*SweepReport, error)
}

type attachmentService struct {
	docRepo     repository.DocumentRepository
	aduanRepo   aduanRepo.AduanRepository
	fileStorage storage.FileStorage
	activity    activity.Recorder
	sweep       SweepConfig
}

func NewAttachmentService(
	docRepo repository.DocumentRepository,
	aduanRepo aduanRepo.AduanRepository,
	fileStorage storage.FileStorage,
	recorder activity.Recorder,
	sweep SweepConfig,
) AttachmentService {
	return &attachmentService{
		docRepo:     docRepo,
		aduanRepo:   aduanRepo,
		fileStorage: fileStorage,
		activity:    recorder,
		sweep:       sweep.withDefaults(),
	}
}

// Upload streams one complaint attachment into the complaint's ticket folder.
// The complaint and the extension are checked before content is read.
func (s *attachmentService) Upload(ctx context.Context, aduanID, category, fileName string, content io.Reader) (*storage.StoredFile, error) {
	id, err := aduanService.ParseID(aduanID)
	if err != nil {
		return nil, err
	}
	aduan, err := s.aduanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext, err := storage.ResolveExtension(fileName, storage.DocumentExtensions)
	if err != nil {
		return nil, err
	}
	folder, err := storage.TicketFolder(aduan.NomorTiket, aduan.ID.String())
	if err != nil {
		return nil, err
	}
	if category == "" {
		category = entity.CategoryDokumen
	}

	return s.fileStorage.Save(ctx, folder, storage.StoredFileName(category, ext), content)
}

func (s *attachmentService) RegisterDocument(ctx context.Context, actor response.Actor, aduanID string, input dto.RegisterDocumentInput) (*entity.AduanDocument, error) {
	id, err := aduanService.ParseID(aduanID)
	if err != nil {
		return nil, err
	}
	aduan, err := s.aduanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := &entity.AduanDocument{
		AduanID:      aduan.ID,
		FileURL:      input.FileURL,
		FileName:     input.FileName,
		FileCategory: input.FileCategory,
	}
	if doc.FileCategory == "" {
		doc.FileCategory = entity.CategoryDokumen
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	userID := actor.ID
	s.activity.Record(ctx, &entity.AppActivity{
		Type:        entity.ActivityAddDocument,
		Description: fmt.Sprintf("Menambahkan dokumen: %s", doc.FileName),
		UserID:      &userID,
		UserName:    actor.Email,
		AduanID:     &aduan.ID,
		Metadata:    datatypes.JSONMap{"file_name": doc.FileName, "file_url": doc.FileURL, "file_category": doc.FileCategory},
	})

	return doc, nil
}

func (s *attachmentService) ListDocuments(ctx context.Context, aduanID string) ([]entity.AduanDocument, error) {
	id, err := aduanService.ParseID(aduanID)
	if err != nil {
		return nil, err
	}
	return s.docRepo.ListByAduan(ctx, id)
}

// DeleteDocument removes the row even when the stored file cannot be removed.
func (s *attachmentService) DeleteDocument(ctx context.Context, actor response.Actor, aduanID, docID string) error {
	id, err := aduanService.ParseID(aduanID)
	if err != nil {
		return err
	}
	documentID, err := uuid.Parse(docID)
	if err != nil {
		return apperror.NotFound("Dokumen tidak ditemukan")
	}

	doc, err := s.docRepo.FindForAduan(ctx, id, documentID)
	if err != nil {
		return err
	}

	if result := s.fileStorage.Delete(doc.FileURL); !result.OK() {
		log.Printf("⚠️ document %s: stored file not removed: %v", doc.ID, result.Err)
	}

	if err := s.docRepo.Delete(ctx, doc.ID); err != nil {
		return err
	}

	userID := actor.ID
	s.activity.Record(ctx, &entity.AppActivity{
		Type:        entity.ActivityDeleteDocument,
		Description: fmt.Sprintf("Menghapus dokumen: %s", doc.FileName),
		UserID:      &userID,
		UserName:    actor.Email,
		AduanID:     &id,
		Metadata:    datatypes.JSONMap{"file_name": doc.FileName, "file_url": doc.FileURL},
	})
	return nil
}
