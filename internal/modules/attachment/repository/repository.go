package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/pkg/apperror"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.AduanDocument) error
	ListByAduan(ctx context.Context, aduanID uuid.UUID) ([]entity.AduanDocument, error)
	FindForAduan(ctx context.Context, aduanID, docID uuid.UUID) (*entity.AduanDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ReferencedURLs returns every stored-file URL the database still points at.
	ReferencedURLs(ctx context.Context) ([]string, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.AduanDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) ListByAduan(ctx context.Context, aduanID uuid.UUID) ([]entity.AduanDocument, error) {
	docs := []entity.AduanDocument{}
	err := r.db.WithContext(ctx).
		Where("aduan_id = ?", aduanID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) FindForAduan(ctx context.Context, aduanID, docID uuid.UUID) (*entity.AduanDocument, error) {
	var doc entity.AduanDocument
	err := r.db.WithContext(ctx).
		Where("id = ? AND aduan_id = ?", docID, aduanID).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Dokumen tidak ditemukan")
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.AduanDocument{}, "id = ?", id).Error
}

func (r *documentRepository) ReferencedURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT file_url FROM aduan_documents
		UNION
		SELECT surat_file_url FROM aduan WHERE surat_file_url IS NOT NULL AND surat_file_url <> ''
		UNION
		SELECT unnest(file_urls) FROM tindak_lanjut
	`).Scan(&urls).Error
	return urls, err
}
