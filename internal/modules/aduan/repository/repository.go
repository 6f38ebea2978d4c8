package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/internal/modules/aduan/dto"
	"kitapantaups.id/api/pkg/apperror"
)

// ListQuery is the resolved form of dto.AduanFilter.
type ListQuery struct {
	Status     string
	Search     string
	IDs        []uuid.UUID // when non-nil, restricts results to these ids and replaces Search
	NomorTiket string
	From       *time.Time
	Until      *time.Time // exclusive
	Provinsi   string
	Limit      int
	Offset     int
}

type AduanRepository interface {
	Create(ctx context.Context, aduan *entity.Aduan) error
	// LastTicket returns the highest ticket number starting with prefix, or "" when there is none.
	LastTicket(ctx context.Context, prefix string) (string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Aduan, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*dto.AduanDetail, error)
	List(ctx context.Context, q ListQuery) ([]dto.AduanListItem, int64, error)
	Provinces(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*entity.Aduan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type aduanRepository struct {
	db *gorm.DB
}

func NewAduanRepository(db *gorm.DB) AduanRepository {
	return &aduanRepository{db: db}
}

func (r *aduanRepository) Create(ctx context.Context, aduan *entity.Aduan) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(aduan).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", apperror.ErrConflict, err)
	}
	return err
}

func (r *aduanRepository) LastTicket(ctx context.Context, prefix string) (string, error) {
	tickets := []string{}
	err := r.db.WithContext(ctx).Model(&entity.Aduan{}).
		Where("nomor_tiket LIKE ?", prefix+"%").
		Order("LENGTH(nomor_tiket) DESC, nomor_tiket DESC").
		Limit(1).
		Pluck("nomor_tiket", &tickets).Error
	if err != nil || len(tickets) == 0 {
		return "", err
	}
	return tickets[0], nil
}

func (r *aduanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Aduan, error) {
	var aduan entity.Aduan
	if err := r.db.WithContext(ctx).First(&aduan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Aduan tidak ditemukan")
		}
		return nil, err
	}
	return &aduan, nil
}

func (r *aduanRepository) FindDetail(ctx context.Context, id uuid.UUID) (*dto.AduanDetail, error) {
	var aduan entity.Aduan
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("TindakLanjut", func(db *gorm.DB) *gorm.DB {
			return db.Order("tanggal DESC, created_at DESC")
		}).
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&aduan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Aduan tidak ditemukan")
		}
		return nil, err
	}

	detail := &dto.AduanDetail{
		Aduan:        aduan,
		TindakLanjut: aduan.TindakLanjut,
		Documents:    aduan.Documents,
	}
	if aduan.Creator != nil {
		detail.CreatorName = &aduan.Creator.DisplayName
	}
	if detail.TindakLanjut == nil {
		detail.TindakLanjut = []entity.TindakLanjut{}
	}
	if detail.Documents == nil {
		detail.Documents = []entity.AduanDocument{}
	}
	return detail, nil
}

func (r *aduanRepository) filtered(ctx context.Context, q ListQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Table("aduan a")

	if q.Status != "" {
		db = db.Where("a.status = ?", q.Status)
	}
	if q.IDs != nil {
		db = db.Where("a.id IN ?", q.IDs)
	} else if q.Search != "" {
		like := "%" + q.Search + "%"
		db = db.Where("(a.pengadu_nama ILIKE ? OR a.ringkasan_masalah ILIKE ? OR a.nomor_tiket ILIKE ? OR a.surat_asal_perihal ILIKE ?)",
			like, like, like, like)
	}
	if q.NomorTiket != "" {
		db = db.Where("a.nomor_tiket = ?", q.NomorTiket)
	}
	if q.From != nil {
		db = db.Where("a.created_at >= ?", *q.From)
	}
	if q.Until != nil {
		db = db.Where("a.created_at < ?", *q.Until)
	}
	if q.Provinsi != "" && q.Provinsi != "all" {
		db = db.Where("a.lokasi_prov = ?", q.Provinsi)
	}
	return db
}

func (r *aduanRepository) List(ctx context.Context, q ListQuery) ([]dto.AduanListItem, int64, error) {
	if q.IDs != nil && len(q.IDs) == 0 {
		return []dto.AduanListItem{}, 0, nil
	}

	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []dto.AduanListItem{}
	err := r.filtered(ctx, q).
		Select("a.*, u.display_name AS creator_name, COUNT(tl.id) AS jumlah_tl").
		Joins("LEFT JOIN users u ON u.id = a.created_by").
		Joins("LEFT JOIN tindak_lanjut tl ON tl.aduan_id = a.id").
		Group("a.id, u.display_name").
		Order("a.created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *aduanRepository) Provinces(ctx context.Context) ([]string, error) {
	provinces := []string{}
	err := r.db.WithContext(ctx).Model(&entity.Aduan{}).
		Distinct("lokasi_prov").
		Where("lokasi_prov IS NOT NULL AND lokasi_prov <> ''").
		Order("lokasi_prov ASC").
		Pluck("lokasi_prov", &provinces).Error
	return provinces, err
}

func (r *aduanRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*entity.Aduan, error) {
	result := r.db.WithContext(ctx).Model(&entity.Aduan{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("Aduan tidak ditemukan")
	}
	return r.FindByID(ctx, id)
}

func (r *aduanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Aduan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Aduan tidak ditemukan")
	}
	return nil
}
