package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"kitapantaups.id/api/internal/entity"
	activity "kitapantaups.id/api/internal/modules/activity/service"
	"kitapantaups.id/api/internal/modules/aduan/dto"
	"kitapantaups.id/api/internal/modules/aduan/repository"
	search "kitapantaups.id/api/internal/modules/search/service"
	"kitapantaups.id/api/pkg/apperror"
	commonDto "kitapantaups.id/api/pkg/dto"
	"kitapantaups.id/api/pkg/response"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	searchHitLimit   = 1000
	ticketMaxAttempt = 5
	dateLayout       = "2006-01-02"
)

type AduanService interface {
	List(ctx context.Context, filter dto.AduanFilter) (*commonDto.PaginatedResponse[dto.AduanListItem], error)
	Provinces(ctx context.Context) ([]string, error)
	GetDetail(ctx context.Context, id string) (*dto.AduanDetail, error)
	Create(ctx context.Context, actor response.Actor, input dto.CreateAduanInput) (*entity.Aduan, error)
	Update(ctx context.Context, actor response.Actor, id string, input dto.UpdateAduanInput) (*entity.Aduan, error)
	Delete(ctx context.Context, actor response.Actor, id string) error
}

type aduanService struct {
	repo     repository.AduanRepository
	index    search.AduanIndex
	activity activity.Recorder
	now      func() time.Time
}

// NewAduanService wires the complaint service. index may be nil when full-text search is disabled.
func NewAduanService(repo repository.AduanRepository, index search.AduanIndex, recorder activity.Recorder) AduanService {
	return &aduanService{
		repo:     repo,
		index:    index,
		activity: recorder,
		now:      time.Now,
	}
}

// ParseID maps a malformed id to the same 404 an unknown id produces.
func ParseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.NotFound("Aduan tidak ditemukan")
	}
	return parsed, nil
}

func (s *aduanService) List(ctx context.Context, filter dto.AduanFilter) (*commonDto.PaginatedResponse[dto.AduanListItem], error) {
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	offset := filter.Normalize(defaultPageSize)

	q := repository.ListQuery{
		Status:     filter.Status,
		Search:     filter.Search,
		NomorTiket: filter.NomorTiket,
		Provinsi:   filter.Provinsi,
		Limit:      filter.Limit,
		Offset:     offset,
	}

	if filter.StartDate != "" {
		from, err := time.ParseInLocation(dateLayout, filter.StartDate, time.Local)
		if err != nil {
			return nil, apperror.BadRequest("Format tanggal tidak valid")
		}
		q.From = &from
	}
	if filter.EndDate != "" {
		end, err := time.ParseInLocation(dateLayout, filter.EndDate, time.Local)
		if err != nil {
			return nil, apperror.BadRequest("Format tanggal tidak valid")
		}
		until := end.AddDate(0, 0, 1)
		q.Until = &until
	}

	if filter.Search != "" && s.index != nil {
		ids, err := s.searchIDs(filter.Search)
		if err != nil {
			log.Printf("⚠️ Meilisearch query failed, falling back to ILIKE: %v", err)
		} else {
			q.IDs = ids
		}
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &commonDto.PaginatedResponse[dto.AduanListItem]{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *aduanService) searchIDs(query string) ([]uuid.UUID, error) {
	raw, err := s.index.SearchIDs(query, searchHitLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		if id, err := uuid.Parse(r); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *aduanService) Provinces(ctx context.Context) ([]string, error) {
	return s.repo.Provinces(ctx)
}

func (s *aduanService) GetDetail(ctx context.Context, id string) (*dto.AduanDetail, error) {
	aduanID, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindDetail(ctx, aduanID)
}

// NomorTiket formats the ticket number for the seq-th complaint of the year.
func NomorTiket(year, seq int) string {
	return fmt.Sprintf("%s%06d", ticketPrefix(year), seq)
}

func ticketPrefix(year int) string {
	return fmt.Sprintf("ADU%02d", year%100)
}

// ticketSequence extracts the running number of a ticket issued under prefix.
func ticketSequence(ticket, prefix string) (int, error) {
	digits := strings.TrimPrefix(ticket, prefix)
	if digits == ticket || digits == "" {
		return 0, fmt.Errorf("ticket %q does not start with %q", ticket, prefix)
	}
	return strconv.Atoi(digits)
}

func (s *aduanService) Create(ctx context.Context, actor response.Actor, input dto.CreateAduanInput) (*entity.Aduan, error) {
	suratTanggal, err := parseOptionalDate(input.SuratTanggal)
	if err != nil {
		return nil, err
	}

	creator := actor.ID
	aduan := &entity.Aduan{
		SuratNomor:       input.SuratNomor,
		SuratTanggal:     suratTanggal,
		SuratAsalPerihal: input.SuratAsalPerihal,
		PengaduNama:      input.PengaduNama,
		PengaduInstansi:  input.PengaduInstansi,
		KategoriMasalah:  input.KategoriMasalah,
		RingkasanMasalah: input.RingkasanMasalah,
		Status:           entity.StatusDisposisi,
		NamaKPS:          pq.StringArray(input.NamaKPS),
		JenisKPS:         pq.StringArray(input.JenisKPS),
		NomorSK:          pq.StringArray(input.NomorSK),
		IDKPSAPI:         pq.StringArray(input.IDKPSAPI),
		LokasiProv:       input.LokasiProv,
		LokasiKab:        input.LokasiKab,
		LokasiKec:        input.LokasiKec,
		LokasiDesa:       input.LokasiDesa,
		LokasiLuasHa:     input.LokasiLuasHa,
		JumlahKK:         input.JumlahKK,
		LokasiLat:        pq.StringArray(input.LokasiLat),
		LokasiLng:        pq.StringArray(input.LokasiLng),
		CreatedBy:        &creator,
	}

	now := s.now()
	prefix := ticketPrefix(now.Year())
	last, err := s.repo.LastTicket(ctx, prefix)
	if err != nil {
		return nil, err
	}
	seq := 0
	if last != "" {
		if seq, err = ticketSequence(last, prefix); err != nil {
			return nil, err
		}
	}

	// Two concurrent creates can compute the same sequence; the unique index
	// rejects the loser, which retries with the next number.
	for attempt := 0; ; attempt++ {
		aduan.ID = uuid.Nil
		aduan.NomorTiket = NomorTiket(now.Year(), seq+1+attempt)

		err = s.repo.Create(ctx, aduan)
		if err == nil {
			break
		}
		if !errors.Is(err, apperror.ErrConflict) || attempt+1 >= ticketMaxAttempt {
			return nil, err
		}
	}

	s.reindex(aduan)
	s.activity.Record(ctx, &entity.AppActivity{
		Type:        entity.ActivityCreateAduan,
		Description: fmt.Sprintf("Membuat aduan %s", aduan.NomorTiket),
		UserID:      &creator,
		UserName:    actor.Email,
		AduanID:     &aduan.ID,
		Metadata:    datatypes.JSONMap{"nomor_tiket": aduan.NomorTiket},
	})

	return aduan, nil
}

func (s *aduanService) Update(ctx context.Context, actor response.Actor, id string, input dto.UpdateAduanInput) (*entity.Aduan, error) {
	aduanID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	updates, err := buildUpdates(input)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, apperror.BadRequest("Tidak ada field yang diupdate")
	}

	fields := make([]any, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	updates["updated_by"] = actor.ID

	aduan, err := s.repo.Update(ctx, aduanID, updates)
	if err != nil {
		return nil, err
	}

	s.reindex(aduan)

	userID := actor.ID
	metadata := datatypes.JSONMap{"fields": fields}
	if input.Status != nil {
		metadata["status"] = *input.Status
	}
	s.activity.Record(ctx, &entity.AppActivity{
		Type:        entity.ActivityUpdateAduan,
		Description: fmt.Sprintf("Memperbarui aduan %s", aduan.NomorTiket),
		UserID:      &userID,
		UserName:    actor.Email,
		AduanID:     &aduan.ID,
		Metadata:    metadata,
	})

	return aduan, nil
}

// Delete removes the complaint row. Stored files stay on disk; the orphan
// sweep reclaims them once nothing references them.
func (s *aduanService) Delete(ctx context.Context, actor response.Actor, id string) error {
	aduanID, err := ParseID(id)
	if err != nil {
		return err
	}

	aduan, err := s.repo.FindByID(ctx, aduanID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, aduanID); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.DeleteAduan(aduanID.String()); err != nil {
			log.Printf("⚠️ failed to remove aduan %s from search index: %v", aduan.NomorTiket, err)
		}
	}

	userID := actor.ID
	s.activity.Record(ctx, &entity.AppActivity{
		Type:        entity.ActivityDeleteAduan,
		Description: fmt.Sprintf("Menghapus aduan %s", aduan.NomorTiket),
		UserID:      &userID,
		UserName:    actor.Email,
		AduanID:     &aduanID,
		Metadata:    datatypes.JSONMap{"nomor_tiket": aduan.NomorTiket},
	})
	return nil
}

func (s *aduanService) reindex(aduan *entity.Aduan) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexAduan(aduan); err != nil {
		log.Printf("⚠️ failed to index aduan %s: %v", aduan.NomorTiket, err)
	}
}

func parseOptionalDate(s *string) (*datatypes.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, apperror.BadRequest("Format tanggal tidak valid")
	}
	d := datatypes.Date(t)
	return &d, nil
}

func buildUpdates(in dto.UpdateAduanInput) (map[string]any, error) {
	updates := map[string]any{}

	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	setArray := func(column string, v *[]string) {
		if v != nil {
			updates[column] = pq.StringArray(*v)
		}
	}

	setString("surat_nomor", in.SuratNomor)
	setString("surat_asal_perihal", in.SuratAsalPerihal)
	setString("pengadu_nama", in.PengaduNama)
	setString("pengadu_instansi", in.PengaduInstansi)
	setString("kategori_masalah", in.KategoriMasalah)
	setString("ringkasan_masalah", in.RingkasanMasalah)
	setString("status", in.Status)
	setString("alasan_penolakan", in.AlasanPenolakan)
	setString("lokasi_prov", in.LokasiProv)
	setString("lokasi_kab", in.LokasiKab)
	setString("lokasi_kec", in.LokasiKec)
	setString("lokasi_desa", in.LokasiDesa)
	setString("surat_file_url", in.SuratFileURL)
	setString("drive_folder_id", in.DriveFolderID)

	setArray("nama_kps", in.NamaKPS)
	setArray("jenis_kps", in.JenisKPS)
	setArray("nomor_sk", in.NomorSK)
	setArray("id_kps_api", in.IDKPSAPI)
	setArray("lokasi_lat", in.LokasiLat)
	setArray("lokasi_lng", in.LokasiLng)

	if in.LokasiLuasHa != nil {
		updates["lokasi_luas_ha"] = *in.LokasiLuasHa
	}
	if in.JumlahKK != nil {
		updates["jumlah_kk"] = *in.JumlahKK
	}
	if in.SuratTanggal != nil {
		d, err := parseOptionalDate(in.SuratTanggal)
		if err != nil {
			return nil, err
		}
		updates["surat_tanggal"] = d
	}

	return updates, nil
}
