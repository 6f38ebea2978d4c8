package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kitapantaups.id/api/internal/entity"
	aduanService "kitapantaups.id/api/internal/modules/aduan/service"
	"kitapantaups.id/api/internal/modules/attachment/dto"
)

const (
	SourceSuratMasuk   = "Surat Masuk"
	SourceDokumen      = "Dokumen"
	SourceTindakLanjut = "Tindak Lanjut"
)

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatTanggal renders t as "5 Januari 2025".
func FormatTanggal(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), bulan[t.Month()-1], t.Year())
}

// DisplayName is the last path segment of fileURL without its query string,
// or fallback when that is empty.
func DisplayName(fileURL, fallback string) string {
	name := fileURL
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "?"); idx >= 0 {
		name = name[:idx]
	}
	if name == "" {
		return fallback
	}
	return name
}

// Aggregate merges the three attachment sources in a fixed order: the legacy
// incoming letter, registered documents, then every follow-up file. Entries are
// not deduplicated.
func Aggregate(aduan *entity.Aduan, docs []entity.AduanDocument, followUps []entity.TindakLanjut) []dto.Attachment {
	items := make([]dto.Attachment, 0, len(docs)+len(followUps)+1)

	if aduan.SuratFileURL != nil && *aduan.SuratFileURL != "" {
		items = append(items, dto.Attachment{
			ID:       "surat-masuk-legacy",
			URL:      *aduan.SuratFileURL,
			FileName: DisplayName(*aduan.SuratFileURL, SourceSuratMasuk),
			Source:   SourceSuratMasuk,
			Meta:     "Administrasi Surat (Legacy)",
		})
	}

	for _, doc := range docs {
		meta := "Dokumen Pendukung"
		if doc.FileCategory == entity.CategorySusulan {
			meta += " (Susulan)"
		}
		items = append(items, dto.Attachment{
			ID:       "doc-" + doc.ID.String(),
			RawID:    doc.ID.String(),
			URL:      doc.FileURL,
			FileName: doc.FileName,
			Source:   SourceDokumen,
			Meta:     meta,
		})
	}

	for _, tl := range followUps {
		meta := fmt.Sprintf("%s • %s", tl.JenisTL, FormatTanggal(time.Time(tl.Tanggal)))
		// Numbering counts only non-empty entries.
		n := 0
		for _, u := range tl.FileURLs {
			if u == "" {
				continue
			}
			items = append(items, dto.Attachment{
				ID:       fmt.Sprintf("tl-%s-%d", tl.ID, n),
				URL:      u,
				FileName: DisplayName(u, fmt.Sprintf("Lampiran TL %d", n+1)),
				Source:   SourceTindakLanjut,
				Meta:     meta,
			})
			n++
		}
	}

	return items
}

func (s *attachmentService) Attachments(ctx context.Context, aduanID string) ([]dto.Attachment, error) {
	_, items, err := s.collect(ctx, aduanID)
	return items, err
}

func (s *attachmentService) collect(ctx context.Context, aduanID string) (*entity.Aduan, []dto.Attachment, error) {
	id, err := aduanService.ParseID(aduanID)
	if err != nil {
		return nil, nil, err
	}
	detail, err := s.aduanRepo.FindDetail(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &detail.Aduan, Aggregate(&detail.Aduan, detail.Documents, detail.TindakLanjut), nil
}
