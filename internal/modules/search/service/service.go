package service

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"kitapantaups.id/api/internal/entity"
)

const aduanIndex = "aduan"

// AduanIndex keeps a full-text index of complaints in sync with the database.
type AduanIndex interface {
	IndexAduan(aduan *entity.Aduan) error
	DeleteAduan(id string) error
	// SearchIDs returns matching complaint ids, best match first.
	SearchIDs(query string, limit int64) ([]string, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) AduanIndex {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterableAttrs := []string{"status", "lokasi_prov"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(aduanIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update aduan filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at"}
	if _, err := s.client.Index(aduanIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update aduan sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliAduanDoc struct {
	ID               string   `json:"id"`
	NomorTiket       string   `json:"nomor_tiket"`
	PengaduNama      string   `json:"pengadu_nama"`
	PengaduInstansi  string   `json:"pengadu_instansi"`
	RingkasanMasalah string   `json:"ringkasan_masalah"`
	SuratAsalPerihal string   `json:"surat_asal_perihal"`
	KategoriMasalah  string   `json:"kategori_masalah"`
	NamaKPS          []string `json:"nama_kps"`
	NomorSK          []string `json:"nomor_sk"`
	Status           string   `json:"status"`
	LokasiProv       string   `json:"lokasi_prov"`
	CreatedAt        int64    `json:"created_at"`
}

// CleanText strips markup and collapses whitespace so stored HTML does not
// pollute the index.
func (s *meiliSearchService) CleanText(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexAduan(aduan *entity.Aduan) error {
	doc := meiliAduanDoc{
		ID:               aduan.ID.String(),
		NomorTiket:       aduan.NomorTiket,
		PengaduNama:      s.CleanText(aduan.PengaduNama),
		PengaduInstansi:  s.CleanText(deref(aduan.PengaduInstansi)),
		RingkasanMasalah: s.CleanText(aduan.RingkasanMasalah),
		SuratAsalPerihal: s.CleanText(deref(aduan.SuratAsalPerihal)),
		KategoriMasalah:  deref(aduan.KategoriMasalah),
		NamaKPS:          aduan.NamaKPS,
		NomorSK:          aduan.NomorSK,
		Status:           aduan.Status,
		LokasiProv:       deref(aduan.LokasiProv),
		CreatedAt:        aduan.CreatedAt.Unix(),
	}

	task, err := s.client.Index(aduanIndex).AddDocuments([]meiliAduanDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed aduan %s, task id: %d", aduan.NomorTiket, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeleteAduan(id string) error {
	_, err := s.client.Index(aduanIndex).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) SearchIDs(query string, limit int64) ([]string, error) {
	raw, err := s.client.Index(aduanIndex).SearchRaw(query, &meilisearch.SearchRequest{
		Limit:                limit,
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &result); err != nil {
		return nil, fmt.Errorf("decode search result: %w", err)
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
