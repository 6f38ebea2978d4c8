package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const StatusDisposisi = "disposisi"

// Aduan is a complaint case. The KPS columns are parallel arrays: index i of
// each array describes the same social-forestry permit.
type Aduan struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NomorTiket string    `gorm:"size:20;uniqueIndex;not null" json:"nomor_tiket"`

	SuratNomor       *string         `gorm:"size:100" json:"surat_nomor"`
	SuratTanggal     *datatypes.Date `json:"surat_tanggal"`
	SuratAsalPerihal *string         `gorm:"type:text" json:"surat_asal_perihal"`
	SuratFileURL     *string         `gorm:"type:text" json:"surat_file_url"`

	PengaduNama      string  `gorm:"size:255;not null" json:"pengadu_nama"`
	PengaduInstansi  *string `gorm:"size:255" json:"pengadu_instansi"`
	KategoriMasalah  *string `gorm:"size:100" json:"kategori_masalah"`
	RingkasanMasalah string  `gorm:"type:text;not null" json:"ringkasan_masalah"`

	Status          string  `gorm:"size:30;not null;default:disposisi;index" json:"status"`
	AlasanPenolakan *string `gorm:"type:text" json:"alasan_penolakan"`
	DriveFolderID   *string `gorm:"size:255" json:"drive_folder_id"`

	NamaKPS  pq.StringArray `gorm:"type:text[]" json:"nama_kps"`
	JenisKPS pq.StringArray `gorm:"type:text[]" json:"jenis_kps"`
	NomorSK  pq.StringArray `gorm:"type:text[]" json:"nomor_sk"`
	IDKPSAPI pq.StringArray `gorm:"column:id_kps_api;type:text[]" json:"id_kps_api"`

	LokasiProv   *string        `gorm:"size:100;index" json:"lokasi_prov"`
	LokasiKab    *string        `gorm:"size:100" json:"lokasi_kab"`
	LokasiKec    *string        `gorm:"size:100" json:"lokasi_kec"`
	LokasiDesa   *string        `gorm:"size:100" json:"lokasi_desa"`
	LokasiLuasHa *float64       `json:"lokasi_luas_ha"`
	JumlahKK     *int           `gorm:"column:jumlah_kk" json:"jumlah_kk"`
	LokasiLat    pq.StringArray `gorm:"type:text[]" json:"lokasi_lat"`
	LokasiLng    pq.StringArray `gorm:"type:text[]" json:"lokasi_lng"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	Creator   *User      `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"-"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	TindakLanjut []TindakLanjut  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Documents    []AduanDocument `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Aduan) TableName() string { return "aduan" }

func (a *Aduan) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusDisposisi
	}
	return nil
}
