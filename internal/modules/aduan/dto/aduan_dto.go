package dto

import (
	"kitapantaups.id/api/internal/entity"
	commonDto "kitapantaups.id/api/pkg/dto"
)

type AduanFilter struct {
	Status     string `form:"status"`
	Search     string `form:"search"`
	NomorTiket string `form:"nomor_tiket"`
	StartDate  string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Provinsi   string `form:"provinsi"`
	commonDto.Pagination
}

type CreateAduanInput struct {
	SuratNomor       *string  `json:"surat_nomor" binding:"omitempty,max=100"`
	SuratTanggal     *string  `json:"surat_tanggal" binding:"omitempty,datetime=2006-01-02"`
	SuratAsalPerihal *string  `json:"surat_asal_perihal"`
	PengaduNama      string   `json:"pengadu_nama" binding:"required,max=255"`
	PengaduInstansi  *string  `json:"pengadu_instansi" binding:"omitempty,max=255"`
	KategoriMasalah  *string  `json:"kategori_masalah" binding:"omitempty,max=100"`
	RingkasanMasalah string   `json:"ringkasan_masalah" binding:"required"`
	NamaKPS          []string `json:"nama_kps"`
	JenisKPS         []string `json:"jenis_kps"`
	NomorSK          []string `json:"nomor_sk"`
	IDKPSAPI         []string `json:"id_kps_api"`
	LokasiProv       *string  `json:"lokasi_prov" binding:"omitempty,max=100"`
	LokasiKab        *string  `json:"lokasi_kab" binding:"omitempty,max=100"`
	LokasiKec        *string  `json:"lokasi_kec" binding:"omitempty,max=100"`
	LokasiDesa       *string  `json:"lokasi_desa" binding:"omitempty,max=100"`
	LokasiLuasHa     *float64 `json:"lokasi_luas_ha"`
	JumlahKK         *int     `json:"jumlah_kk"`
	LokasiLat        []string `json:"lokasi_lat"`
	LokasiLng        []string `json:"lokasi_lng"`
}

// UpdateAduanInput is a partial update: nil fields are left unchanged.
type UpdateAduanInput struct {
	SuratNomor       *string   `json:"surat_nomor" binding:"omitempty,max=100"`
	SuratTanggal     *string   `json:"surat_tanggal" binding:"omitempty,datetime=2006-01-02"`
	SuratAsalPerihal *string   `json:"surat_asal_perihal"`
	PengaduNama      *string   `json:"pengadu_nama" binding:"omitempty,min=1,max=255"`
	PengaduInstansi  *string   `json:"pengadu_instansi" binding:"omitempty,max=255"`
	KategoriMasalah  *string   `json:"kategori_masalah" binding:"omitempty,max=100"`
	RingkasanMasalah *string   `json:"ringkasan_masalah"`
	Status           *string   `json:"status" binding:"omitempty,max=30"`
	AlasanPenolakan  *string   `json:"alasan_penolakan"`
	NamaKPS          *[]string `json:"nama_kps"`
	JenisKPS         *[]string `json:"jenis_kps"`
	NomorSK          *[]string `json:"nomor_sk"`
	IDKPSAPI         *[]string `json:"id_kps_api"`
	LokasiProv       *string   `json:"lokasi_prov" binding:"omitempty,max=100"`
	LokasiKab        *string   `json:"lokasi_kab" binding:"omitempty,max=100"`
	LokasiKec        *string   `json:"lokasi_kec" binding:"omitempty,max=100"`
	LokasiDesa       *string   `json:"lokasi_desa" binding:"omitempty,max=100"`
	LokasiLuasHa     *float64  `json:"lokasi_luas_ha"`
	JumlahKK         *int      `json:"jumlah_kk"`
	LokasiLat        *[]string `json:"lokasi_lat"`
	LokasiLng        *[]string `json:"lokasi_lng"`
	SuratFileURL     *string   `json:"surat_file_url"`
	DriveFolderID    *string   `json:"drive_folder_id" binding:"omitempty,max=255"`
}

type AduanListItem struct {
	entity.Aduan
	CreatorName *string `json:"creator_name"`
	JumlahTL    int64   `json:"jumlah_tl"`
}

type AduanDetail struct {
	entity.Aduan
	CreatorName  *string                `json:"creator_name"`
	TindakLanjut []entity.TindakLanjut  `json:"tindak_lanjut"`
	Documents    []entity.AduanDocument `json:"documents"`
}
