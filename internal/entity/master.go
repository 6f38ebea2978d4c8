package entity

import (
	"time"

	"github.com/google/uuid"
)

type MasterStatus struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Kode       string `gorm:"size:30;uniqueIndex;not null" json:"kode"`
	NamaStatus string `gorm:"size:100;not null" json:"nama_status"`
	Warna      string `gorm:"size:20" json:"warna"`
}

func (MasterStatus) TableName() string { return "master_status" }

type MasterKategoriMasalah struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	NamaKategori string `gorm:"size:100;uniqueIndex;not null" json:"nama_kategori"`
}

func (MasterKategoriMasalah) TableName() string { return "master_kategori_masalah" }

type MasterJenisTL struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	NamaJenisTL string `gorm:"column:nama_jenis_tl;size:100;uniqueIndex;not null" json:"nama_jenis_tl"`
}

func (MasterJenisTL) TableName() string { return "master_jenis_tl" }

// MasterKPS is a social-forestry permit imported from the national registry.
type MasterKPS struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	IDKPSAPI     string   `gorm:"column:id_kps_api;size:100;uniqueIndex" json:"id_kps_api"`
	NamaKPS      string   `gorm:"size:255;not null;index" json:"nama_kps"`
	JenisKPS     string   `gorm:"size:50" json:"jenis_kps"`
	NomorSK      string   `gorm:"size:255;index" json:"nomor_sk"`
	LokasiProv   string   `gorm:"size:100" json:"lokasi_prov"`
	LokasiKab    string   `gorm:"size:100" json:"lokasi_kab"`
	LokasiKec    string   `gorm:"size:100" json:"lokasi_kec"`
	LokasiDesa   string   `gorm:"size:100" json:"lokasi_desa"`
	LokasiLuasHa *float64 `json:"lokasi_luas_ha"`
	JumlahKK     *int     `gorm:"column:jumlah_kk" json:"jumlah_kk"`
}

func (MasterKPS) TableName() string { return "master_kps" }

type Setting struct {
	Key       string     `gorm:"primaryKey;size:100" json:"key"`
	Value     string     `gorm:"type:text;not null" json:"value"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }
