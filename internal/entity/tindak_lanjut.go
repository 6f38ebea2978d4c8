package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TindakLanjut is a follow-up action on a complaint. FileURLs keeps the order
// in which the attachments were uploaded.
type TindakLanjut struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AduanID          uuid.UUID      `gorm:"type:uuid;index;not null" json:"aduan_id"`
	Tanggal          datatypes.Date `gorm:"not null;index" json:"tanggal"`
	JenisTL          string         `gorm:"column:jenis_tl;size:100;not null" json:"jenis_tl"`
	Keterangan       *string        `gorm:"type:text" json:"keterangan"`
	FileURLs         pq.StringArray `gorm:"column:file_urls;type:text[]" json:"file_urls"`
	NomorSuratOutput *string        `gorm:"size:100" json:"nomor_surat_output"`
	LinkDrive        *string        `gorm:"type:text" json:"link_drive"`
	CreatedBy        *uuid.UUID     `gorm:"type:uuid" json:"created_by"`
	CreatedByName    string         `gorm:"size:100" json:"created_by_name"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (TindakLanjut) TableName() string { return "tindak_lanjut" }

func (t *TindakLanjut) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
