package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryDokumen = "dokumen"
	CategorySusulan = "susulan"
)

// AduanDocument registers a stored file as belonging to a complaint.
type AduanDocument struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AduanID      uuid.UUID `gorm:"type:uuid;index;not null" json:"aduan_id"`
	FileURL      string    `gorm:"type:text;not null" json:"file_url"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	FileCategory string    `gorm:"size:50;not null;default:dokumen" json:"file_category"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AduanDocument) TableName() string { return "aduan_documents" }

func (d *AduanDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.FileCategory == "" {
		d.FileCategory = CategoryDokumen
	}
	return nil
}
