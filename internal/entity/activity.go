package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActivityCreateAduan    = "create_aduan"
	ActivityUpdateAduan    = "update_aduan"
	ActivityDeleteAduan    = "delete_aduan"
	ActivityAddDocument    = "add_document"
	ActivityDeleteDocument = "delete_document"
	ActivityCreateTL       = "create_tindak_lanjut"
	ActivityUpdateTL       = "update_tindak_lanjut"
	ActivityDeleteTL       = "delete_tindak_lanjut"
	ActivityUpdateSetting  = "update_setting"
)

// AppActivity is an append-only audit entry.
type AppActivity struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string            `gorm:"size:50;not null;index" json:"type"`
	Description string            `gorm:"type:text" json:"description"`
	UserID      *uuid.UUID        `gorm:"type:uuid" json:"user_id"`
	UserName    string            `gorm:"size:100" json:"user_name"`
	AduanID     *uuid.UUID        `gorm:"type:uuid;index" json:"aduan_id"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt   time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AppActivity) TableName() string { return "app_activities" }

func (a *AppActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Metadata == nil {
		a.Metadata = datatypes.JSONMap{}
	}
	return nil
}
