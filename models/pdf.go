package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Processing states pushed over the ws status channel while an upload is
// being extracted.
const (
	PDFStatusUploaded   = "uploaded"
	PDFStatusExtracting = "extracting"
	PDFStatusReady      = "ready"
	PDFStatusFailed     = "failed"
)

type PDFDocument struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	OriginalName  string    `gorm:"size:255" json:"original_name"`
	FileURL       string    `gorm:"type:text" json:"file_url"`
	ObjectPath    string    `gorm:"size:255" json:"-"`
	FileSize      int64     `json:"file_size"`
	Status        string    `gorm:"size:30;default:'uploaded'" json:"status"`
	ExtractedText string    `gorm:"type:text" json:"-"`
	UploadedBy    uuid.UUID `gorm:"type:uuid" json:"uploaded_by"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (d *PDFDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
