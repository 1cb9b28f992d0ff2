package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyllabusSubject and SyllabusTopic form the shared syllabus tree. The tree is
// never mutated per user; personal completion lives in SyllabusProgress.
type SyllabusSubject struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string          `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Position int             `gorm:"not null;default:0" json:"-"`
	Topics   []SyllabusTopic `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"topics"`
}

func (s *SyllabusSubject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type SyllabusTopic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Position  int       `gorm:"not null;default:0" json:"-"`
}

func (t *SyllabusTopic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
