package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyllabusProgress is the per-user completion overlay for syllabus topics.
// One row per (user, topic); upserts are last-write-wins.
type SyllabusProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_syllabus_progress_user_topic" json:"-"`
	TopicID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_syllabus_progress_user_topic" json:"topicId"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *SyllabusProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// VideoProgress is the per-user watch overlay for catalog videos.
type VideoProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_video_progress_user_video" json:"-"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_video_progress_user_video" json:"videoId"`
	Progress  float64   `json:"progress"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *VideoProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
