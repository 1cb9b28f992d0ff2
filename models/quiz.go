package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quiz struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"quiz_id"`
	Topic       string         `gorm:"size:200;not null" json:"topic"`
	Difficulty  string         `gorm:"size:20;not null" json:"difficulty"`
	GeneratedAt time.Time      `gorm:"autoCreateTime" json:"generated_at"`
	AIGenerated bool           `gorm:"default:true" json:"ai_generated"`
	Questions   []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QuizQuestion holds one generated question. Options maps an option key
// ("A".."D") to its text; Answer is the key of the correct option. The answer
// key travels with the definition on purpose (low-stakes practice tool, the
// client is trusted).
type QuizQuestion struct {
	ID          uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID      uuid.UUID                             `gorm:"type:uuid;not null;index" json:"-"`
	Position    int                                   `gorm:"not null" json:"-"`
	Question    string                                `gorm:"type:text;not null" json:"question"`
	Options     datatypes.JSONType[map[string]string] `json:"options"`
	Answer      string                                `gorm:"size:10;not null" json:"answer"`
	Explanation string                                `gorm:"type:text" json:"explanation,omitempty"`
	Topic       string                                `gorm:"size:200" json:"topic,omitempty"`
	Difficulty  string                                `gorm:"size:20" json:"difficulty,omitempty"`
}

func (q *QuizQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// WrongQuestion is one entry of a submission's wrong-answer report.
type WrongQuestion struct {
	QuestionIndex int    `json:"question_index"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// QuizSubmission is append-only: one row per submitted attempt, never mutated.
type QuizSubmission struct {
	ID             uuid.UUID                           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                           `gorm:"type:uuid;index" json:"userId"`
	QuizID         uuid.UUID                           `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Topic          string                              `gorm:"size:200" json:"topic"`
	Difficulty     string                              `gorm:"size:20" json:"difficulty"`
	Answers        datatypes.JSONType[[]string]        `json:"answers"`
	StartTime      int64                               `json:"start_time"`
	EndTime        int64                               `json:"end_time"`
	DurationSec    int64                               `json:"duration_seconds"`
	Score          int                                 `json:"score"`
	TotalQuestions int                                 `json:"total_questions"`
	CorrectAnswers int                                 `json:"correct_answers"`
	WrongAnswers   int                                 `json:"wrong_answers"`
	WrongQuestions datatypes.JSONType[[]WrongQuestion] `json:"wrong_questions"`
	SubmittedAt    time.Time                           `gorm:"autoCreateTime" json:"submitted_at"`
}

func (s *QuizSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Bookmark is a pure append; duplicates are allowed.
type Bookmark struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	QuestionID  string    `gorm:"size:100" json:"question_id"`
	Question    string    `gorm:"type:text;not null" json:"question"`
	Answer      string    `gorm:"type:text" json:"answer"`
	Explanation string    `gorm:"type:text" json:"explanation"`
	Topic       string    `gorm:"size:200" json:"topic"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
