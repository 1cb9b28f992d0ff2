package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nccabhyas/ncc-training-backend/models"
)

// quizNormalizer is the fixed quiz contribution to the overall-progress
// denominator. Kept verbatim for compatibility with existing clients.
const quizNormalizer = 10

// OverallProgress compresses syllabus, video and quiz activity into a single
// percentage.
func OverallProgress(completedSyllabus, completedVideos, totalQuizzes, syllabusTotal, videoTotal int64) int {
	numerator := completedSyllabus + completedVideos + totalQuizzes
	denominator := syllabusTotal + videoTotal + quizNormalizer
	return int(math.Round(100 * float64(numerator) / float64(denominator)))
}

// UserProgress is the read-side join of the three per-user overlays.
type UserProgress struct {
	Syllabus map[string]models.SyllabusProgress `json:"syllabus"`
	Videos   map[string]models.VideoProgress    `json:"videos"`
	Quizzes  []models.QuizSubmission            `json:"quizzes"`
}

// LoadUserProgress fans out to the three overlay collections. The sub-reads
// are independent and read-only, so they run concurrently; the first error
// aborts the whole response.
func LoadUserProgress(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*UserProgress, error) {
	progress := &UserProgress{
		Syllabus: make(map[string]models.SyllabusProgress),
		Videos:   make(map[string]models.VideoProgress),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var rows []models.SyllabusProgress
		if err := db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			progress.Syllabus[row.TopicID.String()] = row
		}
		return nil
	})

	g.Go(func() error {
		var rows []models.VideoProgress
		if err := db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			progress.Videos[row.VideoID.String()] = row
		}
		return nil
	})

	g.Go(func() error {
		return db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("submitted_at DESC").
			Find(&progress.Quizzes).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return progress, nil
}

// UpsertSyllabusProgress writes the (user, topic) overlay row,
// last-write-wins.
func UpsertSyllabusProgress(db *gorm.DB, userID, topicID uuid.UUID, completed bool) error {
	row := models.SyllabusProgress{
		UserID:    userID,
		TopicID:   topicID,
		Completed: completed,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"completed": completed, "updated_at": time.Now()}),
	}).Create(&row).Error
}

// UpsertVideoProgress writes the (user, video) overlay row, last-write-wins.
func UpsertVideoProgress(db *gorm.DB, userID, videoID uuid.UUID, progress float64, completed bool) error {
	row := models.VideoProgress{
		UserID:    userID,
		VideoID:   videoID,
		Progress:  progress,
		Completed: completed,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"progress": progress, "completed": completed, "updated_at": time.Now()}),
	}).Create(&row).Error
}

// ProgressStats is the aggregate the dashboard renders.
type ProgressStats struct {
	CompletedSyllabus int64   `json:"completed_syllabus"`
	TotalSyllabus     int64   `json:"total_syllabus"`
	CompletedVideos   int64   `json:"completed_videos"`
	TotalVideos       int64   `json:"total_videos"`
	TotalQuizzes      int64   `json:"total_quizzes"`
	AverageScore      float64 `json:"average_score"`
	OverallProgress   int     `json:"overall_progress"`
}

// LoadProgressStats computes dashboard counters for one user.
func LoadProgressStats(db *gorm.DB, userID uuid.UUID) (*ProgressStats, error) {
	stats := &ProgressStats{}

	if err := db.Model(&models.SyllabusTopic{}).Count(&stats.TotalSyllabus).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.SyllabusProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&stats.CompletedSyllabus).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Video{}).Count(&stats.TotalVideos).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.VideoProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&stats.CompletedVideos).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.QuizSubmission{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalQuizzes).Error; err != nil {
		return nil, err
	}
	if stats.TotalQuizzes > 0 {
		if err := db.Model(&models.QuizSubmission{}).
			Where("user_id = ?", userID).
			Select("COALESCE(AVG(score), 0)").
			Scan(&stats.AverageScore).Error; err != nil {
			return nil, err
		}
	}

	stats.OverallProgress = OverallProgress(
		stats.CompletedSyllabus, stats.CompletedVideos, stats.TotalQuizzes,
		stats.TotalSyllabus, stats.TotalVideos,
	)
	return stats, nil
}
