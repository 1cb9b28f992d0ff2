package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nccabhyas/ncc-training-backend/models"
	"github.com/nccabhyas/ncc-training-backend/services"
)

type syllabusTopicView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
}

type syllabusSubjectView struct {
	ID     uuid.UUID           `json:"id"`
	Name   string              `json:"name"`
	Topics []syllabusTopicView `json:"topics"`
}

// GetSyllabus returns the shared syllabus tree. For authenticated callers,
// each topic carries the user's completion overlay; anonymous callers see
// everything as incomplete.
func GetSyllabus(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var subjects []models.SyllabusSubject
	if err := db.Preload("Topics", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Order("position ASC").Find(&subjects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load syllabus"})
		return
	}

	completed := map[uuid.UUID]bool{}
	if userID, ok := currentUserID(c); ok {
		var rows []models.SyllabusProgress
		if err := db.Where("user_id = ? AND completed = ?", userID, true).Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load progress"})
			return
		}
		for _, row := range rows {
			completed[row.TopicID] = true
		}
	}

	view := make([]syllabusSubjectView, 0, len(subjects))
	for _, subject := range subjects {
		sv := syllabusSubjectView{
			ID:     subject.ID,
			Name:   subject.Name,
			Topics: make([]syllabusTopicView, 0, len(subject.Topics)),
		}
		for _, topic := range subject.Topics {
			sv.Topics = append(sv.Topics, syllabusTopicView{
				ID:        topic.ID,
				Name:      topic.Name,
				Completed: completed[topic.ID],
			})
		}
		view = append(view, sv)
	}

	c.JSON(http.StatusOK, gin.H{"subjects": view})
}

type SyllabusProgressInput struct {
	TopicID   string `json:"topicId" binding:"required"`
	Completed bool   `json:"completed"`
}

func UpdateSyllabusProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input SyllabusProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	topicID, err := uuid.Parse(input.TopicID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topicId"})
		return
	}

	if err := services.UpsertSyllabusProgress(db, userID, topicID, input.Completed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress updated"})
}

// GetSyllabusProgress returns the caller's raw overlay keyed by topic id.
func GetSyllabusProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var rows []models.SyllabusProgress
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load progress"})
		return
	}

	progress := make(map[string]models.SyllabusProgress, len(rows))
	for _, row := range rows {
		progress[row.TopicID.String()] = row
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
