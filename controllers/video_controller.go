package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/nccabhyas/ncc-training-backend/models"
	"github.com/nccabhyas/ncc-training-backend/services"
)

// GetVideos lists the catalog. Authenticated callers get their watch overlay
// merged into each entry.
func GetVideos(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var videos []models.Video
	query := db.Order("created_at DESC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load videos"})
		return
	}

	overlay := map[uuid.UUID]models.VideoProgress{}
	if userID, ok := currentUserID(c); ok {
		var rows []models.VideoProgress
		if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load progress"})
			return
		}
		for _, row := range rows {
			overlay[row.VideoID] = row
		}
	}

	type videoView struct {
		models.Video
		Progress  float64 `json:"progress"`
		Completed bool    `json:"completed"`
	}
	view := make([]videoView, 0, len(videos))
	for _, v := range videos {
		entry := videoView{Video: v}
		if row, ok := overlay[v.ID]; ok {
			entry.Progress = row.Progress
			entry.Completed = row.Completed
		}
		view = append(view, entry)
	}

	c.JSON(http.StatusOK, gin.H{"videos": view, "total": len(view)})
}

type CreateVideoInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"required"`
	Category    string `json:"category"`
	DurationSec int    `json:"duration_seconds"`
}

func CreateVideo(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input CreateVideoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video := models.Video{
		Title:       input.Title,
		Slug:        slug.Make(input.Title),
		Description: input.Description,
		URL:         input.URL,
		Category:    input.Category,
		DurationSec: input.DurationSec,
		CreatedBy:   userID,
	}
	if err := db.Create(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create video"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      video.ID,
		"message": "Video created",
	})
}

func GetVideoDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video id"})
		return
	}

	var video models.Video
	if err := db.First(&video, "id = ?", videoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	c.JSON(http.StatusOK, video)
}

type VideoProgressInput struct {
	VideoID   string  `json:"videoId" binding:"required"`
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

func UpdateVideoProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input VideoProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	videoID, err := uuid.Parse(input.VideoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid videoId"})
		return
	}

	if err := services.UpsertVideoProgress(db, userID, videoID, input.Progress, input.Completed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress updated"})
}
