package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nccabhyas/ncc-training-backend/services"
)

// GetUserProgress assembles the read-side join of the three overlays.
func GetUserProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	progress, err := services.LoadUserProgress(c.Request.Context(), db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load progress"})
		return
	}

	c.JSON(http.StatusOK, progress)
}

type UpdateProgressInput struct {
	Type      string  `json:"type" binding:"required"`
	ItemID    string  `json:"itemId" binding:"required"`
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

// UpdateUserProgress dispatches on the type discriminator to pick the overlay
// collection.
func UpdateUserProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input UpdateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	itemID, err := uuid.Parse(input.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid itemId"})
		return
	}

	switch input.Type {
	case "syllabus":
		err = services.UpsertSyllabusProgress(db, userID, itemID, input.Completed)
	case "video":
		err = services.UpsertVideoProgress(db, userID, itemID, input.Progress, input.Completed)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown progress type"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress updated"})
}

func GetProgressStats(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	stats, err := services.LoadProgressStats(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
