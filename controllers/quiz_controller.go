package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nccabhyas/ncc-training-backend/models"
	"github.com/nccabhyas/ncc-training-backend/services"
)

type GenerateQuizInput struct {
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"numQuestions"`
}

// GenerateQuiz asks the AI collaborator for a fresh question set and persists
// the definition so later submissions can be scored against it. The response
// carries the answer key; clients reveal it after each question.
func GenerateQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input GenerateQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	input.Topic = strings.TrimSpace(input.Topic)
	input.Difficulty = strings.TrimSpace(input.Difficulty)
	if input.Topic == "" || input.Difficulty == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic and difficulty are required"})
		return
	}

	generated, err := services.GenerateQuizQuestions(c.Request.Context(), input.Topic, input.Difficulty, input.NumQuestions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate quiz"})
		return
	}

	quiz := models.Quiz{
		Topic:       input.Topic,
		Difficulty:  input.Difficulty,
		AIGenerated: true,
	}
	for i, q := range generated {
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			Position:    i,
			Question:    q.Question,
			Options:     datatypes.NewJSONType(q.Options),
			Answer:      q.Answer,
			Explanation: q.Explanation,
			Topic:       input.Topic,
			Difficulty:  input.Difficulty,
		})
	}
	if err := db.Create(&quiz).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save quiz"})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// GetQuiz returns the most recent stored definition for the requested topic,
// falling back to the newest quiz overall.
func GetQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Preload("Questions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Order("generated_at DESC")

	if topic := strings.TrimSpace(c.Query("topic")); topic != "" {
		query = query.Where("topic = ?", topic)
	}

	var quiz models.Quiz
	if err := query.First(&quiz).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No quiz available"})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

type SubmitQuizInput struct {
	QuizID     string   `json:"quiz_id" binding:"required"`
	Answers    []string `json:"answers"`
	Topic      string   `json:"topic"`
	Difficulty string   `json:"difficulty"`
	StartTime  int64    `json:"start_time"`
	EndTime    int64    `json:"end_time"`
}

// SubmitQuiz scores an answer sheet against the stored definition, persists
// the submission and returns the full result envelope in one round trip.
func SubmitQuiz(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input SubmitQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	quizID, err := uuid.Parse(input.QuizID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz_id"})
		return
	}

	var quiz models.Quiz
	if err := db.Preload("Questions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).First(&quiz, "id = ?", quizID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	if len(input.Answers) != len(quiz.Questions) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answers length must match question count"})
		return
	}

	result := services.ScoreSubmission(quiz.Questions, input.Answers)

	userID, _ := currentUserID(c) // anonymous submissions keep a zero user id

	submission := models.QuizSubmission{
		UserID:         userID,
		QuizID:         quiz.ID,
		Topic:          quiz.Topic,
		Difficulty:     quiz.Difficulty,
		Answers:        datatypes.NewJSONType(input.Answers),
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		DurationSec:    services.SubmissionDuration(input.StartTime, input.EndTime),
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		WrongAnswers:   result.WrongAnswers,
		WrongQuestions: datatypes.NewJSONType(result.WrongQuestions),
	}
	if err := db.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save submission"})
		return
	}

	c.JSON(http.StatusOK, submission)
}

// GetQuizHistory lists the caller's submissions, newest first.
func GetQuizHistory(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var history []models.QuizSubmission
	if err := db.Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load quiz history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"total":   len(history),
	})
}

type BookmarkInput struct {
	QuestionID  string `json:"question_id"`
	Question    string `json:"question" binding:"required"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
	Topic       string `json:"topic"`
}

// BookmarkQuestion is a pure append; the question is not validated against
// any stored quiz and duplicates are allowed.
func BookmarkQuestion(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input BookmarkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, _ := currentUserID(c)

	bookmark := models.Bookmark{
		UserID:      userID,
		QuestionID:  input.QuestionID,
		Question:    input.Question,
		Answer:      input.Answer,
		Explanation: input.Explanation,
		Topic:       input.Topic,
	}
	if err := db.Create(&bookmark).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save bookmark"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question bookmarked"})
}

// defaultTopics backs /api/topics before the syllabus has been seeded.
var defaultTopics = []string{
	"The NCC", "Drill", "Weapon Training", "Map Reading",
	"Field Craft and Battle Craft", "First Aid and Hygiene",
	"Leadership", "National Integration", "Adventure Training",
}

func GetTopics(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var names []string
	if err := db.Model(&models.SyllabusTopic{}).
		Order("name ASC").
		Distinct().
		Pluck("name", &names).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load topics"})
		return
	}
	if len(names) == 0 {
		names = defaultTopics
	}

	c.JSON(http.StatusOK, gin.H{"topics": names})
}
