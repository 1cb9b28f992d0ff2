package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nccabhyas/ncc-training-backend/controllers"
	"github.com/nccabhyas/ncc-training-backend/middleware"
	"github.com/nccabhyas/ncc-training-backend/ws"
)

// SetupRouter registers every endpoint once at startup; the route table is
// read-only afterwards. Unmatched paths and methods both answer 404 with the
// envelope the web client expects.
func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Method not found"})
	})

	r.Use(middleware.DBMiddleware(db))

	r.GET("/", controllers.HealthCheck)
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
	}

	user := api.Group("/user")
	{
		user.Use(middleware.AuthMiddleware())
		user.GET("/profile", controllers.GetProfile)
	}

	quiz := api.Group("/quiz")
	{
		quiz.GET("", middleware.OptionalAuthMiddleware(), controllers.GetQuiz)
		quiz.GET("/history", middleware.AuthMiddleware(), controllers.GetQuizHistory)
		quiz.POST("/submit", middleware.AuthMiddleware(), controllers.SubmitQuiz)
	}

	// Practice endpoints used by the public quiz page.
	api.POST("/generate", controllers.GenerateQuiz)
	api.POST("/submit", middleware.OptionalAuthMiddleware(), controllers.SubmitQuiz)
	api.POST("/bookmark", middleware.OptionalAuthMiddleware(), controllers.BookmarkQuestion)
	api.GET("/topics", controllers.GetTopics)

	syllabus := api.Group("/syllabus")
	{
		syllabus.GET("", middleware.OptionalAuthMiddleware(), controllers.GetSyllabus)
		syllabus.POST("/progress", middleware.AuthMiddleware(), controllers.UpdateSyllabusProgress)
		syllabus.GET("/progress", middleware.AuthMiddleware(), controllers.GetSyllabusProgress)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", middleware.OptionalAuthMiddleware(), controllers.GetVideos)
		videos.POST("", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "instructor"), controllers.CreateVideo)
		videos.GET("/:id", controllers.GetVideoDetail)
		videos.POST("/progress", middleware.AuthMiddleware(), controllers.UpdateVideoProgress)
	}

	// gin resolves static segments before :id, so download and search take
	// priority over the by-id route.
	pdf := api.Group("/pdf")
	{
		pdf.GET("", controllers.GetPDFs)
		pdf.POST("", middleware.AuthMiddleware(), middleware.RequireRoles("admin", "instructor"), controllers.UploadPDF)
		pdf.GET("/search", controllers.SearchPDFs)
		pdf.GET("/download/:id", controllers.DownloadPDF)
		pdf.GET("/:id", controllers.GetPDFDetail)
	}

	progress := api.Group("/progress")
	{
		progress.Use(middleware.AuthMiddleware())
		progress.GET("", controllers.GetUserProgress)
		progress.POST("", controllers.UpdateUserProgress)
		progress.GET("/stats", controllers.GetProgressStats)
	}

	api.POST("/chat", controllers.Chat)

	r.GET("/ws/pdf/:id", ws.HandlePDFWebSocket)
	r.GET("/ws/status", ws.HandleStatusWebSocket)

	return r
}
