package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/nccabhyas/ncc-training-backend/config"
	"github.com/nccabhyas/ncc-training-backend/routes"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	config.InitDB()
	if err := config.SeedSyllabus(config.DB); err != nil {
		log.Println("syllabus seed failed:", err)
	}

	r := gin.Default()

	// Open CORS policy: the web client is served from arbitrary origins
	// (local dev, hosted preview builds), so every response allows any
	// origin and preflights answer 200 with an empty body.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:             []string{"Content-Length"},
		OptionsResponseStatusCode: http.StatusOK,
	}))

	r = routes.SetupRouter(r, config.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running at port " + port)
	r.Run(":" + port)
}
