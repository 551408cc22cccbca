package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"artvote/internal/db"
	"artvote/internal/middleware"
	"artvote/internal/router"
	"artvote/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Start the artwork change feed worker
	services.GetArtworkFeed()

	// Initialize Gin
	r := gin.Default()

	// Middleware
	r.Use(middleware.LoadWallet())

	// Routes
	router.RegisterRoutes(r, db.NewStore(db.DB))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("artvote server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
