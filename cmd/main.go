package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"calotrack/database"
	"calotrack/docs"
	"calotrack/internal/controllers"
	"calotrack/internal/estimator"
	"calotrack/internal/repository"
	"calotrack/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Calotrack API
// @description Per-user daily calorie ledger with a computed metabolic profile.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Swagger Documentation
	docs.SwaggerInfo.Title = "Calotrack API"
	docs.SwaggerInfo.Description = "Per-user daily calorie ledger with a computed metabolic profile."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections()

	userRepo := repository.NewUserRepository(database.DB)
	profileRepo := repository.NewProfileRepository(database.DB)
	dailyRepo := repository.NewDailyLogRepository(database.DB)

	// The calorie estimator is optional; without it, free-text and image
	// food entries must carry an explicit calorie value.
	var calorieEstimator controllers.CalorieEstimator
	if client, err := estimator.NewClient(); err != nil {
		log.Printf("Calorie estimator disabled: %v", err)
	} else {
		calorieEstimator = client
		log.Println("Calorie estimator enabled")
	}

	authController := controllers.NewAuthController(userRepo)
	profileController := controllers.NewProfileController(profileRepo)
	dailyController := controllers.NewDailyController(profileRepo, dailyRepo, calorieEstimator)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Calotrack API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	routes.RegisterAuthRoutes(router, authController)
	routes.RegisterProfileRoutes(router, profileController)
	routes.RegisterDailyRoutes(router, dailyController)
	routes.RegisterSwaggerRoutes(router)

	router.GET("/debug/database", func(c *gin.Context) {
		sqlDB, err := database.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{
				"database_health": false,
				"error":           err.Error(),
			})
			return
		}

		var result int
		row := sqlDB.QueryRowContext(c.Request.Context(), "SELECT 1")
		err = row.Scan(&result)
		c.JSON(200, gin.H{
			"database_health": err == nil && result == 1,
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("API Documentation: http://localhost:%s/swagger/index.html", port)

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
