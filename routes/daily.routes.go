package routes

import (
	"calotrack/internal/controllers"
	"calotrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterDailyRoutes(router *gin.Engine, dailyController *controllers.DailyController) {
	dailyRoutes := router.Group("/daily")
	dailyRoutes.Use(middleware.AuthMiddleware())
	{
		dailyRoutes.GET("", dailyController.GetToday)
		dailyRoutes.POST("/food", dailyController.AddFood)
		dailyRoutes.PATCH("/food/:id", dailyController.UpdateFood)
		dailyRoutes.DELETE("/food/:id", dailyController.RemoveFood)
		dailyRoutes.POST("/exercise", dailyController.AddExercise)
		dailyRoutes.GET("/exercise/preview", dailyController.PreviewExercise)
		dailyRoutes.GET("/history", dailyController.GetHistory)
	}
}
