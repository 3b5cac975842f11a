package routes

import (
	"calotrack/internal/controllers"
	"calotrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterProfileRoutes(router *gin.Engine, profileController *controllers.ProfileController) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware())
	{
		profileRoutes.GET("", profileController.GetProfile)
		profileRoutes.POST("", profileController.CreateProfile)
		profileRoutes.PATCH("", profileController.PatchProfile)
	}
}
