package routes

import (
	"creator-campaign-api/controllers"
	"creator-campaign-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Creator Campaign API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/profile", controllers.UpdateProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Campaigns
			campaigns := protected.Group("/campaigns")
			{
				campaigns.GET("", controllers.GetCampaigns)
				campaigns.GET("/:id", controllers.GetCampaign)
			}

			// Applications
			applications := protected.Group("/applications")
			{
				applications.GET("", controllers.GetApplications)
				applications.POST("", controllers.CreateApplication)

				// Step workflow (creator side)
				applications.POST("/:id/steps/:step/confirm-guide", controllers.ConfirmGuide)
				applications.POST("/:id/steps/:step/video", controllers.UploadVideo)
				applications.POST("/:id/steps/:step/sns", controllers.SubmitSocialProof)

				// Only admin can approve/reject and review
				applications.POST("/:id/approve", middleware.RequireRole(3), controllers.ApproveApplication) // 3 = admin
				applications.POST("/:id/reject", middleware.RequireRole(3), controllers.RejectApplication)
				applications.POST("/:id/steps/:step/request-revision", middleware.RequireRole(3), controllers.RequestRevision)
				applications.POST("/:id/steps/:step/pay-points", middleware.RequireRole(3), controllers.PayPoints)
			}

			// My-page tracker
			protected.GET("/my-page/tracker", controllers.GetTracker)
		}
	}
}
