package route

import (
	"chatspace/backend/api/handler"
	"chatspace/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(router *gin.Engine) {
	router.GET("/health", handler.GetHealth)

	apiRouter := router.Group("/api/v1")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", handler.GetStatus)

		setupRoute := apiRouter.Group("/setup")
		setupRoute.Use(middleware.CriticalRateLimit())
		{
			setupRoute.GET("/status", handler.GetSetupStatus)
			setupRoute.POST("/test-connection", handler.TestConnection)
			setupRoute.POST("/init", handler.InitSetup)
		}

		authRoute := apiRouter.Group("/auth")
		{
			authRoute.POST("/register", middleware.CriticalRateLimit(), handler.Register)
			authRoute.POST("/login", middleware.CriticalRateLimit(), handler.Login)
			authRoute.POST("/refresh", middleware.CriticalRateLimit(), handler.RefreshToken)
			authRoute.POST("/logout", middleware.SessionAuth(), handler.Logout)
		}

		// Shared chat links resolve without authentication.
		apiRouter.GET("/shared/:token", handler.GetSharedChatSession)

		userRoute := apiRouter.Group("/user")
		{
			selfRoute := userRoute.Group("/")
			selfRoute.Use(middleware.SessionAuth())
			{
				selfRoute.GET("/self", handler.GetSelf)
				selfRoute.PUT("/self", handler.UpdateSelf)
				selfRoute.DELETE("/self", handler.DeleteSelf)
			}

			adminRoute := userRoute.Group("/")
			adminRoute.Use(middleware.JWTAuth(), middleware.AdminAuth())
			{
				adminRoute.GET("/", handler.GetAllUsers)
				adminRoute.GET("/search", handler.SearchUsers)
				adminRoute.GET("/:id", handler.GetUser)
				adminRoute.POST("/", handler.CreateUser)
				adminRoute.POST("/:id/manage", handler.ManageUser)
				adminRoute.DELETE("/:id", handler.DeleteUser)
			}
		}

		workspaceRoute := apiRouter.Group("/workspaces")
		workspaceRoute.Use(middleware.JWTAuth())
		{
			workspaceRoute.GET("", handler.GetWorkspaces)
			workspaceRoute.POST("", handler.CreateWorkspace)
			workspaceRoute.POST("/reorder", handler.ReorderWorkspaces)
			workspaceRoute.GET("/:id", handler.GetWorkspace)
			workspaceRoute.PUT("/:id", handler.UpdateWorkspace)
			workspaceRoute.DELETE("/:id", handler.DeleteWorkspace)
			workspaceRoute.POST("/:id/move", handler.MoveWorkspaceToGroup)
			workspaceRoute.GET("/:id/favorites", handler.GetWorkspaceFavorites)
			workspaceRoute.POST("/:id/favorites", handler.CreateFavorite)
			workspaceRoute.POST("/:id/favorites/reorder", handler.ReorderFavorites)
		}

		groupRoute := apiRouter.Group("/groups")
		groupRoute.Use(middleware.JWTAuth())
		{
			groupRoute.GET("", handler.GetWorkspaceGroups)
			groupRoute.POST("", handler.CreateWorkspaceGroup)
			groupRoute.POST("/reorder", handler.ReorderWorkspaceGroups)
			groupRoute.GET("/:id", handler.GetWorkspaceGroup)
			groupRoute.PUT("/:id", handler.UpdateWorkspaceGroup)
			groupRoute.POST("/:id/pin", handler.ToggleWorkspaceGroupPin)
			groupRoute.DELETE("/:id", handler.DeleteWorkspaceGroup)
		}

		favoriteRoute := apiRouter.Group("/favorites")
		favoriteRoute.Use(middleware.JWTAuth())
		{
			favoriteRoute.DELETE("/:id", handler.DeleteFavorite)
		}

		personalityRoute := apiRouter.Group("/personalities")
		personalityRoute.Use(middleware.JWTAuth())
		{
			personalityRoute.GET("", handler.GetPersonalities)
			personalityRoute.POST("", handler.CreatePersonality)
			personalityRoute.GET("/:id", handler.GetPersonality)
			personalityRoute.PUT("/:id", handler.UpdatePersonality)
			personalityRoute.DELETE("/:id", handler.DeletePersonality)
		}

		providerRoute := apiRouter.Group("/providers")
		providerRoute.Use(middleware.JWTAuth())
		{
			providerRoute.GET("", handler.GetAIProviders)
			providerRoute.POST("", handler.CreateAIProvider)
			providerRoute.GET("/:id", handler.GetAIProvider)
			providerRoute.PUT("/:id", handler.UpdateAIProvider)
			providerRoute.POST("/:id/toggle", handler.ToggleAIProvider)
			providerRoute.POST("/:id/verify", handler.VerifyAIProvider)
			providerRoute.DELETE("/:id", handler.DeleteAIProvider)
		}

		chatRoute := apiRouter.Group("/chat")
		chatRoute.Use(middleware.JWTAuth())
		{
			chatRoute.GET("/sessions", handler.GetChatSessions)
			chatRoute.POST("/sessions", handler.CreateChatSession)
			chatRoute.GET("/sessions/:id", handler.GetChatSession)
			chatRoute.PUT("/sessions/:id", handler.UpdateChatSession)
			chatRoute.DELETE("/sessions/:id", handler.DeleteChatSession)
			chatRoute.POST("/sessions/:id/messages", handler.CreateChatMessage)
			chatRoute.POST("/sessions/:id/share", handler.ShareChatSession)
			chatRoute.POST("/sessions/:id/unshare", handler.UnshareChatSession)
		}

		optionRoute := apiRouter.Group("/options")
		optionRoute.Use(middleware.JWTAuth(), middleware.RootAuth())
		{
			optionRoute.GET("", handler.GetOptions)
			optionRoute.PUT("", handler.UpdateOption)
		}
	}
}
