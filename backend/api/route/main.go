package route

import (
	"net/http"

	"chatspace/backend/api/middleware"
	"chatspace/backend/common"

	"github.com/gin-gonic/gin"
)

// SetRouter wires middleware and the API surface onto the engine.
func SetRouter(router *gin.Engine) {
	if *common.EnableGzip {
		router.Use(middleware.GzipDecodeMiddleware())
		router.Use(middleware.GzipEncodeMiddleware())
	}
	router.Use(middleware.CORS())
	router.Use(middleware.LangMiddleware())

	SetApiRouter(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "not found",
		})
	})
}
