package http

import (
	"github.com/gin-gonic/gin"
)

// Controllers groups everything the router wires up.
type Controllers struct {
	Health HealthController
	Import ImportController
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(controllers Controllers) *gin.Engine {
	router := gin.Default()

	router.GET("/health", controllers.Health.Health)

	api := router.Group("/api")
	{
		api.POST("/import", controllers.Import.Import)
		api.POST("/import/async", controllers.Import.ImportAsync)
	}

	return router
}
