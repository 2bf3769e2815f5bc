package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthController reports service liveness.
type HealthController struct{}

func NewHealthController() HealthController {
	return HealthController{}
}

func (controller HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
