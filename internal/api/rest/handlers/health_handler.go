package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Liveness handles GET / with the static body the client SDK expects.
func Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "I am alive!",
	})
}

// HealthCheck handles GET /health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "OK",
		"time":   time.Now().Format(time.RFC3339),
	})
}
