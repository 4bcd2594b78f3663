package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends the success envelope used by every endpoint
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends the error envelope and stops the handler chain, so it is
// safe to call from middleware as well as from handlers.
func JSONError(c *gin.Context, status int, err error, message string) {
	detail := message
	if err != nil {
		detail = err.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   detail,
	})
}
