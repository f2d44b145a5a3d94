package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// JSONError returns the error envelope the client alerts on.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
