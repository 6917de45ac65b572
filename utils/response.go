// utils/response.go
package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

// RespondWithError logs and returns a JSON error body. Every failure path
// goes through here so nothing is silently discarded.
func RespondWithError(c *gin.Context, status int, message string) {
	log.Printf("[ERROR] %s %s | Status: %d | %s", c.Request.Method, c.Request.URL.Path, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
