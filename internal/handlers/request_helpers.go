package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message, "timestamp": nowStamp()})
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// respondCheckoutError emits the checkout error envelope: success flag, a
// static error label, and an optional detailed message (development only for
// processor failures).
func respondCheckoutError(c *gin.Context, status int, route, errLabel, message string, details gin.H) {
	log.Printf("[%s] returning error %d: %s", route, status, errLabel)
	body := gin.H{
		"success":   false,
		"error":     errLabel,
		"timestamp": nowStamp(),
	}
	if message != "" {
		body["message"] = message
	}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}

// MethodNotAllowed serves gin's NoMethod hook. The allowed list is built from
// the route table at startup.
func MethodNotAllowed(allowedByPath map[string][]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"error":     "Method not allowed",
			"timestamp": nowStamp(),
		}
		if allowed, ok := allowedByPath[c.Request.URL.Path]; ok {
			body["allowed"] = allowed
		}
		c.JSON(http.StatusMethodNotAllowed, body)
	}
}
