package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit rejects requests whose body exceeds maxBytes with 413. A declared
// Content-Length is checked up front; chunked bodies are capped while being read.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	message := fmt.Sprintf("File terlalu besar (maks %d MB)", maxBytes>>20)

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": message})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Set(bodyLimitMessageKey, message)
		c.Next()
	}
}

const bodyLimitMessageKey = "body_limit_message"

// IsBodyTooLarge reports whether err came from reading past the BodyLimit cap.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// AbortBodyTooLarge writes the 413 response configured by BodyLimit.
func AbortBodyTooLarge(c *gin.Context) {
	message := c.GetString(bodyLimitMessageKey)
	if message == "" {
		message = "File terlalu besar"
	}
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": message})
}
