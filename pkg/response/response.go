package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"kitapantaups.id/api/pkg/apperror"
)

// Actor is the authenticated caller as seen by the auth middleware.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	s, ok := userIDStr.(string)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// GetActor retrieves id, email and role set by the auth middleware.
func GetActor(c *gin.Context) (Actor, error) {
	userID, err := GetUserID(c)
	if err != nil {
		return Actor{}, err
	}

	return Actor{
		ID:    userID,
		Email: c.GetString("user_email"),
		Role:  c.GetString("user_role"),
	}, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": apperror.PublicMessage(err)})
}
