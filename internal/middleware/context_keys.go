package middleware

import "github.com/gin-gonic/gin"

// collaboratorIDKey is the key used to store the authenticated collaborator's
// ID in the request context. Using a custom type prevents collisions.
const collaboratorIDKey = contextKey("collaboratorID")

// GetCollaboratorIDFromContext retrieves the authenticated collaborator ID from
// the Gin context. It returns the ID and a boolean indicating if it was found.
func GetCollaboratorIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(collaboratorIDKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
