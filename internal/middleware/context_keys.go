package middleware

import "github.com/gin-gonic/gin"

// memberIDKey is the key used to store the authenticated member's ID in the
// request context.
const memberIDKey = contextKey("memberID")

// GetMemberIDFromContext retrieves the authenticated member ID from the Gin
// context. It returns the member ID and a boolean indicating if it was found.
func GetMemberIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(memberIDKey)); exists {
		if memberID, ok := v.(string); ok {
			return memberID, true
		}
		return "", false
	}
	// Check the request context as well; the auth middleware stores it there.
	if v := c.Request.Context().Value(memberIDKey); v != nil {
		if memberID, ok := v.(string); ok {
			return memberID, true
		}
	}
	return "", false
}
