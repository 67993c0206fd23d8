package middleware

import "github.com/gin-gonic/gin"

const (
	UserIDKey = "UserID"
	RoleKey   = "Role"
	TokenKey  = "Token"
)

// CurrentUserID returns the authenticated caller, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok && userID != 0
}

func CurrentRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
