package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RoleAny admits every authenticated caller regardless of role.
const RoleAny = "*"

// Policy maps "METHOD /full/route/path" to the role a route requires.
// Routes that are not listed are public.
type Policy map[string]string

func (p Policy) Required(method, fullPath string) (string, bool) {
	role, ok := p[method+" "+fullPath]
	return role, ok
}

// AuthorizeMiddleware enforces the policy before any handler runs:
// 401 when a protected route has no valid token, 403 when the role does
// not match.
func AuthorizeMiddleware(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		required, protected := policy.Required(c.Request.Method, c.FullPath())
		if !protected {
			c.Next()
			return
		}

		if _, login := CurrentUserID(c); !login {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "authentication required",
			})
			return
		}

		if required != RoleAny && CurrentRole(c) != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "you do not have permission to access this resource",
			})
			return
		}

		c.Next()
	}
}
