package middleware

import (
	"net/http"

	"github.com/01moynul/taptosell-catalog/internal/session"
	"github.com/gin-gonic/gin"
)

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// AdminRequired lets a request through only when the session carries the
// admin flag set by a successful login.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAdmin(c) {
			session.AddFlash(c, session.FlashDanger, "Please log in to continue")
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Set("adminUsername", session.AdminUsername(c))
		c.Next()
	}
}
