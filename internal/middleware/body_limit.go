package middleware

import (
	"net/http"

	"github.com/01moynul/taptosell-catalog/internal/session"
	"github.com/gin-gonic/gin"
)

// formOverhead is allowed on top of the upload limit for the text fields
// and multipart framing.
const formOverhead = 1 << 20

// LimitBody caps the request body at maxUpload plus the form overhead.
// A declared length over the cap is turned away before anything is read;
// chunked bodies are cut off by http.MaxBytesReader while parsing.
func LimitBody(maxUpload int64) gin.HandlerFunc {
	limit := maxUpload + formOverhead
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			session.AddFlash(c, session.FlashDanger, "Image file is too large")
			c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
