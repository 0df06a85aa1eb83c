package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/01moynul/taptosell-catalog/internal/config"
	"github.com/01moynul/taptosell-catalog/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(session.Middleware(session.NewStore(config.SessionConfig{Secret: "k", Backend: "cookie"})))
	r.GET("/login-as-admin", func(c *gin.Context) {
		require.NoError(t, session.SetAdmin(c, "root"))
		c.Status(http.StatusNoContent)
	})
	r.GET("/admin/list", AdminRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "hello %s", c.GetString("adminUsername"))
	})

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/list", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
	})

	t.Run("admin passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login-as-admin", nil))
		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodGet, "/admin/list", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello root", w.Body.String())
	})
}
