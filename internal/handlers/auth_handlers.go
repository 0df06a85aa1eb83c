package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/taptosell-catalog/internal/auth"
	"github.com/01moynul/taptosell-catalog/internal/logger"
	"github.com/01moynul/taptosell-catalog/internal/session"
	"github.com/gin-gonic/gin"
)

const msgInvalidLogin = "Invalid username or password"

// LoginInput is the admin login form.
type LoginInput struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// ShowLogin is the handler for GET /admin/login
func (h *Handlers) ShowLogin(c *gin.Context) {
	if session.IsAdmin(c) {
		c.Redirect(http.StatusSeeOther, "/admin/list")
		return
	}
	render(c, http.StatusOK, "admin_login.tmpl", gin.H{"Title": "Admin login", "Username": ""})
}

// Login is the handler for POST /admin/login
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		h.loginFailed(c, http.StatusUnauthorized, msgInvalidLogin, input.Username)
		return
	}
	input.Username = strings.TrimSpace(input.Username)

	admin, err := auth.Authenticate(c.Request.Context(), h.Store, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.loginFailed(c, http.StatusUnauthorized, msgInvalidLogin, input.Username)
			return
		}
		logger.Error("Login: store error", err)
		h.loginFailed(c, http.StatusServiceUnavailable, msgDBFailed, input.Username)
		return
	}

	if err := session.SetAdmin(c, admin.Username); err != nil {
		serverError(c, "Login: failed to save session", err)
		return
	}
	logger.Info("Admin %q logged in", admin.Username)
	c.Redirect(http.StatusSeeOther, "/admin/list")
}

func (h *Handlers) loginFailed(c *gin.Context, status int, msg, username string) {
	session.AddFlash(c, session.FlashDanger, msg)
	render(c, status, "admin_login.tmpl", gin.H{"Title": "Admin login", "Username": username})
}

// Logout is the handler for GET /admin/logout
func (h *Handlers) Logout(c *gin.Context) {
	if err := session.ClearAdmin(c); err != nil {
		logger.Error("Logout: failed to clear session", err)
	}
	redirectWithFlash(c, session.FlashSuccess, "Logged out successfully", "/admin/login")
}
