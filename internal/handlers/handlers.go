package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/01moynul/taptosell-catalog/internal/logger"
	"github.com/01moynul/taptosell-catalog/internal/session"
	"github.com/01moynul/taptosell-catalog/internal/store"
	"github.com/01moynul/taptosell-catalog/internal/uploads"
	"github.com/gin-gonic/gin"
)

// DefaultPreviewLimit is how many products the homepage shows.
const DefaultPreviewLimit = 3

const (
	msgDBFailed        = "Database connection failed"
	msgProductNotFound = "Product not found"
	msgServerError     = "Something went wrong while processing your request. Please try again."
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store        store.Store
	Uploads      *uploads.Storage
	PreviewLimit int
}

func New(s store.Store, u *uploads.Storage) *Handlers {
	return &Handlers{Store: s, Uploads: u, PreviewLimit: DefaultPreviewLimit}
}

// render adds the session-derived fields every page expects and writes the view.
func render(c *gin.Context, status int, view string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = session.Flashes(c)
	data["AdminLoggedIn"] = session.IsAdmin(c)
	c.HTML(status, view, data)
}

// redirectWithFlash queues a flash message and redirects to location.
func redirectWithFlash(c *gin.Context, level, msg, location string) {
	session.AddFlash(c, level, msg)
	c.Redirect(http.StatusSeeOther, location)
}

// serverError logs err and answers with the generic error page.
func serverError(c *gin.Context, where string, err error) {
	logger.Error(where, err)
	render(c, http.StatusInternalServerError, "error.tmpl", gin.H{
		"Title":   "Error",
		"Message": msgServerError,
	})
}

// Health is the handler for GET /health
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
