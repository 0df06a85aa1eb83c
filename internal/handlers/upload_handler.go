package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/01moynul/taptosell-catalog/internal/logger"
	"github.com/01moynul/taptosell-catalog/internal/uploads"
	"github.com/gin-gonic/gin"
)

const imageField = "image"

// formImage returns the uploaded image header, or nil when the form carries
// no file. A missing file is not an error.
func formImage(c *gin.Context) *multipart.FileHeader {
	file, err := c.FormFile(imageField)
	if err != nil {
		return nil
	}
	return file
}

// isUploadRejection reports whether err is the client's fault (bad type or size).
func isUploadRejection(err error) bool {
	return errors.Is(err, uploads.ErrUnsupportedType) || errors.Is(err, uploads.ErrFileTooLarge)
}

// uploadMessage turns an upload rejection into a user-facing message.
func uploadMessage(err error) string {
	if errors.Is(err, uploads.ErrFileTooLarge) {
		return "Image file is too large"
	}
	return "Only JPEG, PNG, GIF or WebP images are allowed"
}

// discardUpload removes a file stored for a request that did not complete.
func (h *Handlers) discardUpload(stored uploads.Stored) {
	if stored.Empty() {
		return
	}
	if err := h.Uploads.Remove(stored.Name); err != nil {
		logger.Error("failed to remove orphaned upload %s", err, stored.Name)
	}
}
