package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/taptosell-catalog/internal/logger"
	"github.com/01moynul/taptosell-catalog/internal/models"
	"github.com/01moynul/taptosell-catalog/internal/session"
	"github.com/01moynul/taptosell-catalog/internal/store"
	"github.com/gin-gonic/gin"
)

// parseID reads the :id path parameter. Anything but a positive integer is
// treated as an unknown product.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Index is the handler for GET /
// The homepage stays up when the database is down: the error is logged and
// an empty preview is shown without a flash.
func (h *Handlers) Index(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context(), h.PreviewLimit)
	if err != nil {
		logger.Error("Index: failed to load product preview", err)
		products = []models.Product{}
	}

	render(c, http.StatusOK, "index.tmpl", gin.H{
		"Title":    "Home",
		"Products": products,
	})
}

// ListProducts is the handler for GET /products
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context(), 0)
	if err != nil {
		logger.Error("ListProducts: store error", err)
		session.AddFlash(c, session.FlashDanger, msgDBFailed)
		products = []models.Product{}
	}

	render(c, http.StatusOK, "products.tmpl", gin.H{
		"Title":    "Products",
		"Products": products,
	})
}

// ProductDetails is the handler for GET /product/:id
func (h *Handlers) ProductDetails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		redirectWithFlash(c, session.FlashDanger, msgProductNotFound, "/products")
		return
	}

	product, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			redirectWithFlash(c, session.FlashDanger, msgProductNotFound, "/products")
			return
		}
		logger.Error("ProductDetails: store error", err)
		redirectWithFlash(c, session.FlashDanger, msgDBFailed, "/products")
		return
	}

	render(c, http.StatusOK, "product_details.tmpl", gin.H{
		"Title":   product.Name,
		"Product": product,
	})
}
