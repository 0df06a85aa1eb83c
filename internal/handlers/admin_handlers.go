package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/taptosell-catalog/internal/logger"
	"github.com/01moynul/taptosell-catalog/internal/models"
	"github.com/01moynul/taptosell-catalog/internal/session"
	"github.com/01moynul/taptosell-catalog/internal/store"
	"github.com/01moynul/taptosell-catalog/internal/uploads"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const adminListPath = "/admin/list"

const (
	msgMissingFields = "Name and price are required"
	msgInvalidPrice  = "Price must be a non-negative number"
)

// ProductInput is the add/edit product form. The image arrives separately
// as a multipart file.
type ProductInput struct {
	Name             string `form:"name" binding:"required,max=255"`
	Price            string `form:"price" binding:"required"`
	ShortDescription string `form:"short_description"`
	FullDescription  string `form:"full_description"`
}

func (in *ProductInput) parsePrice() (decimal.Decimal, bool) {
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return decimal.Decimal{}, false
	}
	return price.Round(2), true
}

// apply copies the form fields onto p. The image is left alone.
func (in *ProductInput) apply(p *models.Product, price decimal.Decimal) {
	p.Name = strings.TrimSpace(in.Name)
	p.Price = price
	p.ShortDescription = models.StringPtr(in.ShortDescription)
	p.FullDescription = models.StringPtr(in.FullDescription)
}

func inputFromProduct(p *models.Product) ProductInput {
	return ProductInput{
		Name:             p.Name,
		Price:            p.Price.StringFixed(2),
		ShortDescription: models.Deref(p.ShortDescription),
		FullDescription:  models.Deref(p.FullDescription),
	}
}

// bindProduct binds and validates the product form. A non-empty message
// means the form was rejected.
func bindProduct(c *gin.Context) (ProductInput, decimal.Decimal, string) {
	var input ProductInput
	if err := c.ShouldBind(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return input, decimal.Decimal{}, uploadMessage(uploads.ErrFileTooLarge)
		}
		return input, decimal.Decimal{}, msgMissingFields
	}
	if strings.TrimSpace(input.Name) == "" {
		return input, decimal.Decimal{}, msgMissingFields
	}
	price, ok := input.parsePrice()
	if !ok {
		return input, decimal.Decimal{}, msgInvalidPrice
	}
	return input, price, ""
}

// formError re-renders a product form with the submitted values.
func formError(c *gin.Context, view string, input ProductInput, extra gin.H, msg string) {
	session.AddFlash(c, session.FlashDanger, msg)
	data := gin.H{"Title": "Product", "Form": input}
	for k, v := range extra {
		data[k] = v
	}
	render(c, http.StatusBadRequest, view, data)
}

// AdminList is the handler for GET /admin/list
func (h *Handlers) AdminList(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context(), 0)
	if err != nil {
		logger.Error("AdminList: store error", err)
		session.AddFlash(c, session.FlashDanger, msgDBFailed)
		products = []models.Product{}
	}

	render(c, http.StatusOK, "admin_list.tmpl", gin.H{
		"Title":    "Manage products",
		"Products": products,
	})
}

// ShowAddProduct is the handler for GET /admin/add
func (h *Handlers) ShowAddProduct(c *gin.Context) {
	render(c, http.StatusOK, "admin_add.tmpl", gin.H{
		"Title": "Add product",
		"Form":  ProductInput{},
	})
}

// AddProduct is the handler for POST /admin/add
func (h *Handlers) AddProduct(c *gin.Context) {
	input, price, msg := bindProduct(c)
	if msg != "" {
		formError(c, "admin_add.tmpl", input, nil, msg)
		return
	}

	stored, err := h.Uploads.Save(formImage(c))
	if err != nil {
		if isUploadRejection(err) {
			formError(c, "admin_add.tmpl", input, nil, uploadMessage(err))
			return
		}
		serverError(c, "AddProduct: failed to store image", err)
		return
	}

	product := &models.Product{
		Image:             models.StringPtr(stored.Name),
		ImageOriginalName: models.StringPtr(stored.OriginalName),
	}
	input.apply(product, price)

	if _, err := h.Store.CreateProduct(c.Request.Context(), product); err != nil {
		h.discardUpload(stored)
		serverError(c, "AddProduct: failed to insert product", err)
		return
	}

	logger.Info("Product %d created by %q", product.ID, c.GetString("adminUsername"))
	redirectWithFlash(c, session.FlashSuccess, "Product added successfully", adminListPath)
}

// ShowEditProduct is the handler for GET /admin/edit/:id
func (h *Handlers) ShowEditProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		redirectWithFlash(c, session.FlashDanger, msgProductNotFound, adminListPath)
		return
	}

	product, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			redirectWithFlash(c, session.FlashDanger, msgProductNotFound, adminListPath)
			return
		}
		serverError(c, "ShowEditProduct: store error", err)
		return
	}

	render(c, http.StatusOK, "admin_edit.tmpl", gin.H{
		"Title":        "Edit product",
		"ProductID":    product.ID,
		"Form":         inputFromProduct(product),
		"CurrentImage": product.ImageName(),
	})
}

// EditProduct is the handler for POST /admin/edit/:id
// The row is read and written in one transaction. The image is replaced only
// when a new file arrives; the replaced file is removed after commit.
func (h *Handlers) EditProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		redirectWithFlash(c, session.FlashDanger, msgProductNotFound, adminListPath)
		return
	}

	extra := gin.H{"ProductID": id}
	input, price, msg := bindProduct(c)
	if msg != "" {
		h.editFormError(c, id, input, extra, msg)
		return
	}
	file := formImage(c)

	var stored uploads.Stored
	var replaced string
	_, err := h.Store.UpdateProduct(c.Request.Context(), id, func(p *models.Product) error {
		extra["CurrentImage"] = p.ImageName()

		var err error
		stored, err = h.Uploads.Save(file)
		if err != nil {
			return err
		}

		input.apply(p, price)
		if !stored.Empty() {
			replaced = p.ImageName()
			p.Image = models.StringPtr(stored.Name)
			p.ImageOriginalName = models.StringPtr(stored.OriginalName)
		}
		return nil
	})
	if err != nil {
		h.discardUpload(stored)
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			redirectWithFlash(c, session.FlashDanger, msgProductNotFound, adminListPath)
		case isUploadRejection(err):
			formError(c, "admin_edit.tmpl", input, extra, uploadMessage(err))
		default:
			serverError(c, "EditProduct: failed to update product", err)
		}
		return
	}

	if replaced != "" {
		if err := h.Uploads.Remove(replaced); err != nil {
			logger.Error("EditProduct: failed to remove replaced image %s", err, replaced)
		}
	}

	logger.Info("Product %d updated by %q", id, c.GetString("adminUsername"))
	redirectWithFlash(c, session.FlashSuccess, "Product updated successfully", adminListPath)
}

// editFormError re-renders the edit form for a rejected submission, unless
// the product does not exist.
func (h *Handlers) editFormError(c *gin.Context, id int64, input ProductInput, extra gin.H, msg string) {
	product, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			redirectWithFlash(c, session.FlashDanger, msgProductNotFound, adminListPath)
			return
		}
		serverError(c, "EditProduct: store error", err)
		return
	}
	extra["CurrentImage"] = product.ImageName()
	formError(c, "admin_edit.tmpl", input, extra, msg)
}

// DeleteProduct is the handler for GET /admin/delete/:id
// The backing image is removed before the row; a file that is already gone
// is fine, any other filesystem error keeps the row.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		redirectWithFlash(c, session.FlashDanger, msgProductNotFound, adminListPath)
		return
	}

	_, err := h.Store.DeleteProduct(c.Request.Context(), id, func(p *models.Product) error {
		if !p.HasImage() {
			return nil
		}
		return h.Uploads.Remove(p.ImageName())
	})
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			redirectWithFlash(c, session.FlashDanger, msgProductNotFound, adminListPath)
			return
		}
		serverError(c, "DeleteProduct: failed to delete product", err)
		return
	}

	logger.Info("Product %d deleted by %q", id, c.GetString("adminUsername"))
	redirectWithFlash(c, session.FlashSuccess, "Product deleted successfully", adminListPath)
}
