package routes

import (
	"html/template"

	"github.com/01moynul/taptosell-catalog/internal/handlers"
	"github.com/01moynul/taptosell-catalog/internal/middleware"
	"github.com/01moynul/taptosell-catalog/internal/session"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// UploadURL is the public prefix for stored product images.
const UploadURL = "/static/uploads"

// Options carries what the router needs besides the handlers.
type Options struct {
	Templates      *template.Template
	SessionStore   sessions.Store
	UploadDir      string
	MaxUploadBytes int64
}

// uploadLimit caps product form bodies when an upload limit is configured.
func uploadLimit(opts Options) gin.HandlerFunc {
	if opts.MaxUploadBytes <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.LimitBody(opts.MaxUploadBytes)
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.Default()

	router.SetHTMLTemplate(opts.Templates)
	if opts.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = opts.MaxUploadBytes
	}
	router.Use(session.Middleware(opts.SessionStore))

	router.Static(UploadURL, opts.UploadDir)
	router.GET("/health", h.Health)

	// --- Public Catalog Routes ---
	router.GET("/", h.Index)
	router.GET("/products", h.ListProducts)
	router.GET("/product/:id", h.ProductDetails)

	// --- Admin Auth Routes (Public) ---
	router.GET("/admin/login", h.ShowLogin)
	router.POST("/admin/login", h.Login)
	router.GET("/admin/logout", h.Logout)

	// --- Admin-Only Routes ---
	admin := router.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/list", h.AdminList)

		admin.GET("/add", h.ShowAddProduct)
		admin.POST("/add", uploadLimit(opts), h.AddProduct)

		admin.GET("/edit/:id", h.ShowEditProduct)
		admin.POST("/edit/:id", uploadLimit(opts), h.EditProduct)

		admin.GET("/delete/:id", h.DeleteProduct)
	}

	return router
}
