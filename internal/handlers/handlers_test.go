package handlers_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/01moynul/taptosell-catalog/internal/config"
	"github.com/01moynul/taptosell-catalog/internal/handlers"
	"github.com/01moynul/taptosell-catalog/internal/models"
	"github.com/01moynul/taptosell-catalog/internal/routes"
	"github.com/01moynul/taptosell-catalog/internal/session"
	"github.com/01moynul/taptosell-catalog/internal/store"
	"github.com/01moynul/taptosell-catalog/internal/store/mocks"
	"github.com/01moynul/taptosell-catalog/internal/uploads"
	"github.com/01moynul/taptosell-catalog/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

// testApp is the full router over a mocked store and a temp upload dir.
// It keeps cookies between requests like a browser.
type testApp struct {
	router  *gin.Engine
	store   *mocks.MockStore
	uploads *uploads.Storage
	cookies map[string]*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ms := new(mocks.MockStore)
	storage, err := uploads.NewStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)
	tmpl, err := views.Load(routes.UploadURL)
	require.NoError(t, err)

	router := routes.SetupRouter(handlers.New(ms, storage), routes.Options{
		Templates:      tmpl,
		SessionStore:   session.NewStore(config.SessionConfig{Secret: "test-secret", Backend: "cookie"}),
		UploadDir:      storage.Dir(),
		MaxUploadBytes: 1 << 20,
	})

	return &testApp{router: router, store: ms, uploads: storage, cookies: map[string]*http.Cookie{}}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range a.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	// Later Set-Cookie headers win, as in a browser.
	for _, ck := range w.Result().Cookies() {
		a.cookies[ck.Name] = ck
	}
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func multipartRequest(t *testing.T, path string, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// postMultipart posts fields plus an optional "image" file.
func (a *testApp) postMultipart(t *testing.T, path string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(multipartRequest(t, path, fields, filename, content))
}

// postChunked is postMultipart without a declared Content-Length.
func (a *testApp) postChunked(t *testing.T, path string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := multipartRequest(t, path, fields, filename, content)
	req.ContentLength = -1
	return a.do(req)
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// loginAsAdmin logs in through the real login form.
func (a *testApp) loginAsAdmin(t *testing.T) {
	t.Helper()
	a.store.On("GetAdminByUsername", mock.Anything, "admin").
		Return(&models.AdminUser{ID: 1, Username: "admin", PasswordHash: hashed(t, "s3cret")}, nil).Once()

	w := a.postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"s3cret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/admin/list", w.Header().Get("Location"))
}

// nextPage renders the public listing, which shows and consumes pending flashes.
func (a *testApp) nextPage(t *testing.T) string {
	t.Helper()
	a.store.On("ListProducts", mock.Anything, 0).Return([]models.Product{}, nil).Once()
	w := a.get("/products")
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func product(id int64, name, price string) models.Product {
	return models.Product{
		ID:        id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestIndex_ShowsPreview(t *testing.T) {
	app := newTestApp(t)
	app.store.On("ListProducts", mock.Anything, handlers.DefaultPreviewLimit).
		Return([]models.Product{product(1, "Widget", "9.99"), product(2, "Gadget", "5"), product(3, "Doohickey", "1.5")}, nil).Once()

	w := app.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Widget")
	assert.Contains(t, w.Body.String(), "Doohickey")
	assert.Contains(t, w.Body.String(), "9.99")
	app.store.AssertExpectations(t)
}

func TestIndex_DatabaseDownDegradesQuietly(t *testing.T) {
	app := newTestApp(t)
	app.store.On("ListProducts", mock.Anything, handlers.DefaultPreviewLimit).
		Return(nil, errors.New("dial tcp: connection refused")).Once()

	w := app.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No products yet.")
	assert.NotContains(t, w.Body.String(), "Database connection failed")
}

func TestListProducts(t *testing.T) {
	app := newTestApp(t)
	app.store.On("ListProducts", mock.Anything, 0).
		Return([]models.Product{product(1, "Widget", "9.99")}, nil).Once()

	w := app.get("/products")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/product/1"`)
}

func TestListProducts_DatabaseDownFlashes(t *testing.T) {
	app := newTestApp(t)
	app.store.On("ListProducts", mock.Anything, 0).Return(nil, errors.New("connection refused")).Once()

	w := app.get("/products")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Database connection failed")
	assert.Contains(t, w.Body.String(), "No products found.")
}

func TestProductDetails(t *testing.T) {
	app := newTestApp(t)
	p := product(7, "Widget", "9.99")
	p.FullDescription = models.StringPtr("A fine widget")
	app.store.On("GetProduct", mock.Anything, int64(7)).Return(&p, nil).Once()

	w := app.get("/product/7")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Widget</h1>")
	assert.Contains(t, w.Body.String(), "A fine widget")
}

func TestProductDetails_NotFoundRedirects(t *testing.T) {
	for _, path := range []string{"/product/404", "/product/abc", "/product/-1"} {
		t.Run(path, func(t *testing.T) {
			app := newTestApp(t)
			app.store.On("GetProduct", mock.Anything, int64(404)).Return(nil, store.ErrProductNotFound).Maybe()

			w := app.get(path)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/products", w.Header().Get("Location"))
			assert.Contains(t, app.nextPage(t), "Product not found")
		})
	}
}

func TestProductDetails_DatabaseDown(t *testing.T) {
	app := newTestApp(t)
	app.store.On("GetProduct", mock.Anything, int64(1)).Return(nil, errors.New("connection refused")).Once()

	w := app.get("/product/1")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))
	assert.Contains(t, app.nextPage(t), "Database connection failed")
}

func TestFlashIsShownOnce(t *testing.T) {
	app := newTestApp(t)
	app.store.On("GetProduct", mock.Anything, int64(404)).Return(nil, store.ErrProductNotFound).Once()

	app.get("/product/404")

	assert.Contains(t, app.nextPage(t), "Product not found")
	assert.NotContains(t, app.nextPage(t), "Product not found")
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	app.store.On("Ping", mock.Anything).Return(nil).Once()

	w := app.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	app.store.On("Ping", mock.Anything).Return(errors.New("down")).Once()

	w = app.get("/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"ok":false,"db":"down"}`, w.Body.String())
}

func TestStaticUploadsAreServed(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, writeFile(app.uploads.Path("abc.png"), pngBytes))

	w := app.get(routes.UploadURL + "/abc.png")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pngBytes, w.Body.Bytes())
}
