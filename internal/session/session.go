package session

import (
	"crypto/sha256"
	"io"
	"net/http"

	"github.com/01moynul/taptosell-catalog/internal/config"
	"github.com/01moynul/taptosell-catalog/internal/logger"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/hkdf"
)

const (
	CookieName = "catalog_session"

	keyAdminLoggedIn = "admin_logged_in"
	keyAdminUsername = "admin_username"
)

// Flash levels, also used as CSS classes by the views.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

var flashLevels = []string{FlashDanger, FlashSuccess}

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Level   string
	Message string
}

// keys derives the cookie authentication key and the 32-byte AES
// encryption key from the configured secret.
func keys(secret string) (authKey, encKey []byte) {
	derive := func(label string) []byte {
		key := make([]byte, 32)
		if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(label)), key); err != nil {
			panic(err)
		}
		return key
	}
	return derive("catalog session auth"), derive("catalog session enc")
}

// NewStore builds the session backend selected in cfg. "memory" keeps
// session data server-side and the cookie only carries the session id.
// Cookies are signed and encrypted.
func NewStore(cfg config.SessionConfig) sessions.Store {
	authKey, encKey := keys(cfg.Secret)

	var store sessions.Store
	switch cfg.Backend {
	case "memory":
		store = memstore.NewStore(authKey, encKey)
	default:
		store = cookie.NewStore(authKey, encKey)
	}
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// Middleware attaches the session to every request.
func Middleware(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(CookieName, store)
}

// SetAdmin marks the client as a logged-in admin.
func SetAdmin(c *gin.Context, username string) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(keyAdminLoggedIn, true)
	sess.Set(keyAdminUsername, username)
	return sess.Save()
}

// ClearAdmin drops everything in the client's session.
func ClearAdmin(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}

// IsAdmin reports whether the admin flag is set.
func IsAdmin(c *gin.Context) bool {
	loggedIn, _ := sessions.Default(c).Get(keyAdminLoggedIn).(bool)
	return loggedIn
}

func AdminUsername(c *gin.Context) string {
	username, _ := sessions.Default(c).Get(keyAdminUsername).(string)
	return username
}

// AddFlash queues msg for the next rendered page.
func AddFlash(c *gin.Context, level, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg, level)
	if err := sess.Save(); err != nil {
		logger.Error("AddFlash: failed to save session", err)
	}
}

// Flashes pops every queued message.
func Flashes(c *gin.Context) []Flash {
	sess := sessions.Default(c)

	var flashes []Flash
	for _, level := range flashLevels {
		for _, raw := range sess.Flashes(level) {
			if msg, ok := raw.(string); ok {
				flashes = append(flashes, Flash{Level: level, Message: msg})
			}
		}
	}
	if len(flashes) > 0 {
		if err := sess.Save(); err != nil {
			logger.Error("Flashes: failed to save session", err)
		}
	}
	return flashes
}
