package sessions

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"blog-app/models"
	"blog-app/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const (
	CookieName = "blog_session"
	contextKey = "session"
)

// Manager ties the session cookie to the server-side store. The cookie holds an
// HS256 token whose "sid" claim names the stored session.
type Manager struct {
	store  Store
	secret []byte
	maxAge time.Duration
	Secure bool
	now    func() time.Time
}

func NewManager(store Store, secret string, maxAge time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), maxAge: maxAge, now: time.Now}
}

func (m *Manager) signToken(id string, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": id,
		"exp": expires.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid or expired token")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("token without session id")
	}
	return sid, nil
}

// Current returns the session named by the request cookie, or nil. The result
// is cached on the gin context for the rest of the request.
func (m *Manager) Current(c *gin.Context) *models.Session {
	if v, ok := c.Get(contextKey); ok {
		s, _ := v.(*models.Session)
		return s
	}

	var session *models.Session
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		if sid, err := m.parseToken(cookie); err == nil {
			s, err := m.store.Get(c.Request.Context(), sid)
			switch {
			case err == nil:
				session = s
			case !errors.Is(err, ErrNoSession):
				utils.LogError(err, "Error loading session")
			}
		}
	}
	c.Set(contextKey, session)
	return session
}

// Middleware loads the session once per request and exposes the user id under "user_id".
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s := m.Current(c); s.Authenticated() {
			c.Set("user_id", s.UserID)
		}
		c.Next()
	}
}

// LogIn replaces whatever session the client had with a fresh one for userID.
func (m *Manager) LogIn(c *gin.Context, userID string) error {
	if old := m.Current(c); old != nil {
		if err := m.store.Delete(c.Request.Context(), old.ID); err != nil {
			return err
		}
	}
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Flashes:   models.Flashes{},
		ExpiresAt: m.now().Add(m.maxAge),
	}
	if err := m.persist(c, session); err != nil {
		return err
	}
	c.Set("user_id", userID)
	return nil
}

// LogOut destroys the current session and clears the cookie.
func (m *Manager) LogOut(c *gin.Context) error {
	var err error
	if s := m.Current(c); s != nil {
		err = m.store.Delete(c.Request.Context(), s.ID)
	}
	c.Set(contextKey, (*models.Session)(nil))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.Secure, true)
	return err
}

// AddFlash queues msg for the next rendered page, creating an anonymous session if needed.
func (m *Manager) AddFlash(c *gin.Context, kind, msg string) error {
	session := m.Current(c)
	if session == nil {
		session = &models.Session{
			ID:        uuid.NewString(),
			ExpiresAt: m.now().Add(m.maxAge),
		}
	}
	session.Flashes.Add(kind, msg)
	return m.persist(c, session)
}

// Flashes returns and consumes the pending messages of kind.
func (m *Manager) Flashes(c *gin.Context, kind string) []string {
	session := m.Current(c)
	if session == nil {
		return nil
	}
	msgs := session.Flashes.Take(kind)
	if len(msgs) > 0 {
		if err := m.store.Save(c.Request.Context(), session); err != nil {
			utils.LogError(err, "Error saving session after reading flashes")
		}
	}
	return msgs
}

func (m *Manager) persist(c *gin.Context, session *models.Session) error {
	if err := m.store.Save(c.Request.Context(), session); err != nil {
		return err
	}
	token, err := m.signToken(session.ID, session.ExpiresAt)
	if err != nil {
		return err
	}
	c.Set(contextKey, session)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(session.ExpiresAt.Sub(m.now()).Seconds()), "/", "", m.Secure, true)
	return nil
}
