package sessions

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"blog-app/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	os.Exit(m.Run())
}

func newTestRouter(m *Manager) *gin.Engine {
	r := testutils.SetupTestRouter()
	r.Use(m.Middleware())
	r.POST("/login/:id", func(c *gin.Context) {
		if err := m.LogIn(c, c.Param("id")); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.POST("/logout", func(c *gin.Context) {
		_ = m.LogOut(c)
		c.Status(http.StatusNoContent)
	})
	r.POST("/flash", func(c *gin.Context) {
		_ = m.AddFlash(c, "error", c.Query("msg"))
		c.Status(http.StatusNoContent)
	})
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":    c.GetString("user_id"),
			"flashes": m.Flashes(c, "error"),
		})
	})
	return r
}

func do(r http.Handler, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) []*http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return []*http.Cookie{c}
		}
	}
	t.Fatalf("no %s cookie in response", CookieName)
	return nil
}

func TestManager_LoginCarriesIdentity(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(NewManager(store, "secret", time.Hour))

	w := do(r, http.MethodPost, "/login/u1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := sessionCookie(t, w)
	assert.True(t, cookies[0].HttpOnly)

	w = do(r, http.MethodGet, "/whoami", cookies)
	assert.Contains(t, w.Body.String(), `"user":"u1"`)

	w = do(r, http.MethodGet, "/whoami", nil)
	assert.Contains(t, w.Body.String(), `"user":""`)
}

func TestManager_LoginReplacesPreviousSession(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(NewManager(store, "secret", time.Hour))

	first := sessionCookie(t, do(r, http.MethodPost, "/login/u1", nil))
	second := sessionCookie(t, do(r, http.MethodPost, "/login/u2", first))

	assert.Equal(t, 1, store.Len())
	assert.Contains(t, do(r, http.MethodGet, "/whoami", first).Body.String(), `"user":""`)
	assert.Contains(t, do(r, http.MethodGet, "/whoami", second).Body.String(), `"user":"u2"`)
}

func TestManager_Logout(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(NewManager(store, "secret", time.Hour))

	cookies := sessionCookie(t, do(r, http.MethodPost, "/login/u1", nil))
	w := do(r, http.MethodPost, "/logout", cookies)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, 0, store.Len())
	assert.Contains(t, do(r, http.MethodGet, "/whoami", cookies).Body.String(), `"user":""`)
}

func TestManager_FlashesAreShownOnce(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(NewManager(store, "secret", time.Hour))

	cookies := sessionCookie(t, do(r, http.MethodPost, "/flash?msg=Oops", nil))

	w := do(r, http.MethodGet, "/whoami", cookies)
	assert.Contains(t, w.Body.String(), `"flashes":["Oops"]`)
	assert.Contains(t, w.Body.String(), `"user":""`)

	w = do(r, http.MethodGet, "/whoami", cookies)
	assert.Contains(t, w.Body.String(), `"flashes":null`)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(NewManager(store, "secret", time.Hour))
	forger := NewManager(store, "other-secret", time.Hour)

	cookies := sessionCookie(t, do(r, http.MethodPost, "/login/u1", nil))
	sid, err := NewManager(store, "secret", time.Hour).parseToken(cookies[0].Value)
	require.NoError(t, err)

	forged, err := forger.signToken(sid, time.Now().Add(time.Hour))
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/whoami", []*http.Cookie{{Name: CookieName, Value: forged}})
	assert.Contains(t, w.Body.String(), `"user":""`)
}

func TestManager_ExpiredTokenIsIgnored(t *testing.T) {
	m := NewManager(NewMemoryStore(), "secret", time.Hour)

	token, err := m.signToken("sid", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = m.parseToken(token)
	assert.Error(t, err)
}
