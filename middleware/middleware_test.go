package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"blog-app/blog"
	"blog-app/models"
	"blog-app/sessions"
	"blog-app/testutils"
	"blog-app/utils"
	"blog-app/views"

	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	os.Exit(m.Run())
}

type fakeUsers map[string]*models.User

func (f fakeUsers) UserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	if id == "broken" {
		return nil, errors.New("db down")
	}
	return nil, blog.ErrNotFound
}

func guardedRouter(manager *sessions.Manager, users UserLoader) *gin.Engine {
	r := testutils.SetupTestRouter()
	r.Use(manager.Middleware())
	r.POST("/login/:id", func(c *gin.Context) {
		_ = manager.LogIn(c, c.Param("id"))
		c.Status(http.StatusNoContent)
	})
	r.GET("/private", RequireAuth(manager, users), func(c *gin.Context) {
		c.String(http.StatusOK, "hello "+CurrentUser(c).Username)
	})
	return r
}

func loginCookies(t *testing.T, r http.Handler, id string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login/"+id, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func getPrivate(r http.Handler, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	manager := sessions.NewManager(sessions.NewMemoryStore(), "secret", time.Hour)
	r := guardedRouter(manager, fakeUsers{})

	w := getPrivate(r, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuth_LoadsUser(t *testing.T) {
	manager := sessions.NewManager(sessions.NewMemoryStore(), "secret", time.Hour)
	r := guardedRouter(manager, fakeUsers{"u1": {ID: "u1", Username: "alice"}})

	w := getPrivate(r, loginCookies(t, r, "u1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello alice", w.Body.String())
}

func TestRequireAuth_VanishedUserIsLoggedOut(t *testing.T) {
	store := sessions.NewMemoryStore()
	manager := sessions.NewManager(store, "secret", time.Hour)
	r := guardedRouter(manager, fakeUsers{})

	cookies := loginCookies(t, r, "ghost")
	w := getPrivate(r, cookies)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 0, store.Len())

	w = getPrivate(r, loginCookies(t, r, "broken"))
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

type failingDeleteStore struct {
	*sessions.MemoryStore
}

func (failingDeleteStore) Delete(context.Context, string) error {
	return errors.New("store unavailable")
}

func TestRequireAuth_LogsSessionDeleteFailure(t *testing.T) {
	hook := logtest.NewLocal(utils.Logger)
	defer hook.Reset()

	manager := sessions.NewManager(failingDeleteStore{sessions.NewMemoryStore()}, "secret", time.Hour)
	r := guardedRouter(manager, fakeUsers{})

	w := getPrivate(r, loginCookies(t, r, "ghost"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "Error destroying session")
}

func TestMethodOverride(t *testing.T) {
	var seen string
	h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Method
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/posts/1?_method=delete", nil))
	assert.Equal(t, http.MethodDelete, seen)

	form := url.Values{"_method": {"DELETE"}}
	req := httptest.NewRequest(http.MethodPost, "/posts/1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, http.MethodDelete, seen)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/posts/1?_method=GET", nil))
	assert.Equal(t, http.MethodPost, seen)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts/1?_method=DELETE", nil))
	assert.Equal(t, http.MethodGet, seen)
}

func TestRecovery_RendersErrorPage(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.SetHTMLTemplate(views.Templates())
	r.Use(Recovery(), RequestLogger())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong.")
}
