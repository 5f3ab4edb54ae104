package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// Browser replays requests against a handler and keeps the cookies it is given,
// the way a real browser carries a session between pages.
type Browser struct {
	Handler http.Handler
	cookies map[string]*http.Cookie
}

func NewBrowser(h http.Handler) *Browser {
	return &Browser{Handler: h, cookies: map[string]*http.Cookie{}}
}

func (b *Browser) Do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	b.Handler.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *Browser) Get(path string) *httptest.ResponseRecorder {
	return b.Do(http.MethodGet, path, nil, "")
}

// PostForm submits an urlencoded form.
func (b *Browser) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	return b.Do(http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// Signup registers and logs in through the real form handlers.
func (b *Browser) Signup(username, password string) *httptest.ResponseRecorder {
	return b.PostForm("/signup", url.Values{"username": {username}, "password": {password}})
}

func (b *Browser) HasCookie(name string) bool {
	_, ok := b.cookies[name]
	return ok
}

func (b *Browser) ClearCookies() {
	b.cookies = map[string]*http.Cookie{}
}
