package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mightymoves/services/session"
	"mightymoves/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(rateLimit(newRateLimiterStore(2)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "10.0.0.9")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware("s3cret"), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := map[string]int{
		"":              http.StatusUnauthorized,
		"Basic s3cret":  http.StatusUnauthorized,
		"Bearer wrong":  http.StatusUnauthorized,
		"Bearer s3cret": http.StatusOK,
	}
	for header, want := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, header)
	}
}

func TestAdminAuthLockedWithoutToken(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer ")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientSessionIssuesAndReusesCookie(t *testing.T) {
	r := gin.New()
	r.Use(ClientSessionMiddleware("secret", false))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ClientID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	first := w.Body.String()
	require.NotEmpty(t, first)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.ClientSessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	r.ServeHTTP(w, req)
	assert.Equal(t, first, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestClientSessionRejectsForgedCookie(t *testing.T) {
	forged, err := utils.GenerateClientToken("other-secret", "victim", utils.ClientSessionTTL)
	require.NoError(t, err)

	r := gin.New()
	r.Use(ClientSessionMiddleware("secret", false))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ClientID(c)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: utils.ClientSessionCookie, Value: forged})
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "victim", w.Body.String())
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestRequireSignedIn(t *testing.T) {
	store := session.NewMemoryStore()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ClientIDKey, c.GetHeader("X-Client"))
		c.Next()
	})
	r.GET("/", RequireSignedIn(store), func(c *gin.Context) { c.Status(http.StatusOK) })

	require.NoError(t, store.SetToken(context.Background(), "c1", "tok"))

	for client, want := range map[string]int{"c1": http.StatusOK, "c2": http.StatusUnauthorized} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Client", client)
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, client)
	}
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded first valid", map[string]string{"X-Forwarded-For": "unknown, 10.0.0.1, 10.0.0.2"}, "192.0.2.1:1234", "10.0.0.1"},
		{"real ip", map[string]string{"X-Forwarded-For": "garbage", "X-Real-IP": " 10.0.0.9 "}, "192.0.2.1:1234", "10.0.0.9"},
		{"remote addr", nil, "192.0.2.1:1234", "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}
