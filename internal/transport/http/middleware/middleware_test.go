package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/khaoulaLakhdim/orders-management/internal/core/auth"
	"github.com/khaoulaLakhdim/orders-management/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

func do(r http.Handler, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestID)) })

	w := do(r, http.MethodGet, "/", nil, nil)
	rid := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, w.Body.String())

	w = do(r, http.MethodGet, "/", nil, map[string]string{HeaderRequestID: "abc"})
	assert.Equal(t, "abc", w.Body.String())
}

func TestMaskQuery(t *testing.T) {
	got := maskQuery(map[string][]string{"Password": {"x"}, "page": {"1"}})
	assert.Equal(t, []string{"****"}, got["Password"])
	assert.Equal(t, []string{"1"}, got["page"])
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(1, 1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", nil, nil).Code)
	w := do(r, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, false, envelope(t, w)["success"])
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(1, 1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := func(ip string) int {
		rq := httptest.NewRequest(http.MethodGet, "/", nil)
		rq.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, rq)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, req("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, req("10.0.0.1"))
	assert.Equal(t, http.StatusOK, req("10.0.0.2"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", envelope(t, w)["message"])
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/", strings.NewReader("small"), nil).Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, do(r, http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)), nil).Code)
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/", func(c *gin.Context) { <-c.Request.Context().Done() })

	w := do(r, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestConcurrencyLimitPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(ConcurrencyLimit(1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", nil, nil).Code)
	}
}

type fakeAuth map[string]auth.Identity

func (f fakeAuth) Authenticate(_ context.Context, tok string) (auth.Identity, error) {
	id, ok := f[tok]
	if !ok {
		return auth.Identity{}, domain.Unauthenticated("Invalid or expired token")
	}
	return id, nil
}

func TestAuthJWT(t *testing.T) {
	a := fakeAuth{
		"admin": {UserID: 1, Username: "admin", Role: "ADMIN"},
		"user":  {UserID: 2, Username: "user1", Role: "USER"},
	}
	r := gin.New()
	r.GET("/any", AuthJWT(a, zap.NewNop()), func(c *gin.Context) {
		id, _ := auth.IdentityFrom(c.Request.Context())
		c.String(http.StatusOK, id.Username)
	})
	r.GET("/admin", AuthJWT(a, zap.NewNop(), "ADMIN"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/any", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated", envelope(t, w)["message"])

	w = do(r, http.MethodGet, "/any", nil, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/any", nil, map[string]string{"Authorization": "Bearer user"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user1", w.Body.String())

	w = do(r, http.MethodGet, "/admin", nil, map[string]string{"Authorization": "Bearer user"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(r, http.MethodGet, "/admin", nil, map[string]string{"Authorization": "Bearer admin"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	a := fakeAuth{"user": {UserID: 2, Username: "user1", Role: "USER"}}
	r := gin.New()
	r.GET("/", OptionalAuth(a), func(c *gin.Context) {
		_, ok := auth.IdentityFrom(c.Request.Context())
		c.JSON(http.StatusOK, ok)
	})
	assert.Equal(t, "false", do(r, http.MethodGet, "/", nil, nil).Body.String())
	assert.Equal(t, "false", do(r, http.MethodGet, "/", nil, map[string]string{"Authorization": "Bearer bad"}).Body.String())
	assert.Equal(t, "true", do(r, http.MethodGet, "/", nil, map[string]string{"Authorization": "Bearer user"}).Body.String())
}
