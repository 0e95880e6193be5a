package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"custody/internal/app/config"
	"custody/internal/app/ds"
	"custody/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBlacklist struct {
	revoked map[string]bool
	err     error
}

func (f fakeBlacklist) IsJWTBlacklisted(_ context.Context, jwtStr string) (bool, error) {
	return f.revoked[jwtStr], f.err
}

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{
		Token:         "test-secret",
		ExpiresIn:     time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}}
}

func signToken(t *testing.T, cfg *config.Config, userID uint, r role.Role, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(cfg.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: now.Add(ttl).Unix(), IssuedAt: now.Unix()},
		UserID:         userID,
		Login:          "ana.silva",
		Role:           r,
	})
	s, err := token.SignedString([]byte(cfg.JWT.Token))
	require.NoError(t, err)
	return s
}

func TestWithAuthCheck(t *testing.T) {
	cfg := testConfig()
	employee := signToken(t, cfg, 7, role.Employee, time.Hour)
	expired := signToken(t, cfg, 7, role.Employee, -time.Minute)
	revoked := signToken(t, cfg, 8, role.Employee, 2*time.Hour)

	newRouter := func(bl Blacklist) *gin.Engine {
		am := NewAuthMiddleware(bl, cfg)
		r := gin.New()
		r.GET("/any", am.WithAuthCheck(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.GetUint(KeyUserID), "login": c.GetString(KeyLogin)})
		})
		r.GET("/admin", am.WithAuthCheck(role.Admin), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	cases := []struct {
		name   string
		bl     Blacklist
		path   string
		header string
		want   int
	}{
		{"no header", nil, "/any", "", http.StatusUnauthorized},
		{"garbage", nil, "/any", "Bearer nope", http.StatusUnauthorized},
		{"expired", nil, "/any", "Bearer " + expired, http.StatusUnauthorized},
		{"valid", nil, "/any", "Bearer " + employee, http.StatusOK},
		{"valid without prefix", nil, "/any", employee, http.StatusOK},
		{"wrong role", nil, "/admin", "Bearer " + employee, http.StatusForbidden},
		{"revoked", fakeBlacklist{revoked: map[string]bool{revoked: true}}, "/any", "Bearer " + revoked, http.StatusUnauthorized},
		{"blacklist down", fakeBlacklist{err: errors.New("dial tcp: refused")}, "/any", "Bearer " + employee, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			newRouter(tc.bl).ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestWithAuthCheckSetsIdentity(t *testing.T) {
	cfg := testConfig()
	am := NewAuthMiddleware(nil, cfg)

	var gotID uint
	var gotRole role.Role
	r := gin.New()
	r.GET("/me", am.WithAuthCheck(role.Admin, role.Employee), func(c *gin.Context) {
		gotID = c.GetUint(KeyUserID)
		gotRole = c.MustGet(KeyUserRole).(role.Role)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, 42, role.Admin, time.Hour))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(42), gotID)
	assert.Equal(t, role.Admin, gotRole)
}

func TestInlinePDFHeaders(t *testing.T) {
	r := gin.New()
	r.Use(InlinePDFHeaders())
	r.GET("/inline", func(c *gin.Context) {
		c.Header("Content-Disposition", `inline; filename="preview.pdf"`)
		c.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.4"))
	})
	r.GET("/attachment", func(c *gin.Context) {
		c.Header("Content-Disposition", `attachment; filename="term.pdf"`)
		c.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.4"))
	})
	r.GET("/json", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	serve := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	inline := serve("/inline")
	assert.Equal(t, "SAMEORIGIN", inline.Header().Get("X-Frame-Options"))
	assert.Equal(t, "frame-ancestors 'self'", inline.Header().Get("Content-Security-Policy"))
	assert.Contains(t, inline.Header().Get("Cache-Control"), "no-store")
	assert.Equal(t, "no-cache", inline.Header().Get("Pragma"))
	assert.Equal(t, "0", inline.Header().Get("Expires"))
	assert.Equal(t, "%PDF-1.4", inline.Body.String())

	for _, path := range []string{"/attachment", "/json"} {
		w := serve(path)
		assert.Empty(t, w.Header().Get("X-Frame-Options"), path)
		assert.Empty(t, w.Header().Get("Content-Security-Policy"), path)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		assert.NotNil(t, Logger(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
