package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"kitapantaups.id/api/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens() *token.Manager {
	return token.NewManager("access", "refresh", time.Minute, time.Hour)
}

func TestRequireAuth(t *testing.T) {
	tokens := newTokens()
	auth := NewAuthMiddleware(tokens)

	router := gin.New()
	router.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    c.GetString("user_id"),
			"email": c.GetString("user_email"),
			"role":  c.GetString("user_role"),
		})
	})

	userID := uuid.New()
	signed, _, err := tokens.IssueAccess(userID, "staf@kitapantau.id", "staf")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), `"role":"staf"`)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Token tidak valid atau kadaluarsa"}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	tokens := newTokens()
	auth := NewAuthMiddleware(tokens)

	router := gin.New()
	router.DELETE("/x", auth.RequireAuth(), auth.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	staf, _, _ := tokens.IssueAccess(uuid.New(), "s@k.id", "staf")
	admin, _, _ := tokens.IssueAccess(uuid.New(), "a@k.id", "admin")

	req := httptest.NewRequest(http.MethodDelete, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+staf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Akses ditolak: hanya admin"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodDelete, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func bodyLimitRouter(max int64) *gin.Engine {
	router := gin.New()
	router.POST("/upload", BodyLimit(max), func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			if IsBodyTooLarge(err) {
				AbortBodyTooLarge(c)
				return
			}
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestBodyLimitDeclaredLength(t *testing.T) {
	router := bodyLimitRouter(2 << 20)

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(make([]byte, 3<<20)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"File terlalu besar (maks 2 MB)"}`, w.Body.String())
}

func TestBodyLimitStreamedBody(t *testing.T) {
	router := bodyLimitRouter(1 << 20)

	// no declared length
	body := io.MultiReader(strings.NewReader(strings.Repeat("a", 2<<20)))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"File terlalu besar (maks 1 MB)"}`, w.Body.String())
}

func TestBodyLimitWithinLimit(t *testing.T) {
	router := bodyLimitRouter(1 << 20)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("small"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterMemoryStore(t *testing.T) {
	limit, err := RateLimiter("2-M", "test", nil)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/login", limit, func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterRejectsBadFormat(t *testing.T) {
	_, err := RateLimiter("ten-per-minute", "test", nil)
	assert.Error(t, err)
}
