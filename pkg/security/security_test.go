package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/test/process", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"wildcard echoes origin", []string{"*"}, "http://quiz.local", "http://quiz.local"},
		{"listed origin", []string{"http://a.local"}, "http://a.local", "http://a.local"},
		{"unlisted origin", []string{"http://a.local"}, "http://b.local", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(CORS(tt.allowed))
			req := httptest.NewRequest(http.MethodPost, "/api/test/process", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(CORS([]string{"*"}))
	req := httptest.NewRequest(http.MethodOptions, "/api/test/process", nil)
	req.Header.Set("Origin", "http://quiz.local")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecureNoStoreOnAPI(t *testing.T) {
	r := newEngine(Secure())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/test/process", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour, "/health")
	defer rl.Close()
	r := newEngine(rl.Middleware())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/test/process", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	defer rl.Close()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	rl.sweep(time.Now().Add(2 * time.Minute))
	assert.True(t, rl.Allow("10.0.0.1"))

	rl.Close()
}
