package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.GET("/limited", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimiterAllowsBurst(t *testing.T) {
	router := limitedRouter(NewRateLimiter(3, time.Minute))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimiterBlocksOverBurst(t *testing.T) {
	router := limitedRouter(NewRateLimiter(3, time.Minute))

	var last int
	for i := 0; i < 4; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 after exhausting burst, got %d", last)
	}
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	router := limitedRouter(NewRateLimiter(1, time.Minute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/limited", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("First client: expected status 200, got %d", w.Code)
	}

	// A different client gets its own bucket
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest("GET", "/limited", nil)
	req2.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Errorf("Second client: expected status 200, got %d", w2.Code)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(60, time.Second) // 60 tokens/sec for a fast test

	for i := 0; i < 60; i++ {
		rl.allow("10.0.0.1")
	}
	if rl.allow("10.0.0.1") {
		t.Fatalf("Expected bucket to be empty")
	}

	time.Sleep(50 * time.Millisecond)
	if !rl.allow("10.0.0.1") {
		t.Errorf("Expected tokens to refill after waiting")
	}
}
