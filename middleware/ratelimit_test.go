package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func burstTestRouter(perSecond int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BurstGuard(perSecond))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func doGet(router *gin.Engine, ip string) int {
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestBurstGuard_BlocksFlood(t *testing.T) {
	router := burstTestRouter(3)

	for i := 0; i < 3; i++ {
		if code := doGet(router, "1.2.3.4"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}

	if code := doGet(router, "1.2.3.4"); code != http.StatusTooManyRequests {
		t.Errorf("expected the burst to be rejected with 429, got %d", code)
	}

	// Another IP has its own bucket
	if code := doGet(router, "5.6.7.8"); code != http.StatusOK {
		t.Errorf("expected a fresh IP to pass, got %d", code)
	}
}

func TestBurstGuard_DisabledWhenZero(t *testing.T) {
	router := burstTestRouter(0)

	for i := 0; i < 50; i++ {
		if code := doGet(router, "1.2.3.4"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200 with guard disabled, got %d", i+1, code)
		}
	}
}
