package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sallamerger/backend/internal/domain"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "app://sallamerger",
			allowedOrigins: []string{"app://sallamerger"},
			want:           true,
		},
		{
			name:           "wildcard match",
			origin:         "app://sallamerger",
			allowedOrigins: []string{"app://*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches first",
			origin:         "app://sallamerger",
			allowedOrigins: []string{"app://*", "http://localhost:5173"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{"app://*", "http://localhost:5173"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"app://*"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"app://*"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "app://sallamerger",
			allowedOrigins: []string{},
			want:           false,
		},
		{
			name:           "localhost wildcard port",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{"http://localhost:*"},
			want:           true,
		},
		{
			name:           "localhost wildcard does not match other hosts",
			origin:         "http://localhost.evil.com",
			allowedOrigins: []string{"http://localhost:*"},
			want:           false,
		},
		{
			name:           "partial wildcard match",
			origin:         "app://sallamerger",
			allowedOrigins: []string{"app*"},
			want:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAllowedOrigin(tt.origin, tt.allowedOrigins)
			if got != tt.want {
				t.Errorf("isAllowedOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		method         string
		wantStatus     int
		checkHeaders   bool
		wantCORS       bool
	}{
		{
			name:           "allowed origin - GET request",
			origin:         "app://sallamerger",
			allowedOrigins: []string{"app://*"},
			method:         "GET",
			wantStatus:     http.StatusOK,
			checkHeaders:   true,
			wantCORS:       true,
		},
		{
			name:           "allowed origin - OPTIONS request",
			origin:         "app://sallamerger",
			allowedOrigins: []string{"app://*"},
			method:         "OPTIONS",
			wantStatus:     http.StatusNoContent,
			checkHeaders:   true,
			wantCORS:       true,
		},
		{
			name:           "disallowed origin",
			origin:         "http://evil.com",
			allowedOrigins: []string{"app://*"},
			method:         "GET",
			wantStatus:     http.StatusOK,
			checkHeaders:   true,
			wantCORS:       false,
		},
		{
			name:           "no origin header",
			origin:         "",
			allowedOrigins: []string{"app://*"},
			method:         "GET",
			wantStatus:     http.StatusOK,
			checkHeaders:   true,
			wantCORS:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup router
			router := gin.New()
			router.Use(CORSMiddleware(tt.allowedOrigins))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "OK")
			})

			// Create request
			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			// Record response
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			// Check status
			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}

			// Check CORS headers
			if tt.checkHeaders {
				corsHeader := w.Header().Get("Access-Control-Allow-Origin")
				if tt.wantCORS {
					if corsHeader != tt.origin {
						t.Errorf("Access-Control-Allow-Origin = %s, want %s", corsHeader, tt.origin)
					}
					if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
						t.Errorf("Access-Control-Allow-Credentials not set to true")
					}
				} else {
					if corsHeader != "" {
						t.Errorf("Access-Control-Allow-Origin should not be set for disallowed origin, got %s", corsHeader)
					}
				}
			}
		})
	}
}

func TestCORSMiddleware_PreflightRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSMiddleware([]string{"app://*"}))
	router.POST("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Create preflight request
	req := httptest.NewRequest("OPTIONS", "/test", nil)
	req.Header.Set("Origin", "app://sallamerger")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Should return 204 No Content
	if w.Code != http.StatusNoContent {
		t.Errorf("Preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}

	// Check CORS headers
	if w.Header().Get("Access-Control-Allow-Origin") != "app://sallamerger" {
		t.Errorf("Access-Control-Allow-Origin not set correctly")
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Errorf("Access-Control-Allow-Methods not set")
	}
	if w.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Errorf("Access-Control-Allow-Headers not set")
	}
	if w.Header().Get("Access-Control-Max-Age") == "" {
		t.Errorf("Access-Control-Max-Age not set")
	}
}

func TestCORSMiddleware_ExposesContentDisposition(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSMiddleware([]string{"http://localhost:*"}))
	router.GET("/files/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest("GET", "/files/abc", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Expose-Headers"); got != "Content-Disposition" {
		t.Errorf("Access-Control-Expose-Headers = %q, want Content-Disposition", got)
	}
}

func TestIPRateLimiter(t *testing.T) {
	t.Run("allows a burst of perMinute requests", func(t *testing.T) {
		limiter := NewIPRateLimiter(3)

		for i := 0; i < 3; i++ {
			if !limiter.Allow("10.0.0.1") {
				t.Fatalf("request %d rejected, want allowed", i+1)
			}
		}
		if limiter.Allow("10.0.0.1") {
			t.Error("fourth request allowed, want rejected")
		}
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		limiter := NewIPRateLimiter(1)

		if !limiter.Allow("10.0.0.1") {
			t.Fatal("first client rejected")
		}
		if !limiter.Allow("10.0.0.2") {
			t.Error("second client rejected, want its own budget")
		}
		if limiter.Allow("10.0.0.1") {
			t.Error("first client allowed twice, want rejected")
		}
	})
}

func TestIPRateLimiter_EvictsIdleClients(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(1)
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock

	for i := 0; i < 100; i++ {
		limiter.Allow(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	if got := limiter.Len(); got != 100 {
		t.Fatalf("Len() = %d, want 100", got)
	}

	// One client keeps talking while the rest go quiet
	clock = clock.Add(2 * time.Minute)
	limiter.Allow("10.0.0.1")

	clock = clock.Add(2 * time.Minute)
	if !limiter.Allow("192.0.2.99") {
		t.Error("new client rejected, want allowed")
	}
	if got := limiter.Len(); got != 2 {
		t.Errorf("Len() after sweep = %d, want 2 (active client and new client)", got)
	}

	t.Run("evicted client starts with a full budget", func(t *testing.T) {
		if !limiter.Allow("10.0.0.2") {
			t.Error("returning client rejected, want allowed")
		}
		if limiter.Allow("10.0.0.2") {
			t.Error("returning client allowed twice, want rejected")
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware(NewIPRateLimiter(1), domain.LanguageEnglish))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := send(); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", w.Code, http.StatusOK)
	}

	w := send()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["success"] != false {
		t.Errorf("success = %v, want false", response["success"])
	}
	if response["error"] != domain.ErrRateLimited.Error() {
		t.Errorf("error = %v, want %q", response["error"], domain.ErrRateLimited.Error())
	}
}
