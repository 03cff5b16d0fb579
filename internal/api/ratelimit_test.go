package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := newRateLimiter(1, 5)

	for i := range 5 {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d blocked, want all %d within burst allowed", i+1, 5)
		}
	}
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := newRateLimiter(0.01, 2)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request blocked")
	}
	if !rl.allow("10.0.0.1") {
		t.Fatal("second request blocked")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("third request allowed, want blocked after burst")
	}
}

func TestRateLimiter_SeparateIPs(t *testing.T) {
	rl := newRateLimiter(0.01, 1)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first IP blocked on first request")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("first IP allowed past burst")
	}
	if !rl.allow("10.0.0.2") {
		t.Fatal("second IP blocked, want independent budget")
	}
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	rl := newRateLimiter(100, 1)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request blocked")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second request allowed, want bucket drained")
	}

	time.Sleep(50 * time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Fatal("request blocked after refill window")
	}
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	rl := newRateLimiter(0.01, 1)

	reached := 0
	handler := rateLimitMiddleware(rl, false, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached++
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	r1.RemoteAddr = "192.0.2.1:4000"
	handler.ServeHTTP(first, r1)

	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", first.Code, http.StatusOK)
	}

	second := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	r2.RemoteAddr = "192.0.2.1:4001"
	handler.ServeHTTP(second, r2)

	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}
	if got := second.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want %q", got, "1")
	}
	if reached != 1 {
		t.Errorf("handler reached %d times, want 1", reached)
	}

	envelope := decodeRPCError(t, second)
	if envelope.Error.Code != codeServerError {
		t.Errorf("code = %d, want %d", envelope.Error.Code, codeServerError)
	}
	if envelope.Error.Message != "Too many requests" {
		t.Errorf("message = %q, want %q", envelope.Error.Message, "Too many requests")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		trustProxy bool
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.0.2.1:1234",
			want:       "192.0.2.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.1",
			want:       "192.0.2.1",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:8080",
			want:       "2001:db8::1",
		},
		{
			name:       "x-real-ip when proxy trusted",
			remoteAddr: "10.0.0.1:1234",
			xri:        "203.0.113.9",
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "x-real-ip ignored when proxy untrusted",
			remoteAddr: "10.0.0.1:1234",
			xri:        "203.0.113.9",
			trustProxy: false,
			want:       "10.0.0.1",
		},
		{
			name:       "x-forwarded-for first hop",
			remoteAddr: "10.0.0.1:1234",
			xff:        "203.0.113.7, 70.41.3.18",
			trustProxy: true,
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip wins over x-forwarded-for",
			remoteAddr: "10.0.0.1:1234",
			xff:        "203.0.113.7",
			xri:        "203.0.113.9",
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "invalid x-real-ip falls back to x-forwarded-for",
			remoteAddr: "10.0.0.1:1234",
			xff:        "203.0.113.7",
			xri:        "not-an-ip",
			trustProxy: true,
			want:       "203.0.113.7",
		},
		{
			name:       "invalid forwarded headers fall back to remote addr",
			remoteAddr: "10.0.0.1:1234",
			xff:        "garbage",
			xri:        "also-garbage",
			trustProxy: true,
			want:       "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}

			if got := clientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
