package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"livemenu-backend/config"
	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/utils"

	"github.com/google/go-cmp/cmp"
)

func token(t *testing.T, role string) string {
	t.Helper()
	utils.SetSecret("middleware-secret")
	tok, err := utils.GenerateJWT("staff-1", "kim@example.com", role, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() = %v", err)
	}
	return tok
}

func captureIdentity(got **domain.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = domain.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentityMiddleware(t *testing.T) {
	tok := token(t, domain.RoleAdmin)

	tests := []struct {
		name   string
		header string
		wantID string
	}{
		{"anonymous", "", ""},
		{"bearer", "Bearer " + tok, "staff-1"},
		{"garbage", "Bearer not-a-token", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *domain.Identity
			r := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			IdentityMiddleware(captureIdentity(&got)).ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			gotID := ""
			if got != nil {
				gotID = got.ID
			}
			if gotID != tt.wantID {
				t.Errorf("identity = %q, want %q", gotID, tt.wantID)
			}
		})
	}
}

func TestAdminChain(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"customer", "customer", http.StatusForbidden},
		{"budtender", domain.RoleBudtender, http.StatusOK},
		{"admin", domain.RoleAdmin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *domain.Identity
			h := AuthMiddleware(AdminMiddleware(captureIdentity(&got)))

			r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/items/Flower", nil)
			if tt.role != "" {
				r.Header.Set("Authorization", "Bearer "+token(t, tt.role))
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestAdminMiddlewareWithoutIdentity(t *testing.T) {
	w := httptest.NewRecorder()
	AdminMiddleware(http.NotFoundHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSessionMiddleware(t *testing.T) {
	var seen string
	h := SessionMiddleware(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName || cookies[0].Value != seen || seen == "" {
		t.Fatalf("cookies = %v, session = %q", cookies, seen)
	}
	if cookies[0].MaxAge != 3600 || !cookies[0].HttpOnly {
		t.Errorf("cookie = %+v", cookies[0])
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "existing"})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if seen != "existing" || len(w.Result().Cookies()) != 0 {
		t.Errorf("session = %q, cookies = %v", seen, w.Result().Cookies())
	}

	if got := SessionID(context.Background()); got != "" {
		t.Errorf("SessionID(empty) = %q", got)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 2, time.Minute, time.Minute)
	defer rl.Shutdown()
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests && w.Header().Get("Retry-After") == "" {
			t.Error("429 without Retry-After")
		}
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "198.51.100.1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("other client status = %d", w.Code)
	}
	if got := rl.Clients(); got != 2 {
		t.Errorf("Clients() = %d, want 2", got)
	}
}

func TestRateLimiterKeysBySession(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 1, time.Minute, time.Minute)
	defer rl.Shutdown()
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(session string) int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "192.0.2.10")
		if session != "" {
			r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session})
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	got := []int{send("kiosk-1"), send("kiosk-2"), send("kiosk-1"), send("")}
	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusOK}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("status codes mismatch (-want +got):\n%s", diff)
	}

	if n := rl.evict(time.Now().Add(2 * time.Minute)); n != 3 {
		t.Errorf("evict() = %d, want 3", n)
	}
	if rl.Clients() != 0 {
		t.Errorf("Clients() = %d after eviction", rl.Clients())
	}
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{AllowedOrigin: "https://menu.example.com, https://admin.example.com"}
	h := NewCORSMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodOptions, "/api/v1/menu", nil)
	r.Header.Set("Origin", "https://admin.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q for unlisted origin", got)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d", w.Code)
	}
	if got := w.Header().Get("X-Request-ID"); len(got) != 8 {
		t.Errorf("X-Request-ID = %q", got)
	}
}
