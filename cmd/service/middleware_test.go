package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func makeTestAccessToken(t *testing.T, secret []byte, userID string) string {
	t.Helper()
	claims := &TokenClaims{
		UserID:    userID,
		Email:     "user@example.com",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	secret := []byte("test-secret")
	token := makeTestAccessToken(t, secret, "user-123")

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if got := r.Header.Get("X-User-Id"); got != "user-123" {
			t.Errorf("expected X-User-Id=user-123, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/streams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	mw := jwtAuthMiddleware(secret)
	mw(next).ServeHTTP(rr, req)

	if !called {
		t.Fatalf("next handler was not called")
	}
}

func TestJWTAuthMiddleware_StripsSpoofedHeader(t *testing.T) {
	secret := []byte("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-User-Id"); got != "" {
			t.Errorf("expected client-sent X-User-Id to be stripped, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/tracks/feed", nil)
	req.Header.Set("X-User-Id", "forged")
	rr := httptest.NewRecorder()

	mw := jwtAuthMiddleware(secret)
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected anonymous request to pass through, got %d", rr.Code)
	}
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	secret := []byte("test-secret")
	wrong := makeTestAccessToken(t, []byte("other-secret"), "user-123")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not be called for an invalid token")
	})

	req := httptest.NewRequest(http.MethodGet, "/playlists/mine", nil)
	req.Header.Set("Authorization", "Bearer "+wrong)
	rr := httptest.NewRecorder()

	mw := jwtAuthMiddleware(secret)
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
}

func TestBodySizeLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not be called for an oversized body")
	})

	body := strings.NewReader(strings.Repeat("x", 100))
	req := httptest.NewRequest(http.MethodPost, "/playlists", body)
	rr := httptest.NewRecorder()

	mw := bodySizeLimitMiddleware(10)
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rr.Code)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not be called for a preflight request")
	})

	req := httptest.NewRequest(http.MethodOptions, "/streams", nil)
	rr := httptest.NewRecorder()

	corsMiddleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected CORS headers to be set")
	}
}
