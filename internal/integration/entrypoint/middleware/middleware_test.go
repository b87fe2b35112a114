package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/integration/adapters"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedEngine(auth *AuthMiddleware, handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	chain := append([]gin.HandlerFunc{auth.Authenticate()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		email, _ := GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "email": email})
	})
	engine.GET("/protected", chain...)
	return engine
}

func TestAuthenticate(t *testing.T) {
	tokens := adapters.NewTokenService("middleware-test-secret", time.Minute)
	otherTokens := adapters.NewTokenService("another-secret", time.Minute)
	engine := newProtectedEngine(NewAuthMiddleware(tokens))

	userID := uuid.New()
	valid, err := tokens.GenerateAccessToken(context.Background(), userID, "ana@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	forged, err := otherTokens.GenerateAccessToken(context.Background(), userID, "ana@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized, code: "AUTH-030002"},
		{name: "wrong scheme", header: "Basic " + valid, status: http.StatusUnauthorized, code: "AUTH-030002"},
		{name: "empty bearer", header: "Bearer   ", status: http.StatusUnauthorized, code: "AUTH-030002"},
		{name: "signed with another secret", header: "Bearer " + forged, status: http.StatusUnauthorized, code: "AUTH-030001"},
		{name: "garbage token", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized, code: "AUTH-030001"},
		{name: "valid token", header: "Bearer " + valid, status: http.StatusOK},
		{name: "scheme is case insensitive", header: "bearer " + valid, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.status == http.StatusOK {
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body["user_id"] != userID.String() || body["email"] != "ana@example.com" {
					t.Errorf("unexpected identity in context: %v", body)
				}
				return
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, resp.Code)
			}
			if resp.Kind != "unauthorized" {
				t.Errorf("expected kind unauthorized, got %s", resp.Kind)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("limits each key within the window", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		rl := NewRateLimiter(2, time.Minute, nil)
		rl.now = func() time.Time { return now }

		for i, want := range []bool{true, true, false} {
			if got := rl.allow("user:a"); got != want {
				t.Errorf("attempt %d: expected %v, got %v", i+1, want, got)
			}
		}
		if !rl.allow("user:b") {
			t.Error("expected a different key to have its own budget")
		}

		now = now.Add(time.Minute + time.Second)
		if !rl.allow("user:a") {
			t.Error("expected the window to reset")
		}
	})

	t.Run("cleanup drops expired entries", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		rl := NewRateLimiter(1, time.Minute, nil)
		rl.now = func() time.Time { return now }

		rl.allow("user:a")
		now = now.Add(2 * time.Minute)
		rl.allow("user:b")
		rl.Cleanup()

		if len(rl.entries) != 1 {
			t.Fatalf("expected 1 live entry, got %d", len(rl.entries))
		}
		if _, ok := rl.entries["user:b"]; !ok {
			t.Error("expected the fresh entry to survive cleanup")
		}
	})

	t.Run("responds 429 per authenticated user", func(t *testing.T) {
		tokens := adapters.NewTokenService("middleware-test-secret", time.Minute)
		rl := NewRateLimiter(1, time.Minute, ByUser)
		engine := newProtectedEngine(NewAuthMiddleware(tokens), rl.Middleware())

		send := func(userID uuid.UUID) *httptest.ResponseRecorder {
			token, err := tokens.GenerateAccessToken(context.Background(), userID, "user@example.com")
			if err != nil {
				t.Fatalf("failed to generate token: %v", err)
			}
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			return rec
		}

		first, second := uuid.New(), uuid.New()
		if rec := send(first); rec.Code != http.StatusOK {
			t.Fatalf("expected first request to pass, got %d", rec.Code)
		}
		rec := send(first)
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
		var resp dto.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode error: %v", err)
		}
		if resp.Code != "REC-010002" {
			t.Errorf("expected code REC-010002, got %s", resp.Code)
		}
		if rec := send(second); rec.Code != http.StatusOK {
			t.Errorf("expected another user to pass, got %d", rec.Code)
		}
	})

	t.Run("non-positive limit disables limiting", func(t *testing.T) {
		rl := NewRateLimiter(0, time.Minute, func(*gin.Context) string { return "all" })
		engine := gin.New()
		engine.GET("/open", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
			if rec.Code != http.StatusNoContent {
				t.Fatalf("request %d: expected 204, got %d", i+1, rec.Code)
			}
		}
	})
}
