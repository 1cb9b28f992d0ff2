package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nccabhyas/ncc-training-backend/utils"
)

func newAuthedEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString("user_id")})
	})
	r.GET("/open", OptionalAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString("user_id")})
	})
	return r
}

func TestAuthMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthedEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"No authorization header"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthedEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("verification failure must map to 401, got %d", w.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthedEngine()

	token, err := utils.GenerateToken("42ef9e86-2f36-4b61-a797-ffe78bb0c343", "cadet@example.com", "cadet")
	if err != nil {
		t.Fatalf("token mint failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthSchemeWordNotValidated(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthedEngine()

	token, err := utils.GenerateToken("42ef9e86-2f36-4b61-a797-ffe78bb0c343", "cadet@example.com", "cadet")
	if err != nil {
		t.Fatalf("token mint failed: %v", err)
	}

	// The parse takes the second whitespace field without checking the
	// scheme keyword.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for lax scheme parse, got %d", w.Code)
	}
}

func TestOptionalAuthAnonymous(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthedEngine()

	for _, header := range []string{"", "Bearer garbage"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("optional auth must pass anonymous requests, got %d", w.Code)
		}
	}
}
