package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "jwt-key"

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("could not sign token: %v", err)
	}
	return signed
}

func adminRequest(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AdminAuth(testSecret))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthRejectsMissingOrMalformedToken(t *testing.T) {
	for name, header := range map[string]string{
		"no header":     "",
		"no scheme":     signToken(t, "admin"),
		"wrong scheme":  "Basic abc123",
		"empty bearer":  "Bearer ",
		"garbage token": "Bearer not-a-jwt",
	} {
		if w := adminRequest(t, header); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, w.Code)
		}
	}
}

func TestAdminAuthRejectsWrongSigningKey(t *testing.T) {
	claims := jwt.MapClaims{"role": "admin", "exp": time.Now().Add(time.Hour).Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-key"))
	if err != nil {
		t.Fatalf("could not sign token: %v", err)
	}
	if w := adminRequest(t, "Bearer "+signed); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign signature, got %d", w.Code)
	}
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	if w := adminRequest(t, "Bearer "+signToken(t, "customer")); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin role, got %d", w.Code)
	}
}

func TestAdminAuthPassesAdminTokens(t *testing.T) {
	w := adminRequest(t, "Bearer "+signToken(t, "admin"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin token, got %d: %s", w.Code, w.Body.String())
	}
}
