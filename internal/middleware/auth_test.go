package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"clinic-opd-server/internal/config"
	"clinic-opd-server/internal/models"
	"clinic-opd-server/internal/utils"
)

func protectedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		role, _ := GetUserRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s", JWTExpirationMinutes: 5}
	r := protectedRouter(cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s", JWTExpirationMinutes: 5}
	r := protectedRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s", JWTExpirationMinutes: 5}
	user := &models.User{ID: 12, Role: models.RoleAccountant}
	token, err := utils.GenerateAccessToken(user, cfg)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	r := protectedRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"id":12`) || !strings.Contains(body, `"role":"accountant"`) {
		t.Errorf("body = %s", body)
	}
}
