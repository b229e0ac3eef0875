package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ticket-analytics/internal/auth"
	"ticket-analytics/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthBuildsPrincipal(t *testing.T) {
	parser := auth.NewParser("secret")
	userID := uuid.New()
	token, err := parser.Issue(auth.Claims{
		UserID:     userID,
		Role:       "auditor",
		CompanyIDs: []string{"acme"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got model.Principal
	r := gin.New()
	r.GET("/", Auth(parser), func(c *gin.Context) {
		got, _ = MustPrincipal(c)
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}

	if got.UserID != userID || got.Role != model.RoleAuditor || !got.AllowsCompany("acme") {
		t.Fatalf("unexpected principal: %+v", got)
	}
}

func TestRequestIDEchoesHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDHeader)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get(RequestIDHeader) != "req-1" || rec.Body.String() != "req-1" {
		t.Fatalf("expected request id to be echoed, got %q", rec.Header().Get(RequestIDHeader))
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Fatalf("expected generated uuid, got %q", rec.Header().Get(RequestIDHeader))
	}
}
