package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/internal/modules/user/dto"
	userRepo "teamnexus.com/collegeportal/internal/modules/user/repository"
	userService "teamnexus.com/collegeportal/internal/modules/user/service"
	"teamnexus.com/collegeportal/internal/testdb"
)

func setup(t *testing.T) (*gin.Engine, userService.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t)
	repo := userRepo.NewUserRepository(db)
	svc := userService.NewAuthService(repo, "test-secret", time.Hour)
	auth := NewAuthMiddleware(repo, "test-secret")

	r := gin.New()
	protected := r.Group("", auth.RequireAuth())
	protected.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	protected.GET("/staff", auth.RequireRole(entity.RoleTeacher, entity.RoleFaculty), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, svc
}

func tokenFor(t *testing.T, svc userService.AuthService, username, role string) string {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterInput{
		Name: username, Username: username, Email: username + "@example.edu",
		Password: "hunter22", Role: role,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	res, err := svc.Login(ctx, dto.LoginInput{Username: username, Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return res.AccessToken
}

func TestRequireAuthTokenSources(t *testing.T) {
	r, svc := setup(t)
	token := tokenFor(t, svc, "kiran", entity.RoleStudent)

	header := httptest.NewRequest(http.MethodGet, "/me", nil)
	header.Header.Set("Authorization", "Bearer "+token)

	query := httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)

	cookie := httptest.NewRequest(http.MethodGet, "/me", nil)
	cookie.AddCookie(&http.Cookie{Name: "access_token", Value: token})

	for name, req := range map[string]*http.Request{"header": header, "query": query, "cookie": cookie} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.Len() == 0 {
			t.Errorf("%s: status = %d body = %q", name, w.Code, w.Body.String())
		}
	}
}

func TestRequireAuthRejects(t *testing.T) {
	r, _ := setup(t)

	for _, auth := range []string{"", "Bearer not-a-jwt", "Token abc"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("auth %q: status = %d, want 401", auth, w.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	r, svc := setup(t)
	student := tokenFor(t, svc, "student1", entity.RoleStudent)
	faculty := tokenFor(t, svc, "faculty1", entity.RoleFaculty)

	cases := map[string]int{student: http.StatusForbidden, faculty: http.StatusNoContent}
	for token, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("status = %d, want %d", w.Code, want)
		}
	}
}
