package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/internal/modules/user/dto"
	"teamnexus.com/collegeportal/internal/modules/user/repository"
	"teamnexus.com/collegeportal/internal/testdb"
	"teamnexus.com/collegeportal/pkg/apperror"
)

func newService(t *testing.T) (AuthService, repository.UserRepository, func() int64) {
	db := testdb.New(t)
	repo := repository.NewUserRepository(db)
	count := func() int64 {
		var n int64
		db.Model(&entity.User{}).Count(&n)
		return n
	}
	return NewAuthService(repo, "test-secret", time.Hour), repo, count
}

func registerInput(username, email string) dto.RegisterInput {
	return dto.RegisterInput{
		Name:     "Asha",
		Username: username,
		Email:    email,
		Password: "hunter22",
		Role:     entity.RoleStudent,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput("asha", "Asha@Example.edu"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "asha@example.edu" {
		t.Errorf("email = %q, want lower-cased", user.Email)
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password stored in clear text")
	}

	res, err := svc.Login(ctx, dto.LoginInput{Username: "asha", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AccessToken == "" || res.TokenType != "Bearer" {
		t.Errorf("unexpected auth response %+v", res)
	}
	if res.User.ID != user.ID {
		t.Errorf("login user = %s, want %s", res.User.ID, user.ID)
	}
}

func TestRegisterDuplicateDoesNotInsert(t *testing.T) {
	svc, _, count := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("ravi", "ravi@example.edu")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name  string
		input dto.RegisterInput
		msg   string
	}{
		{"username", registerInput("ravi", "other@example.edu"), "username already exists"},
		{"email", registerInput("ravi2", "ravi@example.edu"), "email already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			if !errors.Is(err, apperror.ErrInvalidInput) {
				t.Fatalf("err = %v, want invalid input", err)
			}
			if err.Error() != tt.msg {
				t.Errorf("message = %q, want %q", err.Error(), tt.msg)
			}
			if apperror.MapErrorToStatus(err) != http.StatusBadRequest {
				t.Errorf("status = %d", apperror.MapErrorToStatus(err))
			}
		})
	}

	if n := count(); n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _, count := newService(t)

	input := registerInput("mallory", "mallory@example.edu")
	input.Role = entity.RoleAdmin

	if _, err := svc.Register(context.Background(), input); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
	if n := count(); n != 0 {
		t.Errorf("users = %d, want 0", n)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("meera", "meera@example.edu")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, in := range []dto.LoginInput{
		{Username: "meera", Password: "wrong-pass"},
		{Username: "nobody", Password: "hunter22"},
	} {
		_, err := svc.Login(ctx, in)
		if !errors.Is(err, apperror.ErrUnauthorized) {
			t.Errorf("Login(%s) err = %v, want unauthorized", in.Username, err)
		}
		if err != nil && err.Error() != "invalid username or password" {
			t.Errorf("message = %q", err.Error())
		}
	}
}
