package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/internal/modules/user/dto"
	"teamnexus.com/collegeportal/internal/modules/user/repository"
	"teamnexus.com/collegeportal/pkg/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid username or password", apperror.ErrUnauthorized)
	errUsernameTaken      = apperror.Validation("username already exists")
	errEmailTaken         = apperror.Validation("email already exists")
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if input.Role == entity.RoleAdmin {
		return nil, apperror.Validation("role must be one of: teacher faculty student cr")
	}

	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, errUsernameTaken
	}

	taken, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, errEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         input.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation("username or email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}
