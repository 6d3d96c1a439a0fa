package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/internal/modules/admin/dto"
	userRepo "teamnexus.com/collegeportal/internal/modules/user/repository"
	"teamnexus.com/collegeportal/pkg/apperror"
	commonDto "teamnexus.com/collegeportal/pkg/dto"
)

type AdminService interface {
	GetAllUsers(ctx context.Context, filter dto.UserFilter) ([]dto.AdminUserResponse, error)
	UpdateRole(ctx context.Context, admin *entity.User, id uuid.UUID, input dto.UpdateRoleInput) (*dto.AdminUserResponse, error)
}

type adminService struct {
	repo userRepo.UserRepository
}

func NewAdminService(repo userRepo.UserRepository) AdminService {
	return &adminService{repo: repo}
}

func (s *adminService) GetAllUsers(ctx context.Context, filter dto.UserFilter) ([]dto.AdminUserResponse, error) {
	users, err := s.repo.List(ctx, filter.Role)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		out = append(out, mapUser(&users[i]))
	}
	return out, nil
}

func (s *adminService) UpdateRole(ctx context.Context, admin *entity.User, id uuid.UUID, input dto.UpdateRoleInput) (*dto.AdminUserResponse, error) {
	if admin == nil || admin.Role != entity.RoleAdmin {
		return nil, apperror.Forbidden("you do not have permission to access this page")
	}
	if !slices.Contains(entity.Roles, input.Role) {
		return nil, apperror.Validation(fmt.Sprintf("unknown role %q", input.Role))
	}
	if admin.ID == id {
		return nil, apperror.Validation("you cannot change your own role")
	}

	if err := s.repo.UpdateRole(ctx, id, input.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := mapUser(user)
	return &res, nil
}

func mapUser(u *entity.User) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		ID:        u.ID,
		Name:      u.DisplayName(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: commonDto.FormatTime(u.CreatedAt),
	}
}
