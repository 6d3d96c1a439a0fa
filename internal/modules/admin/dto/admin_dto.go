package dto

import (
	"github.com/google/uuid"
)

type UserFilter struct {
	Role string `form:"role" binding:"omitempty,oneof=admin teacher faculty student cr"`
}

type UpdateRoleInput struct {
	Role string `json:"role" form:"role" binding:"required,oneof=admin teacher faculty student cr"`
}

type AdminUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt string    `json:"created_at"`
}
