package dto

import "teamnexus.com/collegeportal/internal/entity"

// RegisterInput excludes the admin role. Admins are seeded or promoted by another admin.
type RegisterInput struct {
	Name     string `json:"name" form:"name" binding:"required,max=120"`
	Username string `json:"username" form:"username" binding:"required,min=3,max=120"`
	Email    string `json:"email" form:"email" binding:"required,email,max=120"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" form:"role" binding:"required,oneof=teacher faculty student cr"`
}

type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *entity.User `json:"user"`
}
