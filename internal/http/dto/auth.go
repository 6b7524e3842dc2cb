package dto

import (
	"time"

	"peoplehub.app/api/internal/auth"
	"peoplehub.app/api/internal/model"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=100" jsonschema:"minLength=1,maxLength=100"`
	Email    string `json:"email" binding:"required,email,max=255" jsonschema:"format=email,maxLength=255"`
	Password string `json:"password" binding:"required,min=8,max=72" jsonschema:"minLength=8,maxLength=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" jsonschema:"format=email"`
	Password string `json:"password" binding:"required,max=72" jsonschema:"maxLength=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required,max=72" jsonschema:"maxLength=72"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthResponse struct {
	User      *UserResponse `json:"user"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToAuthResponse(u *model.User, t auth.Token) *AuthResponse {
	return &AuthResponse{
		User:      ToUserResponse(u),
		Token:     t.Value,
		ExpiresAt: t.ExpiresAt,
	}
}
