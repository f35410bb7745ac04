package auth

import "worklane/internal/user"

type RegisterRequest struct {
	Email              string  `json:"email" binding:"required,email"`
	Password           string  `json:"password" binding:"required,min=6"`
	Name               string  `json:"name" binding:"required"`
	Role               string  `json:"role" binding:"omitempty,oneof=admin manager employee"`
	DateOfJoining      *string `json:"date_of_joining"`
	DateOfBirth        *string `json:"date_of_birth"`
	Designation        *string `json:"designation"`
	Practice           *string `json:"practice"`
	ReportingManagerID *string `json:"reporting_manager_id" binding:"omitempty,uuid"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	User        user.UserResponse `json:"user"`
}
