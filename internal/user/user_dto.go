package user

import (
	"time"

	"worklane/internal/domain"
)

type CreateUserRequest struct {
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

// UpdateUserRequest is a partial patch; nil fields are untouched. Which
// fields a caller may set depends on their role.
type UpdateUserRequest struct {
	Email              *string  `json:"email" binding:"omitempty,email"`
	Password           *string  `json:"password" binding:"omitempty,min=6"`
	Name               *string  `json:"name"`
	Role               *string  `json:"role" binding:"omitempty,oneof=admin manager employee"`
	DateOfJoining      *string  `json:"date_of_joining"`
	DateOfBirth        *string  `json:"date_of_birth"`
	Designation        *string  `json:"designation"`
	Practice           *string  `json:"practice"`
	ReportingManagerID *string  `json:"reporting_manager_id" binding:"omitempty,uuid"`
	LeaveBalance       *float64 `json:"leave_balance" binding:"omitempty,gte=0"`
}

type UserResponse struct {
	ID                 string                `json:"id"`
	Email              string                `json:"email"`
	Name               string                `json:"name"`
	Role               string                `json:"role"`
	DateOfJoining      *string               `json:"date_of_joining,omitempty"`
	DateOfBirth        *string               `json:"date_of_birth,omitempty"`
	Designation        *string               `json:"designation,omitempty"`
	Practice           *string               `json:"practice,omitempty"`
	ReportingManagerID *string               `json:"reporting_manager_id,omitempty"`
	LeaveBalance       float64               `json:"leave_balance"`
	Documents          []domain.FileDocument `json:"documents"`
	CreatedAt          string                `json:"created_at"`
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		DateOfJoining: u.DateOfJoining,
		DateOfBirth:   u.DateOfBirth,
		Designation:   u.Designation,
		Practice:      u.Practice,
		LeaveBalance:  u.LeaveBalance,
		Documents:     u.Documents,
		CreatedAt:     u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if resp.Documents == nil {
		resp.Documents = []domain.FileDocument{}
	}
	if u.ReportingManagerID != nil {
		v := u.ReportingManagerID.String()
		resp.ReportingManagerID = &v
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
