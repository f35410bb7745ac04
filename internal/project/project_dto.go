package project

import (
	"time"

	"worklane/internal/domain"
)

type CreateProjectRequest struct {
	ProjectCode      string      `json:"project_code" binding:"required"`
	Description      string      `json:"description" binding:"required"`
	ProjectManagerID string      `json:"project_manager_id" binding:"required,uuid"`
	EstimatedHours   float64     `json:"estimated_hours" binding:"gte=0"`
	SubCodes         []SubCode   `json:"sub_codes"`
	TeamMembers      []string    `json:"team_members" binding:"omitempty,dive,uuid"`
	Milestones       []Milestone `json:"milestones"`
}

type UpdateProjectRequest struct {
	Description      *string      `json:"description"`
	ProjectManagerID *string      `json:"project_manager_id" binding:"omitempty,uuid"`
	EstimatedHours   *float64     `json:"estimated_hours" binding:"omitempty,gte=0"`
	SubCodes         *[]SubCode   `json:"sub_codes"`
	TeamMembers      *[]string    `json:"team_members" binding:"omitempty,dive,uuid"`
	Milestones       *[]Milestone `json:"milestones"`
}

type ProjectResponse struct {
	ID               string                `json:"id"`
	ProjectCode      string                `json:"project_code"`
	Description      string                `json:"description"`
	ProjectManagerID string                `json:"project_manager_id"`
	EstimatedHours   float64               `json:"estimated_hours"`
	SubCodes         []SubCode             `json:"sub_codes"`
	TeamMembers      []string              `json:"team_members"`
	Documents        []domain.FileDocument `json:"documents"`
	Milestones       []Milestone           `json:"milestones"`
	CreatedAt        string                `json:"created_at"`
}

func mapToResponse(p Project) ProjectResponse {
	resp := ProjectResponse{
		ID:               p.ID.String(),
		ProjectCode:      p.ProjectCode,
		Description:      p.Description,
		ProjectManagerID: p.ProjectManagerID.String(),
		EstimatedHours:   p.EstimatedHours,
		SubCodes:         p.SubCodes,
		TeamMembers:      p.TeamMembers,
		Documents:        p.Documents,
		Milestones:       p.Milestones,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if resp.SubCodes == nil {
		resp.SubCodes = []SubCode{}
	}
	if resp.TeamMembers == nil {
		resp.TeamMembers = []string{}
	}
	if resp.Documents == nil {
		resp.Documents = []domain.FileDocument{}
	}
	if resp.Milestones == nil {
		resp.Milestones = []Milestone{}
	}
	return resp
}

func mapToListResponse(projects []Project) []ProjectResponse {
	resp := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		resp[i] = mapToResponse(p)
	}
	return resp
}
