package project

import (
	"time"

	"worklane/internal/domain"

	"github.com/google/uuid"
)

type SubCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type Milestone struct {
	Name    string `json:"name"`
	DueDate string `json:"due_date,omitempty"`
	Status  string `json:"status,omitempty"`
}

type Project struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectCode      string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_projects_code"`
	Description      string    `gorm:"type:text"`
	ProjectManagerID uuid.UUID `gorm:"type:uuid;not null"`
	EstimatedHours   float64   `gorm:"not null;default:0"`

	SubCodes    []SubCode             `gorm:"type:jsonb;serializer:json"`
	TeamMembers []string              `gorm:"type:jsonb;serializer:json"`
	Documents   []domain.FileDocument `gorm:"type:jsonb;serializer:json"`
	Milestones  []Milestone           `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
