package reimbursement

import (
	"time"

	"worklane/internal/domain"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

type Reimbursement struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	Amount      float64              `gorm:"not null"`
	Description string               `gorm:"type:text;not null"`
	Receipt     *domain.FileDocument `gorm:"type:jsonb;serializer:json"`
	Status      Status               `gorm:"type:varchar(20);not null;default:'pending'"`

	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt *time.Time
	Comments   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
