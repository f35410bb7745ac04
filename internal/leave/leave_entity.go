package leave

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Leave struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	StartDate string  `gorm:"type:varchar(10);not null"` // ISO date
	EndDate   string  `gorm:"type:varchar(10);not null"`
	Days      float64 `gorm:"not null"`
	Reason    string  `gorm:"type:text;not null"`
	Status    Status  `gorm:"type:varchar(20);not null;default:'pending'"`

	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt *time.Time
	Comments   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
