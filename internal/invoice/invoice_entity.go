package invoice

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusPaid      Status = "paid"
)

func validStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusPaid:
		return true
	}
	return false
}

// Invoice tracks estimated against actual effort per project milestone.
// Status is plain data here, there is no review workflow behind it.
type Invoice struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Milestone *string   `gorm:"type:varchar(255)"`

	EstimatedHours float64 `gorm:"not null"`
	EstimatedCost  float64 `gorm:"not null"`
	ActualHours    float64 `gorm:"not null;default:0"`
	ActualCost     float64 `gorm:"not null;default:0"`
	Status         Status  `gorm:"type:varchar(20);not null;default:'draft'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
