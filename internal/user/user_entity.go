package user

import (
	"time"

	"worklane/internal/domain"

	"github.com/google/uuid"
)

type DocumentList []domain.FileDocument

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password string    `gorm:"type:varchar(255);not null"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Role     string    `gorm:"type:varchar(20);not null;default:'employee'"`

	DateOfJoining      *string    `gorm:"type:varchar(20)"`
	DateOfBirth        *string    `gorm:"type:varchar(20)"`
	Designation        *string    `gorm:"type:varchar(100)"`
	Practice           *string    `gorm:"type:varchar(100)"`
	ReportingManagerID *uuid.UUID `gorm:"type:uuid"`

	LeaveBalance float64      `gorm:"not null;default:20"`
	Documents    DocumentList `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
