package timesheet

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// transitions is the full state machine. Anything not listed is an
// invalid transition.
var transitions = map[Status]map[Action]Status{
	StatusDraft: {
		ActionSubmit: StatusSubmitted,
	},
	StatusSubmitted: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
}

func nextStatus(current Status, action Action) (Status, bool) {
	next, ok := transitions[current][action]
	return next, ok
}

// Entry is one project row of a weekly timesheet. Absent day fields
// decode to zero hours.
type Entry struct {
	ProjectCode  string  `json:"project_code"`
	SubCode      string  `json:"sub_code,omitempty"`
	Description  string  `json:"description,omitempty"`
	ActivityType string  `json:"activity_type,omitempty"`
	Mon          float64 `json:"mon"`
	Tue          float64 `json:"tue"`
	Wed          float64 `json:"wed"`
	Thu          float64 `json:"thu"`
	Fri          float64 `json:"fri"`
}

// Hours sums the weekday fields of the entry.
func (e Entry) Hours() float64 {
	return e.Mon + e.Tue + e.Wed + e.Thu + e.Fri
}

type Timesheet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_timesheets_user_week"`
	WeekStart string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_timesheets_user_week"` // ISO date of Monday

	Entries    []Entry `gorm:"type:jsonb;serializer:json"`
	TotalHours float64 `gorm:"not null;default:0"`
	Status     Status  `gorm:"type:varchar(20);not null;default:'draft'"`

	SubmittedAt *time.Time
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	Comments    *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
