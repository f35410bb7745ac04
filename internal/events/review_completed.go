package events

import "time"

// ReviewCompletedTopic carries terminal workflow transitions
// (approve/reject) for timesheets, leaves and reimbursements.
const ReviewCompletedTopic = "worklane.review.completed.v1"

const (
	EntityTimesheet     = "timesheet"
	EntityLeave         = "leave"
	EntityReimbursement = "reimbursement"

	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

type ReviewCompletedEvent struct {
	EventType  string    `json:"event_type"` // e.g. timesheet.approved
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	OwnerID    string    `json:"owner_id"` // user to notify
	ReviewerID string    `json:"reviewer_id"`
	Decision   string    `json:"decision"`
	Comments   string    `json:"comments,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
